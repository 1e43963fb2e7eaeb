package model

// Element — стихия атаки или брони.
type Element uint8

const (
	ElementNeutral Element = iota
	ElementWater
	ElementEarth
	ElementFire
	ElementWind
	ElementPoison
	ElementHoly
	ElementDark
	ElementGhost
	ElementUndead
)

// Race — раса существа (влияет на Blessing, Signum Crucis и т.п.).
type Race uint8

const (
	RaceFormless Race = iota
	RaceUndead
	RaceBrute
	RacePlant
	RaceInsect
	RaceFish
	RaceDemon
	RaceDemiHuman
	RaceAngel
	RaceDragon
)

// Size — размер существа.
type Size uint8

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
)

// Mode — флаги поведения (у монстров берутся из шаблона).
type Mode uint32

const (
	ModeCanMove   Mode = 0x0001
	ModeLooter    Mode = 0x0002
	ModeAggresive Mode = 0x0004
	ModeAssist    Mode = 0x0008
	ModeCastSense Mode = 0x0010
	ModeBoss      Mode = 0x0020
	ModePlant     Mode = 0x0040
	ModeCanAttack Mode = 0x0080
)

// WeaponAtk — атака оружия в правой руке.
type WeaponAtk struct {
	Atk   int32
	Atk2  int32
	Range int32
	Ele   Element
}

// StatusData — набор статов существа.
// Один и тот же тип используется для Base Status (до эффектов) и
// Battle Status (итоговые значения с учётом активных статус-эффектов).
type StatusData struct {
	MaxHP int32
	MaxSP int32

	Str int32
	Agi int32
	Vit int32
	Int int32
	Dex int32
	Luk int32

	Batk    int32
	MatkMin int32
	MatkMax int32
	RHW     WeaponAtk

	Hit   int32
	Flee  int32
	Cri   int32 // в десятых долях процента
	Flee2 int32 // perfect dodge, в десятых долях процента
	Def   int32
	Def2  int32
	Mdef  int32
	Mdef2 int32

	Speed    int32 // мс на клетку, меньше — быстрее
	Amotion  int32
	Adelay   int32
	Dmotion  int32
	AspdRate int32 // 1000 = 100%

	Mode   Mode
	DefEle Element
	EleLv  uint8
	Size   Size
	Race   Race
}

// IsBoss проверяет флаг босса.
func (s *StatusData) IsBoss() bool {
	return s.Mode&ModeBoss != 0
}

// IsUndead — нежить по стихии или расе (иммунна к Freeze/Stone).
func (s *StatusData) IsUndead() bool {
	return s.DefEle == ElementUndead || s.Race == RaceUndead
}
