package model

// Kind — вид существа (block list type оригинального сервера).
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindMonster
	KindPet
	KindHomunculus
	KindMercenary
	KindElemental
	KindNPC
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	case KindPet:
		return "pet"
	case KindHomunculus:
		return "homunculus"
	case KindMercenary:
		return "mercenary"
	case KindElemental:
		return "elemental"
	case KindNPC:
		return "npc"
	default:
		return "unknown"
	}
}

// HasRegen — виды с естественной регенерацией HP/SP.
func (k Kind) HasRegen() bool {
	switch k {
	case KindPlayer, KindHomunculus, KindMercenary, KindElemental:
		return true
	}
	return false
}

// Params — распределённые очки статов (до эффектов).
type Params struct {
	Str int32
	Agi int32
	Vit int32
	Int int32
	Dex int32
	Luk int32
}

// EquipSlot — слот экипировки, который может снять Strip-эффект.
type EquipSlot uint8

const (
	EquipWeapon EquipSlot = iota
	EquipShield
	EquipArmor
	EquipHelm

	equipSlotCount
)

// Entity — любое существо с боевыми статами (игрок, монстр, пет, саммон, NPC).
// Владеет Base/Battle Status, таблицей статус-эффектов и состоянием регенерации.
//
// Base Status пересчитывается только через status.Engine.CalcBase
// (level up, смена экипировки, скилл-дерево). Battle Status всегда
// согласован с Base + активными эффектами.
type Entity struct {
	*WorldObject

	kind      Kind
	accountID int64
	charID    int64
	level     int32
	job       int32

	// Params — распределённые статы игрока или статы шаблона монстра.
	Params Params
	// Template — значения от шаблона/экипировки: MaxHP/MaxSP монстров,
	// атака оружия, Def/Mdef брони, скорость, стихия, раса, размер, mode.
	Template StatusData

	Base   StatusData
	Battle StatusData

	hp int32
	sp int32

	SC    *StatusChange
	Regen RegenData

	equip [equipSlotCount]int32

	sitting bool
	moving  bool
	inWar   bool
}

// NewEntity создаёт существо указанного вида. Статы нужно заполнить
// (Params, Template) и вызвать status.Engine.CalcBase до использования.
func NewEntity(objectID uint32, name string, kind Kind, level int32) *Entity {
	return &Entity{
		WorldObject: NewWorldObject(objectID, name),
		kind:        kind,
		level:       clampLevel(level),
		SC:          NewStatusChange(),
	}
}

// NewPlayer создаёт игрока с ключами персистентности (account, character).
func NewPlayer(objectID uint32, name string, accountID, charID int64, job, level int32, params Params) *Entity {
	e := NewEntity(objectID, name, KindPlayer, level)
	e.accountID = accountID
	e.charID = charID
	e.job = job
	e.Params = params
	e.Template.Speed = DefaultWalkSpeed
	e.Template.Size = SizeMedium
	e.Template.Race = RaceDemiHuman
	e.Template.Mode = ModeCanMove | ModeCanAttack
	e.Template.EleLv = 1
	return e
}

// NewMonster создаёт монстра по шаблону (mob_db).
func NewMonster(objectID uint32, name string, level int32, params Params, template StatusData) *Entity {
	e := NewEntity(objectID, name, KindMonster, level)
	e.Params = params
	e.Template = template
	if e.Template.Speed == 0 {
		e.Template.Speed = DefaultWalkSpeed
	}
	if e.Template.EleLv == 0 {
		e.Template.EleLv = 1
	}
	return e
}

// DefaultWalkSpeed — скорость ходьбы по умолчанию (мс на клетку).
const DefaultWalkSpeed = 150

// Kind возвращает вид существа.
func (e *Entity) Kind() Kind { return e.kind }

// AccountID возвращает ID аккаунта (0 для не-игроков).
func (e *Entity) AccountID() int64 { return e.accountID }

// CharID возвращает ID персонажа (0 для не-игроков).
func (e *Entity) CharID() int64 { return e.charID }

// Job возвращает класс игрока.
func (e *Entity) Job() int32 { return e.job }

// Level возвращает уровень.
func (e *Entity) Level() int32 { return e.level }

// SetLevel устанавливает уровень (clamp 1..MaxLevel).
// После изменения нужно вызвать status.Engine.CalcBase.
func (e *Entity) SetLevel(level int32) {
	e.level = clampLevel(level)
}

// MaxLevel — максимальный базовый уровень.
const MaxLevel = 99

func clampLevel(level int32) int32 {
	if level < 1 {
		return 1
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// IsPlayer — удобная проверка вида.
func (e *Entity) IsPlayer() bool { return e.kind == KindPlayer }

// HP возвращает текущее HP.
func (e *Entity) HP() int32 { return e.hp }

// SP возвращает текущее SP.
func (e *Entity) SP() int32 { return e.sp }

// SetHP устанавливает HP с валидацией (clamp 0..Battle.MaxHP).
func (e *Entity) SetHP(hp int32) {
	e.hp = clamp(hp, 0, e.Battle.MaxHP)
}

// SetSP устанавливает SP с валидацией (clamp 0..Battle.MaxSP).
func (e *Entity) SetSP(sp int32) {
	e.sp = clamp(sp, 0, e.Battle.MaxSP)
}

// IsDead проверяет мёртво ли существо (HP <= 0).
func (e *Entity) IsDead() bool {
	return e.hp <= 0
}

// Equipped проверяет, что в слоте что-то надето.
func (e *Entity) Equipped(slot EquipSlot) bool {
	return slot < equipSlotCount && e.equip[slot] != 0
}

// Equip надевает предмет (itemID) в слот.
func (e *Entity) Equip(slot EquipSlot, itemID int32) {
	if slot < equipSlotCount {
		e.equip[slot] = itemID
	}
}

// Unequip снимает предмет и возвращает его itemID (0, если слот пуст).
func (e *Entity) Unequip(slot EquipSlot) int32 {
	if slot >= equipSlotCount {
		return 0
	}
	id := e.equip[slot]
	e.equip[slot] = 0
	return id
}

// Sitting — сидит ли существо (удваивает регенерацию).
func (e *Entity) Sitting() bool { return e.sitting }

// SetSitting меняет позу.
func (e *Entity) SetSitting(v bool) { e.sitting = v }

// Moving — идёт ли существо (ходьба блокирует регенерацию).
func (e *Entity) Moving() bool { return e.moving }

// SetMoving выставляется слоем передвижения.
func (e *Entity) SetMoving(v bool) { e.moving = v }

// InWar — находится ли существо в зоне массовых сражений (осада).
func (e *Entity) InWar() bool { return e.inWar }

// SetInWar выставляется слоем зон.
func (e *Entity) SetInWar(v bool) { e.inWar = v }

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
