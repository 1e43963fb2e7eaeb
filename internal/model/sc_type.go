package model

import (
	"fmt"
	"strings"
)

// SCType — тип статус-эффекта (status change).
// Числовые значения хранятся в sc_data, поэтому их нельзя перенумеровывать:
// новые типы добавляются только в конец перед SCMax.
type SCType int16

// SCNone — отсутствующий тип (например, скилл без эффекта).
const SCNone SCType = -1

// Общие недуги (ailments). Диапазон SCCommonMin..SCCommonMax
// используется для иммунитета боссов и резистов от экипировки.
const (
	SCStone SCType = iota
	SCFreeze
	SCStun
	SCSleep
	SCPoison
	SCCurse
	SCSilence
	SCConfusion
	SCBlind
	SCBleeding
	SCDPoison // 10
	SCBurning
)

const (
	SCCommonMin = SCStone
	SCCommonMax = SCBurning
)

// Остальные эффекты начинаются с 20, чтобы оставить место под новые недуги.
const (
	SCProvoke SCType = 20 + iota
	SCEndure
	SCTwoHandQuicken
	SCConcentration
	SCHiding
	SCCloaking
	SCEnchantPoison
	SCPoisonReact
	SCQuagmire
	SCAngelus
	SCBlessing // 30
	SCSignumCrucis
	SCIncAgi
	SCDecAgi
	SCSlowPoison
	SCImpositio
	SCSuffragium
	SCAspersio
	SCBenedictio
	SCKyrie
	SCMagnificat // 40
	SCGloria
	SCAeterna
	SCAdrenaline
	SCWeaponPerfection
	SCOverThrust
	SCMaximizePower
	SCTrickDead
	SCLoud
	SCEnergyCoat
	SCStripWeapon // 50
	SCStripShield
	SCStripArmor
	SCStripHelm
	SCAutoGuard
	SCReflectShield
	SCDefender
	SCSpearQuicken
	SCSteelBody
	SCExplosionSpirits
	SCBerserk // 60
	SCAssumptio
	SCBladeStop
	SCBladeStopWait
	SCDancing
	SCRegeneration
	SCSight
	SCRuwach
	SCNoChat
	SCAtkPotion
	SCMatkPotion // 70
	SCArmorElement
	SCIncStr
	SCIncAllStatus
	SCTrueSight
	SCWindWalk
	SCCartBoost
	SCTensionRelax
	SCSpeedPotion
	SCLifePotion

	SCMax
)

var scNames = map[SCType]string{
	SCStone:            "SC_STONE",
	SCFreeze:           "SC_FREEZE",
	SCStun:             "SC_STUN",
	SCSleep:            "SC_SLEEP",
	SCPoison:           "SC_POISON",
	SCCurse:            "SC_CURSE",
	SCSilence:          "SC_SILENCE",
	SCConfusion:        "SC_CONFUSION",
	SCBlind:            "SC_BLIND",
	SCBleeding:         "SC_BLEEDING",
	SCDPoison:          "SC_DPOISON",
	SCBurning:          "SC_BURNING",
	SCProvoke:          "SC_PROVOKE",
	SCEndure:           "SC_ENDURE",
	SCTwoHandQuicken:   "SC_TWOHANDQUICKEN",
	SCConcentration:    "SC_CONCENTRATION",
	SCHiding:           "SC_HIDING",
	SCCloaking:         "SC_CLOAKING",
	SCEnchantPoison:    "SC_ENCHANTPOISON",
	SCPoisonReact:      "SC_POISONREACT",
	SCQuagmire:         "SC_QUAGMIRE",
	SCAngelus:          "SC_ANGELUS",
	SCBlessing:         "SC_BLESSING",
	SCSignumCrucis:     "SC_SIGNUMCRUCIS",
	SCIncAgi:           "SC_INC_AGI",
	SCDecAgi:           "SC_DEC_AGI",
	SCSlowPoison:       "SC_SLOWPOISON",
	SCImpositio:        "SC_IMPOSITIO",
	SCSuffragium:       "SC_SUFFRAGIUM",
	SCAspersio:         "SC_ASPERSIO",
	SCBenedictio:       "SC_BENEDICTIO",
	SCKyrie:            "SC_KYRIE",
	SCMagnificat:       "SC_MAGNIFICAT",
	SCGloria:           "SC_GLORIA",
	SCAeterna:          "SC_AETERNA",
	SCAdrenaline:       "SC_ADRENALINE",
	SCWeaponPerfection: "SC_WEAPONPERFECTION",
	SCOverThrust:       "SC_OVERTHRUST",
	SCMaximizePower:    "SC_MAXIMIZEPOWER",
	SCTrickDead:        "SC_TRICKDEAD",
	SCLoud:             "SC_LOUD",
	SCEnergyCoat:       "SC_ENERGYCOAT",
	SCStripWeapon:      "SC_STRIPWEAPON",
	SCStripShield:      "SC_STRIPSHIELD",
	SCStripArmor:       "SC_STRIPARMOR",
	SCStripHelm:        "SC_STRIPHELM",
	SCAutoGuard:        "SC_AUTOGUARD",
	SCReflectShield:    "SC_REFLECTSHIELD",
	SCDefender:         "SC_DEFENDER",
	SCSpearQuicken:     "SC_SPEARQUICKEN",
	SCSteelBody:        "SC_STEELBODY",
	SCExplosionSpirits: "SC_EXPLOSIONSPIRITS",
	SCBerserk:          "SC_BERSERK",
	SCAssumptio:        "SC_ASSUMPTIO",
	SCBladeStop:        "SC_BLADESTOP",
	SCBladeStopWait:    "SC_BLADESTOP_WAIT",
	SCDancing:          "SC_DANCING",
	SCRegeneration:     "SC_REGENERATION",
	SCSight:            "SC_SIGHT",
	SCRuwach:           "SC_RUWACH",
	SCNoChat:           "SC_NOCHAT",
	SCAtkPotion:        "SC_ATKPOTION",
	SCMatkPotion:       "SC_MATKPOTION",
	SCArmorElement:     "SC_ARMOR_ELEMENT",
	SCIncStr:           "SC_INCSTR",
	SCIncAllStatus:     "SC_INCALLSTATUS",
	SCTrueSight:        "SC_TRUESIGHT",
	SCWindWalk:         "SC_WINDWALK",
	SCCartBoost:        "SC_CARTBOOST",
	SCTensionRelax:     "SC_TENSIONRELAX",
	SCSpeedPotion:      "SC_SPEEDPOTION",
	SCLifePotion:       "SC_LIFEPOTION",
}

var scByName = func() map[string]SCType {
	m := make(map[string]SCType, len(scNames))
	for t, n := range scNames {
		m[n] = t
	}
	return m
}()

// String возвращает имя эффекта в формате sc_config ("SC_POISON").
func (t SCType) String() string {
	if n, ok := scNames[t]; ok {
		return n
	}
	return fmt.Sprintf("SC_%d", int16(t))
}

// Valid проверяет, что тип входит в перечисление.
func (t SCType) Valid() bool {
	_, ok := scNames[t]
	return ok
}

// IsCommon — общий недуг (stone..burning).
func (t SCType) IsCommon() bool {
	return t >= SCCommonMin && t <= SCCommonMax
}

// ParseSCType разбирает имя эффекта без учёта регистра; префикс "SC_" необязателен.
func ParseSCType(name string) (SCType, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(n, "SC_") {
		n = "SC_" + n
	}
	t, ok := scByName[n]
	if !ok {
		return SCNone, fmt.Errorf("unknown status change %q", name)
	}
	return t, nil
}
