package status

import "github.com/udisondev/mapcore/internal/model"

// Skill IDs of skills that impose an effect.
const (
	SkillProvoke          int32 = 6
	SkillEndure           int32 = 8
	SkillSight            int32 = 10
	SkillRuwach           int32 = 24
	SkillIncAgi           int32 = 29
	SkillDecAgi           int32 = 30
	SkillSignumCrucis     int32 = 32
	SkillAngelus          int32 = 33
	SkillBlessing         int32 = 34
	SkillConcentration    int32 = 45
	SkillHiding           int32 = 51
	SkillTwoHandQuicken   int32 = 60
	SkillImpositio        int32 = 66
	SkillSuffragium       int32 = 67
	SkillAspersio         int32 = 68
	SkillBenedictio       int32 = 69
	SkillSlowPoison       int32 = 71
	SkillKyrie            int32 = 73
	SkillMagnificat       int32 = 74
	SkillGloria           int32 = 75
	SkillLexAeterna       int32 = 78
	SkillQuagmire         int32 = 92
	SkillAdrenaline       int32 = 111
	SkillWeaponPerfection int32 = 112
	SkillOverThrust       int32 = 113
	SkillMaximizePower    int32 = 114
	SkillCloaking         int32 = 135
	SkillEnchantPoison    int32 = 138
	SkillPoisonReact      int32 = 139
	SkillTrickDead        int32 = 143
	SkillLoud             int32 = 155
	SkillEnergyCoat       int32 = 157
	SkillStripWeapon      int32 = 215
	SkillStripShield      int32 = 216
	SkillStripArmor       int32 = 217
	SkillStripHelm        int32 = 218
	SkillAutoGuard        int32 = 249
	SkillReflectShield    int32 = 252
	SkillDefender         int32 = 257
	SkillSpearQuicken     int32 = 258
	SkillSteelBody        int32 = 268
	SkillBladeStop        int32 = 269
	SkillExplosionSpirits int32 = 270
	SkillBerserk          int32 = 355
	SkillTensionRelax     int32 = 358
	SkillAssumptio        int32 = 361
	SkillTrueSight        int32 = 380
	SkillWindWalk         int32 = 383
	SkillCartBoost        int32 = 387
)

var skillToSC = map[int32]model.SCType{
	SkillProvoke:          model.SCProvoke,
	SkillEndure:           model.SCEndure,
	SkillSight:            model.SCSight,
	SkillRuwach:           model.SCRuwach,
	SkillIncAgi:           model.SCIncAgi,
	SkillDecAgi:           model.SCDecAgi,
	SkillSignumCrucis:     model.SCSignumCrucis,
	SkillAngelus:          model.SCAngelus,
	SkillBlessing:         model.SCBlessing,
	SkillConcentration:    model.SCConcentration,
	SkillHiding:           model.SCHiding,
	SkillTwoHandQuicken:   model.SCTwoHandQuicken,
	SkillImpositio:        model.SCImpositio,
	SkillSuffragium:       model.SCSuffragium,
	SkillAspersio:         model.SCAspersio,
	SkillBenedictio:       model.SCBenedictio,
	SkillSlowPoison:       model.SCSlowPoison,
	SkillKyrie:            model.SCKyrie,
	SkillMagnificat:       model.SCMagnificat,
	SkillGloria:           model.SCGloria,
	SkillLexAeterna:       model.SCAeterna,
	SkillQuagmire:         model.SCQuagmire,
	SkillAdrenaline:       model.SCAdrenaline,
	SkillWeaponPerfection: model.SCWeaponPerfection,
	SkillOverThrust:       model.SCOverThrust,
	SkillMaximizePower:    model.SCMaximizePower,
	SkillCloaking:         model.SCCloaking,
	SkillEnchantPoison:    model.SCEnchantPoison,
	SkillPoisonReact:      model.SCPoisonReact,
	SkillTrickDead:        model.SCTrickDead,
	SkillLoud:             model.SCLoud,
	SkillEnergyCoat:       model.SCEnergyCoat,
	SkillStripWeapon:      model.SCStripWeapon,
	SkillStripShield:      model.SCStripShield,
	SkillStripArmor:       model.SCStripArmor,
	SkillStripHelm:        model.SCStripHelm,
	SkillAutoGuard:        model.SCAutoGuard,
	SkillReflectShield:    model.SCReflectShield,
	SkillDefender:         model.SCDefender,
	SkillSpearQuicken:     model.SCSpearQuicken,
	SkillSteelBody:        model.SCSteelBody,
	SkillBladeStop:        model.SCBladeStopWait,
	SkillExplosionSpirits: model.SCExplosionSpirits,
	SkillBerserk:          model.SCBerserk,
	SkillTensionRelax:     model.SCTensionRelax,
	SkillAssumptio:        model.SCAssumptio,
	SkillTrueSight:        model.SCTrueSight,
	SkillWindWalk:         model.SCWindWalk,
	SkillCartBoost:        model.SCCartBoost,
}

var scToSkill = func() map[model.SCType]int32 {
	m := make(map[model.SCType]int32, len(skillToSC)+1)
	for skill, t := range skillToSC {
		m[t] = skill
	}
	// both halves of a blade stop come from the same skill
	m[model.SCBladeStop] = SkillBladeStop
	return m
}()

// SkillToSC returns the effect a skill imposes, or model.SCNone.
func SkillToSC(skillID int32) model.SCType {
	if t, ok := skillToSC[skillID]; ok {
		return t
	}
	return model.SCNone
}

// SCToSkill returns the skill that imposes an effect, or 0.
func SCToSkill(t model.SCType) int32 {
	return scToSkill[t]
}

// IconOf returns the client status icon of a type, or IconNone.
func IconOf(t model.SCType) int32 {
	if d, ok := registry[t]; ok {
		return d.Icon
	}
	return IconNone
}
