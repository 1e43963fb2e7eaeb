package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/mapcore/internal/model"
)

func TestSkillToSC(t *testing.T) {
	assert.Equal(t, model.SCIncAgi, SkillToSC(SkillIncAgi))
	assert.Equal(t, model.SCAeterna, SkillToSC(SkillLexAeterna))
	assert.Equal(t, model.SCBladeStopWait, SkillToSC(SkillBladeStop))
	assert.Equal(t, model.SCNone, SkillToSC(1))
}

func TestSCToSkill(t *testing.T) {
	assert.Equal(t, SkillBlessing, SCToSkill(model.SCBlessing))
	assert.Equal(t, SkillBladeStop, SCToSkill(model.SCBladeStop))
	assert.Equal(t, SkillBladeStop, SCToSkill(model.SCBladeStopWait))
	assert.Zero(t, SCToSkill(model.SCPoison))

	for skill, typ := range skillToSC {
		_, ok := registry[typ]
		assert.True(t, ok, "skill %d maps to unregistered %s", skill, typ)
	}
}

func TestIconOf(t *testing.T) {
	assert.Equal(t, int32(12), IconOf(model.SCIncAgi))
	assert.Equal(t, IconNone, IconOf(model.SCStun))
	assert.Equal(t, IconNone, IconOf(model.SCType(15)))
}
