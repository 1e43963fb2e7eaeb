package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/mapcore/internal/model"
)

func TestClear_Death(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCBlessing, 5, 60000)
	f.start(t, mob, model.SCDecAgi, 5, 60000)
	f.start(t, mob, model.SCNoChat, 5, 300000)

	assert.Equal(t, 2, f.eng.Clear(mob, ClearDeath))
	assert.Equal(t, []model.SCType{model.SCNoChat}, mob.SC.Types())
	assert.Equal(t, 1, f.sched.Pending())
}

func TestClear_Removal(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCBlessing, 5, 60000)
	f.start(t, mob, model.SCNoChat, 5, 300000)

	f.world.Remove(mob.ObjectID())

	assert.Zero(t, mob.SC.Count())
	assert.Zero(t, f.sched.Pending())
	assert.Equal(t, 2, f.notes.count(model.SCBlessing, false)+f.notes.count(model.SCNoChat, false))
}

func TestClearBuffs(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCBlessing, 5, 60000)
	f.start(t, mob, model.SCSteelBody, 5, 60000)
	f.start(t, mob, model.SCDecAgi, 5, 60000)
	f.start(t, mob, model.SCAtkPotion, 5, 60000)

	// dispel honors no_dispel
	assert.Equal(t, 1, f.eng.ClearBuffs(mob, ClearBuff|ClearDispel))
	assert.False(t, mob.SC.Has(model.SCBlessing))
	assert.True(t, mob.SC.Has(model.SCSteelBody))

	assert.Equal(t, 1, f.eng.ClearBuffs(mob, ClearDebuff))
	assert.False(t, mob.SC.Has(model.SCDecAgi))

	assert.Equal(t, 1, f.eng.ClearBuffs(mob, ClearBuff|ClearDebuff))
	assert.False(t, mob.SC.Has(model.SCSteelBody))
	assert.True(t, mob.SC.Has(model.SCAtkPotion), "neither buff nor debuff")
}
