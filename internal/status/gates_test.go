package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/mapcore/internal/model"
)

func TestGates(t *testing.T) {
	type gates struct{ move, act, cast, attack bool }

	tests := []struct {
		name string
		typ  model.SCType
		want gates
	}{
		{"stun", model.SCStun, gates{}},
		{"freeze", model.SCFreeze, gates{}},
		{"silence", model.SCSilence, gates{move: true, act: true, attack: true}},
		{"cloaking", model.SCCloaking, gates{move: true, act: true, cast: true}},
		{"berserk", model.SCBerserk, gates{move: true, act: true, attack: true}},
		{"blade stop wait", model.SCBladeStopWait, gates{act: true, cast: true, attack: true}},
		{"trick dead", model.SCTrickDead, gates{}},
		{"blessing", model.SCBlessing, gates{move: true, act: true, cast: true, attack: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			hero := f.player(t, 1, 0, 10, model.Params{})
			f.start(t, hero, tt.typ, 1, 10000)

			got := gates{
				move:   f.eng.CanMove(hero),
				act:    f.eng.CanAct(hero),
				cast:   f.eng.CanCast(hero),
				attack: f.eng.CanAttack(hero),
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGates_Dead(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)
	mob.SetHP(0)

	assert.False(t, f.eng.CanMove(mob))
	assert.False(t, f.eng.CanAct(mob))
	assert.False(t, f.eng.CanCast(mob))
	assert.False(t, f.eng.CanAttack(mob))
}

func TestGates_PassiveMonster(t *testing.T) {
	f := newFixture(t)
	tmpl := mobTemplate()
	tmpl.Mode = model.ModeCanMove
	plant := f.monster(t, 1, mobParams, tmpl)

	assert.True(t, f.eng.CanMove(plant))
	assert.False(t, f.eng.CanAttack(plant))
}
