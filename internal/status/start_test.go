package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

func TestStart_SingleEntryPerType(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCIncAgi, 5, 10000)
	first := mob.SC.Get(model.SCIncAgi).Timer

	f.start(t, mob, model.SCIncAgi, 5, 10000)

	assert.Equal(t, 1, mob.SC.Count())
	assert.Equal(t, 1, f.sched.Pending(), "refresh must replace the timer, not add one")
	assert.NotEqual(t, first, mob.SC.Get(model.SCIncAgi).Timer)

	err := f.eng.Start(nil, mob, Request{Type: model.SCIncAgi, Rate: RateAlways, Val1: 3, Tick: 10000})
	require.ErrorIs(t, err, ErrBlocked, "a weaker level does not overwrite")

	sce := mob.SC.Get(model.SCIncAgi)
	assert.Equal(t, int32(5), sce.Val1)
	assert.Equal(t, int32(17), mob.Battle.Agi)
	assert.Equal(t, int32(150), mob.Battle.Speed)
	assert.Equal(t, 2, f.notes.count(model.SCIncAgi, true))
}

func TestStart_RejectedDuplicateIsSilent(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCStun, 1, 5000)
	err := f.eng.Start(nil, mob, Request{Type: model.SCStun, Rate: RateAlways, Tick: 5000})

	require.ErrorIs(t, err, ErrBlocked)
	assert.Equal(t, 1, f.notes.count(model.SCStun, true))
}

func TestStart_NoIconFlag(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	err := f.eng.Start(nil, mob, Request{Type: model.SCLoud, Rate: RateAlways, Tick: 5000, Flags: FlagNoIcon})
	require.NoError(t, err)

	assert.True(t, mob.SC.Has(model.SCLoud))
	assert.Zero(t, f.notes.count(model.SCLoud, true))
}

func TestStart_InvalidInput(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)
	outside := model.NewMonster(99, "ghost", 10, mobParams, mobTemplate())

	tests := []struct {
		name   string
		target *model.Entity
		req    Request
		want   error
	}{
		{"nil target", nil, Request{Type: model.SCLoud, Rate: RateAlways, Tick: 1000}, ErrInvalidTarget},
		{"unknown type", mob, Request{Type: model.SCType(15), Rate: RateAlways, Tick: 1000}, ErrInvalidType},
		{"not in world", outside, Request{Type: model.SCLoud, Rate: RateAlways, Tick: 1000}, ErrInvalidTarget},
		{"zero duration", mob, Request{Type: model.SCLoud, Rate: RateAlways}, ErrBlocked},
		{"negative duration", mob, Request{Type: model.SCIncAgi, Rate: RateAlways, Val1: 1, Tick: -5000}, ErrBlocked},
		{"zero rate without source", mob, Request{Type: model.SCLoud, Tick: 1000}, ErrResisted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.eng.Start(nil, tt.target, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, mob.SC.Count())
}

func TestStart_DeadTarget(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)
	mob.SetHP(0)

	err := f.eng.Start(nil, mob, Request{Type: model.SCLoud, Rate: RateAlways, Tick: 1000})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	// mute survives death and may be imposed on the dead
	err = f.eng.Start(nil, mob, Request{Type: model.SCNoChat, Rate: RateAlways, Val1: 1, Tick: 60000})
	assert.NoError(t, err)
}

func TestEnd_Idempotent(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCBlessing, 10, 60000)

	assert.True(t, f.eng.End(mob, model.SCBlessing, timer.Invalid))
	assert.False(t, f.eng.End(mob, model.SCBlessing, timer.Invalid))
	assert.False(t, mob.SC.Has(model.SCBlessing))
	assert.Zero(t, f.sched.Pending())
	assert.Equal(t, int32(10), mob.Battle.Str)
	assert.Equal(t, 1, f.notes.count(model.SCBlessing, false))
}

func TestEnd_StaleHandle(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCBlessing, 10, 60000)
	stale := mob.SC.Get(model.SCBlessing).Timer
	f.start(t, mob, model.SCBlessing, 10, 60000)

	assert.False(t, f.eng.End(mob, model.SCBlessing, stale))
	assert.True(t, mob.SC.Has(model.SCBlessing))

	current := mob.SC.Get(model.SCBlessing).Timer
	assert.True(t, f.eng.End(mob, model.SCBlessing, current))
}

func TestStart_ExpiryBoundary(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCBlessing, 10, 5000)
	require.Equal(t, int32(20), mob.Battle.Str)

	f.advanceTo(4999)
	assert.True(t, mob.SC.Has(model.SCBlessing))
	assert.Equal(t, int32(20), mob.Battle.Str)

	f.advanceTo(5000)
	assert.False(t, mob.SC.Has(model.SCBlessing))
	assert.Equal(t, int32(10), mob.Battle.Str)
}

func TestStart_ExtendAddsRemaining(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCRuwach, 1, 10000)
	f.advanceTo(4000)
	f.start(t, mob, model.SCRuwach, 1, 10000)

	left, ok := f.sched.Remaining(mob.SC.Get(model.SCRuwach).Timer)
	require.True(t, ok)
	assert.Equal(t, int64(16000), left)
	assert.Equal(t, model.OptionRuwach, mob.SC.Display.Option)
}

func TestResist_Convergence(t *testing.T) {
	f := newFixture(t)
	src := f.mob(t, 1)
	// VIT 30 takes 30% off the stun chance; LUK 0 and equal levels add nothing
	target := f.monster(t, 2, model.Params{Str: 10, Agi: 10, Vit: 30, Int: 10, Dex: 10}, mobTemplate())

	const trials = 10000
	hits := 0
	for range trials {
		err := f.eng.Start(src, target, Request{Type: model.SCStun, Rate: RateAlways, Tick: 1000})
		switch {
		case err == nil:
			hits++
			require.True(t, f.eng.End(target, model.SCStun, timer.Invalid))
		case errors.Is(err, ErrResisted):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.InDelta(t, 0.7, float64(hits)/trials, 0.02)
}

func TestResist_Sourceless(t *testing.T) {
	f := newFixture(t)
	// VIT 100 is full stun immunity whoever imposes it
	tough := f.monster(t, 1, model.Params{Vit: 100}, mobTemplate())

	for range 200 {
		err := f.eng.Start(nil, tough, Request{Type: model.SCStun, Rate: 5000, Tick: 5000})
		require.ErrorIs(t, err, ErrResisted)
	}
	assert.False(t, tough.SC.Has(model.SCStun))

	err := f.eng.Start(nil, tough, Request{Type: model.SCStun, Rate: 5000, Tick: 5000, Flags: FlagNoAvoid})
	assert.NoError(t, err)
}

func TestResist_SourcelessMinDuration(t *testing.T) {
	f := newFixture(t)
	tmpl := mobTemplate()
	tmpl.MaxHP = 1000000
	mob := f.monster(t, 1, mobParams, tmpl)

	err := f.eng.Start(nil, mob, Request{Type: model.SCBurning, Rate: RateAlways, Tick: 1000, Flags: FlagFixedRate})
	require.NoError(t, err)
	assert.Equal(t, int32(2), mob.SC.Get(model.SCBurning).Val3, "5 s of burning is two periods")

	f.advanceTo(2000)
	assert.True(t, mob.SC.Has(model.SCBurning), "clamped to the minimum duration")

	f.advanceTo(4000)
	assert.False(t, mob.SC.Has(model.SCBurning))
}

func TestStart_NegativeDurationLeavesNoEntry(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	err := f.eng.Start(nil, mob, Request{Type: model.SCIncAgi, Rate: RateAlways, Val1: 1, Tick: -5000})
	require.ErrorIs(t, err, ErrBlocked)
	assert.False(t, mob.SC.Has(model.SCIncAgi))
	assert.Zero(t, f.sched.Pending())

	f.start(t, mob, model.SCEndure, 1, model.InfiniteTick)
	assert.True(t, mob.SC.Get(model.SCEndure).Infinite, "the infinite marker is not a negative duration")
}

func TestResist_DurationReduction(t *testing.T) {
	f := newFixture(t)
	src := f.mob(t, 1)
	hero := f.player(t, 2, 0, 10, model.Params{})
	mob := f.mob(t, 3)

	err := f.eng.Start(src, hero, Request{Type: model.SCDecAgi, Rate: RateAlways, Val1: 1, Tick: 10000, Flags: FlagFixedRate})
	require.NoError(t, err)
	left, _ := f.sched.Remaining(hero.SC.Get(model.SCDecAgi).Timer)
	assert.Equal(t, int64(5000), left, "players get half of a decrease agi")

	err = f.eng.Start(src, mob, Request{Type: model.SCDecAgi, Rate: RateAlways, Val1: 1, Tick: 10000, Flags: FlagFixedRate})
	require.NoError(t, err)
	left, _ = f.sched.Remaining(mob.SC.Get(model.SCDecAgi).Timer)
	assert.Equal(t, int64(10000), left)
}

func TestImmunity_Boss(t *testing.T) {
	f := newFixture(t)
	tmpl := mobTemplate()
	tmpl.Mode |= model.ModeBoss
	boss := f.monster(t, 1, mobParams, tmpl)

	err := f.eng.Start(nil, boss, Request{Type: model.SCStun, Rate: RateAlways, Tick: 5000})
	assert.ErrorIs(t, err, ErrBlocked)
	err = f.eng.Start(nil, boss, Request{Type: model.SCDecAgi, Rate: RateAlways, Val1: 10, Tick: 5000})
	assert.ErrorIs(t, err, ErrBlocked)

	err = f.eng.Start(nil, boss, Request{Type: model.SCStun, Rate: RateAlways, Tick: 5000, Flags: FlagNoAvoid})
	assert.NoError(t, err)
	assert.Equal(t, model.Opt1Stun, boss.SC.Display.Opt1)
}

func TestImmunity_Guards(t *testing.T) {
	f := newFixture(t)
	plain := f.mob(t, 1)

	undeadTmpl := mobTemplate()
	undeadTmpl.DefEle = model.ElementUndead
	undead := f.monster(t, 2, mobParams, undeadTmpl)

	bossTmpl := undeadTmpl
	bossTmpl.Mode |= model.ModeBoss
	undeadBoss := f.monster(t, 3, mobParams, bossTmpl)

	blocked := []struct {
		name   string
		target *model.Entity
		typ    model.SCType
	}{
		{"freeze on undead", undead, model.SCFreeze},
		{"stone on undead", undead, model.SCStone},
		{"kyrie on monster", plain, model.SCKyrie},
		{"signum crucis on living", plain, model.SCSignumCrucis},
		{"play dead on monster", plain, model.SCTrickDead},
		{"blessing on undead boss", undeadBoss, model.SCBlessing},
	}
	for _, tt := range blocked {
		t.Run(tt.name, func(t *testing.T) {
			err := f.eng.Start(nil, tt.target, Request{Type: tt.typ, Rate: RateAlways, Val1: 10, Tick: 5000})
			assert.ErrorIs(t, err, ErrBlocked)
		})
	}

	f.start(t, undead, model.SCSignumCrucis, 10, 5000)
	assert.Equal(t, int32(5), undead.Battle.Def, "10 def minus 50%")

	f.start(t, undead, model.SCBlessing, 10, 5000)
	assert.Equal(t, int32(5), undead.Battle.Str, "blessing halves undead stats")
}

func TestMutualExclusion_AgiOverride(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCIncAgi, 10, 60000)
	require.Equal(t, int32(22), mob.Battle.Agi)

	f.start(t, mob, model.SCDecAgi, 10, 60000)
	assert.False(t, mob.SC.Has(model.SCIncAgi))
	assert.True(t, mob.SC.Has(model.SCDecAgi))
	assert.Equal(t, int32(0), mob.Battle.Agi, "10 - 12 clamps at zero")
	assert.Equal(t, int32(250), mob.Battle.Speed)

	f.start(t, mob, model.SCIncAgi, 10, 60000)
	assert.False(t, mob.SC.Has(model.SCDecAgi))
	assert.Equal(t, int32(22), mob.Battle.Agi)
	assert.Equal(t, int32(150), mob.Battle.Speed)
	assert.Equal(t, 1, f.sched.Pending())
}

func TestMutualExclusion_BlockLists(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCTwoHandQuicken, 10, 60000)
	f.start(t, mob, model.SCQuagmire, 5, 60000)
	assert.False(t, mob.SC.Has(model.SCTwoHandQuicken), "quagmire cancels quicken")

	err := f.eng.Start(nil, mob, Request{Type: model.SCTwoHandQuicken, Rate: RateAlways, Val1: 10, Tick: 60000})
	assert.ErrorIs(t, err, ErrBlocked)

	f.start(t, mob, model.SCFreeze, 1, 5000)
	err = f.eng.Start(nil, mob, Request{Type: model.SCAeterna, Rate: RateAlways, Val1: 1, Tick: 5000})
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestOpt1Exclusive(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCSleep, 1, 5000)
	err := f.eng.Start(nil, mob, Request{Type: model.SCStun, Rate: RateAlways, Tick: 5000})
	assert.ErrorIs(t, err, ErrBlocked)
	assert.Equal(t, model.Opt1Sleep, mob.SC.Display.Opt1)
}

func TestStrip_Precondition(t *testing.T) {
	f := newFixture(t)
	hero := f.player(t, 1, 0, 10, model.Params{})

	err := f.eng.Start(nil, hero, Request{Type: model.SCStripWeapon, Rate: RateAlways, Val1: 5, Tick: 10000})
	require.ErrorIs(t, err, ErrPreconditionUnmet)
	assert.False(t, hero.SC.Has(model.SCStripWeapon))

	hero.Equip(model.EquipWeapon, 1201)
	f.start(t, hero, model.SCStripWeapon, 5, 10000)
	assert.False(t, hero.Equipped(model.EquipWeapon))

	mob := f.mob(t, 2)
	f.start(t, mob, model.SCStripWeapon, 5, 10000)
	assert.Equal(t, int32(75), mob.Battle.RHW.Atk, "monsters lose a quarter of their weapon attack")
}
