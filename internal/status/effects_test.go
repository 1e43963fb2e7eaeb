package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

func TestPoison_TicksUntilExpiry(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCPoison, 1, 5000)
	require.Equal(t, int32(11), mob.SC.Get(model.SCPoison).Val4)

	want := []int32{989, 978, 967, 956}
	for i, hp := range want {
		f.advanceTo(int64(i+1) * 1000)
		assert.Equal(t, hp, mob.HP(), "after %d ticks", i+1)
	}

	f.advanceTo(5000)
	assert.False(t, mob.SC.Has(model.SCPoison))
	assert.Equal(t, int32(956), mob.HP())
	assert.Zero(t, f.sched.Pending())
}

func TestPoison_StopsAtQuarterHP(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)
	mob.SetHP(300)

	err := f.eng.Start(nil, mob, Request{Type: model.SCPoison, Rate: RateAlways, Val1: 1, Val4: 100, Tick: 5000, Flags: noResist})
	require.NoError(t, err)

	f.advanceTo(1000)
	assert.Equal(t, int32(250), mob.HP(), "damage clipped to the floor")
	assert.True(t, mob.SC.Has(model.SCPoison))

	f.advanceTo(2000)
	assert.False(t, mob.SC.Has(model.SCPoison))
	assert.Equal(t, int32(250), mob.HP())
}

func TestPoison_SlowPoisonPauses(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCPoison, 1, 5000)
	f.start(t, mob, model.SCSlowPoison, 1, 60000)

	f.advanceTo(3000)
	assert.Equal(t, int32(1000), mob.HP())
	assert.True(t, mob.SC.Has(model.SCPoison))

	f.eng.End(mob, model.SCSlowPoison, timer.Invalid)
	f.advanceTo(4000)
	assert.Equal(t, int32(989), mob.HP())
}

func TestDeadlyPoison_InitialDamage(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCDPoison, 1, 3000)
	assert.Equal(t, int32(850), mob.HP())
	assert.Equal(t, model.Opt2DPoison, mob.SC.Display.Opt2)

	low := f.mob(t, 2)
	low.SetHP(300)
	f.start(t, low, model.SCDPoison, 1, 3000)
	assert.Equal(t, int32(250), low.HP(), "never below a quarter")
}

func TestBurning_KillsAndClearsItself(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCBurning, 1, 10000)
	require.Equal(t, model.Opt1Burning, mob.SC.Display.Opt1)
	assert.True(t, f.eng.CanMove(mob))

	f.advanceTo(2000)

	assert.True(t, mob.IsDead())
	assert.False(t, mob.SC.Has(model.SCBurning))
	assert.Equal(t, []uint32{1}, f.notes.deaths)
	assert.Zero(t, f.sched.Pending())
}

func TestStone_WaitThenPetrify(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCStone, 1, 10000)
	assert.Equal(t, model.Opt1StoneWait, mob.SC.Display.Opt1)
	assert.Equal(t, int32(10), mob.Battle.Def)

	// a hit during the waiting phase does not break it
	f.eng.Damage(nil, mob, 10, 0)
	require.True(t, mob.SC.Has(model.SCStone))

	f.advanceTo(5000)
	assert.Equal(t, model.Opt1Stone, mob.SC.Display.Opt1)
	assert.Equal(t, int32(5), mob.Battle.Def)
	assert.Equal(t, model.ElementEarth, mob.Battle.DefEle)
	assert.False(t, f.eng.CanAct(mob))

	err := f.eng.Start(nil, mob, Request{Type: model.SCAeterna, Rate: RateAlways, Val1: 1, Tick: 5000})
	assert.ErrorIs(t, err, ErrBlocked)

	f.eng.Damage(nil, mob, 10, 0)
	assert.False(t, mob.SC.Has(model.SCStone))
	assert.Equal(t, model.Opt1None, mob.SC.Display.Opt1)
	assert.Equal(t, int32(10), mob.Battle.Def)
	assert.Equal(t, model.ElementNeutral, mob.Battle.DefEle)
}

func TestDamage_WakesSleep(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCSleep, 1, 10000)
	require.False(t, f.eng.CanAct(mob))

	f.eng.Damage(nil, mob, 1, 0)
	assert.False(t, mob.SC.Has(model.SCSleep))
	assert.True(t, f.eng.CanAct(mob))
}

func TestDamage_Aeterna(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCAeterna, 1, 10000)
	assert.Equal(t, int32(200), f.eng.Damage(nil, mob, 100, 0))
	assert.False(t, mob.SC.Has(model.SCAeterna))

	assert.Equal(t, int32(100), f.eng.Damage(nil, mob, 100, 0))
	assert.Equal(t, int32(700), mob.HP())
}

func TestDamage_Kyrie(t *testing.T) {
	f := newFixture(t)
	hero := f.player(t, 1, 0, 10, model.Params{})
	maxHP := hero.Battle.MaxHP

	f.start(t, hero, model.SCKyrie, 10, 60000)
	barrier := hero.SC.Get(model.SCKyrie).Val2
	require.Equal(t, maxHP*30/100, barrier)
	require.Equal(t, int32(10), hero.SC.Get(model.SCKyrie).Val3)

	assert.Zero(t, f.eng.Damage(nil, hero, 1, 0))
	assert.Equal(t, maxHP, hero.HP())
	assert.Equal(t, barrier-1, hero.SC.Get(model.SCKyrie).Val2)

	lost := f.eng.Damage(nil, hero, barrier, 0)
	assert.Equal(t, int32(1), lost, "overflow passes the barrier")
	assert.False(t, hero.SC.Has(model.SCKyrie))

	f.start(t, hero, model.SCAssumptio, 1, 60000)
	assert.False(t, hero.SC.Has(model.SCKyrie))
	assert.Equal(t, int32(5), f.eng.Damage(nil, hero, 10, 0))
}

func TestBerserk_Lifecycle(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)
	mob.SetHP(500)

	f.start(t, mob, model.SCBerserk, 1, 60000)
	sce := mob.SC.Get(model.SCBerserk)
	require.NotNil(t, sce)

	assert.Equal(t, int32(3000), mob.Battle.MaxHP)
	assert.Equal(t, int32(3000), mob.HP(), "berserk starts at full health")
	assert.Equal(t, int32(150), sce.Val2)
	assert.Equal(t, int32(0), mob.Battle.Def)
	assert.False(t, f.eng.CanCast(mob))

	endure := mob.SC.Get(model.SCEndure)
	require.NotNil(t, endure)
	assert.True(t, endure.Infinite)
	assert.Equal(t, int32(berserkEndureMarker), endure.Val4)

	assert.Zero(t, f.eng.Heal(mob, 100, 0), "no healing while berserk")

	f.advanceTo(10000)
	assert.Equal(t, int32(2850), mob.HP())

	require.True(t, f.eng.End(mob, model.SCBerserk, timer.Invalid))
	assert.False(t, mob.SC.Has(model.SCEndure))
	assert.Equal(t, int32(1000), mob.Battle.MaxHP)
	assert.Equal(t, int32(100), mob.HP())

	regen := mob.SC.Get(model.SCRegeneration)
	require.NotNil(t, regen)
	assert.Equal(t, int32(model.RegenHP|model.RegenSP), regen.Val4)
}

func TestEndure_MergeKeepsBerserkLink(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCEndure, 3, 10000)
	assert.False(t, mob.SC.Get(model.SCEndure).Infinite)
	assert.Equal(t, int32(7), mob.SC.Get(model.SCEndure).Val2)

	f.start(t, mob, model.SCBerserk, 1, 60000)
	require.True(t, mob.SC.Get(model.SCEndure).Infinite)

	f.start(t, mob, model.SCEndure, 5, 10000)
	endure := mob.SC.Get(model.SCEndure)
	assert.True(t, endure.Infinite)
	assert.Equal(t, int32(berserkEndureMarker), endure.Val4)

	f.eng.End(mob, model.SCBerserk, timer.Invalid)
	assert.False(t, mob.SC.Has(model.SCEndure))
}

func TestBladeStop_PartnerLink(t *testing.T) {
	f := newFixture(t)
	a := f.mob(t, 1)
	b := f.mob(t, 2)

	err := f.eng.Start(nil, a, Request{Type: model.SCBladeStop, Rate: RateAlways, Val1: 1, Val4: int32(b.ObjectID()), Tick: 10000})
	require.NoError(t, err)

	partner := b.SC.Get(model.SCBladeStop)
	require.NotNil(t, partner)
	assert.Equal(t, int32(a.ObjectID()), partner.Val4)
	assert.False(t, f.eng.CanMove(a))
	assert.False(t, f.eng.CanMove(b))

	require.True(t, f.eng.End(a, model.SCBladeStop, timer.Invalid))
	assert.False(t, b.SC.Has(model.SCBladeStop))
	assert.True(t, f.eng.CanMove(b))
}

func TestBladeStop_PartnerRemoved(t *testing.T) {
	f := newFixture(t)
	a := f.mob(t, 1)
	b := f.mob(t, 2)

	err := f.eng.Start(nil, a, Request{Type: model.SCBladeStop, Rate: RateAlways, Val1: 1, Val4: int32(b.ObjectID()), Tick: 10000})
	require.NoError(t, err)

	f.world.Remove(b.ObjectID())
	assert.Zero(t, b.SC.Count())
	assert.False(t, a.SC.Has(model.SCBladeStop))
}

func TestDancing_DeletesGroup(t *testing.T) {
	f := newFixture(t)
	hero := f.player(t, 1, 0, 10, model.Params{})

	err := f.eng.Start(nil, hero, Request{Type: model.SCDancing, Rate: RateAlways, Val1: 1, Val2: 77, Tick: 3000})
	require.NoError(t, err)

	f.advanceTo(3000)
	assert.False(t, hero.SC.Has(model.SCDancing))
	assert.Equal(t, []int32{77}, f.groups.deleted)
}

func TestHiding_ExpiresByCounter(t *testing.T) {
	f := newFixture(t)
	hero := f.player(t, 1, 0, 10, model.Params{Int: 10})

	f.start(t, hero, model.SCHiding, 1, 5000)
	assert.Equal(t, model.OptionHide, hero.SC.Display.Option)
	assert.False(t, f.eng.CanMove(hero))
	assert.False(t, f.eng.CanAttack(hero))

	f.advanceTo(4000)
	assert.True(t, hero.SC.Has(model.SCHiding))
	f.advanceTo(5000)
	assert.False(t, hero.SC.Has(model.SCHiding))
	assert.Zero(t, hero.SC.Display.Option)
}

func TestLifePotion_Heals(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)
	mob.SetHP(500)

	f.start(t, mob, model.SCLifePotion, 50, 15000)
	for _, at := range []int64{5000, 10000, 15000} {
		f.advanceTo(at)
	}
	assert.Equal(t, int32(650), mob.HP())
	assert.False(t, mob.SC.Has(model.SCLifePotion))
}

func TestNoChat_SurvivesDeath(t *testing.T) {
	f := newFixture(t)
	mob := f.mob(t, 1)

	f.start(t, mob, model.SCNoChat, 2, 120000)
	f.start(t, mob, model.SCBlessing, 5, 60000)

	f.eng.Damage(nil, mob, mob.HP(), 0)
	require.True(t, mob.IsDead())
	assert.True(t, mob.SC.Has(model.SCNoChat))
	assert.False(t, mob.SC.Has(model.SCBlessing))

	f.advanceTo(120000)
	assert.False(t, mob.SC.Has(model.SCNoChat), "two minutes counted down")
}
