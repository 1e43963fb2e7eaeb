package status

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/mapcore/internal/data"
	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
	"github.com/udisondev/mapcore/internal/world"
)

type statusEvent struct {
	target    uint32
	typ       model.SCType
	active    bool
	remaining int64
}

// recorder is a Notifier that keeps everything it is told.
type recorder struct {
	events   []statusEvent
	displays []model.Display
	deaths   []uint32
	onDied   func(target *model.Entity)
}

func (r *recorder) StatusChanged(target *model.Entity, t model.SCType, _ int32, active bool, remaining int64, _, _, _ int32) {
	r.events = append(r.events, statusEvent{target: target.ObjectID(), typ: t, active: active, remaining: remaining})
}

func (r *recorder) DisplayChanged(_ *model.Entity, d model.Display) {
	r.displays = append(r.displays, d)
}

func (r *recorder) Died(target, _ *model.Entity) {
	r.deaths = append(r.deaths, target.ObjectID())
	if r.onDied != nil {
		r.onDied(target)
	}
}

func (r *recorder) count(t model.SCType, active bool) int {
	n := 0
	for _, ev := range r.events {
		if ev.typ == t && ev.active == active {
			n++
		}
	}
	return n
}

// memPersister keeps rows in memory and deletes them on load.
type memPersister struct {
	rows map[[2]int64][]model.SCData
}

func newMemPersister() *memPersister {
	return &memPersister{rows: make(map[[2]int64][]model.SCData)}
}

func (p *memPersister) SaveSC(_ context.Context, aid, cid int64, rows []model.SCData) error {
	p.rows[[2]int64{aid, cid}] = append([]model.SCData(nil), rows...)
	return nil
}

func (p *memPersister) LoadSC(_ context.Context, aid, cid int64) ([]model.SCData, error) {
	key := [2]int64{aid, cid}
	rows := p.rows[key]
	delete(p.rows, key)
	return rows, nil
}

type groupRecorder struct {
	deleted []int32
}

func (g *groupRecorder) DeleteGroup(id int32) {
	g.deleted = append(g.deleted, id)
}

type fixture struct {
	sched  *timer.Scheduler
	world  *world.World
	eng    *Engine
	notes  *recorder
	store  *memPersister
	groups *groupRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	jobs, err := data.LoadJobDB("")
	require.NoError(t, err)
	conf, err := data.LoadSCConfig("")
	require.NoError(t, err)

	f := &fixture{
		sched:  timer.NewScheduler(0),
		world:  world.New(),
		notes:  &recorder{},
		store:  newMemPersister(),
		groups: &groupRecorder{},
	}
	f.eng = New(Deps{
		Timers:     f.sched,
		World:      f.world,
		Persister:  f.store,
		SkillUnits: f.groups,
		Notifier:   f.notes,
		Jobs:       jobs,
		SCConfig:   conf,
		Rand:       rand.New(rand.NewPCG(1, 2)),
	})
	f.world.OnRemove(f.eng.OnEntityRemoved)
	return f
}

func mobTemplate() model.StatusData {
	return model.StatusData{
		MaxHP:   1000,
		MaxSP:   100,
		Def:     10,
		Mdef:    10,
		Speed:   200,
		Amotion: 1000,
		Adelay:  2000,
		Dmotion: 500,
		Mode:    model.ModeCanMove | model.ModeCanAttack,
		DefEle:  model.ElementNeutral,
		EleLv:   1,
		Race:    model.RaceBrute,
		Size:    model.SizeMedium,
		RHW:     model.WeaponAtk{Atk: 100, Range: 1},
	}
}

var mobParams = model.Params{Str: 10, Agi: 10, Vit: 10, Int: 10, Dex: 10, Luk: 10}

func (f *fixture) monster(t *testing.T, id uint32, params model.Params, tmpl model.StatusData) *model.Entity {
	t.Helper()
	ent := model.NewMonster(id, "mob", 10, params, tmpl)
	require.NoError(t, f.world.Add(ent))
	require.NoError(t, f.eng.CalcBase(ent))
	return ent
}

func (f *fixture) mob(t *testing.T, id uint32) *model.Entity {
	t.Helper()
	return f.monster(t, id, mobParams, mobTemplate())
}

func (f *fixture) player(t *testing.T, id uint32, job, level int32, params model.Params) *model.Entity {
	t.Helper()
	ent := model.NewPlayer(id, "hero", int64(id)+1000, int64(id)+2000, job, level, params)
	require.NoError(t, f.world.Add(ent))
	require.NoError(t, f.eng.CalcBase(ent))
	return ent
}

// noResist keeps the rate and duration of a start as requested.
const noResist = FlagFixedRate | FlagFixedTick

// start is a sourceless start that always succeeds with the exact duration.
func (f *fixture) start(t *testing.T, target *model.Entity, typ model.SCType, val1 int32, tick int64) {
	t.Helper()
	require.NoError(t, f.eng.Start(nil, target, Request{Type: typ, Rate: RateAlways, Val1: val1, Tick: tick, Flags: noResist}))
}

func (f *fixture) advanceTo(at int64) {
	f.sched.Advance(at)
}
