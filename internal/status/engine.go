package status

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/udisondev/mapcore/internal/config"
	"github.com/udisondev/mapcore/internal/data"
	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// StartFlag modifies how a start is resolved.
type StartFlag uint8

const (
	FlagNoAvoid   StartFlag = 0x01 // skip boss immunity and resistance
	FlagFixedTick StartFlag = 0x02 // duration is not reduced by stats
	FlagLoaded    StartFlag = 0x04 // restored from storage, values are final
	FlagFixedRate StartFlag = 0x08 // success rate is not reduced by stats
	FlagNoIcon    StartFlag = 0x10 // no status notification
)

// RateAlways is a success rate that never fails a roll.
const RateAlways int32 = 10000

// FlagsRestore is used for effects reloaded from storage.
const FlagsRestore = FlagNoAvoid | FlagFixedTick | FlagLoaded | FlagFixedRate

// Deps are the engine collaborators. Timers and World are required,
// everything else falls back to a minimal built-in implementation.
type Deps struct {
	Timers     Timers
	World      World
	Persister  Persister
	Equipment  Equipment
	Movement   Movement
	SkillUnits SkillUnits
	Notifier   Notifier

	Jobs     data.JobDB
	SCConfig data.SCConfig
	Battle   config.Battle

	// Rand drives resistance rolls and random damage. Nil means a
	// time-seeded source; tests pass a fixed seed.
	Rand *rand.Rand
}

// Engine is the status-change engine. It is the only code that mutates
// Entity.SC, Entity.Battle and Entity.Base. Not safe for concurrent use:
// call it from the timer loop goroutine.
type Engine struct {
	timers     Timers
	world      World
	persister  Persister
	equipment  Equipment
	movement   Movement
	skillUnits SkillUnits
	notifier   Notifier

	jobs   data.JobDB
	scConf data.SCConfig
	battle config.Battle

	rng *rand.Rand
	idx *index

	healTimer timer.Handle
}

var (
	sharedIndex     *index
	sharedIndexOnce sync.Once
)

// New creates an engine.
func New(deps Deps) *Engine {
	sharedIndexOnce.Do(func() {
		sharedIndex = buildIndex()
		slog.Debug("status descriptors indexed", "types", len(sharedIndex.ordered))
	})

	e := &Engine{
		timers:     deps.Timers,
		world:      deps.World,
		persister:  deps.Persister,
		equipment:  deps.Equipment,
		movement:   deps.Movement,
		skillUnits: deps.SkillUnits,
		notifier:   deps.Notifier,
		jobs:       deps.Jobs,
		scConf:     deps.SCConfig,
		battle:     deps.Battle,
		rng:        deps.Rand,
		idx:        sharedIndex,
	}
	if e.equipment == nil {
		e.equipment = entityEquipment{}
	}
	if e.movement == nil {
		e.movement = entityMovement{}
	}
	if e.skillUnits == nil {
		e.skillUnits = noSkillUnits{}
	}
	if e.notifier == nil {
		e.notifier = noNotifier{}
	}
	if e.scConf == nil {
		e.scConf = data.SCConfig{}
	}
	if e.battle == (config.Battle{}) {
		e.battle = config.DefaultBattle()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// GetStatusData returns the Battle Status (final, effect-adjusted) of an entity.
func (e *Engine) GetStatusData(target *model.Entity) model.StatusData {
	if target == nil {
		return model.StatusData{}
	}
	return target.Battle
}

// GetBaseStatus returns the Base Status (before effects) of an entity.
func (e *Engine) GetBaseStatus(target *model.Entity) model.StatusData {
	if target == nil {
		return model.StatusData{}
	}
	return target.Base
}

// GetSC returns the status-change table for queries ("is frozen").
func (e *Engine) GetSC(target *model.Entity) *model.StatusChange {
	if target == nil {
		return nil
	}
	return target.SC
}

// conf returns sc_config flags of a type.
func (e *Engine) conf(t model.SCType) data.SCConf {
	return e.scConf.Get(t)
}

// inWorld reports whether target is the live registered entity for its ID.
func (e *Engine) inWorld(target *model.Entity) bool {
	got, ok := e.world.Lookup(target.ObjectID())
	return ok && got == target
}

// resolve turns a stored object ID back into an entity.
func (e *Engine) resolve(objectID int32) *model.Entity {
	if objectID <= 0 {
		return nil
	}
	ent, ok := e.world.Lookup(uint32(objectID))
	if !ok {
		return nil
	}
	return ent
}

// randN returns a number in [0, n).
func (e *Engine) randN(n int32) int32 {
	if n <= 0 {
		return 0
	}
	return e.rng.Int32N(n)
}
