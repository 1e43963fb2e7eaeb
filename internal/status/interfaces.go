package status

import (
	"context"

	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// Timers is the timer service the engine arms effect timers on.
// Implemented by *timer.Scheduler.
type Timers interface {
	ScheduleAt(at int64, fn timer.Func, ownerID uint32, data int) timer.Handle
	Cancel(h timer.Handle) bool
	Remaining(h timer.Handle) (int64, bool)
	Now() int64
}

// World resolves entity IDs stored in effect values (caster, partner).
// Implemented by *world.World.
type World interface {
	Lookup(objectID uint32) (*model.Entity, bool)
	Range(fn func(*model.Entity) bool)
}

// Persister stores effects between sessions, keyed by (account, character).
// LoadSC returns the stored rows and deletes them.
type Persister interface {
	SaveSC(ctx context.Context, accountID, charID int64, rows []model.SCData) error
	LoadSC(ctx context.Context, accountID, charID int64) ([]model.SCData, error)
}

// Equipment removes gear for strip effects.
type Equipment interface {
	Unequip(target *model.Entity, slot model.EquipSlot) bool
}

// Movement interrupts walking and attacking for effects that lock the body.
type Movement interface {
	StopWalking(target *model.Entity)
	StopAttacking(target *model.Entity)
}

// SkillUnits owns ground-placed skill areas (dances, traps).
type SkillUnits interface {
	DeleteGroup(groupID int32)
}

// Notifier receives visible-state transitions for the presentation layer.
type Notifier interface {
	// StatusChanged fires exactly once per successful start and once per end.
	StatusChanged(target *model.Entity, t model.SCType, icon int32, active bool, remaining int64, val1, val2, val3 int32)
	// DisplayChanged fires when opt1/opt2/opt3/option bits change.
	DisplayChanged(target *model.Entity, d model.Display)
	// Died fires when HP reaches zero. killer may be nil.
	Died(target, killer *model.Entity)
}

type entityEquipment struct{}

func (entityEquipment) Unequip(target *model.Entity, slot model.EquipSlot) bool {
	return target.Unequip(slot) != 0
}

type entityMovement struct{}

func (entityMovement) StopWalking(target *model.Entity) { target.SetMoving(false) }

func (entityMovement) StopAttacking(*model.Entity) {}

type noSkillUnits struct{}

func (noSkillUnits) DeleteGroup(int32) {}

type noNotifier struct{}

func (noNotifier) StatusChanged(*model.Entity, model.SCType, int32, bool, int64, int32, int32, int32) {
}

func (noNotifier) DisplayChanged(*model.Entity, model.Display) {}

func (noNotifier) Died(*model.Entity, *model.Entity) {}
