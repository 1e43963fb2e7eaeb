package status

import (
	"log/slog"

	"github.com/udisondev/mapcore/internal/data"
	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// ClearReason selects which entries Clear drops.
type ClearReason uint8

const (
	// ClearDeath keeps no_rem_death and no_clear types.
	ClearDeath ClearReason = iota + 1
	// ClearRemoval drops everything: the entity leaves the world.
	ClearRemoval
)

// BuffMask selects entries for ClearBuffs.
type BuffMask uint8

const (
	ClearBuff      BuffMask = 0x01
	ClearDebuff    BuffMask = 0x02
	ClearDispel    BuffMask = 0x04 // honor no_dispel
	ClearClearance BuffMask = 0x08 // honor no_clearance
)

// Clear ends entries in ascending type order. Returns how many ended.
func (e *Engine) Clear(target *model.Entity, reason ClearReason) int {
	if target == nil {
		return 0
	}
	n := 0
	for _, t := range target.SC.Types() {
		conf := e.conf(t)
		if reason == ClearDeath && (conf.Has(data.SCConfNoRemDeath) || conf.Has(data.SCConfNoClear)) {
			continue
		}
		if e.End(target, t, timer.Invalid) {
			n++
		}
	}
	if n > 0 {
		slog.Debug("status cleared", "target", target.ObjectID(), "reason", reason, "ended", n)
	}
	return n
}

// ClearBuffs ends buff and/or debuff entries, as dispel and clearance do.
func (e *Engine) ClearBuffs(target *model.Entity, mask BuffMask) int {
	if target == nil {
		return 0
	}
	n := 0
	for _, t := range target.SC.Types() {
		conf := e.conf(t)
		if conf.Has(data.SCConfNoClear) {
			continue
		}
		if mask&ClearDispel != 0 && conf.Has(data.SCConfNoDispel) {
			continue
		}
		if mask&ClearClearance != 0 && conf.Has(data.SCConfNoClearance) {
			continue
		}
		isBuff := conf.Has(data.SCConfBuff)
		isDebuff := conf.Has(data.SCConfDebuff)
		if !(mask&ClearBuff != 0 && isBuff) && !(mask&ClearDebuff != 0 && isDebuff) {
			continue
		}
		if e.End(target, t, timer.Invalid) {
			n++
		}
	}
	return n
}

// OnEntityRemoved is the world removal hook: every entry ends and every
// timer is cancelled so no callback can reach the entity afterwards.
func (e *Engine) OnEntityRemoved(ent *model.Entity) {
	e.Clear(ent, ClearRemoval)
}
