package status

import (
	"log/slog"

	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// End removes an effect. h is the handle of the timer asking for the end;
// timer.Invalid means an explicit removal and always matches. Returns false
// when there is nothing to end or h is stale (the entry was replaced).
func (e *Engine) End(target *model.Entity, t model.SCType, h timer.Handle) bool {
	if target == nil {
		slog.Error("status end on nil target", "type", t)
		return false
	}
	sce := target.SC.Get(t)
	if sce == nil {
		return false
	}
	if h != timer.Invalid && sce.Timer != h {
		slog.Debug("status end with stale timer",
			"type", t,
			"target", target.ObjectID(),
			"handle", h,
			"current", sce.Timer)
		return false
	}

	target.SC.Delete(t)
	if sce.Timer != timer.Invalid {
		e.timers.Cancel(sce.Timer)
		sce.Timer = timer.Invalid
	}

	d := registry[t]

	e.refreshDisplay(target)
	e.notifier.StatusChanged(target, t, d.Icon, false, 0, 0, 0, 0)

	if d.OnEnd != nil {
		d.OnEnd(e, target, sce)
	}

	e.Recalc(target, d.Calc)

	slog.Debug("status ended", "type", t, "target", target.ObjectID())
	return true
}

// onTimer is the single timer callback of every effect entry. data carries
// the effect type. Non-periodic entries end; periodic ones run their tick
// and re-arm while it returns true.
func (e *Engine) onTimer(h timer.Handle, tick int64, ownerID uint32, data int) {
	t := model.SCType(data)

	target, ok := e.world.Lookup(ownerID)
	if !ok {
		slog.Debug("status timer for missing entity", "type", t, "owner", ownerID)
		return
	}
	sce := target.SC.Get(t)
	if sce == nil || sce.Timer != h {
		slog.Debug("status timer mismatch", "type", t, "owner", ownerID, "handle", h)
		return
	}

	d := registry[t]
	if !d.periodic() {
		e.End(target, t, h)
		return
	}

	cont := d.OnTick(e, target, sce)

	// the tick may have killed the target or ended/replaced the entry
	if cur := target.SC.Get(t); cur != sce || sce.Timer != h {
		return
	}

	if !cont {
		e.End(target, t, h)
		return
	}
	sce.Timer = e.timers.ScheduleAt(tick+d.interval(sce), e.onTimer, ownerID, data)
}
