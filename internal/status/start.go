package status

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/mapcore/internal/data"
	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// Start imposes an effect on target. src may be nil (environment, items,
// restored effects); the target still resists a sourceless effect and the
// missing source counts as level 1.
//
// Every check runs before any mutation: immunities, mutual exclusion,
// stacking, resistance, side-effect preconditions. Only then the cancel-set
// is ended, the side effect applied and the entry created or refreshed.
func (e *Engine) Start(src, target *model.Entity, req Request) error {
	if target == nil {
		slog.Error("status start on nil target", "type", req.Type)
		return ErrInvalidTarget
	}
	d, ok := registry[req.Type]
	if !ok {
		slog.Error("status start with unknown type", "type", req.Type, "target", target.ObjectID())
		return ErrInvalidType
	}
	if !e.inWorld(target) {
		slog.Debug("status start on entity outside the world", "type", req.Type, "target", target.ObjectID())
		return ErrInvalidTarget
	}
	if target.IsDead() && !d.AllowDead {
		return ErrInvalidTarget
	}
	if req.Tick == 0 {
		return fmt.Errorf("%w: %s with zero duration", ErrBlocked, req.Type)
	}
	if req.Tick < 0 && req.Tick != model.InfiniteTick {
		slog.Error("status start with negative duration", "type", req.Type, "target", target.ObjectID(), "tick", req.Tick)
		return fmt.Errorf("%w: %s with negative duration %d", ErrBlocked, req.Type, req.Tick)
	}

	loaded := req.Flags&FlagLoaded != 0
	sc := target.SC

	// (a) hard immunities
	if err := e.checkImmunity(d, src, target, &req); err != nil {
		return err
	}

	// (b) mutual exclusion
	for _, b := range d.BlockedBy {
		if sc.Has(b) {
			return fmt.Errorf("%w: %s blocked by %s", ErrBlocked, req.Type, b)
		}
	}

	// (c) stacking against an existing entry
	if old := sc.Get(req.Type); old != nil {
		if err := e.checkStack(d, old, &req); err != nil {
			return err
		}
	}

	// (d) resistance
	if !loaded && req.Flags&FlagNoAvoid == 0 {
		tick, err := e.resist(d, src, target, req.Rate, req.Tick, req.Flags)
		if err != nil {
			return err
		}
		req.Tick = tick
	}

	// (e) side-effect preconditions
	if d.Side != nil && d.Side.Check != nil && !loaded {
		if err := d.Side.Check(e, target, &req); err != nil {
			return err
		}
	}

	if req.extend > 0 && req.Tick != model.InfiniteTick {
		req.Tick += req.extend
	}
	if !loaded && !req.keepVals && d.Prepare != nil {
		d.Prepare(e, src, target, &req)
	}

	return e.commit(d, target, req)
}

func (e *Engine) checkImmunity(d *Descriptor, src, target *model.Entity, req *Request) error {
	noAvoid := req.Flags&FlagNoAvoid != 0

	if d.BossImmune && !noAvoid && target.Battle.IsBoss() {
		return fmt.Errorf("%w: %s on boss", ErrBlocked, req.Type)
	}
	if target.InWar() && e.conf(req.Type).Has(data.SCConfNoWar) && req.Flags&FlagLoaded == 0 {
		return fmt.Errorf("%w: %s in war zone", ErrBlocked, req.Type)
	}
	if d.Opt1Exclusive && target.SC.Display.Opt1 != model.Opt1None {
		return fmt.Errorf("%w: %s while opt1 %d", ErrBlocked, req.Type, target.SC.Display.Opt1)
	}
	if d.Guard != nil {
		if err := d.Guard(e, src, target, req); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) checkStack(d *Descriptor, old *model.SCEntry, req *Request) error {
	switch d.Stack {
	case StackReject:
		return fmt.Errorf("%w: %s already active", ErrBlocked, req.Type)
	case StackExtend:
		if old.Infinite || req.Tick == model.InfiniteTick {
			req.Tick = model.InfiniteTick
			break
		}
		if left, ok := e.timers.Remaining(old.Timer); ok && left > 0 {
			req.extend = left
		}
		req.Val1, req.Val2, req.Val3, req.Val4 = old.Val1, old.Val2, old.Val3, old.Val4
		req.keepVals = true
	case StackMerge:
		if d.Merge != nil {
			return d.Merge(old, req)
		}
	default:
		if entryVal(old, d.CompareVal) > req.val(d.CompareVal) {
			return fmt.Errorf("%w: %s weaker than active", ErrBlocked, req.Type)
		}
	}
	return nil
}

// commit applies a fully validated request.
func (e *Engine) commit(d *Descriptor, target *model.Entity, req Request) error {
	sc := target.SC

	for _, c := range d.Cancels {
		if sc.Has(c) {
			e.End(target, c, timer.Invalid)
		}
	}

	if d.Side != nil && d.Side.Apply != nil && req.Flags&FlagLoaded == 0 {
		d.Side.Apply(e, target, &req)
	}

	// cancel hooks may have touched this type; re-fetch
	sce := sc.Get(req.Type)
	if sce != nil {
		e.timers.Cancel(sce.Timer)
		sce.Timer = timer.Invalid
	} else {
		sce = &model.SCEntry{}
		sc.Set(req.Type, sce)
	}

	sce.Val1, sce.Val2, sce.Val3, sce.Val4 = req.Val1, req.Val2, req.Val3, req.Val4
	sce.Infinite = req.Tick == model.InfiniteTick

	if delay := e.firstDelay(d, sce, &req); delay > 0 {
		sce.Timer = e.timers.ScheduleAt(e.timers.Now()+delay, e.onTimer, target.ObjectID(), int(req.Type))
	}

	e.refreshDisplay(target)
	e.Recalc(target, d.Calc)

	if d.OnStart != nil {
		d.OnStart(e, target, sce, &req)
		if sc.Get(req.Type) != sce {
			slog.Debug("status ended by its own start hook", "type", req.Type, "target", target.ObjectID())
			return nil
		}
	}

	if req.Flags&FlagNoIcon == 0 {
		e.notifier.StatusChanged(target, req.Type, d.Icon, true, req.Tick, sce.Val1, sce.Val2, sce.Val3)
	}

	slog.Debug("status started",
		"type", req.Type,
		"target", target.ObjectID(),
		"tick", req.Tick,
		"val1", sce.Val1)
	return nil
}

// firstDelay returns when the first timer fires: the full duration for plain
// types, the period for ticking ones. Zero means no timer.
func (e *Engine) firstDelay(d *Descriptor, sce *model.SCEntry, req *Request) int64 {
	if !d.periodic() {
		if sce.Infinite {
			return 0
		}
		return req.Tick
	}
	if req.Flags&FlagLoaded != 0 {
		// restored: Tick is what was left on the current period
		if sce.Infinite {
			return d.interval(sce)
		}
		return req.Tick
	}
	if req.Interval > 0 {
		return req.Interval
	}
	if iv := d.interval(sce); iv > 0 {
		return iv
	}
	return req.Tick
}

// refreshDisplay recomputes opt bits from every active entry.
func (e *Engine) refreshDisplay(target *model.Entity) {
	var disp model.Display
	for _, t := range target.SC.Types() {
		d, ok := registry[t]
		if !ok {
			continue
		}
		if d.Opt1 != model.Opt1None && disp.Opt1 == model.Opt1None {
			disp.Opt1 = d.Opt1
		}
		disp.Opt2 |= d.Opt2
		disp.Opt3 |= d.Opt3
		disp.Option |= d.Option
		if d.Display != nil {
			d.Display(target.SC.Get(t), &disp)
		}
	}
	if disp != target.SC.Display {
		target.SC.Display = disp
		e.notifier.DisplayChanged(target, disp)
	}
}

// startLinked is Start for effects one effect imposes on another entity.
// Failures are expected (partner gone, immune) and only logged.
func (e *Engine) startLinked(target *model.Entity, req Request) {
	if target == nil {
		return
	}
	if err := e.Start(nil, target, req); err != nil {
		slog.Debug("linked status not started", "type", req.Type, "target", target.ObjectID(), "error", err)
	}
}

func containsType(list []model.SCType, t model.SCType) bool {
	return slices.Contains(list, t)
}
