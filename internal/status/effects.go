package status

import "github.com/udisondev/mapcore/internal/model"

// IconNone marks types without a client status icon.
const IconNone int32 = -1

// addVal adds value slot i.
func addVal(i int) ModFunc {
	return func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
		return v + entryVal(sce, i)
	}
}

// subVal subtracts value slot i.
func subVal(i int) ModFunc {
	return func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
		return v - entryVal(sce, i)
	}
}

// addPercentVal raises the field by value slot i percent.
func addPercentVal(i int) ModFunc {
	return func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
		return v + v*entryVal(sce, i)/100
	}
}

// subPercentVal lowers the field by value slot i percent.
func subPercentVal(i int) ModFunc {
	return func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
		return v - v*entryVal(sce, i)/100
	}
}

func addConst(n int32) ModFunc {
	return func(v int32, _ *model.SCEntry, _ *model.Entity) int32 {
		return v + n
	}
}

func subPercent(p int32) ModFunc {
	return func(v int32, _ *model.SCEntry, _ *model.Entity) int32 {
		return v - v*p/100
	}
}

func setConst(n int32) ModFunc {
	return func(int32, *model.SCEntry, *model.Entity) int32 {
		return n
	}
}

// setElement replaces an attack element.
func setElement(ele model.Element) ModFunc {
	return func(int32, *model.SCEntry, *model.Entity) int32 {
		return int32(ele)
	}
}

// setDefElement replaces armor element and level.
func setDefElement(ele model.Element, lv uint8) ModFunc {
	return func(int32, *model.SCEntry, *model.Entity) int32 {
		return packEle(ele, lv)
	}
}

func poolConst(p int32) PoolFunc {
	return func(*model.SCEntry, *model.Entity) int32 {
		return p
	}
}

// ticks returns how many periods fit into a duration, at least one.
func ticks(tick, interval int64) int32 {
	if tick <= 0 || interval <= 0 {
		return 1
	}
	return int32(max(tick/interval, 1))
}

// stopBody interrupts walking and attacking.
var stopBody = &SideEffect{
	Apply: func(e *Engine, target *model.Entity, _ *Request) {
		e.movement.StopWalking(target)
		e.movement.StopAttacking(target)
	},
}

// suppressRegen clears the given regen flags.
func suppressRegen(f model.RegenFlag) func(*model.SCEntry, *model.RegenData, *model.Entity) {
	return func(_ *model.SCEntry, r *model.RegenData, _ *model.Entity) {
		r.Flag &^= f
	}
}
