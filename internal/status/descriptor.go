package status

import (
	"fmt"
	"sort"

	"github.com/udisondev/mapcore/internal/model"
)

// Category groups effect types for display and selective clears.
type Category uint8

const (
	CategoryAilment Category = iota + 1
	CategoryBuff
	CategoryDebuff
	CategoryVisual
)

func (c Category) String() string {
	switch c {
	case CategoryAilment:
		return "ailment"
	case CategoryBuff:
		return "buff"
	case CategoryDebuff:
		return "debuff"
	case CategoryVisual:
		return "visual"
	default:
		return "unknown"
	}
}

// StackPolicy decides what a start does against an existing entry of the same type.
type StackPolicy uint8

const (
	// StackUpgrade replaces values and duration unless the existing level is higher.
	StackUpgrade StackPolicy = iota
	// StackReject refuses any re-application.
	StackReject
	// StackExtend keeps values and adds the new duration to what is left.
	StackExtend
	// StackMerge hands both to Descriptor.Merge.
	StackMerge
)

// Request is one start call: who gets what, how likely, for how long.
// Tick is the duration in ms, model.InfiniteTick for infinite.
// Rate is a probability in 1/10000 (10000 = always).
type Request struct {
	Type  model.SCType
	Rate  int32
	Val1  int32
	Val2  int32
	Val3  int32
	Val4  int32
	Tick  int64
	Flags StartFlag

	// Interval is the first timer delay for periodic types, set by Prepare.
	Interval int64

	extend   int64
	keepVals bool
}

func (r *Request) val(i int) int32 {
	switch i {
	case 2:
		return r.Val2
	case 3:
		return r.Val3
	case 4:
		return r.Val4
	default:
		return r.Val1
	}
}

func entryVal(sce *model.SCEntry, i int) int32 {
	switch i {
	case 2:
		return sce.Val2
	case 3:
		return sce.Val3
	case 4:
		return sce.Val4
	default:
		return sce.Val1
	}
}

// ModFunc adjusts one Battle Status field for an active entry.
type ModFunc func(v int32, sce *model.SCEntry, target *model.Entity) int32

// PoolFunc returns a percent change for pooled fields (walk speed, attack
// motion). Negative is faster. Only the strongest bonus and the strongest
// penalty of all active entries apply.
type PoolFunc func(sce *model.SCEntry, target *model.Entity) int32

// SideEffect is a forced change that must succeed for the start to succeed.
// Check runs with the other checks, Apply only after all of them passed.
type SideEffect struct {
	Check func(e *Engine, target *model.Entity, req *Request) error
	Apply func(e *Engine, target *model.Entity, req *Request)
}

// Descriptor is everything the engine knows about one effect type.
// Descriptors are registered once at init and never mutated afterwards.
type Descriptor struct {
	Type     model.SCType
	Icon     int32
	Category Category
	Calc     model.CalcFlag

	// Mutual exclusion: Cancels are ended when this type starts,
	// BlockedBy refuse the start while active.
	Cancels   []model.SCType
	BlockedBy []model.SCType

	Stack StackPolicy
	// CompareVal is the value slot StackUpgrade compares (1..4, default 1).
	CompareVal int
	Merge      func(old *model.SCEntry, req *Request) error

	// Hard immunities.
	BossImmune    bool
	Opt1Exclusive bool // refused while any opt1 body state is active
	AllowDead     bool
	Guard         func(e *Engine, src, target *model.Entity, req *Request) error

	Resist  func(src, target *model.Entity) resistDef
	MinTick int64

	Side *SideEffect

	// Prepare derives values and timers from the caller's level and duration.
	// Skipped for effects restored from storage.
	Prepare func(e *Engine, src, target *model.Entity, req *Request)

	// Periodic behavior. Interval is the re-arm period; IntervalVal names a
	// value slot holding it instead (types with a level-dependent period).
	Interval    int64
	IntervalVal int
	OnTick      func(e *Engine, target *model.Entity, sce *model.SCEntry) bool

	OnStart func(e *Engine, target *model.Entity, sce *model.SCEntry, req *Request)
	OnEnd   func(e *Engine, target *model.Entity, sce *model.SCEntry)

	// Display bits.
	Opt1    model.Opt1
	Opt2    model.Opt2
	Opt3    model.Opt3
	Option  model.Option
	Display func(sce *model.SCEntry, d *model.Display)

	Mods  map[model.CalcFlag]ModFunc
	Speed PoolFunc
	Aspd  PoolFunc
	Regen func(sce *model.SCEntry, r *model.RegenData, target *model.Entity)
}

func (d *Descriptor) periodic() bool {
	return d.OnTick != nil
}

// interval returns the re-arm period for an entry.
func (d *Descriptor) interval(sce *model.SCEntry) int64 {
	if d.IntervalVal != 0 {
		if v := int64(entryVal(sce, d.IntervalVal)); v > 0 {
			return v
		}
	}
	return d.Interval
}

// registry maps effect type → descriptor.
// Populated by init() functions in effects_*.go.
var registry = map[model.SCType]*Descriptor{}

// register adds a descriptor. Panics on programming errors: duplicate type,
// modifiers outside the declared mask, periodic type without a period.
func register(d *Descriptor) {
	if !d.Type.Valid() {
		panic(fmt.Sprintf("status: register invalid type %d", d.Type))
	}
	if _, dup := registry[d.Type]; dup {
		panic(fmt.Sprintf("status: %s registered twice", d.Type))
	}
	for f := range d.Mods {
		if !d.Calc.Has(f) {
			panic(fmt.Sprintf("status: %s modifies %s outside its mask %s", d.Type, f, d.Calc))
		}
	}
	if d.Speed != nil && !d.Calc.Has(model.CalcSpeed) {
		panic(fmt.Sprintf("status: %s pools speed outside its mask", d.Type))
	}
	if d.Aspd != nil && !d.Calc.Has(model.CalcAspd) {
		panic(fmt.Sprintf("status: %s pools aspd outside its mask", d.Type))
	}
	if d.Regen != nil && !d.Calc.Has(model.CalcRegen) {
		panic(fmt.Sprintf("status: %s changes regen outside its mask", d.Type))
	}
	if d.periodic() && d.Interval <= 0 && d.IntervalVal == 0 {
		panic(fmt.Sprintf("status: %s ticks without an interval", d.Type))
	}
	registry[d.Type] = d
}

// Lookup returns the descriptor of a type.
func Lookup(t model.SCType) (*Descriptor, bool) {
	d, ok := registry[t]
	return d, ok
}

// typeMod is one modifier in registry order.
type typeMod struct {
	typ model.SCType
	fn  ModFunc
}

type typePool struct {
	typ model.SCType
	fn  PoolFunc
}

type typeRegen struct {
	typ model.SCType
	fn  func(sce *model.SCEntry, r *model.RegenData, target *model.Entity)
}

// index is the per-field view of the registry, built once.
type index struct {
	mods  map[model.CalcFlag][]typeMod
	speed []typePool
	aspd  []typePool
	regen []typeRegen
	// ordered lists every registered type ascending; display and clears walk it.
	ordered []model.SCType
}

func buildIndex() *index {
	idx := &index{mods: make(map[model.CalcFlag][]typeMod)}

	for t := range registry {
		idx.ordered = append(idx.ordered, t)
	}
	sort.Slice(idx.ordered, func(i, j int) bool { return idx.ordered[i] < idx.ordered[j] })

	for _, t := range idx.ordered {
		d := registry[t]
		for f, fn := range d.Mods {
			idx.mods[f] = append(idx.mods[f], typeMod{typ: t, fn: fn})
		}
		if d.Speed != nil {
			idx.speed = append(idx.speed, typePool{typ: t, fn: d.Speed})
		}
		if d.Aspd != nil {
			idx.aspd = append(idx.aspd, typePool{typ: t, fn: d.Aspd})
		}
		if d.Regen != nil {
			idx.regen = append(idx.regen, typeRegen{typ: t, fn: d.Regen})
		}
	}
	return idx
}
