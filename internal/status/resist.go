package status

import (
	"fmt"

	"github.com/udisondev/mapcore/internal/model"
)

// resistDef is a target's defence against one effect type.
// Rate: rate -= rate*scDef/10000; rate -= scDef2.
// Duration: tick -= tick*tickDef/10000; tick -= tickDef2.
type resistDef struct {
	scDef    int32
	scDef2   int32
	tickDef  int32
	tickDef2 int32

	// tickDefSet: tickDef was given explicitly, otherwise it equals scDef.
	tickDefSet bool
	halveTick  bool
	immune     bool
}

// lvDiff is the level-difference bonus to resistance (max level 99, factor 10).
func lvDiff(target, src *model.Entity) int32 {
	clampLv := func(ent *model.Entity) int32 {
		if ent == nil {
			return 1
		}
		return max(min(ent.Level(), 99), 1)
	}
	return (clampLv(target) - clampLv(src)) * 10
}

// resist rolls the success chance and returns the reduced duration.
func (e *Engine) resist(d *Descriptor, src, target *model.Entity, rate int32, tick int64, flags StartFlag) (int64, error) {
	var def resistDef
	if d.Resist != nil {
		def = d.Resist(src, target)
	}
	if def.immune {
		return 0, fmt.Errorf("%w: %s immune", ErrResisted, d.Type)
	}

	// battle config scaling
	scRate, maxDef := e.battle.MobSCDefRate, e.battle.MobMaxSCDef
	if target.IsPlayer() {
		scRate, maxDef = e.battle.PCSCDefRate, e.battle.PCMaxSCDef
	}
	if !def.tickDefSet {
		def.tickDef = def.scDef
	}
	def.scDef = min(def.scDef*scRate/100, maxDef*100)
	def.tickDef = min(def.tickDef*scRate/100, maxDef*100)

	if flags&FlagFixedRate == 0 {
		rate -= int32(int64(rate) * int64(def.scDef) / 10000)
		rate -= def.scDef2
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: %s rate reduced to zero", ErrResisted, d.Type)
	}
	if rate < 10000 && e.randN(10000) >= rate {
		return 0, ErrResisted
	}

	if tick == model.InfiniteTick || flags&FlagFixedTick != 0 {
		return tick, nil
	}

	if def.halveTick {
		tick /= 2
	}
	tick -= tick * int64(def.tickDef) / 10000
	tick -= int64(def.tickDef2)

	minTick := max(d.MinTick, 1)
	if tick < minTick {
		tick = minTick
	}
	return tick, nil
}

// resistVit is the common VIT-based defence (stun, poison, silence, bleeding).
func resistVit(src, target *model.Entity) resistDef {
	st := &target.Battle
	return resistDef{
		scDef:    st.Vit * 100,
		scDef2:   st.Luk*10 + lvDiff(target, src),
		tickDef2: st.Luk * 10,
	}
}

func resistSleep(src, target *model.Entity) resistDef {
	st := &target.Battle
	return resistDef{
		scDef:    st.Int * 100,
		scDef2:   st.Luk*10 + lvDiff(target, src),
		tickDef2: st.Luk * 10,
	}
}

func resistStone(src, target *model.Entity) resistDef {
	st := &target.Battle
	return resistDef{
		scDef:      st.Mdef * 100,
		scDef2:     st.Luk*10 + lvDiff(target, src),
		tickDefSet: true,
		tickDef2:   st.Luk * 10,
	}
}

// resistFreeze: LUK makes freeze last longer.
func resistFreeze(src, target *model.Entity) resistDef {
	st := &target.Battle
	return resistDef{
		scDef:    st.Mdef * 100,
		scDef2:   st.Luk*10 + lvDiff(target, src),
		tickDef2: -st.Luk * 10,
	}
}

// resistCurse: zero LUK is immune; only a level penalty, no level bonus.
func resistCurse(src, target *model.Entity) resistDef {
	st := &target.Battle
	if st.Luk == 0 {
		return resistDef{immune: true}
	}
	return resistDef{
		scDef:      st.Luk * 100,
		scDef2:     st.Luk*10 - lvDiff(target, src),
		tickDefSet: true,
		tickDef:    st.Vit * 100,
		tickDef2:   st.Luk * 10,
	}
}

func resistBlind(src, target *model.Entity) resistDef {
	st := &target.Battle
	return resistDef{
		scDef:    (st.Vit + st.Int) * 50,
		scDef2:   st.Luk*10 + lvDiff(target, src),
		tickDef2: st.Luk * 10,
	}
}

func resistConfusion(src, target *model.Entity) resistDef {
	st := &target.Battle
	return resistDef{
		scDef:    (st.Str + st.Int) * 50,
		scDef2:   st.Luk*10 + lvDiff(target, src),
		tickDef2: st.Luk * 10,
	}
}

func resistBurning(src, target *model.Entity) resistDef {
	st := &target.Battle
	return resistDef{
		scDef2:     st.Luk*10 + lvDiff(target, src),
		tickDefSet: true,
		tickDef2:   (st.Int + st.Luk) * 50,
	}
}

// resistDecAgi: MDEF reduces the chance; players get half the duration.
func resistDecAgi(_, target *model.Entity) resistDef {
	return resistDef{
		scDef:      target.Battle.Mdef * 100,
		tickDefSet: true,
		halveTick:  target.IsPlayer(),
	}
}
