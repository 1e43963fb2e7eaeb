package model

import (
	"sort"

	"github.com/udisondev/mapcore/internal/timer"
)

// Opt1 — состояние тела (может быть только одно одновременно).
type Opt1 uint16

const (
	Opt1None      Opt1 = 0
	Opt1Stone     Opt1 = 1
	Opt1Freeze    Opt1 = 2
	Opt1Stun      Opt1 = 3
	Opt1Sleep     Opt1 = 4
	Opt1StoneWait Opt1 = 6
	Opt1Burning   Opt1 = 7
)

// Opt2 — битовое поле "здоровья" (иконки над головой).
type Opt2 uint32

const (
	Opt2Poison       Opt2 = 0x0001
	Opt2Curse        Opt2 = 0x0002
	Opt2Silence      Opt2 = 0x0004
	Opt2SignumCrucis Opt2 = 0x0008
	Opt2Blind        Opt2 = 0x0010
	Opt2Angelus      Opt2 = 0x0020
	Opt2Bleeding     Opt2 = 0x0040
	Opt2DPoison      Opt2 = 0x0080
)

// Opt3 — визуальные эффекты скиллов.
type Opt3 uint32

const (
	Opt3Quicken          Opt3 = 0x0001
	Opt3OverThrust       Opt3 = 0x0002
	Opt3EnergyCoat       Opt3 = 0x0004
	Opt3ExplosionSpirits Opt3 = 0x0008
	Opt3SteelBody        Opt3 = 0x0010
	Opt3BladeStop        Opt3 = 0x0020
	Opt3Berserk          Opt3 = 0x0080
	Opt3Assumptio        Opt3 = 0x0800
)

// Option — видимые опции (скрытность, сенсоры).
type Option uint32

const (
	OptionSight  Option = 0x0001
	OptionHide   Option = 0x0002
	OptionCloak  Option = 0x0004
	OptionRuwach Option = 0x2000
)

// Display — совокупное визуальное состояние существа.
type Display struct {
	Opt1   Opt1
	Opt2   Opt2
	Opt3   Opt3
	Option Option
}

// SCEntry — активный экземпляр статус-эффекта на существе.
// Смысл Val1..Val4 зависит от типа. Timer — слабая ссылка на таймер
// (timer.Invalid для бесконечной длительности); таймер не владеет записью.
type SCEntry struct {
	Timer    timer.Handle
	Val1     int32
	Val2     int32
	Val3     int32
	Val4     int32
	Infinite bool
}

// StatusChange — разреженная таблица активных эффектов существа.
// Инвариант: не более одной записи на тип. Мутирует только status.Engine.
type StatusChange struct {
	entries map[SCType]*SCEntry
	Display Display
}

// NewStatusChange создаёт пустую таблицу.
func NewStatusChange() *StatusChange {
	return &StatusChange{entries: make(map[SCType]*SCEntry, 8)}
}

// Get возвращает запись или nil.
func (sc *StatusChange) Get(t SCType) *SCEntry {
	if sc == nil {
		return nil
	}
	return sc.entries[t]
}

// Has проверяет наличие эффекта ("is frozen").
func (sc *StatusChange) Has(t SCType) bool {
	return sc.Get(t) != nil
}

// Count возвращает число активных эффектов.
func (sc *StatusChange) Count() int {
	if sc == nil {
		return 0
	}
	return len(sc.entries)
}

// Set кладёт запись в таблицу, заменяя существующую.
func (sc *StatusChange) Set(t SCType, e *SCEntry) {
	sc.entries[t] = e
}

// Delete удаляет запись и возвращает её (nil, если не было).
func (sc *StatusChange) Delete(t SCType) *SCEntry {
	e, ok := sc.entries[t]
	if !ok {
		return nil
	}
	delete(sc.entries, t)
	return e
}

// Types возвращает активные типы в порядке возрастания.
// Порядок детерминирован — от него зависят clear-операции и сохранение.
func (sc *StatusChange) Types() []SCType {
	if sc == nil || len(sc.entries) == 0 {
		return nil
	}
	types := make([]SCType, 0, len(sc.entries))
	for t := range sc.entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
