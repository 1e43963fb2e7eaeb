package world

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/mapcore/internal/model"
)

// World is the registry of live entities on the map server.
// Effects keep only object IDs of other entities (caster, Blade Stop partner)
// and resolve them here at use time, so a removed entity is simply not found.
// Singleton pattern — use Instance() for the process-wide registry, New() in tests.
type World struct {
	entities sync.Map // map[uint32]*model.Entity — objectID → entity
	count    atomic.Int32

	hooksMu sync.RWMutex
	onRemove []func(*model.Entity)
}

var (
	instance *World
	once     sync.Once
)

// Instance returns singleton World instance
func Instance() *World {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New creates an empty registry.
func New() *World {
	return &World{}
}

// Add registers entity. Returns error if the objectID is already taken.
func (w *World) Add(e *model.Entity) error {
	if e == nil {
		return fmt.Errorf("adding nil entity")
	}
	if _, loaded := w.entities.LoadOrStore(e.ObjectID(), e); loaded {
		return fmt.Errorf("entity %d already registered", e.ObjectID())
	}
	w.count.Add(1)
	return nil
}

// Lookup returns entity by ID
func (w *World) Lookup(objectID uint32) (*model.Entity, bool) {
	value, ok := w.entities.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.Entity), true
}

// OnRemove registers a hook run for every removed entity, in registration order.
// The status engine uses it to drop effects and cancel their timers.
func (w *World) OnRemove(fn func(*model.Entity)) {
	w.hooksMu.Lock()
	w.onRemove = append(w.onRemove, fn)
	w.hooksMu.Unlock()
}

// Remove unregisters entity and runs removal hooks.
// Hooks run after the entity is gone from the registry: a timer callback
// firing later for this ID finds nothing and does nothing.
func (w *World) Remove(objectID uint32) {
	value, ok := w.entities.LoadAndDelete(objectID)
	if !ok {
		return
	}
	w.count.Add(-1)

	e := value.(*model.Entity)

	w.hooksMu.RLock()
	hooks := w.onRemove
	w.hooksMu.RUnlock()

	for _, fn := range hooks {
		fn(e)
	}

	slog.Debug("entity removed", "objectID", objectID, "kind", e.Kind())
}

// Range iterates over all entities until fn returns false.
func (w *World) Range(fn func(*model.Entity) bool) {
	w.entities.Range(func(_, value any) bool {
		return fn(value.(*model.Entity))
	})
}

// Count returns number of registered entities (O(1) cached count)
func (w *World) Count() int {
	return int(w.count.Load())
}
