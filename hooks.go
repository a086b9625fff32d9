package aidirectory

import (
	"sync"

	"github.com/aidirectory/aidirectory/pkg/entities"
)

// Hook function types for dataset events
type (
	// EntityCreatedHook is called when a record establishes a new entity
	EntityCreatedHook func(entity *entities.Entity)

	// EntityMergedHook is called when a record wins fields on an existing
	// entity
	EntityMergedHook func(entity *entities.Entity, changed []entities.Field)

	// RecordHeldHook is called when a record is held as ambiguous
	RecordHeldHook func(rec entities.SourceRecord, candidates []string)
)

// hooks manages event callbacks for dataset changes
type hooks struct {
	mu        sync.RWMutex
	onCreated []EntityCreatedHook
	onMerged  []EntityMergedHook
	onHeld    []RecordHeldHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnEntityCreated registers a callback for when entities are created
func (d *directory) OnEntityCreated(fn EntityCreatedHook) {
	d.hooks.mu.Lock()
	defer d.hooks.mu.Unlock()
	d.hooks.onCreated = append(d.hooks.onCreated, fn)
}

// OnEntityMerged registers a callback for when records merge into entities
func (d *directory) OnEntityMerged(fn EntityMergedHook) {
	d.hooks.mu.Lock()
	defer d.hooks.mu.Unlock()
	d.hooks.onMerged = append(d.hooks.onMerged, fn)
}

// OnRecordHeld registers a callback for when ambiguous records are held
func (d *directory) OnRecordHeld(fn RecordHeldHook) {
	d.hooks.mu.Lock()
	defer d.hooks.mu.Unlock()
	d.hooks.onHeld = append(d.hooks.onHeld, fn)
}

func (h *hooks) entityCreated(e *entities.Entity) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onCreated {
		hook(e)
	}
}

func (h *hooks) entityMerged(e *entities.Entity, changed []entities.Field) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onMerged {
		hook(e, changed)
	}
}

func (h *hooks) recordHeld(rec entities.SourceRecord, candidates []string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onHeld {
		hook(rec, candidates)
	}
}
