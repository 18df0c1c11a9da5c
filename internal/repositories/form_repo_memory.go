package repositories

import (
	"fmt"
	"sync"
	"time"

	"productform/internal/form"
)

// MemoryFormRepository is an in-memory implementation of FormRepository.
type MemoryFormRepository struct {
	forms map[string]*form.Controller
	mu    sync.RWMutex
}

// NewMemoryFormRepository creates a new instance of MemoryFormRepository.
func NewMemoryFormRepository() *MemoryFormRepository {
	return &MemoryFormRepository{
		forms: make(map[string]*form.Controller),
	}
}

// Create stores ctrl under its ID.
func (r *MemoryFormRepository) Create(ctrl *form.Controller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.forms[ctrl.ID()]; ok {
		return fmt.Errorf("form with ID %s already exists", ctrl.ID())
	}
	r.forms[ctrl.ID()] = ctrl
	return nil
}

// GetByID returns the form stored under id.
func (r *MemoryFormRepository) GetByID(id string) (*form.Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctrl, ok := r.forms[id]
	if !ok {
		return nil, fmt.Errorf("form with ID %s: %w", id, ErrFormNotFound)
	}
	return ctrl, nil
}

// Delete removes the form stored under id.
func (r *MemoryFormRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.forms[id]; !ok {
		return fmt.Errorf("form with ID %s: %w", id, ErrFormNotFound)
	}
	delete(r.forms, id)
	return nil
}

// DeleteIdle removes forms last touched before the given time.
func (r *MemoryFormRepository) DeleteIdle(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, ctrl := range r.forms {
		if ctrl.IsSubmitting() || !ctrl.UpdatedAt().Before(before) {
			continue
		}
		delete(r.forms, id)
		removed++
	}
	return removed
}

// Count returns the number of stored forms.
func (r *MemoryFormRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forms)
}
