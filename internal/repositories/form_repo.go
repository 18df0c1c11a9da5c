package repositories

import (
	"errors"
	"time"

	"productform/internal/form"
)

// ErrFormNotFound is returned when no form is stored under an ID.
var ErrFormNotFound = errors.New("form not found")

// FormRepository defines storage for live form controllers.
type FormRepository interface {
	Create(ctrl *form.Controller) error
	GetByID(id string) (*form.Controller, error)
	Delete(id string) error
	// DeleteIdle removes forms untouched since before and returns how many
	// were removed. Forms with a submission in flight are kept.
	DeleteIdle(before time.Time) int
	Count() int
}
