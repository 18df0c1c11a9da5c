package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"productform/internal/form"
	"productform/internal/models"
	"productform/internal/repositories"
)

// FormService creates product forms and routes edits and submissions to them.
type FormService struct {
	repo       repositories.FormRepository
	validators map[models.Variant]form.Validator
	creator    form.ProductCreator
	publisher  form.EventPublisher
}

// NewFormService creates a new FormService. Each variant is validated by its
// own validator; publisher may be nil.
func NewFormService(repo repositories.FormRepository, validators map[models.Variant]form.Validator, creator form.ProductCreator, publisher form.EventPublisher) *FormService {
	return &FormService{
		repo:       repo,
		validators: validators,
		creator:    creator,
		publisher:  publisher,
	}
}

// CreateForm starts a new form of the given variant.
func (s *FormService) CreateForm(variant models.Variant) (*form.Controller, error) {
	validator, ok := s.validators[variant]
	if !ok {
		return nil, fmt.Errorf("no validator configured for variant %q", variant)
	}

	ctrl := form.New(uuid.New().String(), variant, validator, s.creator, s.publisher)
	if err := s.repo.Create(ctrl); err != nil {
		return nil, fmt.Errorf("failed to store form: %w", err)
	}
	return ctrl, nil
}

// GetForm retrieves a form by its ID.
func (s *FormService) GetForm(id string) (*form.Controller, error) {
	return s.repo.GetByID(id)
}

// SetField updates one field of a form.
func (s *FormService) SetField(id, field, value string) (*form.Controller, error) {
	ctrl, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := ctrl.SetField(field, value); err != nil {
		return ctrl, err
	}
	return ctrl, nil
}

// Submit validates and sends a form.
func (s *FormService) Submit(ctx context.Context, id string) (*form.Controller, form.Result, error) {
	ctrl, err := s.repo.GetByID(id)
	if err != nil {
		return nil, form.Result{}, err
	}
	return ctrl, ctrl.Submit(ctx), nil
}

// DeleteForm discards a form.
func (s *FormService) DeleteForm(id string) error {
	return s.repo.Delete(id)
}
