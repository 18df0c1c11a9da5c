// Package form holds the state of a single product form: the draft being
// edited, the errors of the last validation pass and the in-flight flag that
// keeps submissions one at a time.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"productform/internal/models"
)

var (
	// ErrUnknownField is returned by SetField for names outside models.FieldNames.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned by SetField when a value cannot be coerced.
	ErrInvalidValue = errors.New("invalid value")
)

// Validator reports the field errors of a draft.
type Validator interface {
	Validate(p models.Product) models.FieldErrors
}

// ProductCreator sends a product to the remote API.
type ProductCreator interface {
	Create(ctx context.Context, p *models.Product) models.Outcome
}

// EventPublisher announces created products.
type EventPublisher interface {
	PublishProductCreated(data map[string]interface{}) error
}

// Status is the result kind of a Submit call.
type Status string

const (
	// StatusValidationFailed means the draft had field errors and nothing was sent.
	StatusValidationFailed Status = "validation_failed"
	// StatusSuccess means the product was created and the draft was reset.
	StatusSuccess Status = "success"
	// StatusFailure means the remote API rejected the product or could not be
	// reached; the draft is unchanged.
	StatusFailure Status = "failure"
	// StatusBusy means another submission was in flight and nothing was done.
	StatusBusy Status = "busy"
)

// Result describes what a Submit call did.
type Result struct {
	Status  Status
	Errors  models.FieldErrors
	Message string
	Outcome models.Outcome
}

// Controller owns one form. It is safe for concurrent use; field edits are
// accepted while a submission is in flight.
type Controller struct {
	id        string
	variant   models.Variant
	validator Validator
	creator   ProductCreator
	publisher EventPublisher

	mu         sync.Mutex
	draft      models.Product
	errors     models.FieldErrors
	submitting bool
	notice     *Notice
	updatedAt  time.Time
}

// Notice is the form-wide banner left by the last submission.
type Notice struct {
	Success bool
	Message string
}

// New creates a controller holding a fresh draft. publisher may be nil.
func New(id string, variant models.Variant, validator Validator, creator ProductCreator, publisher EventPublisher) *Controller {
	return &Controller{
		id:        id,
		variant:   variant,
		validator: validator,
		creator:   creator,
		publisher: publisher,
		draft:     models.NewDraft(),
		errors:    models.FieldErrors{},
		updatedAt: time.Now(),
	}
}

// ID identifies the form in its repository.
func (c *Controller) ID() string { return c.id }

// Variant is the binding style the form was created for.
func (c *Controller) Variant() models.Variant { return c.variant }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Errors returns a copy of the errors from the last validation pass, minus
// the fields edited since.
func (c *Controller) Errors() models.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Clone()
}

// IsSubmitting reports whether a submission is in flight.
func (c *Controller) IsSubmitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Notice returns the banner of the last finished submission, if any.
func (c *Controller) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// UpdatedAt is the time of the last edit or submission.
func (c *Controller) UpdatedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}

// SetField coerces raw into the type of the named field, stores it in the
// draft and drops the field's stale error.
func (c *Controller) SetField(name, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := assign(&c.draft, name, raw); err != nil {
		return err
	}
	delete(c.errors, name)
	c.updatedAt = time.Now()
	return nil
}

// SetFields applies SetField to every entry of values in form order and
// stops at the first error.
func (c *Controller) SetFields(values map[string]string) error {
	for _, name := range models.FieldNames {
		raw, ok := values[name]
		if !ok {
			continue
		}
		if err := c.SetField(name, raw); err != nil {
			return err
		}
	}
	return nil
}

// Submit validates the draft and, when it is valid, sends it to the remote
// API. Only one submission runs at a time; a call made while another is in
// flight returns StatusBusy without contacting the network.
func (c *Controller) Submit(ctx context.Context) Result {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return Result{Status: StatusBusy, Message: "A submission is already in progress"}
	}

	errs := c.validator.Validate(c.draft)
	if len(errs) > 0 {
		c.errors = errs
		c.notice = nil
		c.updatedAt = time.Now()
		c.mu.Unlock()
		return Result{Status: StatusValidationFailed, Errors: errs.Clone()}
	}

	snapshot := c.draft
	c.errors = models.FieldErrors{}
	c.notice = nil
	c.submitting = true
	c.mu.Unlock()

	outcome := c.creator.Create(ctx, &snapshot)

	c.mu.Lock()
	c.submitting = false
	c.updatedAt = time.Now()
	c.notice = &Notice{Success: outcome.Success, Message: outcome.Message}
	if outcome.Success {
		c.draft = models.NewDraft()
		c.errors = models.FieldErrors{}
	}
	c.mu.Unlock()

	if !outcome.Success {
		log.Printf("Form %s: submission failed: %s", c.id, outcome.Message)
		return Result{Status: StatusFailure, Message: outcome.Message, Outcome: outcome}
	}

	c.publishCreated(snapshot)
	return Result{Status: StatusSuccess, Message: outcome.Message, Outcome: outcome}
}

func (c *Controller) publishCreated(p models.Product) {
	if c.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"formID":  c.id,
		"variant": string(c.variant),
		"product": p,
	}
	if err := c.publisher.PublishProductCreated(event); err != nil {
		log.Printf("Warning: Failed to publish product created event for form %s: %v", c.id, err)
	}
}

// assign writes raw into the named field of p.
func assign(p *models.Product, name, raw string) error {
	switch name {
	case models.FieldName:
		p.Name = raw
	case models.FieldImages:
		p.Images = raw
	case models.FieldPrice:
		p.Price = requiredNumber(raw)
	case models.FieldQuantity:
		p.Quantity = requiredNumber(raw)
	case models.FieldCompareAtPrice:
		p.CompareAtPrice = optionalNumber(raw)
	case models.FieldFeatured, models.FieldPublished:
		b, err := parseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == models.FieldFeatured {
			p.Featured = b
		} else {
			p.Published = b
		}
	case models.FieldIsDefault:
		if strings.TrimSpace(raw) == "" {
			p.IsDefault = nil
			return nil
		}
		b, err := parseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.IsDefault = &b
	case models.FieldBarcode:
		p.Barcode = optionalText(raw)
	case models.FieldCategory:
		p.Category = optionalText(raw)
	case models.FieldDescription:
		p.Description = optionalText(raw)
	case models.FieldOwner:
		p.Owner = optionalText(raw)
	case models.FieldSKU:
		p.SKU = optionalText(raw)
	case models.FieldTags:
		p.Tags = optionalText(raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

func requiredNumber(raw string) json.Number {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	return json.Number(raw)
}

func optionalNumber(raw string) *json.Number {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n := json.Number(raw)
	return &n
}

func optionalText(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// parseBool accepts checkbox values as well as the usual spellings.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true, nil
	case "", "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, raw)
}
