package validation

import (
	"encoding/json"

	"productform/internal/models"
)

// Manual validates a draft with plain conditional checks.
type Manual struct{}

// NewManual returns the conditional validator.
func NewManual() Manual {
	return Manual{}
}

// Validate returns the errors of p. It never touches p.
func (Manual) Validate(p models.Product) models.FieldErrors {
	errs := models.FieldErrors{}

	if blank(p.Name) {
		errs[models.FieldName] = MsgNameRequired
	} else if length(p.Name) > MaxNameLen {
		errs[models.FieldName] = tooLong(models.FieldName, MaxNameLen)
	}

	checkNumber(errs, models.FieldPrice, p.Price)

	if blank(p.Images) {
		errs[models.FieldImages] = MsgImagesRequired
	}

	if q, ok := parseInteger(p.Quantity); !ok {
		errs[models.FieldQuantity] = notInteger(models.FieldQuantity)
	} else if q < 0 {
		errs[models.FieldQuantity] = negative(models.FieldQuantity)
	}

	if p.CompareAtPrice != nil {
		checkNumber(errs, models.FieldCompareAtPrice, *p.CompareAtPrice)
	}

	checkLength(errs, models.FieldBarcode, p.Barcode, MaxBarcodeLen)
	checkLength(errs, models.FieldCategory, p.Category, MaxCategoryLen)
	checkLength(errs, models.FieldDescription, p.Description, MaxDescriptionLen)
	checkLength(errs, models.FieldOwner, p.Owner, MaxOwnerLen)
	checkLength(errs, models.FieldSKU, p.SKU, MaxSKULen)
	checkLength(errs, models.FieldTags, p.Tags, MaxTagsLen)

	return errs
}

func checkNumber(errs models.FieldErrors, field string, n json.Number) {
	f, ok := parseNumber(n)
	if !ok {
		errs[field] = notNumber(field)
		return
	}
	if f < 0 {
		errs[field] = negative(field)
	}
}

func checkLength(errs models.FieldErrors, field string, s *string, max int) {
	if s != nil && length(*s) > max {
		errs[field] = tooLong(field, max)
	}
}
