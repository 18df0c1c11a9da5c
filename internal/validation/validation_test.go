package validation_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productform/internal/models"
	"productform/internal/validation"
)

type validatorFunc interface {
	Validate(models.Product) models.FieldErrors
}

func validators(t *testing.T) map[string]validatorFunc {
	schema, err := validation.NewSchema()
	require.NoError(t, err)
	return map[string]validatorFunc{
		"manual": validation.NewManual(),
		"schema": schema,
	}
}

func str(s string) *string { return &s }

func num(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func minimal() models.Product {
	p := models.NewDraft()
	p.Name = "A"
	p.Images = "x"
	return p
}

func TestValidate_InitialDraftIsInvalid(t *testing.T) {
	for name, v := range validators(t) {
		t.Run(name, func(t *testing.T) {
			errs := v.Validate(models.NewDraft())
			assert.Equal(t, models.FieldErrors{
				models.FieldName:   "Name is required",
				models.FieldImages: "Images field is required",
			}, errs)
		})
	}
}

func TestValidate_MinimalDraftIsValid(t *testing.T) {
	for name, v := range validators(t) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, v.Validate(minimal()))
		})
	}
}

func TestValidate_FullyPopulatedDraftIsValid(t *testing.T) {
	p := minimal()
	p.Price = "19.99"
	p.Quantity = "12"
	p.Featured = true
	p.Published = true
	p.Barcode = str("0123456789012")
	p.Category = str("shoes")
	p.CompareAtPrice = num("24.5")
	p.Description = str(strings.Repeat("d", 5000))
	isDefault := true
	p.IsDefault = &isDefault
	p.Owner = str("ops")
	p.SKU = str(strings.Repeat("s", 100))
	p.Tags = str("red,sale")

	for name, v := range validators(t) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, v.Validate(p))
		})
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.Product)
		field   string
		message string
	}{
		{"blank name", func(p *models.Product) { p.Name = "   " }, models.FieldName, "Name is required"},
		{"long name", func(p *models.Product) { p.Name = strings.Repeat("n", 501) }, models.FieldName, "Name must not exceed 500 characters"},
		{"negative price", func(p *models.Product) { p.Price = "-0.01" }, models.FieldPrice, "Price must be ≥ 0"},
		{"letters in price", func(p *models.Product) { p.Price = "abc" }, models.FieldPrice, "Price must be a valid number"},
		{"NaN price", func(p *models.Product) { p.Price = "NaN" }, models.FieldPrice, "Price must be a valid number"},
		{"empty price", func(p *models.Product) { p.Price = "" }, models.FieldPrice, "Price must be a valid number"},
		{"blank images", func(p *models.Product) { p.Images = "\t" }, models.FieldImages, "Images field is required"},
		{"fractional quantity", func(p *models.Product) { p.Quantity = "1.5" }, models.FieldQuantity, "Quantity must be a valid integer"},
		{"negative quantity", func(p *models.Product) { p.Quantity = "-1" }, models.FieldQuantity, "Quantity must be ≥ 0"},
		{"bad compare-at price", func(p *models.Product) { p.CompareAtPrice = num("ten") }, models.FieldCompareAtPrice, "Compare-at price must be a valid number"},
		{"negative compare-at price", func(p *models.Product) { p.CompareAtPrice = num("-5") }, models.FieldCompareAtPrice, "Compare-at price must be ≥ 0"},
		{"long sku", func(p *models.Product) { p.SKU = str(strings.Repeat("s", 101)) }, models.FieldSKU, "SKU must not exceed 100 characters"},
		{"long barcode", func(p *models.Product) { p.Barcode = str(strings.Repeat("1", 101)) }, models.FieldBarcode, "Barcode must not exceed 100 characters"},
		{"long description", func(p *models.Product) { p.Description = str(strings.Repeat("d", 5001)) }, models.FieldDescription, "Description must not exceed 5000 characters"},
		{"long category", func(p *models.Product) { p.Category = str(strings.Repeat("c", 201)) }, models.FieldCategory, "Category must not exceed 200 characters"},
		{"long owner", func(p *models.Product) { p.Owner = str(strings.Repeat("o", 201)) }, models.FieldOwner, "Owner must not exceed 200 characters"},
		{"long tags", func(p *models.Product) { p.Tags = str(strings.Repeat("t", 501)) }, models.FieldTags, "Tags must not exceed 500 characters"},
	}

	for name, v := range validators(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				p := minimal()
				tt.mutate(&p)
				assert.Equal(t, models.FieldErrors{tt.field: tt.message}, v.Validate(p))
			})
		}
	}
}

func TestValidate_PriceBoundary(t *testing.T) {
	for name, v := range validators(t) {
		t.Run(name, func(t *testing.T) {
			for _, price := range []string{"0", "0.0", "1e3", "1234.5678"} {
				p := minimal()
				p.Price = json.Number(price)
				assert.NotContains(t, v.Validate(p), models.FieldPrice, price)
			}
			for _, price := range []string{"-1", "-0.5", "1,5", " 1", "0x10", "Inf"} {
				p := minimal()
				p.Price = json.Number(price)
				assert.Contains(t, v.Validate(p), models.FieldPrice, price)
			}
		})
	}
}

func TestValidate_NameCountsCharactersNotBytes(t *testing.T) {
	p := minimal()
	p.Name = strings.Repeat("é", 500)
	for name, v := range validators(t) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, v.Validate(p))
		})
	}
}

func TestValidate_ReportsEveryFailingField(t *testing.T) {
	p := models.NewDraft()
	p.Price = "-3"
	p.Quantity = "x"
	p.SKU = str(strings.Repeat("s", 101))

	for name, v := range validators(t) {
		t.Run(name, func(t *testing.T) {
			errs := v.Validate(p)
			assert.Len(t, errs, 5)
			for _, field := range []string{models.FieldName, models.FieldPrice, models.FieldImages, models.FieldQuantity, models.FieldSKU} {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidate_DoesNotMutateDraft(t *testing.T) {
	p := minimal()
	p.Price = "abc"
	before := p
	for _, v := range validators(t) {
		v.Validate(p)
	}
	assert.Equal(t, before, p)
}
