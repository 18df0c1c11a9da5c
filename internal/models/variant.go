package models

import "fmt"

// Variant selects how a form binds and validates its input.
type Variant string

const (
	// VariantManual reads fields one by one and validates with plain checks.
	VariantManual Variant = "manual"
	// VariantLibrary binds the body into ProductInput and validates with struct tags.
	VariantLibrary Variant = "library"
)

// Variants lists the supported variants in display order.
var Variants = []Variant{VariantManual, VariantLibrary}

// ParseVariant returns the Variant named by s.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantManual, VariantLibrary:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown form variant: %q", s)
}

// Title is the heading shown above a form of this variant.
func (v Variant) Title() string {
	if v == VariantLibrary {
		return "With Form Library"
	}
	return "No Form Library"
}

// ProductInput is the raw form body as posted by the browser. Every value is
// text; coercion into a Product happens field by field in the form controller.
type ProductInput struct {
	Name           string `form:"name" json:"name"`
	Price          string `form:"price" json:"price"`
	Images         string `form:"images" json:"images"`
	Quantity       string `form:"quantity" json:"quantity"`
	Featured       string `form:"featured" json:"featured"`
	Published      string `form:"published" json:"published"`
	Barcode        string `form:"barcode" json:"barcode"`
	Category       string `form:"category" json:"category"`
	CompareAtPrice string `form:"compareAtPrice" json:"compareAtPrice"`
	Description    string `form:"description" json:"description"`
	IsDefault      string `form:"isDefault" json:"isDefault"`
	Owner          string `form:"owner" json:"owner"`
	SKU            string `form:"sku" json:"sku"`
	Tags           string `form:"tags" json:"tags"`
}

// Values returns the input keyed by field name, in FieldNames order.
func (in ProductInput) Values() map[string]string {
	return map[string]string{
		FieldName:           in.Name,
		FieldPrice:          in.Price,
		FieldImages:         in.Images,
		FieldQuantity:       in.Quantity,
		FieldFeatured:       in.Featured,
		FieldPublished:      in.Published,
		FieldBarcode:        in.Barcode,
		FieldCategory:       in.Category,
		FieldCompareAtPrice: in.CompareAtPrice,
		FieldDescription:    in.Description,
		FieldIsDefault:      in.IsDefault,
		FieldOwner:          in.Owner,
		FieldSKU:            in.SKU,
		FieldTags:           in.Tags,
	}
}
