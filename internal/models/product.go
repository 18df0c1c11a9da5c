package models

import "encoding/json"

// JSON field names of a Product, used as keys for field errors and field edits.
const (
	FieldName           = "name"
	FieldPrice          = "price"
	FieldImages         = "images"
	FieldQuantity       = "quantity"
	FieldFeatured       = "featured"
	FieldPublished      = "published"
	FieldBarcode        = "barcode"
	FieldCategory       = "category"
	FieldCompareAtPrice = "compareAtPrice"
	FieldDescription    = "description"
	FieldIsDefault      = "isDefault"
	FieldOwner          = "owner"
	FieldSKU            = "sku"
	FieldTags           = "tags"
)

// FieldNames lists every Product field in form order.
var FieldNames = []string{
	FieldName, FieldPrice, FieldImages, FieldQuantity, FieldFeatured, FieldPublished,
	FieldBarcode, FieldCategory, FieldCompareAtPrice, FieldDescription,
	FieldIsDefault, FieldOwner, FieldSKU, FieldTags,
}

// Product is the record submitted to the remote product API. It doubles as the
// form draft: numeric fields keep the text the user typed so malformed input
// can be reported by validation instead of being silently coerced.
//
// Optional fields are pointers; nil is serialized as JSON null.
type Product struct {
	Name      string      `json:"name" validate:"notblank,max=500"`
	Price     json.Number `json:"price" validate:"jsonnumber,nonnegative"`
	Images    string      `json:"images" validate:"notblank"`
	Quantity  json.Number `json:"quantity" validate:"jsonint,nonnegative"`
	Featured  bool        `json:"featured"`
	Published bool        `json:"published"`

	Barcode        *string      `json:"barcode" validate:"omitempty,max=100"`
	Category       *string      `json:"category" validate:"omitempty,max=200"`
	CompareAtPrice *json.Number `json:"compareAtPrice" validate:"omitnil,jsonnumber,nonnegative"`
	Description    *string      `json:"description" validate:"omitempty,max=5000"`
	IsDefault      *bool        `json:"isDefault"`
	Owner          *string      `json:"owner" validate:"omitempty,max=200"`
	SKU            *string      `json:"sku" validate:"omitempty,max=100"`
	Tags           *string      `json:"tags" validate:"omitempty,max=500"`
}

// NewDraft returns the initial form state: empty required text, zero numbers,
// false flags and no value for every optional field.
func NewDraft() Product {
	return Product{
		Price:    "0",
		Quantity: "0",
	}
}

// FieldErrors maps a field name to its validation message. An empty map means
// the draft is valid.
type FieldErrors map[string]string

// Clone returns an independent copy of the errors.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
