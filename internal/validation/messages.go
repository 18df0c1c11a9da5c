// Package validation checks a product draft and reports one message per
// failing field. Manual and Schema implement the same rules and messages.
package validation

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"productform/internal/models"
)

// Length limits in Unicode code points.
const (
	MaxNameLen        = 500
	MaxBarcodeLen     = 100
	MaxCategoryLen    = 200
	MaxDescriptionLen = 5000
	MaxOwnerLen       = 200
	MaxSKULen         = 100
	MaxTagsLen        = 500
)

const (
	MsgNameRequired   = "Name is required"
	MsgImagesRequired = "Images field is required"
)

// labels are the human names used in messages.
var labels = map[string]string{
	models.FieldName:           "Name",
	models.FieldPrice:          "Price",
	models.FieldImages:         "Images",
	models.FieldQuantity:       "Quantity",
	models.FieldBarcode:        "Barcode",
	models.FieldCategory:       "Category",
	models.FieldCompareAtPrice: "Compare-at price",
	models.FieldDescription:    "Description",
	models.FieldOwner:          "Owner",
	models.FieldSKU:            "SKU",
	models.FieldTags:           "Tags",
}

func tooLong(field string, max int) string {
	return labels[field] + " must not exceed " + strconv.Itoa(max) + " characters"
}

func notNumber(field string) string {
	return labels[field] + " must be a valid number"
}

func notInteger(field string) string {
	return labels[field] + " must be a valid integer"
}

func negative(field string) string {
	return labels[field] + " must be ≥ 0"
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// parseNumber reports the value of n when it is a JSON number literal.
// NaN, Inf, hex floats and padded text are rejected.
func parseNumber(n json.Number) (float64, bool) {
	s := string(n)
	if s == "" || strings.TrimSpace(s) != s || !json.Valid([]byte(s)) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseInteger reports the value of n when it is a JSON number literal
// without fraction or exponent.
func parseInteger(n json.Number) (int64, bool) {
	if _, ok := parseNumber(n); !ok || strings.ContainsAny(string(n), ".eE") {
		return 0, false
	}
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}
