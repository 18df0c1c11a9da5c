package handlers

import (
	"encoding/json"
	"strconv"

	"productform/internal/form"
	"productform/internal/models"
)

type option struct {
	Value string
	Label string
}

type fieldView struct {
	Name      string
	Label     string
	Type      string
	InputMode string
	Value     string
	Checked   bool
	Options   []option
	Error     string
}

type formView struct {
	Variant    models.Variant
	Heading    string
	Action     string
	Fields     []fieldView
	Notice     *form.Notice
	Submitting bool
}

type fieldLayout struct {
	name      string
	label     string
	kind      string
	inputMode string
}

var layout = []fieldLayout{
	{models.FieldName, "Name", "text", ""},
	{models.FieldPrice, "Price", "text", "decimal"},
	{models.FieldImages, "Images", "text", ""},
	{models.FieldQuantity, "Quantity", "text", "numeric"},
	{models.FieldFeatured, "Featured", "checkbox", ""},
	{models.FieldPublished, "Published", "checkbox", ""},
	{models.FieldCompareAtPrice, "Compare-at price", "text", "decimal"},
	{models.FieldSKU, "SKU", "text", ""},
	{models.FieldBarcode, "Barcode", "text", ""},
	{models.FieldCategory, "Category", "text", ""},
	{models.FieldOwner, "Owner", "text", ""},
	{models.FieldTags, "Tags", "text", ""},
	{models.FieldIsDefault, "Default product", "select", ""},
	{models.FieldDescription, "Description", "textarea", ""},
}

var triState = []option{{"", "—"}, {"true", "Yes"}, {"false", "No"}}

// newFormView renders ctrl's state. notice overrides the controller's banner
// when non-nil.
func newFormView(ctrl *form.Controller, notice *form.Notice) formView {
	draft := ctrl.Draft()
	errs := ctrl.Errors()
	values := draftValues(draft)
	if notice == nil {
		notice = ctrl.Notice()
	}

	fields := make([]fieldView, 0, len(layout))
	for _, l := range layout {
		f := fieldView{
			Name:      l.name,
			Label:     l.label,
			Type:      l.kind,
			InputMode: l.inputMode,
			Error:     errs[l.name],
		}
		switch v := values[l.name].(type) {
		case bool:
			f.Checked = v
		case *bool:
			if v != nil {
				f.Value = strconv.FormatBool(*v)
			}
		case string:
			f.Value = v
		case nil:
		}
		if l.kind == "select" {
			f.Options = triState
		}
		fields = append(fields, f)
	}

	return formView{
		Variant:    ctrl.Variant(),
		Heading:    ctrl.Variant().Title(),
		Action:     "/forms/" + string(ctrl.Variant()),
		Fields:     fields,
		Notice:     notice,
		Submitting: ctrl.IsSubmitting(),
	}
}

// draftValues flattens a draft for display and JSON responses. Numbers stay
// as typed so malformed input can be shown back; absent optionals are nil.
func draftValues(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		models.FieldName:           p.Name,
		models.FieldPrice:          p.Price.String(),
		models.FieldImages:         p.Images,
		models.FieldQuantity:       p.Quantity.String(),
		models.FieldFeatured:       p.Featured,
		models.FieldPublished:      p.Published,
		models.FieldBarcode:        text(p.Barcode),
		models.FieldCategory:       text(p.Category),
		models.FieldCompareAtPrice: number(p.CompareAtPrice),
		models.FieldDescription:    text(p.Description),
		models.FieldIsDefault:      p.IsDefault,
		models.FieldOwner:          text(p.Owner),
		models.FieldSKU:            text(p.SKU),
		models.FieldTags:           text(p.Tags),
	}
}

func text(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func number(n *json.Number) interface{} {
	if n == nil {
		return nil
	}
	return n.String()
}
