package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"productform/internal/form"
	"productform/internal/middleware"
	"productform/internal/models"
)

const pageTitle = "Product Creation App"

// FormHandler serves the HTML product forms of a session.
type FormHandler struct{}

// NewFormHandler creates a new FormHandler.
func NewFormHandler() *FormHandler {
	return &FormHandler{}
}

// RegisterRoutes registers the form pages behind sessionForms, which must
// be middleware.FormSession.
func (h *FormHandler) RegisterRoutes(router fiber.Router, sessionForms fiber.Handler) {
	router.Get("/", sessionForms, h.HandleIndex)
	router.Get("/forms/:variant", sessionForms, h.HandleShow)
	router.Post("/forms/:variant", sessionForms, h.HandleSubmit)
}

// HandleIndex shows both forms side by side.
func (h *FormHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, nil)
}

// HandleShow shows the form of one variant.
func (h *FormHandler) HandleShow(c *fiber.Ctx) error {
	variant, err := models.ParseVariant(c.Params("variant"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	forms := middleware.Forms(c)
	return c.Render("index", fiber.Map{
		"Title": pageTitle,
		"Forms": []formView{newFormView(forms[variant], nil)},
	})
}

// HandleSubmit binds the posted fields into the variant's form, submits it and
// renders the result.
func (h *FormHandler) HandleSubmit(c *fiber.Ctx) error {
	variant, err := models.ParseVariant(c.Params("variant"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	ctrl := middleware.Forms(c)[variant]

	// Inputs are read-only while a submission is in flight.
	if !ctrl.IsSubmitting() {
		values, err := bind(c, variant)
		if err == nil {
			err = ctrl.SetFields(values)
		}
		if err != nil {
			log.Printf("Error binding %s form %s: %v", variant, ctrl.ID(), err)
			return h.render(c, fiber.StatusBadRequest, map[models.Variant]*form.Notice{
				variant: {Message: "Invalid form input: " + err.Error()},
			})
		}
	}

	result := ctrl.Submit(c.UserContext())

	status := fiber.StatusOK
	var notices map[models.Variant]*form.Notice
	switch result.Status {
	case form.StatusValidationFailed:
		status = fiber.StatusUnprocessableEntity
	case form.StatusFailure:
		status = fiber.StatusBadGateway
	case form.StatusBusy:
		status = fiber.StatusConflict
		notices = map[models.Variant]*form.Notice{variant: {Message: result.Message}}
	}
	return h.render(c, status, notices)
}

// bind reads the posted fields. The manual form reads each field by name; the
// library form lets fiber's body parser fill models.ProductInput. Values are
// copied out of fiber's request buffers since drafts outlive the request.
func bind(c *fiber.Ctx, variant models.Variant) (map[string]string, error) {
	values := make(map[string]string, len(models.FieldNames))
	if variant == models.VariantLibrary {
		var in models.ProductInput
		if err := c.BodyParser(&in); err != nil {
			return nil, err
		}
		for name, v := range in.Values() {
			values[name] = utils.CopyString(v)
		}
		return values, nil
	}

	for _, name := range models.FieldNames {
		values[name] = utils.CopyString(c.FormValue(name))
	}
	return values, nil
}

func (h *FormHandler) render(c *fiber.Ctx, status int, notices map[models.Variant]*form.Notice) error {
	forms := middleware.Forms(c)
	views := make([]formView, 0, len(models.Variants))
	for _, variant := range models.Variants {
		views = append(views, newFormView(forms[variant], notices[variant]))
	}
	return c.Status(status).Render("index", fiber.Map{
		"Title": pageTitle,
		"Forms": views,
	})
}
