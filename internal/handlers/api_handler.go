package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"productform/internal/form"
	"productform/internal/models"
	"productform/internal/repositories"
	"productform/internal/services"
)

// APIHandler exposes product forms as JSON resources.
type APIHandler struct {
	service *services.FormService
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(service *services.FormService) *APIHandler {
	return &APIHandler{
		service: service,
	}
}

// RegisterRoutes registers the form routes with the Fiber app.
func (h *APIHandler) RegisterRoutes(router fiber.Router) {
	formRoutes := router.Group("/forms")
	formRoutes.Post("/", h.HandleCreateForm)
	formRoutes.Get("/:id", h.HandleGetForm)
	formRoutes.Patch("/:id/fields/:field", h.HandleSetField)
	formRoutes.Post("/:id/submit", h.HandleSubmit)
	formRoutes.Delete("/:id", h.HandleDeleteForm)
}

type createFormRequest struct {
	Variant string `json:"variant"`
}

type setFieldRequest struct {
	Value string `json:"value"`
}

// HandleCreateForm starts a form with a fresh draft.
func (h *APIHandler) HandleCreateForm(c *fiber.Ctx) error {
	var req createFormRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}
	if req.Variant == "" {
		req.Variant = string(models.VariantManual)
	}

	variant, err := models.ParseVariant(req.Variant)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid form variant",
			"error":   err.Error(),
		})
	}

	ctrl, err := h.service.CreateForm(variant)
	if err != nil {
		log.Printf("Error creating form: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create form",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(formResponse(ctrl))
}

// HandleGetForm returns the draft, errors and state of a form.
func (h *APIHandler) HandleGetForm(c *fiber.Ctx) error {
	ctrl, err := h.service.GetForm(c.Params("id"))
	if err != nil {
		return notFound(c, err)
	}
	return c.JSON(formResponse(ctrl))
}

// HandleSetField applies one field edit.
func (h *APIHandler) HandleSetField(c *fiber.Ctx) error {
	var req setFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	ctrl, err := h.service.SetField(c.Params("id"), c.Params("field"), req.Value)
	switch {
	case errors.Is(err, repositories.ErrFormNotFound):
		return notFound(c, err)
	case errors.Is(err, form.ErrUnknownField), errors.Is(err, form.ErrInvalidValue):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Field update failed",
			"error":   err.Error(),
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update field",
			"error":   err.Error(),
		})
	}
	return c.JSON(formResponse(ctrl))
}

// HandleSubmit validates the form and creates the product remotely.
func (h *APIHandler) HandleSubmit(c *fiber.Ctx) error {
	ctrl, result, err := h.service.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return notFound(c, err)
	}

	switch result.Status {
	case form.StatusValidationFailed:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  result.Errors,
		})
	case form.StatusBusy:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": result.Message,
		})
	case form.StatusFailure:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Product submission failed",
			"error":   result.Message,
			"form":    formResponse(ctrl),
		})
	}

	resp := fiber.Map{
		"message": result.Message,
		"form":    formResponse(ctrl),
	}
	if echoed := result.Outcome.Product; echoed != nil {
		resp["product"] = draftValues(*echoed)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleDeleteForm discards a form.
func (h *APIHandler) HandleDeleteForm(c *fiber.Ctx) error {
	if err := h.service.DeleteForm(c.Params("id")); err != nil {
		return notFound(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func notFound(c *fiber.Ctx, err error) error {
	if !errors.Is(err, repositories.ErrFormNotFound) {
		log.Printf("Error looking up form: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve form",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Form not found",
		"error":   err.Error(),
	})
}

func formResponse(ctrl *form.Controller) fiber.Map {
	resp := fiber.Map{
		"id":         ctrl.ID(),
		"variant":    ctrl.Variant(),
		"draft":      draftValues(ctrl.Draft()),
		"errors":     ctrl.Errors(),
		"submitting": ctrl.IsSubmitting(),
	}
	if n := ctrl.Notice(); n != nil {
		resp["notice"] = fiber.Map{"success": n.Success, "message": n.Message}
	}
	return resp
}
