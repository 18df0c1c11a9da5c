package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"productform/internal/form"
	"productform/internal/models"
	"productform/internal/repositories"
	"productform/internal/services"
)

// FormsKey is the fiber.Ctx local holding the session's forms, a
// map[models.Variant]*form.Controller.
const FormsKey = "forms"

func sessionKey(v models.Variant) string {
	return "form_" + string(v)
}

// FormSession gives every browser session one form per variant. Forms are
// created on first visit and recreated when the stored one has been evicted.
func FormSession(store *session.Store, service *services.FormService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Session lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load session",
				"error":   err.Error(),
			})
		}

		forms := make(map[models.Variant]*form.Controller, len(models.Variants))
		dirty := false
		for _, variant := range models.Variants {
			if id, ok := sess.Get(sessionKey(variant)).(string); ok {
				ctrl, err := service.GetForm(id)
				if err == nil {
					forms[variant] = ctrl
					continue
				}
				if !errors.Is(err, repositories.ErrFormNotFound) {
					return err
				}
			}

			ctrl, err := service.CreateForm(variant)
			if err != nil {
				log.Printf("Creating %s form failed: %v", variant, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not create form",
					"error":   err.Error(),
				})
			}
			sess.Set(sessionKey(variant), ctrl.ID())
			forms[variant] = ctrl
			dirty = true
		}

		if dirty {
			if err := sess.Save(); err != nil {
				log.Printf("Saving session failed: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not save session",
					"error":   err.Error(),
				})
			}
		}

		c.Locals(FormsKey, forms)
		return c.Next()
	}
}

// Forms returns the forms stored by FormSession.
func Forms(c *fiber.Ctx) map[models.Variant]*form.Controller {
	forms, _ := c.Locals(FormsKey).(map[models.Variant]*form.Controller)
	return forms
}
