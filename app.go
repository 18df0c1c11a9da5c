package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"

	"productform/internal/config"
	"productform/internal/form"
	"productform/internal/handlers"
	"productform/internal/middleware"
	"productform/internal/models"
	"productform/internal/repositories"
	"productform/internal/services"
	"productform/internal/validation"
	"productform/internal/views"
)

// NewApp wires the forms, handlers and routes into a Fiber app. publisher may
// be nil to disable product created events.
func NewApp(cfg *config.Config, repo repositories.FormRepository, creator form.ProductCreator, publisher form.EventPublisher) (*fiber.App, error) {
	schema, err := validation.NewSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema validator: %w", err)
	}

	formService := services.NewFormService(repo, map[models.Variant]form.Validator{
		models.VariantManual:  validation.NewManual(),
		models.VariantLibrary: schema,
	}, creator, publisher)

	formHandler := handlers.NewFormHandler()
	apiHandler := handlers.NewAPIHandler(formService)

	// Field values outlive the request inside stored drafts, so fiber must
	// hand out copies instead of views into its reused buffers.
	app := fiber.New(fiber.Config{
		Immutable: true,
		Views:     html.NewFileSystem(http.FS(views.FS), ".html"),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"forms":  repo.Count(),
			"events": publisher != nil,
		})
	})

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	apiHandler.RegisterRoutes(apiV1)

	// --- HTML Forms ---
	store := session.New(session.Config{Expiration: cfg.SessionTTL})
	formHandler.RegisterRoutes(app, middleware.FormSession(store, formService))

	return app, nil
}
