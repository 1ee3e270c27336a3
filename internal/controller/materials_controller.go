package controller

import (
	"errors"
	"fmt"
	"strings"

	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/internal/pkg/serverutils"
	"study-buddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMaterialsController interface {
	RegisterRoutes(r fiber.Router)
	GetMaterials(ctx *fiber.Ctx) error
}

type materialsController struct {
	tutorService service.ITutorService
	log          logger.ILogger
}

func NewMaterialsController(tutorService service.ITutorService, log logger.ILogger) IMaterialsController {
	return &materialsController{
		tutorService: tutorService,
		log:          log,
	}
}

func (c *materialsController) RegisterRoutes(r fiber.Router) {
	// Any GET whose path mentions the catalog serves it, wherever the
	// gateway stage mounts the API (/materials, /api/materials, ...).
	r.Get("/*", func(ctx *fiber.Ctx) error {
		if !strings.Contains(ctx.Path(), "/materials") {
			return ctx.Next()
		}
		return c.GetMaterials(ctx)
	})
}

// GetMaterials serves the full study-material catalog so the frontend has
// every topic while the agent only ever references material ids.
func (c *materialsController) GetMaterials(ctx *fiber.Ctx) error {
	raw, err := c.tutorService.GetMaterials(ctx.Context())
	if err != nil {
		if errors.Is(err, service.ErrMaterialsNotFound) {
			return ctx.Status(fiber.StatusNotFound).
				JSON(serverutils.ErrorBody("Materials file not found"))
		}
		c.log.Error("materials", "failed to load materials", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorBody(fmt.Sprintf("Error loading materials: %s", err.Error())))
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Status(fiber.StatusOK).Send(raw)
}
