package controller

import (
	"encoding/json"
	"fmt"

	"study-buddy-be/internal/dto"
	"study-buddy-be/internal/pkg/logger"
	"study-buddy-be/internal/pkg/serverutils"
	"study-buddy-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
}

type chatController struct {
	tutorService service.ITutorService
	log          logger.ILogger
}

func NewChatController(tutorService service.ITutorService, log logger.ILogger) IChatController {
	return &chatController{
		tutorService: tutorService,
		log:          log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
	// Anything the other routes did not claim is treated as a chat turn.
	r.All("/*", c.SendChat)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	// Decode the raw body directly: clients may omit Content-Type, and the
	// body is JSON regardless of what the header claims.
	if body := ctx.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			c.log.Error("chat", "failed to decode request body", map[string]interface{}{
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(serverutils.ErrorBody(fmt.Sprintf("Internal server error: %s", err.Error())))
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorBody("Message is required"))
	}

	res, err := c.tutorService.SendChat(ctx.Context(), &req)
	if err != nil {
		c.log.Error("chat", "chat invocation failed", map[string]interface{}{
			"error":      err.Error(),
			"session_id": req.SessionID,
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorBody(fmt.Sprintf("Internal server error: %s", err.Error())))
	}

	return ctx.JSON(res)
}
