package serverutils

import (
	"fmt"

	"study-buddy-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// CORSMiddleware applies the permissive CORS contract the frontend relies
// on. Fiber's bundled cors middleware answers preflight with 204; the API
// contract requires 200 with an empty body, so preflight is handled here.
func CORSMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Set("Access-Control-Allow-Origin", "*")

		if ctx.Method() == fiber.MethodOptions {
			ctx.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			ctx.Set("Access-Control-Allow-Headers", "Content-Type")
			ctx.Set("Access-Control-Max-Age", "86400")
			return ctx.Status(fiber.StatusOK).Send(nil)
		}

		return ctx.Next()
	}
}

// RecoverMiddleware converts panics into structured 500 responses so no
// failure ever escapes as a non-JSON body.
func RecoverMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server", "panic recovered", map[string]interface{}{
					"error": fmt.Sprintf("%v", r),
					"path":  ctx.Path(),
				})
				err = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody("Internal server error"))
			}
		}()
		return ctx.Next()
	}
}
