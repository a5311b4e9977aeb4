package rest

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sitehatch/market-backend/internal/application/dto"
	"github.com/sitehatch/market-backend/internal/infra/config"
	"github.com/sitehatch/market-backend/internal/presentation/ws"
)

func RegisterHandlers(app *fiber.App, s *Server, hub *ws.Hub, cfg *config.ServerConfig) {
	api := app.Group("/api/v1")

	api.Get("/templates", s.ListTemplates)
	api.Get("/templates/:id/quote", s.GetQuote)
	api.Get("/categories/:category/fields", s.ListCategoryFields)
	api.Post("/orders", s.SubmitOrder)
	api.Post("/messages", s.PostMessage)
	api.Get("/messages/:session", s.ListMessages)
	api.Post("/assist", s.Assist)
	api.Post("/checkout", s.Checkout)

	admin := api.Group("/admin", adminOnly(cfg.AdminToken))
	admin.Post("/templates", s.CreateTemplate)
	admin.Put("/templates/:id", s.UpdateTemplate)
	admin.Delete("/templates/:id", s.DeleteTemplate)
	admin.Get("/orders", s.ListOrders)
	admin.Get("/orders/:id", s.GetOrder)
	admin.Delete("/orders/:id", s.DeleteOrder)
	admin.Get("/knowledge", s.ListKnowledge)
	admin.Post("/knowledge", s.CreateKnowledge)
	admin.Delete("/knowledge/:id", s.DeleteKnowledge)
	admin.Get("/files/*", s.DownloadFile)

	app.Get("/ws/chat", adaptor.HTTPHandler(hub))
}

// adminOnly guards the back-office routes with the deployment's static token.
func adminOnly(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: "admin access is not configured"})
		}
		provided := c.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
		}
		return c.Next()
	}
}
