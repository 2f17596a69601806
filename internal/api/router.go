package api

import (
	"messbot/docs"
	"messbot/internal/api/handlers"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(
	chatHandler *handlers.ChatHandler,
	dataHandler *handlers.DataHandler,
	systemHandler *handlers.SystemHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	// Importing docs registers the swagger spec through its init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", systemHandler.Root)
	app.Get("/health", systemHandler.Health)
	app.Get("/config", systemHandler.Config)
	app.Get("/scheduler/jobs", systemHandler.Jobs)

	app.Post("/chat", chatHandler.Chat)

	app.Get("/inventory", dataHandler.ListInventory)
	app.Get("/feedback/recent", dataHandler.RecentFeedback)
	app.Post("/feedback", dataHandler.SubmitFeedback)

	return app
}
