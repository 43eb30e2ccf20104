package server

import (
	"Cruder/cmd"
	"Cruder/internal/config"
	"Cruder/internal/routers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func NewApp(server *cmd.Server, cfg *config.Configuration) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency:  cfg.Server.Concurrency * 1024,
		AppName:      "Cruder",
		ErrorHandler: ErrorHandler(server.LogService),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	routers.SetupRoutes(app, server, RateLimit(cfg.Server.RateLimit))
	return app
}
