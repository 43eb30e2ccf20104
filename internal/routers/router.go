package routers

import (
	"Cruder/cmd"
	"github.com/gofiber/fiber/v2"
)

type crudRoutes interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func SetupRoutes(app *fiber.App, server *cmd.Server, limiter fiber.Handler) {
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", limiter)
	SetupBoxRouter(api, server)
	SetupItemRouter(api, server)
	SetupLabelRouter(api, server)
	SetupJanitorRouter(app, server)
}

func mountCrud(router fiber.Router, path string, handler crudRoutes) {
	router.Get(path, handler.List)
	router.Post(path, handler.Create)
	router.Get(path+"/:id", handler.Get)
	router.Put(path+"/:id", handler.Update)
	router.Delete(path+"/:id", handler.Delete)
}
