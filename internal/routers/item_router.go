package routers

import (
	"Cruder/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupItemRouter(router fiber.Router, server *cmd.Server) {
	mountCrud(router, "/items", server.ItemHandler)
}
