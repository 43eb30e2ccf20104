package routers

import (
	"Cruder/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupBoxRouter(router fiber.Router, server *cmd.Server) {
	mountCrud(router, "/boxes", server.BoxHandler)
}
