package routers

import (
	"Cruder/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupLabelRouter(router fiber.Router, server *cmd.Server) {
	mountCrud(router, "/labels", server.LabelHandler)
}
