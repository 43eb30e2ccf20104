package cmd

import (
	"Cruder/internal/handlers"
	"Cruder/internal/models"
	"Cruder/internal/services"

	"github.com/google/uuid"
)

type Server struct {
	BoxHandler   *handlers.CrudHandler[models.Box, uint]
	ItemHandler  *handlers.CrudHandler[models.Item, uint]
	LabelHandler *handlers.CrudHandler[models.Label, uuid.UUID]
	LogService   services.LogService
	Janitor      *services.Janitor
}

func NewServer(
	boxHandler *handlers.CrudHandler[models.Box, uint],
	itemHandler *handlers.CrudHandler[models.Item, uint],
	labelHandler *handlers.CrudHandler[models.Label, uuid.UUID],
	logService services.LogService,
	janitor *services.Janitor,
) *Server {
	return &Server{
		BoxHandler:   boxHandler,
		ItemHandler:  itemHandler,
		LabelHandler: labelHandler,
		LogService:   logService,
		Janitor:      janitor,
	}
}
