package main

import (
	"Cruder/internal/handlers"
	"Cruder/internal/models"
	"Cruder/internal/repository"
	"Cruder/internal/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func provideBoxRepository(db *gorm.DB) (repository.GenericRepository[models.Box, uint], error) {
	return repository.NewGenericRepository[models.Box, uint](db)
}

func provideItemRepository(db *gorm.DB) (repository.GenericRepository[models.Item, uint], error) {
	return repository.NewGenericRepository[models.Item, uint](db)
}

func provideLabelRepository(db *gorm.DB) (repository.GenericRepository[models.Label, uuid.UUID], error) {
	return repository.NewGenericRepository[models.Label, uuid.UUID](db)
}

func provideBoxHandler(repo repository.GenericRepository[models.Box, uint], logService services.LogService) (*handlers.CrudHandler[models.Box, uint], error) {
	return handlers.NewCrudHandler[models.Box, uint]("boxes", repo, logService)
}

func provideItemHandler(repo repository.GenericRepository[models.Item, uint], logService services.LogService) (*handlers.CrudHandler[models.Item, uint], error) {
	return handlers.NewCrudHandler[models.Item, uint]("items", repo, logService)
}

func provideLabelHandler(repo repository.GenericRepository[models.Label, uuid.UUID], logService services.LogService) (*handlers.CrudHandler[models.Label, uuid.UUID], error) {
	return handlers.NewCrudHandler[models.Label, uuid.UUID]("labels", repo, logService)
}

func providePurgers(
	boxes repository.GenericRepository[models.Box, uint],
	items repository.GenericRepository[models.Item, uint],
	labels repository.GenericRepository[models.Label, uuid.UUID],
) services.Purgers {
	return services.Purgers{
		"boxes":  boxes,
		"items":  items,
		"labels": labels,
	}
}
