//go:build wireinject
// +build wireinject

package main

import (
	"Cruder/cmd"
	"Cruder/database"
	"Cruder/internal/config"
	"Cruder/internal/services"
	"github.com/google/wire"
)

func InitializeServer(configuration *config.Configuration) (*cmd.Server, func(), error) {
	wire.Build(
		cmd.NewServer,
		database.ProvideDatabase,
		provideBoxRepository,
		provideItemRepository,
		provideLabelRepository,
		provideBoxHandler,
		provideItemHandler,
		provideLabelHandler,
		providePurgers,
		services.NewLogService,
		services.NewJanitorService,
	)
	return nil, nil, nil
}
