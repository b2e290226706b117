//go:build wireinject
// +build wireinject

package bootstrap

import (
	"github.com/google/wire"

	"quipvid/database"
	"quipvid/database/repository"
	"quipvid/web/service"
)

func InitializeApp() (*App, error) {
	wire.Build(
		database.GetDBProvider,
		repository.RepositorySet,
		service.ServiceSet,
		NewApp,
	)
	return nil, nil
}
