package repository

import (
	"github.com/google/wire"
)

// RepositorySet bundles all repository providers.
var RepositorySet = wire.NewSet(
	NewVideoRepository,
	NewUserRepository,
	NewSettingRepository,
)
