package service

import "github.com/google/wire"

// ServiceSet wires every service constructor.
var ServiceSet = wire.NewSet(
	NewSettingService,
	NewUserService,
	NewVideoService,
	NewIngestService,
	NewServerService,
)
