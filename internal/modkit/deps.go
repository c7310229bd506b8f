// Package modkit wires modules into the service and carries their shared
// dependencies.
package modkit

import (
	"easel/internal/platform/cache"
	"easel/internal/platform/config"
	"easel/internal/platform/logger"
	"easel/internal/platform/reqctx"
)

// Deps is what every module receives at construction. Registries may be
// nil when a module does not need them.
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Caches  *cache.Registry
	Tracker *reqctx.Registry
}
