// Package app implements the application layer for mason.
package app

import (
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/rulekey"
)

// Components contains the initialized application components. This struct
// provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Loader ports.RuleLoader
	Keys   *rulekey.Factory
	Files  ports.FileHashCache
}
