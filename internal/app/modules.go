package app

import (
	"context"

	"github.com/vk/dynrefl/modules/geometry"
)

// Module is the interface that all registration modules must implement.
// Register must be safe to call more than once.
type Module interface {
	Register(ctx context.Context) error
}

// coreModules is the definitive list of all modules that are compiled into
// the dynrefl binary.
var coreModules = []Module{
	&geometry.Module{},
}
