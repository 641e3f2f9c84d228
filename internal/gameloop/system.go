package gameloop

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/annelo/go-voxel-world/internal/storage"
	"github.com/annelo/go-voxel-world/internal/world"
)

// System описывает логику, выполняемую каждый тик цикла.
type System interface {
	// Init вызывается один раз перед запуском цикла.
	Init(deps Dependencies) error
	// Tick вызывается каждый игровой тик.
	Tick(ctx context.Context, dt time.Duration)
	// Name возвращает читаемое имя системы.
	Name() string
}

// Dependencies передаются системам при инициализации.
type Dependencies struct {
	World   *world.World
	Storage storage.WorldStorage
	Log     *zap.Logger
}
