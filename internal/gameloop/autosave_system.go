package gameloop

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AutosaveSystem периодически сохраняет мир в хранилище.
type AutosaveSystem struct {
	deps     Dependencies
	interval time.Duration
	elapsed  time.Duration
}

func NewAutosaveSystem(interval time.Duration) *AutosaveSystem {
	return &AutosaveSystem{interval: interval}
}

func (a *AutosaveSystem) Name() string { return "autosave" }

func (a *AutosaveSystem) Init(deps Dependencies) error {
	a.deps = deps
	return nil
}

func (a *AutosaveSystem) Tick(ctx context.Context, dt time.Duration) {
	a.elapsed += dt
	if a.elapsed < a.interval {
		return
	}
	a.elapsed = 0

	if err := a.deps.Storage.SaveWorld(ctx, a.deps.World); err != nil {
		a.deps.Log.Error("ошибка автосохранения мира", zap.Error(err))
	}
}
