package gameloop

import (
	"context"
	"time"

	"github.com/annelo/go-voxel-world/internal/render"
)

// RenderSystem отрисовывает видимые чанки мира каждый тик.
type RenderSystem struct {
	deps   Dependencies
	camera *render.RangeCamera
}

func NewRenderSystem(camera *render.RangeCamera) *RenderSystem {
	return &RenderSystem{camera: camera}
}

func (r *RenderSystem) Name() string { return "render" }

func (r *RenderSystem) Init(deps Dependencies) error {
	r.deps = deps
	return nil
}

func (r *RenderSystem) Tick(ctx context.Context, dt time.Duration) {
	r.deps.World.Draw(dt, r.camera)
}

// Camera возвращает камеру системы для внешнего управления.
func (r *RenderSystem) Camera() *render.RangeCamera { return r.camera }
