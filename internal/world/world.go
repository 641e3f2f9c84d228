// Package world содержит авторитетное хранилище чанков воксельного
// мира: фоновое заселение стартового региона, покадровую отрисовку с
// отсечением по видимости и бинарную (де)сериализацию всего мира.
package world

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/render"
)

// Константы фонового заселения
const (
	// populateRadius — радиус стартового кубического региона в чанках:
	// заселяются все индексы из куба [-3, 3] по каждой оси.
	populateRadius = 3

	// disposeTimeout — сколько Dispose ждёт завершения фонового генератора.
	disposeTimeout = 2 * time.Second
)

// TerrainGenerator — коллаборатор генерации ландшафта. Мир читает и
// пишет только сид (при сохранении и загрузке); генерация блоков
// делегируется целиком.
type TerrainGenerator interface {
	Seed() int32
	SetSeed(seed int32)
	chunk.Generator
}

// World — контейнер всех чанков. Владеет хранилищем чанков
// эксклюзивно; бэкенд, эффект, атлас и генератор — разделяемые ссылки,
// которые поставляются извне и живут дольше мира.
type World struct {
	backend render.Backend
	effect  render.Effect
	sprites *render.SpriteSheet
	gen     TerrainGenerator
	log     *zap.Logger

	// Единственный замок хранилища: его держат и вставка, и полная
	// итерация (отрисовка, снимок для сохранения).
	mu     sync.RWMutex
	chunks map[ChunkIndex]*chunk.Chunk

	cancel     context.CancelFunc
	workerDone chan struct{}

	stats frameStats
}

// New создаёт пустой мир и сразу запускает фоновое заселение
// стартового региона. Возвращается немедленно: мир пригоден для
// запросов и отрисовки, пока заселение ещё идёт.
func New(backend render.Backend, effect render.Effect, sprites *render.SpriteSheet, gen TerrainGenerator, log *zap.Logger) *World {
	w := newWorld(backend, effect, sprites, gen, log)

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	go w.populate(ctx)

	return w
}

func newWorld(backend render.Backend, effect render.Effect, sprites *render.SpriteSheet, gen TerrainGenerator, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		backend:    backend,
		effect:     effect,
		sprites:    sprites,
		gen:        gen,
		log:        log,
		chunks:     make(map[ChunkIndex]*chunk.Chunk),
		cancel:     func() {},
		workerDone: make(chan struct{}),
	}
}

// CreateChunk создаёт чанк по индексу и вставляет его в хранилище.
// Идемпотентна: если индекс уже занят, ничего не происходит. Безопасна
// для конкурентных вызовов — фоновый генератор и внешние вызывающие
// соревнуются за один и тот же замок.
func (w *World) CreateChunk(x, y, z int32) {
	idx := ChunkIndex{X: x, Y: y, Z: z}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.chunks[idx]; exists {
		return
	}
	w.chunks[idx] = chunk.Generate(idx.Pos(), w.gen, w.backend, w.sprites)
}

// HasChunk сообщает, есть ли чанк по индексу.
func (w *World) HasChunk(x, y, z int32) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.chunks[ChunkIndex{X: x, Y: y, Z: z}]
	return ok
}

// ChunkCount возвращает количество чанков в хранилище.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// Indices возвращает снимок множества индексов хранилища. Порядок
// не определён.
func (w *World) Indices() []ChunkIndex {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]ChunkIndex, 0, len(w.chunks))
	for idx := range w.chunks {
		out = append(out, idx)
	}
	return out
}

// Seed возвращает текущий сид генератора ландшафта.
func (w *World) Seed() int32 {
	return w.gen.Seed()
}

// populate — единственный фоновый рабочий мира: один раз заселяет
// кубический регион вокруг начала координат и завершается. Между
// вставками проверяет сигнал отмены, поэтому Dispose не ждёт весь цикл.
func (w *World) populate(ctx context.Context) {
	defer close(w.workerDone)

	start := time.Now()
	inserted := 0
	for x := int32(-populateRadius); x <= populateRadius; x++ {
		for y := int32(-populateRadius); y <= populateRadius; y++ {
			for z := int32(-populateRadius); z <= populateRadius; z++ {
				select {
				case <-ctx.Done():
					w.log.Info("фоновое заселение прервано",
						zap.Int("inserted", inserted))
					return
				default:
				}
				w.CreateChunk(x, y, z)
				inserted++
			}
		}
	}

	w.log.Info("фоновое заселение завершено",
		zap.Int("chunks", inserted),
		zap.Duration("elapsed", time.Since(start)))
}

// Dispose останавливает фоновый генератор и освобождает все чанки.
// Если генератор не завершился за disposeTimeout, возвращается
// ErrDisposeTimeout и чанки остаются нетронутыми — вызывающий решает,
// повторить или смириться с утечкой.
func (w *World) Dispose() error {
	w.cancel()

	select {
	case <-w.workerDone:
	case <-time.After(disposeTimeout):
		return ErrDisposeTimeout
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.chunks {
		c.Dispose()
	}
	w.chunks = make(map[ChunkIndex]*chunk.Chunk)
	return nil
}
