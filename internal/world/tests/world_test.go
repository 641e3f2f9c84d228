package world_test

import (
	"bytes"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/render"
	"github.com/annelo/go-voxel-world/internal/terrain"
	"github.com/annelo/go-voxel-world/internal/world"
)

// emptyWorldStream собирает минимальный корректный файл мира без чанков.
func emptyWorldStream(seed int32) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, world.Magic)
	binary.Write(buf, binary.LittleEndian, seed)
	binary.Write(buf, binary.LittleEndian, int32(0))
	return buf.Bytes()
}

// emptyWorld создаёт мир без фонового заселения: содержимое задают тесты.
func emptyWorld(t *testing.T, backend render.Backend, seed int32) *world.World {
	t.Helper()
	gen := terrain.New(0)
	w, err := world.ReadFrom(bytes.NewReader(emptyWorldStream(seed)), backend, render.PassEffect{}, chunk.DefaultSpriteSheet(), gen, nil)
	if err != nil {
		t.Fatalf("unable to build empty world: %v", err)
	}
	return w
}

// waitForChunks ждёт, пока фоновое заселение не доведёт мир до want чанков.
func waitForChunks(t *testing.T, w *world.World, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for w.ChunkCount() < want {
		if time.Now().After(deadline) {
			t.Fatalf("population did not finish: %d of %d chunks", w.ChunkCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWorld_PopulatesStartRegion(t *testing.T) {
	gen := terrain.New(42)
	w := world.New(render.NewNoopBackend(), render.PassEffect{}, chunk.DefaultSpriteSheet(), gen, nil)
	defer w.Dispose()

	// Стартовый регион — куб 7x7x7 вокруг начала координат
	waitForChunks(t, w, 7*7*7)

	if !w.HasChunk(0, 0, 0) {
		t.Fatalf("origin chunk missing after population")
	}
	if !w.HasChunk(-3, -3, -3) || !w.HasChunk(3, 3, 3) {
		t.Fatalf("corner chunks of the start region missing")
	}
	if w.HasChunk(4, 0, 0) {
		t.Fatalf("chunk outside the start region was populated")
	}
	if w.ChunkCount() != 7*7*7 {
		t.Fatalf("unexpected chunk count: %d", w.ChunkCount())
	}
}

func TestWorld_CreateChunkIdempotent(t *testing.T) {
	w := emptyWorld(t, render.NewNoopBackend(), 1)
	defer w.Dispose()

	w.CreateChunk(1, 2, 3)
	w.CreateChunk(1, 2, 3)

	if w.ChunkCount() != 1 {
		t.Fatalf("repeated create changed chunk count: %d", w.ChunkCount())
	}
	if !w.HasChunk(1, 2, 3) {
		t.Fatalf("chunk not found after create")
	}
	// Отрицательные индексы и ноль — такие же ключи, как положительные
	w.CreateChunk(-1, 0, 1)
	if !w.HasChunk(-1, 0, 1) {
		t.Fatalf("chunk with negative index not found")
	}
}

func TestWorld_DrawCullsByCamera(t *testing.T) {
	backend := render.NewNoopBackend()
	w := emptyWorld(t, backend, 1)
	defer w.Dispose()

	// Чанк у начала координат и чанк в 80 мировых единицах от него
	w.CreateChunk(0, 0, 0)
	w.CreateChunk(10, 0, 0)

	camera := &render.RangeCamera{Center: render.Vec3{X: 4, Y: 4, Z: 4}, Radius: 10}
	w.Draw(16*time.Millisecond, camera)

	if got := backend.Draws(); got != 1 {
		t.Fatalf("expected 1 visible chunk, backend drew %d", got)
	}

	// Камера с бесконечным охватом видит оба
	w.Draw(16*time.Millisecond, &render.RangeCamera{Radius: 1e9})
	if got := backend.Draws(); got != 3 {
		t.Fatalf("expected 3 draws total, got %d", got)
	}
}

func TestWorld_ConcurrentCreateAndDraw(t *testing.T) {
	gen := terrain.New(7)
	backend := render.NewNoopBackend()
	w := world.New(backend, render.PassEffect{}, chunk.DefaultSpriteSheet(), gen, nil)
	defer w.Dispose()

	// Внешние вставки соревнуются с фоновым заселением
	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int32) {
			defer wg.Done()
			w.CreateChunk(100+i, 0, 0)
			w.HasChunk(100+i, 0, 0)
		}(int32(i))
	}

	// Отрисовка идёт из одного потока параллельно вставкам
	camera := &render.RangeCamera{Radius: 1e9}
	for i := 0; i < 10; i++ {
		w.Draw(time.Millisecond, camera)
	}
	wg.Wait()

	for i := int32(0); i < n; i++ {
		if !w.HasChunk(100+i, 0, 0) {
			t.Fatalf("chunk %d lost during concurrent access", 100+i)
		}
	}
}

func TestWorld_Dispose(t *testing.T) {
	gen := terrain.New(3)
	w := world.New(render.NewNoopBackend(), render.PassEffect{}, chunk.DefaultSpriteSheet(), gen, nil)

	if err := w.Dispose(); err != nil {
		t.Fatalf("dispose returned error: %v", err)
	}
	if w.ChunkCount() != 0 {
		t.Fatalf("chunks remain after dispose: %d", w.ChunkCount())
	}
	// Повторный вызов безопасен
	if err := w.Dispose(); err != nil {
		t.Fatalf("second dispose returned error: %v", err)
	}
}

func TestWorld_IndicesSnapshot(t *testing.T) {
	w := emptyWorld(t, render.NewNoopBackend(), 1)
	defer w.Dispose()

	w.CreateChunk(0, 0, 0)
	w.CreateChunk(5, -5, 5)

	indices := w.Indices()
	if len(indices) != 2 {
		t.Fatalf("expected 2 indices, got %d", len(indices))
	}
	seen := make(map[world.ChunkIndex]bool)
	for _, idx := range indices {
		seen[idx] = true
	}
	if !seen[world.ChunkIndex{X: 0, Y: 0, Z: 0}] || !seen[world.ChunkIndex{X: 5, Y: -5, Z: 5}] {
		t.Fatalf("snapshot missing inserted indices: %v", indices)
	}
}
