package chunk_test

import (
	"bytes"
	"testing"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/render"
)

// solidGenerator заполняет весь объём одним типом блока.
type solidGenerator struct {
	blockType uint8
}

func (g solidGenerator) BlockAt(wx, wy, wz float64) uint8 {
	return g.blockType
}

// layerGenerator возвращает камень ниже заданной высоты, выше — воздух.
type layerGenerator struct {
	height float64
}

func (g layerGenerator) BlockAt(wx, wy, wz float64) uint8 {
	if wy < g.height {
		return chunk.BlockStone
	}
	return chunk.BlockAir
}

func TestChunk_GenerateSolid(t *testing.T) {
	backend := render.NewNoopBackend()
	c := chunk.Generate(render.Vec3{}, solidGenerator{chunk.BlockStone}, backend, chunk.DefaultSpriteSheet())

	if c.BlockCount() != chunk.Size*chunk.Size*chunk.Size {
		t.Fatalf("solid chunk block count: %d", c.BlockCount())
	}

	c.Draw(render.PassEffect{})
	if backend.Draws() != 1 {
		t.Fatalf("expected one draw call, got %d", backend.Draws())
	}
	if backend.Cells() != int64(c.BlockCount()) {
		t.Fatalf("mesh cell count %d does not match block count %d", backend.Cells(), c.BlockCount())
	}
}

func TestChunk_GenerateSkipsAir(t *testing.T) {
	c := chunk.Generate(render.Vec3{}, solidGenerator{chunk.BlockAir}, render.NewNoopBackend(), chunk.DefaultSpriteSheet())
	if c.BlockCount() != 0 {
		t.Fatalf("air-only chunk stored %d blocks", c.BlockCount())
	}
}

func TestChunk_GenerateUsesWorldCoordinates(t *testing.T) {
	// Чанк целиком ниже уровня слоя должен быть сплошным, выше — пустым
	gen := layerGenerator{height: 0}
	sprites := chunk.DefaultSpriteSheet()
	backend := render.NewNoopBackend()

	below := chunk.Generate(render.Vec3{Y: -chunk.WorldSize}, gen, backend, sprites)
	if below.BlockCount() != chunk.Size*chunk.Size*chunk.Size {
		t.Fatalf("chunk below the layer is not solid: %d blocks", below.BlockCount())
	}

	above := chunk.Generate(render.Vec3{Y: chunk.WorldSize}, gen, backend, sprites)
	if above.BlockCount() != 0 {
		t.Fatalf("chunk above the layer is not empty: %d blocks", above.BlockCount())
	}
}

func TestChunk_CodecRoundTrip(t *testing.T) {
	sprites := chunk.DefaultSpriteSheet()
	backend := render.NewNoopBackend()
	pos := render.Vec3{X: 8, Y: -8, Z: 16}

	orig := chunk.Generate(pos, layerGenerator{height: -4}, backend, sprites)

	var buf bytes.Buffer
	if err := orig.SaveTo(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := chunk.ReadFrom(&buf, pos, backend, sprites)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("current-version record was rejected")
	}
	if loaded.BlockCount() != orig.BlockCount() {
		t.Fatalf("block count mismatch: want %d, got %d", orig.BlockCount(), loaded.BlockCount())
	}
	if loaded.Bounds() != orig.Bounds() {
		t.Fatalf("bounds mismatch after reload")
	}
	if buf.Len() != 0 {
		t.Fatalf("codec left %d unread bytes in the stream", buf.Len())
	}
}

func TestChunk_ReadRejectsCorruptRecord(t *testing.T) {
	sprites := chunk.DefaultSpriteSheet()
	backend := render.NewNoopBackend()

	// Счётчик блоков превышает вместимость чанка
	oversized := []byte{1, 0, 0, 0, 0xFF, 0xFF}
	if _, err := chunk.ReadFrom(bytes.NewReader(oversized), render.Vec3{}, backend, sprites); err == nil {
		t.Fatalf("oversized block count accepted")
	}

	// Заявлено два блока, данных нет
	truncated := []byte{1, 0, 0, 0, 2, 0}
	if _, err := chunk.ReadFrom(bytes.NewReader(truncated), render.Vec3{}, backend, sprites); err == nil {
		t.Fatalf("truncated record accepted")
	}
}

func TestChunk_ReadSkipsForeignVersion(t *testing.T) {
	// Запись версии 99 структурно цела: читается и отвергается без ошибки
	record := []byte{99, 0, 0, 0, 1, 0, 2, 3, 4, 5}
	r := bytes.NewReader(record)

	c, err := chunk.ReadFrom(r, render.Vec3{}, render.NewNoopBackend(), chunk.DefaultSpriteSheet())
	if err != nil {
		t.Fatalf("skippable record returned error: %v", err)
	}
	if c != nil {
		t.Fatalf("foreign version record produced a chunk")
	}
	if r.Len() != 0 {
		t.Fatalf("skip left %d unread bytes", r.Len())
	}
}

func TestChunk_Dispose(t *testing.T) {
	backend := render.NewNoopBackend()
	c := chunk.Generate(render.Vec3{}, solidGenerator{chunk.BlockGrass}, backend, chunk.DefaultSpriteSheet())

	c.Dispose()
	c.Dispose() // повторный вызов безопасен

	// После освобождения чанк не рисуется
	c.Draw(render.PassEffect{})
	if backend.Draws() != 0 {
		t.Fatalf("disposed chunk was drawn")
	}
}
