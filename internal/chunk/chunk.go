// Package chunk реализует отдельный чанк воксельного мира: генерацию
// содержимого, ленивую сборку меша, отрисовку и собственный бинарный кодек.
package chunk

import (
	"github.com/annelo/go-voxel-world/internal/render"
)

// Константы геометрии чанка
const (
	// Size — количество блоков вдоль одной оси
	Size = 8

	// WorldSize — размер чанка в мировых единицах (1 блок = 1 единица)
	WorldSize = 8.0

	// maxBlocks — максимум непустых блоков в одном чанке
	maxBlocks = Size * Size * Size
)

// Типы блоков
const (
	BlockAir uint8 = iota
	BlockGrass
	BlockDirt
	BlockStone
	BlockWater
	BlockSand
	BlockSnow
)

// Block — один непустой воксель в локальных координатах чанка (0..7).
type Block struct {
	X, Y, Z uint8
	Type    uint8
}

// Generator поставляет тип блока по мировым координатам. Алгоритм
// генерации для чанка непрозрачен.
type Generator interface {
	BlockAt(wx, wy, wz float64) uint8
}

// Chunk — кубический участок мира фиксированного размера. Позиция
// задаётся при создании и больше не меняется; после вставки в мир
// чанком владеет исключительно хранилище чанков.
type Chunk struct {
	pos    render.Vec3
	bounds render.AABB
	blocks []Block

	// Разделяемые ссылки на коллабораторов рендера; чанк ими не владеет.
	backend render.Backend
	sprites *render.SpriteSheet

	// Меш собирается лениво при первом Draw.
	mesh     *render.Mesh
	disposed bool
}

// Generate создаёт чанк в позиции pos и заполняет его блоками через
// генератор ландшафта. Сохраняются только непустые блоки.
func Generate(pos render.Vec3, gen Generator, backend render.Backend, sprites *render.SpriteSheet) *Chunk {
	c := newChunk(pos, backend, sprites)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				bt := gen.BlockAt(pos.X+float64(x), pos.Y+float64(y), pos.Z+float64(z))
				if bt == BlockAir {
					continue
				}
				c.blocks = append(c.blocks, Block{
					X:    uint8(x),
					Y:    uint8(y),
					Z:    uint8(z),
					Type: bt,
				})
			}
		}
	}
	return c
}

func newChunk(pos render.Vec3, backend render.Backend, sprites *render.SpriteSheet) *Chunk {
	return &Chunk{
		pos:     pos,
		bounds:  render.NewAABB(pos, WorldSize),
		backend: backend,
		sprites: sprites,
	}
}

// Pos возвращает мировую позицию угла чанка.
func (c *Chunk) Pos() render.Vec3 {
	return c.pos
}

// Bounds возвращает ограничивающий объём чанка.
func (c *Chunk) Bounds() render.AABB {
	return c.bounds
}

// BlockCount возвращает количество непустых блоков.
func (c *Chunk) BlockCount() int {
	return len(c.blocks)
}

// Draw отрисовывает чанк через бэкенд с применением эффекта.
// Вызывается только из потока отрисовки; после вставки в мир чанк
// не мутируется другими потоками, поэтому ленивый меш безопасен.
func (c *Chunk) Draw(effect render.Effect) {
	if c.disposed {
		return
	}
	if c.mesh == nil {
		c.mesh = c.buildMesh()
	}
	c.backend.DrawMesh(c.mesh, effect)
}

// buildMesh собирает меш из блоков, разрешая тайлы через атлас.
func (c *Chunk) buildMesh() *render.Mesh {
	mesh := &render.Mesh{
		Origin: c.pos,
		Cells:  make([]render.MeshCell, 0, len(c.blocks)),
	}
	for _, b := range c.blocks {
		mesh.Cells = append(mesh.Cells, render.MeshCell{
			X: b.X, Y: b.Y, Z: b.Z,
			Tile: c.sprites.TileFor(b.Type),
		})
	}
	return mesh
}

// Dispose освобождает ресурсы чанка. Повторный вызов безопасен.
func (c *Chunk) Dispose() {
	c.disposed = true
	c.mesh = nil
	c.blocks = nil
}
