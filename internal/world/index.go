package world

import (
	"fmt"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/render"
)

// ChunkIndex — целочисленная координата чанка в сетке мира. Значимый
// тип со структурным равенством, поэтому пригоден как ключ карты без
// дополнительного хеширования.
type ChunkIndex struct {
	X, Y, Z int32
}

// Pos возвращает мировую позицию угла чанка: индекс, умноженный на
// размер чанка. Позиция выводится детерминированно и после создания
// чанка не пересчитывается.
func (i ChunkIndex) Pos() render.Vec3 {
	return render.Vec3{
		X: float64(i.X) * chunk.WorldSize,
		Y: float64(i.Y) * chunk.WorldSize,
		Z: float64(i.Z) * chunk.WorldSize,
	}
}

// String возвращает ключ вида "x:y:z" для логов.
func (i ChunkIndex) String() string {
	return fmt.Sprintf("%d:%d:%d", i.X, i.Y, i.Z)
}
