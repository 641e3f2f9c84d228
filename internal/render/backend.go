package render

import "sync/atomic"

// MeshCell — один видимый блок меша в локальных координатах чанка (0..7).
// Tile уже разрешён через SpriteSheet на этапе сборки меша.
type MeshCell struct {
	X, Y, Z uint8
	Tile    Tile
}

// Mesh — подготовленная к отрисовке геометрия чанка.
// Собирается лениво при первом Draw и живёт до Dispose чанка.
type Mesh struct {
	Origin Vec3
	Cells  []MeshCell
}

// Backend — приёмник вызовов отрисовки. Ядро мира не знает, что стоит
// за этим интерфейсом: терминал, настоящий GPU-бэкенд или заглушка.
type Backend interface {
	// DrawMesh отрисовывает меш с применением эффекта.
	DrawMesh(mesh *Mesh, effect Effect)
}

// Effect модифицирует вид блоков при отрисовке. Передаётся сквозь мир
// до бэкенда; содержимое для ядра непрозрачно.
type Effect interface {
	// Apply возвращает итоговый тайл блока с учётом его мировой высоты.
	Apply(tile Tile, worldY float64) Tile
}

// NoopBackend — заглушка для headless-запуска. Считает вызовы отрисовки,
// что удобно для тестов и серверной статистики.
type NoopBackend struct {
	draws atomic.Int64
	cells atomic.Int64
}

// NewNoopBackend создаёт пустой бэкенд.
func NewNoopBackend() *NoopBackend {
	return &NoopBackend{}
}

// DrawMesh учитывает вызов и ничего не рисует.
func (b *NoopBackend) DrawMesh(mesh *Mesh, _ Effect) {
	b.draws.Add(1)
	b.cells.Add(int64(len(mesh.Cells)))
}

// Draws возвращает количество отрисованных мешей с момента создания.
func (b *NoopBackend) Draws() int64 {
	return b.draws.Load()
}

// Cells возвращает суммарное количество отрисованных блоков.
func (b *NoopBackend) Cells() int64 {
	return b.cells.Load()
}

// PassEffect — эффект, не меняющий тайлы.
type PassEffect struct{}

// Apply возвращает тайл без изменений.
func (PassEffect) Apply(tile Tile, _ float64) Tile {
	return tile
}

// DepthShadeEffect затемняет блоки ниже заданного горизонта — дешёвая
// имитация глубины для терминального вывода.
type DepthShadeEffect struct {
	// Horizon — мировая высота, ниже которой блоки считаются «в тени».
	Horizon float64
}

// Apply применяет затемнение к тайлам ниже горизонта.
func (e DepthShadeEffect) Apply(tile Tile, worldY float64) Tile {
	if worldY < e.Horizon {
		tile.Fg = tile.Fg.Dim()
	}
	return tile
}
