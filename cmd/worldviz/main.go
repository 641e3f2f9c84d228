package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	termbox "github.com/nsf/termbox-go"
	"go.uber.org/zap"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/render"
	"github.com/annelo/go-voxel-world/internal/terrain"
	"github.com/annelo/go-voxel-world/internal/world"
)

var (
	worldPath = flag.String("path", "./data", "Путь до директории с файлами мира")
	worldName = flag.String("name", "default", "Название игрового мира")
	radius    = flag.Float64("radius", 48, "Радиус обзора камеры в мировых единицах")
)

// termboxBackend рисует меши чанков в терминал: вид сверху, на каждую
// экранную ячейку попадает самый высокий блок колонки.
type termboxBackend struct {
	camX, camZ    float64 // мировые координаты центра экрана
	width, height int
	depth         []float64 // высота верхнего блока на ячейку экрана
}

func newTermboxBackend() *termboxBackend {
	return &termboxBackend{}
}

// begin готовит буфер кадра под текущий размер терминала
func (b *termboxBackend) begin(camX, camZ float64) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	b.camX, b.camZ = camX, camZ
	b.width, b.height = termbox.Size()
	if len(b.depth) != b.width*b.height {
		b.depth = make([]float64, b.width*b.height)
	}
	for i := range b.depth {
		b.depth[i] = math.Inf(-1)
	}
}

func (b *termboxBackend) DrawMesh(mesh *render.Mesh, effect render.Effect) {
	for _, cell := range mesh.Cells {
		wx := mesh.Origin.X + float64(cell.X)
		wy := mesh.Origin.Y + float64(cell.Y)
		wz := mesh.Origin.Z + float64(cell.Z)

		px := b.width/2 + int(math.Round(wx-b.camX))
		py := b.height/2 + int(math.Round(wz-b.camZ))
		if px < 0 || px >= b.width || py < 2 || py >= b.height {
			continue
		}

		idx := py*b.width + px
		if wy <= b.depth[idx] {
			continue
		}
		b.depth[idx] = wy

		tile := cell.Tile
		if effect != nil {
			tile = effect.Apply(tile, wy)
		}
		termbox.SetCell(px, py, tile.Ch, attr(tile.Fg), attr(tile.Bg))
	}
}

// attr переводит цвет тайла в атрибуты termbox. Индексы палитры
// совпадают с терминальными цветами один к одному.
func attr(c render.Color) termbox.Attribute {
	a := termbox.Attribute(c.Palette())
	if c&render.AttrBold != 0 {
		a |= termbox.AttrBold
	}
	return a
}

func main() {
	flag.Parse()

	// Мир загружаем до инициализации termbox, чтобы ошибки попали в stderr
	gen := terrain.New(0)
	sprites := chunk.DefaultSpriteSheet()
	backend := newTermboxBackend()
	effect := &render.DepthShadeEffect{Horizon: 0}

	path := filepath.Join(*worldPath, *worldName+".wld")
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("не удалось открыть файл мира %s: %v", path, err)
	}
	w, err := world.ReadFrom(bufio.NewReader(f), backend, effect, sprites, gen, zap.NewNop())
	f.Close()
	if err != nil {
		log.Fatalf("не удалось загрузить мир: %v", err)
	}
	defer w.Dispose()

	if err := termbox.Init(); err != nil {
		log.Fatalf("termbox init error: %v", err)
	}
	defer termbox.Close()

	camera := &render.RangeCamera{Radius: *radius}
	last := time.Now()

	draw := func() {
		now := time.Now()
		dt := now.Sub(last)
		last = now

		backend.begin(camera.Center.X, camera.Center.Z)
		w.Draw(dt, camera)

		// Заголовок
		header := fmt.Sprintf("World %q seed=%d chunks=%d  Cam=(%.0f,%.0f) R=%.0f  стрелки — камера, +/- — радиус, q — выход",
			*worldName, w.Seed(), w.ChunkCount(), camera.Center.X, camera.Center.Z, camera.Radius)
		for i, r := range header {
			if i >= backend.width {
				break
			}
			termbox.SetCell(i, 0, r, termbox.ColorYellow|termbox.AttrBold, termbox.ColorBlack)
		}

		termbox.Flush()
	}

	draw()

	// Основной цикл
	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			c := camera.Center
			switch ev.Key {
			case termbox.KeyEsc, termbox.KeyCtrlC:
				return
			case termbox.KeyArrowLeft:
				camera.MoveTo(render.Vec3{X: c.X - 1, Y: c.Y, Z: c.Z})
			case termbox.KeyArrowRight:
				camera.MoveTo(render.Vec3{X: c.X + 1, Y: c.Y, Z: c.Z})
			case termbox.KeyArrowUp:
				camera.MoveTo(render.Vec3{X: c.X, Y: c.Y, Z: c.Z - 1})
			case termbox.KeyArrowDown:
				camera.MoveTo(render.Vec3{X: c.X, Y: c.Y, Z: c.Z + 1})
			default:
				if ev.Ch == 'q' {
					return
				}
				if ev.Ch == '+' {
					camera.Radius += 8
				}
				if ev.Ch == '-' && camera.Radius > 8 {
					camera.Radius -= 8
				}
			}
			draw()
		case termbox.EventError:
			log.Printf("termbox error: %v", ev.Err)
			return
		case termbox.EventResize:
			draw()
		}
	}
}
