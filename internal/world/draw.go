package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/annelo/go-voxel-world/internal/render"
)

// statsWindow — длительность окна накопления статистики отрисовки.
const statsWindow = time.Second

// frameStats — скользящие счётчики отрисовки. Мутируются только из
// потока отрисовки, поэтому не защищены замком и не разделяются между
// потоками. Окна смыкаются: при сбросе переносится только перехлёст
// игрового времени.
type frameStats struct {
	frames   int
	visible  int
	gameTime time.Duration
	drawTime time.Duration
}

// fold добавляет результаты одного кадра и, когда накопилась секунда
// игрового времени, публикует средние значения за окно.
func (s *frameStats) fold(frameTime time.Duration, visible int, drawTime time.Duration, log *zap.Logger) {
	s.frames++
	s.visible += visible
	s.gameTime += frameTime
	s.drawTime += drawTime

	if s.gameTime < statsWindow {
		return
	}

	frames := float64(s.frames)
	log.Info("статистика отрисовки",
		zap.Float64("chunks_per_frame", float64(s.visible)/frames),
		zap.Float64("draw_ms_per_frame", float64(s.drawTime.Microseconds())/1000.0/frames),
		zap.Int("frames", s.frames))

	s.frames = 0
	s.visible = 0
	s.drawTime = 0
	s.gameTime -= statsWindow
}

// Draw отрисовывает один кадр: под замком хранилища перебирает все
// чанки, отсекает невидимые по предикату камеры и делегирует отрисовку
// видимых. Замок держится всю итерацию — хранилище не переживает
// конкурентную мутацию во время обхода. Вызывается только из потока
// отрисовки.
func (w *World) Draw(frameTime time.Duration, camera render.Camera) {
	start := time.Now()
	visible := 0

	w.mu.RLock()
	for _, c := range w.chunks {
		if !camera.CanSee(c.Bounds()) {
			continue
		}
		c.Draw(w.effect)
		visible++
	}
	w.mu.RUnlock()

	// Счётчики обновляются уже без замка: они принадлежат потоку
	// отрисовки и к хранилищу отношения не имеют.
	w.stats.fold(frameTime, visible, time.Since(start), w.log)
}
