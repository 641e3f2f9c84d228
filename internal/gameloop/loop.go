package gameloop

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loop — главный цикл, вызывающий Tick всех зарегистрированных систем.
type Loop struct {
	systems []System
	tickDur time.Duration
	log     *zap.Logger
}

// NewLoop создаёт цикл с заданной длительностью тика.
func NewLoop(tick time.Duration, deps Dependencies, systems ...System) *Loop {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
		deps.Log = log
	}
	// Инициализируем все системы
	for _, s := range systems {
		if err := s.Init(deps); err != nil {
			log.Error("ошибка инициализации системы",
				zap.String("system", s.Name()),
				zap.Error(err))
		}
	}
	return &Loop{systems: systems, tickDur: tick, log: log}
}

// Run запускает бесконечный цикл до отмены ctx.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.tickDur)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case t := <-ticker.C:
			dt := t.Sub(last)
			last = t
			for _, s := range l.systems {
				func(sys System) {
					defer func() {
						if r := recover(); r != nil {
							l.log.Error("паника в системе",
								zap.String("system", sys.Name()),
								zap.Any("panic", r))
						}
					}()
					sys.Tick(ctx, dt)
				}(s)
			}
		case <-ctx.Done():
			l.log.Info("игровой цикл остановлен")
			return
		}
	}
}
