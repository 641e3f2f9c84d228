package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/config"
	"github.com/annelo/go-voxel-world/internal/gameloop"
	"github.com/annelo/go-voxel-world/internal/logging"
	"github.com/annelo/go-voxel-world/internal/render"
	"github.com/annelo/go-voxel-world/internal/storage"
	"github.com/annelo/go-voxel-world/internal/terrain"
	"github.com/annelo/go-voxel-world/internal/world"
)

var (
	configPath = flag.String("config", "", "Путь к YAML-файлу конфигурации")
	worldPath  = flag.String("world", "", "Путь для хранения данных мира")
	worldName  = flag.String("name", "", "Название игрового мира")
	seed       = flag.Int64("seed", 0, "Сид для генерации мира (0 = случайный)")
)

func main() {
	// Парсим флаги командной строки
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			os.Stderr.WriteString("не удалось загрузить конфигурацию: " + err.Error() + "\n")
			os.Exit(1)
		}
		cfg = loaded
	}

	// Флаги имеют приоритет над файлом конфигурации
	if *worldPath != "" {
		cfg.World.Path = *worldPath
	}
	if *worldName != "" {
		cfg.World.Name = *worldName
	}
	if *seed != 0 {
		cfg.World.Seed = int32(*seed)
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		os.Stderr.WriteString("не удалось создать логгер: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	// Если сид не указан, генерируем случайный
	if cfg.World.Seed == 0 {
		cfg.World.Seed = int32(time.Now().UnixNano())
	}

	gen := terrain.New(cfg.World.Seed)
	sprites := chunk.DefaultSpriteSheet()
	backend := render.NewNoopBackend()
	effect := &render.DepthShadeEffect{Horizon: 0}

	st, err := storage.NewFileStorage(cfg.World.Path, cfg.World.Name, backend, effect, sprites, gen, log)
	if err != nil {
		log.Fatal("ошибка при инициализации хранилища", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Загружаем сохранённый мир или создаём новый
	w, err := st.LoadWorld(ctx)
	if err != nil {
		var notFound storage.ErrWorldNotFound
		if !errors.As(err, &notFound) {
			log.Fatal("ошибка при загрузке мира", zap.Error(err))
		}
		log.Info("сохранение не найдено, создаём новый мир",
			zap.String("name", cfg.World.Name),
			zap.Int32("seed", cfg.World.Seed))
		w = world.New(backend, effect, sprites, gen, log)
	}

	camera := &render.RangeCamera{Radius: cfg.World.ViewRadius}
	systems := []gameloop.System{gameloop.NewRenderSystem(camera)}
	if cfg.Autosave.Enabled {
		systems = append(systems, gameloop.NewAutosaveSystem(cfg.Autosave.Interval.Std()))
	}

	deps := gameloop.Dependencies{World: w, Storage: st, Log: log}
	loop := gameloop.NewLoop(cfg.Server.TickRate.Std(), deps, systems...)

	log.Info("игровой сервер запущен",
		zap.Int32("seed", cfg.World.Seed),
		zap.Duration("tick", cfg.Server.TickRate.Std()))

	loop.Run(ctx)

	// Корректное завершение: финальное сохранение и освобождение ресурсов
	log.Info("получен сигнал завершения, останавливаем сервер")
	if err := st.SaveWorld(context.Background(), w); err != nil {
		log.Error("ошибка финального сохранения мира", zap.Error(err))
	}
	if err := w.Dispose(); err != nil {
		log.Warn("мир не освобождён корректно", zap.Error(err))
	}
	if err := st.Close(); err != nil {
		log.Error("ошибка при закрытии хранилища", zap.Error(err))
	}
}
