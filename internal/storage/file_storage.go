package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/annelo/go-voxel-world/internal/render"
	"github.com/annelo/go-voxel-world/internal/world"
)

// FileStorage реализует интерфейс WorldStorage поверх одного файла мира
// и JSON-файла с метаданными рядом с ним
type FileStorage struct {
	basePath  string // Базовый путь для файлов хранилища
	worldName string // Название мира

	// Зависимости, необходимые для восстановления мира из файла
	backend render.Backend
	effect  render.Effect
	sprites *render.SpriteSheet
	gen     world.TerrainGenerator

	log *zap.Logger

	worldInfo *WorldInfo
	infoMutex sync.Mutex

	closeOnce sync.Once
}

// NewFileStorage создает новое файловое хранилище мира.
// Если хранилище уже содержит метаданные этого мира, они загружаются,
// иначе создаются новые с уникальным идентификатором.
func NewFileStorage(basePath, worldName string, backend render.Backend, effect render.Effect, sprites *render.SpriteSheet, gen world.TerrainGenerator, log *zap.Logger) (*FileStorage, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию хранилища: %w", err)
	}

	storage := &FileStorage{
		basePath:  basePath,
		worldName: worldName,
		backend:   backend,
		effect:    effect,
		sprites:   sprites,
		gen:       gen,
		log:       log,
	}

	// Загружаем или создаем информацию о мире
	info, err := storage.loadInfo()
	if err != nil {
		now := time.Now().Unix()
		info = &WorldInfo{
			ID:         uuid.NewString(),
			Name:       worldName,
			Seed:       gen.Seed(),
			Version:    "wrld-1.0.0",
			CreatedAt:  now,
			LastSaveAt: now,
		}
		if err := saveJSONFile(storage.infoPath(), info); err != nil {
			return nil, fmt.Errorf("ошибка при сохранении информации о мире: %w", err)
		}
		log.Info("создано новое хранилище мира",
			zap.String("id", info.ID),
			zap.String("name", worldName),
			zap.Int32("seed", info.Seed))
	}

	storage.worldInfo = info
	return storage, nil
}

// SaveWorld сохраняет мир во временный файл и атомарно подменяет текущий
func (s *FileStorage) SaveWorld(ctx context.Context, w *world.World) error {
	path := s.worldPath()
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("не удалось создать временный файл мира: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := w.SaveTo(bw); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка при записи мира: %w", err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка при записи мира: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("ошибка при сбросе файла мира на диск: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось подменить файл мира: %w", err)
	}

	// Обновляем метаданные после успешной записи
	s.infoMutex.Lock()
	s.worldInfo.Seed = w.Seed()
	s.worldInfo.LastSaveAt = time.Now().Unix()
	info := *s.worldInfo
	s.infoMutex.Unlock()

	if err := saveJSONFile(s.infoPath(), &info); err != nil {
		return fmt.Errorf("ошибка при сохранении информации о мире: %w", err)
	}

	s.log.Info("мир сохранён",
		zap.String("path", path),
		zap.Int("chunks", w.ChunkCount()))
	return nil
}

// LoadWorld загружает мир из файла хранилища
func (s *FileStorage) LoadWorld(ctx context.Context) (*world.World, error) {
	f, err := os.Open(s.worldPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrWorldNotFound{Name: s.worldName}
		}
		return nil, fmt.Errorf("не удалось открыть файл мира: %w", err)
	}
	defer f.Close()

	return world.ReadFrom(bufio.NewReader(f), s.backend, s.effect, s.sprites, s.gen, s.log)
}

// Info возвращает метаданные сохранённого мира
func (s *FileStorage) Info() *WorldInfo {
	s.infoMutex.Lock()
	defer s.infoMutex.Unlock()
	info := *s.worldInfo
	return &info
}

// Close закрывает хранилище и освобождает ресурсы
func (s *FileStorage) Close() error {
	var retErr error
	s.closeOnce.Do(func() {
		s.infoMutex.Lock()
		info := *s.worldInfo
		s.infoMutex.Unlock()
		retErr = saveJSONFile(s.infoPath(), &info)
	})
	return retErr
}

func (s *FileStorage) worldPath() string {
	return filepath.Join(s.basePath, s.worldName+".wld")
}

func (s *FileStorage) infoPath() string {
	return filepath.Join(s.basePath, s.worldName+".info.json")
}

// loadInfo загружает метаданные мира, если они есть
func (s *FileStorage) loadInfo() (*WorldInfo, error) {
	infoPath := s.infoPath()
	if _, err := os.Stat(infoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("информация о мире не найдена")
	}

	var info WorldInfo
	if err := loadJSONFile(infoPath, &info); err != nil {
		return nil, fmt.Errorf("ошибка при загрузке информации о мире: %w", err)
	}
	return &info, nil
}

// Вспомогательные функции для работы с JSON
func saveJSONFile(path string, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, jsonData, 0644)
}

func loadJSONFile(path string, data interface{}) error {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(fileData, data)
}
