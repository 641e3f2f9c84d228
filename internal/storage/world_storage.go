package storage

import (
	"context"

	"github.com/annelo/go-voxel-world/internal/world"
)

// WorldStorage представляет интерфейс для хранения данных игрового мира
type WorldStorage interface {
	// SaveWorld сохраняет мир целиком в хранилище
	SaveWorld(ctx context.Context, w *world.World) error

	// LoadWorld загружает мир из хранилища
	// Возвращает ошибку типа ErrWorldNotFound, если сохранение не найдено
	LoadWorld(ctx context.Context) (*world.World, error)

	// Info возвращает общую информацию о сохранённом мире
	Info() *WorldInfo

	// Close закрывает хранилище и освобождает ресурсы
	Close() error
}

// WorldInfo содержит общую информацию о игровом мире
type WorldInfo struct {
	ID         string `json:"id"`           // Уникальный идентификатор мира
	Name       string `json:"name"`         // Название мира
	Seed       int32  `json:"seed"`         // Сид для генерации
	Version    string `json:"version"`      // Версия формата сохранения
	CreatedAt  int64  `json:"created_at"`   // Время создания (Unix timestamp)
	LastSaveAt int64  `json:"last_save_at"` // Время последнего сохранения (Unix timestamp)
}

// ErrWorldNotFound возвращается, когда сохранение мира не найдено в хранилище
type ErrWorldNotFound struct {
	Name string
}

func (e ErrWorldNotFound) Error() string {
	return "мир не найден в хранилище: " + e.Name
}
