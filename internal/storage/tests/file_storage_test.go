package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/render"
	"github.com/annelo/go-voxel-world/internal/storage"
	"github.com/annelo/go-voxel-world/internal/terrain"
	"github.com/annelo/go-voxel-world/internal/world"
)

func newStorage(t *testing.T, dir, name string, seed int32) *storage.FileStorage {
	t.Helper()
	gen := terrain.New(seed)
	fs, err := storage.NewFileStorage(dir, name, render.NewNoopBackend(), render.PassEffect{}, chunk.DefaultSpriteSheet(), gen, nil)
	if err != nil {
		t.Fatalf("unable to create file storage: %v", err)
	}
	return fs
}

// populatedWorld создаёт мир и дожидается конца фонового заселения.
func populatedWorld(t *testing.T, seed int32) *world.World {
	t.Helper()
	gen := terrain.New(seed)
	w := world.New(render.NewNoopBackend(), render.PassEffect{}, chunk.DefaultSpriteSheet(), gen, nil)

	deadline := time.Now().Add(5 * time.Second)
	for w.ChunkCount() < 7*7*7 {
		if time.Now().After(deadline) {
			t.Fatalf("population did not finish: %d chunks", w.ChunkCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
	return w
}

// TestFileStorage_SaveLoad проверяет базовый цикл сохранения/загрузки мира.
func TestFileStorage_SaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	fs := newStorage(t, tmpDir, "world1", 123)
	defer fs.Close()

	w := populatedWorld(t, 123)
	defer w.Dispose()

	if err := fs.SaveWorld(context.Background(), w); err != nil {
		t.Fatalf("save world failed: %v", err)
	}

	// Файл мира появился, временного файла нет
	if _, err := os.Stat(filepath.Join(tmpDir, "world1.wld")); err != nil {
		t.Fatalf("world file missing after save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "world1.wld.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind")
	}

	loaded, err := fs.LoadWorld(context.Background())
	if err != nil {
		t.Fatalf("load world failed: %v", err)
	}
	defer loaded.Dispose()

	if loaded.Seed() != 123 {
		t.Fatalf("seed mismatch: want 123, got %d", loaded.Seed())
	}
	if loaded.ChunkCount() != w.ChunkCount() {
		t.Fatalf("chunk count mismatch: want %d, got %d", w.ChunkCount(), loaded.ChunkCount())
	}
}

func TestFileStorage_LoadMissingWorld(t *testing.T) {
	fs := newStorage(t, t.TempDir(), "ghost", 1)
	defer fs.Close()

	_, err := fs.LoadWorld(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing world")
	}

	var notFound storage.ErrWorldNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrWorldNotFound, got %v", err)
	}
	if notFound.Name != "ghost" {
		t.Fatalf("error names wrong world: %q", notFound.Name)
	}
}

// TestFileStorage_InfoPersistence проверяет, что метаданные переживают
// переоткрытие хранилища.
func TestFileStorage_InfoPersistence(t *testing.T) {
	tmpDir := t.TempDir()

	fs := newStorage(t, tmpDir, "world1", 5)
	info := fs.Info()
	if info.ID == "" {
		t.Fatalf("world info has empty id")
	}
	if info.Seed != 5 {
		t.Fatalf("world info seed mismatch: %d", info.Seed)
	}
	if err := fs.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened := newStorage(t, tmpDir, "world1", 5)
	defer reopened.Close()

	if got := reopened.Info(); got.ID != info.ID {
		t.Fatalf("world id changed after reopen: %q vs %q", got.ID, info.ID)
	}
}

func TestFileStorage_SeparateWorldsInOneDir(t *testing.T) {
	tmpDir := t.TempDir()

	a := newStorage(t, tmpDir, "alpha", 1)
	defer a.Close()
	b := newStorage(t, tmpDir, "beta", 2)
	defer b.Close()

	if a.Info().ID == b.Info().ID {
		t.Fatalf("different worlds share an id")
	}
}
