package world

import (
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/annelo/go-voxel-world/internal/chunk"
	"github.com/annelo/go-voxel-world/internal/render"
)

// Magic — сигнатура файла мира (FourCC "WRLD"). Все целые в формате
// записываются little-endian, поэтому поток начинается с байтов
// 'W' 'R' 'L' 'D'.
const Magic uint32 = 0x444C5257

// Бинарный формат файла мира (все целые — 4 байта, little-endian):
//
//	magic      : uint32 = 0x444C5257
//	seed       : int32
//	chunkCount : int32
//	chunkCount раз:
//	    indexX, indexY, indexZ : int32
//	    запись чанка           : собственный кодек чанка

// SaveTo сериализует мир в поток: конверт (сигнатура, сид, счётчик,
// список индексов) пишет мир, содержимое каждого чанка — сам чанк.
// Снимок хранилища берётся под замком, чтобы не наблюдать хранилище,
// мутируемое фоновым генератором; сами чанки после вставки неизменны,
// поэтому их можно писать уже без замка.
func (w *World) SaveTo(out io.Writer) error {
	type entry struct {
		idx ChunkIndex
		c   *chunk.Chunk
	}

	w.mu.RLock()
	entries := make([]entry, 0, len(w.chunks))
	for idx, c := range w.chunks {
		entries = append(entries, entry{idx: idx, c: c})
	}
	w.mu.RUnlock()

	if err := binary.Write(out, binary.LittleEndian, Magic); err != nil {
		return fmt.Errorf("запись сигнатуры: %w", err)
	}
	if err := binary.Write(out, binary.LittleEndian, w.gen.Seed()); err != nil {
		return fmt.Errorf("запись сида: %w", err)
	}
	if err := binary.Write(out, binary.LittleEndian, int32(len(entries))); err != nil {
		return fmt.Errorf("запись счётчика чанков: %w", err)
	}

	for _, e := range entries {
		if err := binary.Write(out, binary.LittleEndian, []int32{e.idx.X, e.idx.Y, e.idx.Z}); err != nil {
			return fmt.Errorf("запись индекса чанка %s: %w", e.idx, err)
		}
		if err := e.c.SaveTo(out); err != nil {
			return fmt.Errorf("запись чанка %s: %w", e.idx, err)
		}
	}
	return nil
}

// ReadFrom восстанавливает мир из потока. Фоновое заселение не
// запускается: содержимое мира целиком определяется потоком.
//
// Ошибки различимы по типу: *FormatError — поток не начинается с
// сигнатуры и миром не является; *DeserializationError — сигнатура
// верна, но дальше поток повреждён. Паника до вызывающего не доходит
// никогда. Чанк, чью запись кодек чанка счёл непригодной (nil-чанк без
// ошибки), пропускается с предупреждением, остальные загружаются.
func ReadFrom(in io.Reader, backend render.Backend, effect render.Effect, sprites *render.SpriteSheet, gen TerrainGenerator, log *zap.Logger) (*World, error) {
	w := newWorld(backend, effect, sprites, gen, log)
	// Фонового рабочего нет — канал завершения сразу закрыт, чтобы
	// Dispose не ждал несуществующую горутину.
	close(w.workerDone)

	var magic uint32
	if err := binary.Read(in, binary.LittleEndian, &magic); err != nil {
		return nil, &DeserializationError{Err: fmt.Errorf("чтение сигнатуры: %w", err)}
	}
	if magic != Magic {
		w.log.Error("поток не является файлом мира",
			zap.String("magic", fmt.Sprintf("0x%08X", magic)))
		return nil, &FormatError{Magic: magic}
	}

	var seed int32
	if err := binary.Read(in, binary.LittleEndian, &seed); err != nil {
		return nil, &DeserializationError{Err: fmt.Errorf("чтение сида: %w", err)}
	}
	gen.SetSeed(seed)

	var count int32
	if err := binary.Read(in, binary.LittleEndian, &count); err != nil {
		return nil, &DeserializationError{Err: fmt.Errorf("чтение счётчика чанков: %w", err)}
	}
	if count < 0 {
		return nil, &DeserializationError{Err: fmt.Errorf("отрицательный счётчик чанков: %d", count)}
	}

	skipped := 0
	for i := int32(0); i < count; i++ {
		var raw [3]int32
		if err := binary.Read(in, binary.LittleEndian, &raw); err != nil {
			return nil, &DeserializationError{Err: fmt.Errorf("чтение индекса чанка %d: %w", i, err)}
		}
		idx := ChunkIndex{X: raw[0], Y: raw[1], Z: raw[2]}

		c, err := chunk.ReadFrom(in, idx.Pos(), backend, sprites)
		if err != nil {
			return nil, &DeserializationError{Err: fmt.Errorf("чтение чанка %s: %w", idx, err)}
		}
		if c == nil {
			// Запись цела, но содержимое непригодно: пропускаем
			// индекс вместо отказа от всей загрузки.
			w.log.Warn("пропущен непригодный чанк", zap.Stringer("index", idx))
			skipped++
			continue
		}

		w.mu.Lock()
		w.chunks[idx] = c
		w.mu.Unlock()
	}

	w.log.Info("мир загружен",
		zap.Int32("seed", seed),
		zap.Int("chunks", w.ChunkCount()),
		zap.Int("skipped", skipped))
	return w, nil
}
