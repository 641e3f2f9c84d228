package chunk

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/annelo/go-voxel-world/internal/render"
)

// Бинарный формат записи чанка (little-endian):
//
//	version    : uint16
//	flags      : uint16 (зарезервировано, пока 0)
//	blockCount : uint16
//	blockCount раз:
//	    x, y, z, type : по 1 байту
//
// Размер записи всегда выводится из blockCount, поэтому запись
// неподдерживаемой версии можно прочитать и пропустить, не теряя
// позицию в потоке.
const payloadVersion uint16 = 1

// SaveTo записывает чанк в поток в формате выше.
func (c *Chunk) SaveTo(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, payloadVersion); err != nil {
		return fmt.Errorf("запись версии чанка: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
		return fmt.Errorf("запись флагов чанка: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(c.blocks))); err != nil {
		return fmt.Errorf("запись счётчика блоков: %w", err)
	}
	for _, b := range c.blocks {
		if _, err := w.Write([]byte{b.X, b.Y, b.Z, b.Type}); err != nil {
			return fmt.Errorf("запись блока: %w", err)
		}
	}
	return nil
}

// ReadFrom читает одну запись чанка из потока. Возвращает (nil, nil),
// если запись цела структурно, но её содержимое непригодно (например,
// неподдерживаемая версия) — вызывающий пропускает такой чанк.
// Ошибка означает, что поток повреждён и продолжать чтение нельзя.
func ReadFrom(r io.Reader, pos render.Vec3, backend render.Backend, sprites *render.SpriteSheet) (*Chunk, error) {
	var version, flags, count uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("чтение версии чанка: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return nil, fmt.Errorf("чтение флагов чанка: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("чтение счётчика блоков: %w", err)
	}
	if int(count) > maxBlocks {
		return nil, fmt.Errorf("запись чанка повреждена: %d блоков при максимуме %d", count, maxBlocks)
	}

	data := make([]byte, int(count)*4)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("чтение блоков чанка: %w", err)
	}

	// Запись прочитана целиком; дальше решаем, пригодна ли она.
	if version != payloadVersion {
		return nil, nil
	}

	c := newChunk(pos, backend, sprites)
	c.blocks = make([]Block, 0, count)
	for i := 0; i < int(count); i++ {
		b := Block{
			X:    data[i*4],
			Y:    data[i*4+1],
			Z:    data[i*4+2],
			Type: data[i*4+3],
		}
		// Локальные координаты за пределами чанка — признак мусора.
		if b.X >= Size || b.Y >= Size || b.Z >= Size {
			return nil, nil
		}
		c.blocks = append(c.blocks, b)
	}
	return c, nil
}
