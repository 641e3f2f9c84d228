// Package terrain реализует детерминированный генератор ландшафта на
// основе шума Перлина. Мир читает и пишет только сид; сам алгоритм для
// ядра непрозрачен.
package terrain

import (
	"sync"

	"github.com/aquilax/go-perlin"

	"github.com/annelo/go-voxel-world/internal/chunk"
)

// Параметры шума и рельефа
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3

	// horizontalScale растягивает шум по горизонтали
	horizontalScale = 32.0

	// amplitude — размах высоты рельефа в мировых единицах
	amplitude = 6.0

	// seaLevel — уровень воды
	seaLevel = 0.0

	// snowLine — высота, начиная с которой поверхность покрыта снегом
	snowLine = 4.0
)

// Generator — генератор ландшафта с изменяемым сидом. Безопасен для
// конкурентного чтения; смена сида сбрасывает кеш высот.
type Generator struct {
	mu    sync.RWMutex
	seed  int32
	noise *perlin.Perlin
	cache *heightCache
}

// New создаёт генератор с заданным сидом.
func New(seed int32) *Generator {
	g := &Generator{}
	g.SetSeed(seed)
	return g
}

// Seed возвращает текущий сид.
func (g *Generator) Seed() int32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.seed
}

// SetSeed меняет сид, пересоздаёт шум и сбрасывает кеш высот.
func (g *Generator) SetSeed(seed int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seed = seed
	g.noise = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, int64(seed))
	g.cache = newHeightCache(heightCacheCapacity)
}

// heightAt возвращает высоту поверхности в точке (wx, wz).
func (g *Generator) heightAt(wx, wz float64) float64 {
	if h, ok := g.cache.get(wx, wz); ok {
		return h
	}
	n := g.noise.Noise2D(wx/horizontalScale, wz/horizontalScale)
	h := n * amplitude
	g.cache.put(wx, wz, h)
	return h
}

// BlockAt возвращает тип блока в мировой точке. Детерминированно:
// один и тот же сид всегда даёт один и тот же результат.
func (g *Generator) BlockAt(wx, wy, wz float64) uint8 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	h := g.heightAt(wx, wz)
	switch {
	case wy > h:
		// Над поверхностью: вода до уровня моря, выше — воздух
		if wy <= seaLevel {
			return chunk.BlockWater
		}
		return chunk.BlockAir
	case wy > h-1:
		// Верхний слой поверхности
		if h >= snowLine {
			return chunk.BlockSnow
		}
		if h <= seaLevel+0.5 {
			return chunk.BlockSand
		}
		return chunk.BlockGrass
	case wy > h-4:
		return chunk.BlockDirt
	default:
		return chunk.BlockStone
	}
}

// CacheStats возвращает счётчики попаданий и промахов кеша высот.
func (g *Generator) CacheStats() (hits, misses int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cache.stats()
}
