package terrain

import (
	"math"
	"sync"
)

// Константы компактного представления высоты
const (
	// Количество уровней квантования для int8
	heightResolution = 255

	// Границы нормализованной высоты (до умножения на amplitude)
	minHeightValue = -1.0
	maxHeightValue = 1.0

	// Вместимость кеша высот; при переполнении кеш очищается целиком
	heightCacheCapacity = 65536
)

// CompactHeight — квантованная высота поверхности. Один байт вместо
// восьми: для кеша точности ±1/255 от размаха достаточно.
type CompactHeight int8

// floatToCompact квантует нормализованную высоту [-1, 1] в int8.
func floatToCompact(value float64) CompactHeight {
	normalized := (value - minHeightValue) / (maxHeightValue - minHeightValue)
	scaled := normalized * heightResolution
	compact := int8(math.Min(127, math.Max(-127, math.Round(scaled)-128)))
	return CompactHeight(compact)
}

// compactToFloat восстанавливает нормализованную высоту из int8.
func compactToFloat(value CompactHeight) float64 {
	scaled := float64(int8(value)) + 127.0
	normalized := scaled / heightResolution
	return normalized*(maxHeightValue-minHeightValue) + minHeightValue
}

// columnKey — ключ кеша: колонка (x, z) с округлением вниз.
type columnKey struct {
	X, Z int32
}

// heightCache — кеш высот поверхности по колонкам. При достижении
// вместимости очищается целиком: простая стратегия, но для потока
// генерации чанков её хватает.
type heightCache struct {
	mu     sync.RWMutex
	cache  map[columnKey]CompactHeight
	hits   int
	misses int
}

func newHeightCache(capacity int) *heightCache {
	return &heightCache{
		cache: make(map[columnKey]CompactHeight, capacity/64),
	}
}

func keyFor(wx, wz float64) columnKey {
	return columnKey{
		X: int32(math.Floor(wx)),
		Z: int32(math.Floor(wz)),
	}
}

// get возвращает высоту из кеша, если колонка уже считалась.
func (hc *heightCache) get(wx, wz float64) (float64, bool) {
	key := keyFor(wx, wz)

	hc.mu.RLock()
	compact, ok := hc.cache[key]
	hc.mu.RUnlock()

	hc.mu.Lock()
	if ok {
		hc.hits++
	} else {
		hc.misses++
	}
	hc.mu.Unlock()

	if !ok {
		return 0, false
	}
	return compactToFloat(compact) * amplitude, true
}

// put сохраняет высоту колонки в кеш.
func (hc *heightCache) put(wx, wz float64, height float64) {
	key := keyFor(wx, wz)

	hc.mu.Lock()
	defer hc.mu.Unlock()

	if len(hc.cache) >= heightCacheCapacity {
		hc.cache = make(map[columnKey]CompactHeight, heightCacheCapacity/64)
	}
	hc.cache[key] = floatToCompact(height / amplitude)
}

func (hc *heightCache) stats() (hits, misses int) {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.hits, hc.misses
}
