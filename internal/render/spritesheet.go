package render

// Color — цвет тайла. Младший байт — индекс палитры, старшие биты —
// атрибуты. Конкретный бэкенд переводит значение в свою схему цветов.
type Color uint16

// Базовая палитра (совместима по порядку с терминальными цветами).
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Атрибуты цвета.
const (
	AttrBold Color = 1 << (8 + iota)
	AttrDim
)

// Palette возвращает чистый индекс палитры без атрибутов.
func (c Color) Palette() Color {
	return c & 0xFF
}

// Dim возвращает затемнённый вариант цвета.
func (c Color) Dim() Color {
	return (c &^ AttrBold) | AttrDim
}

// Tile — визуальное представление одного типа блока.
type Tile struct {
	Ch rune
	Fg Color
	Bg Color
}

// SpriteSheet сопоставляет типу блока его тайл. Аналог текстурного
// атласа: собирается один раз и дальше только читается.
type SpriteSheet struct {
	tiles    map[uint8]Tile
	fallback Tile
}

// NewSpriteSheet создаёт атлас с заданным тайлом-заглушкой.
func NewSpriteSheet(fallback Tile) *SpriteSheet {
	return &SpriteSheet{
		tiles:    make(map[uint8]Tile),
		fallback: fallback,
	}
}

// Register назначает тайл типу блока. Повторная регистрация заменяет тайл.
func (s *SpriteSheet) Register(blockType uint8, tile Tile) {
	s.tiles[blockType] = tile
}

// TileFor возвращает тайл для типа блока либо заглушку.
func (s *SpriteSheet) TileFor(blockType uint8) Tile {
	if t, ok := s.tiles[blockType]; ok {
		return t
	}
	return s.fallback
}
