package chunk

import "github.com/annelo/go-voxel-world/internal/render"

// DefaultSpriteSheet возвращает атлас с тайлами для всех стандартных
// типов блоков. Незнакомые типы отображаются как '?'.
func DefaultSpriteSheet() *render.SpriteSheet {
	s := render.NewSpriteSheet(render.Tile{Ch: '?', Fg: render.ColorMagenta})
	s.Register(BlockAir, render.Tile{Ch: ' '})
	s.Register(BlockGrass, render.Tile{Ch: '_', Fg: render.ColorGreen})
	s.Register(BlockDirt, render.Tile{Ch: '.', Fg: render.ColorYellow})
	s.Register(BlockStone, render.Tile{Ch: '#', Fg: render.ColorWhite})
	s.Register(BlockWater, render.Tile{Ch: '~', Fg: render.ColorBlue})
	s.Register(BlockSand, render.Tile{Ch: ',', Fg: render.ColorYellow})
	s.Register(BlockSnow, render.Tile{Ch: '*', Fg: render.ColorWhite | render.AttrBold})
	return s
}
