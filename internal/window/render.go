package window

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/explosions/internal/chr"
	"github.com/iburimskiy/explosions/internal/config"
	"github.com/iburimskiy/explosions/internal/game"
	"github.com/iburimskiy/explosions/internal/palette"
	"github.com/iburimskiy/explosions/internal/sprite"
)

const atlasTiles = 16 // tiles per atlas row

// renderer draws OAM entries from a CHR bank. Each sprite palette gets its
// own 128x128 atlas with colour 0 left transparent.
type renderer struct {
	atlas [4]*ebiten.Image
	text  *ebiten.Image
}

func newRenderer(bank *chr.Bank) *renderer {
	r := &renderer{
		text: ebiten.NewImage(config.ScreenWidth, config.ScreenHeight),
	}
	r.setBank(bank)
	return r
}

func (r *renderer) setBank(bank *chr.Bank) {
	const side = atlasTiles * chr.TileSize
	for p := range r.atlas {
		pix := make([]byte, side*side*4)
		for i := range bank.Tiles {
			t := &bank.Tiles[i]
			ox, oy := (i%atlasTiles)*chr.TileSize, (i/atlasTiles)*chr.TileSize
			for y := 0; y < chr.TileSize; y++ {
				for x := 0; x < chr.TileSize; x++ {
					c := t.Pixel(x, y)
					if c == 0 {
						continue
					}
					rgba := palette.Sprites.Color(uint8(p), c)
					j := ((oy+y)*side + ox + x) * 4
					pix[j+0] = rgba.R
					pix[j+1] = rgba.G
					pix[j+2] = rgba.B
					pix[j+3] = 0xFF
				}
			}
		}

		if r.atlas[p] == nil {
			r.atlas[p] = ebiten.NewImage(side, side)
		}
		r.atlas[p].WritePixels(pix)
	}
}

func (r *renderer) tile(p, t uint8) *ebiten.Image {
	x, y := int(t)%atlasTiles*chr.TileSize, int(t)/atlasTiles*chr.TileSize
	return r.atlas[p&0x3].SubImage(image.Rect(x, y, x+chr.TileSize, y+chr.TileSize)).(*ebiten.Image)
}

func (r *renderer) draw(screen *ebiten.Image, g *game.Game) {
	bg := g.Background()
	screen.Fill(bg.Color(0, 0))

	// Debug font glyphs are white; tint them with background colour 3.
	r.text.Clear()
	ebitenutil.DebugPrintAt(r.text, game.Greeting, game.GreetingCol*config.PixelsPerTile, game.GreetingRow*config.PixelsPerTile)
	ebitenutil.DebugPrintAt(r.text, g.Status(), game.StatusCol*config.PixelsPerTile, game.StatusRow*config.PixelsPerTile)
	top := &ebiten.DrawImageOptions{}
	top.ColorScale.ScaleWithColor(bg.Color(0, 3))
	screen.DrawImage(r.text, top)

	entries := g.OAM().Entries()
	rows := sprite.Rows(entries, g.Config().Display.ScanlineLimit)

	// Lowest priority first so earlier entries end up on top.
	for i := len(entries) - 1; i >= 0; i-- {
		s := entries[i]
		img := r.tile(s.Palette, s.Tile)

		if rows[i] == 0xFF {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(s.X), float64(s.Y))
			screen.DrawImage(img, op)
			continue
		}

		b := img.Bounds()
		for row := 0; row < chr.TileSize; row++ {
			if rows[i]&(1<<row) == 0 {
				continue
			}
			line := img.SubImage(image.Rect(b.Min.X, b.Min.Y+row, b.Max.X, b.Min.Y+row+1)).(*ebiten.Image)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(s.X), float64(int(s.Y)+row))
			screen.DrawImage(line, op)
		}
	}
}
