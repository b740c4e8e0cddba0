package chr

import "math"

// Default tile layout used when no CHR file is loaded.
const (
	CogTile       = 0x00 // 3x3 metasprite, rows 16 tiles apart
	ExplosionTile = 0x30
	ExplosionLen  = 8
)

// Default draws the built-in bank: the cogwheel metasprite and an eight frame
// explosion that grows into a fading ring.
func Default() *Bank {
	b := &Bank{}
	drawCog(b)
	for f := 0; f < ExplosionLen; f++ {
		drawExplosion(&b.Tiles[ExplosionTile+f], f)
	}
	return b
}

func drawCog(b *Bank) {
	const (
		size  = 3 * TileSize
		teeth = 8
	)
	c := float64(size-1) / 2
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			dx, dy := float64(px)-c, float64(py)-c
			d := math.Hypot(dx, dy)
			a := math.Atan2(dy, dx)

			outer := 8.5
			if math.Sin(a*teeth) > 0 {
				outer = 11.5
			}

			var col uint8
			switch {
			case d < 3:
				col = 0
			case d < 4.5:
				col = 3
			case d <= outer-1:
				col = 2
			case d <= outer:
				col = 3
			}

			tile := &b.Tiles[CogTile+(py/TileSize)<<4+px/TileSize]
			tile.Set(px%TileSize, py%TileSize, col)
		}
	}
}

func drawExplosion(t *Tile, f int) {
	p := float64(f+1) / ExplosionLen
	outer := 1 + 3*p
	inner := 0.0
	if p > 0.4 {
		// stays a pixel inside outer so the last frame keeps a ring
		inner = (p - 0.4) / 0.6 * (outer - 1)
	}

	base := uint8(3)
	switch {
	case p > 0.75:
		base = 1
	case p > 0.4:
		base = 2
	}

	c := float64(TileSize-1) / 2
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c)
			if d > outer || d < inner {
				continue
			}
			// late frames break up into debris
			if f >= 5 && (x*7+y*3+f)%3 == 0 {
				continue
			}
			col := base
			if d > outer-1 && col > 1 {
				col--
			}
			t.Set(x, y, col)
		}
	}
}
