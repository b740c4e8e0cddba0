package chr

import (
	"image"
	"image/color"
	"sort"
)

// FromImage cuts img into 8x8 tiles in row-major order starting at the top
// left and reduces each tile to at most four levels by luminance, darkest
// first. Fully transparent pixels, when present, take index 0 and the
// remaining colours share 1-3. Partial tiles at the right and bottom edges
// are skipped. It returns the bank and the number of complete tiles found,
// which may exceed BankTiles; extra tiles are dropped.
func FromImage(img image.Image) (*Bank, int) {
	bounds := img.Bounds()
	cols := bounds.Dx() / TileSize
	rows := bounds.Dy() / TileSize

	b := &Bank{}
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			i := ty*cols + tx
			if i >= BankTiles {
				continue
			}
			origin := image.Pt(bounds.Min.X+tx*TileSize, bounds.Min.Y+ty*TileSize)
			b.Tiles[i] = quantizeTile(img, origin)
		}
	}
	return b, cols * rows
}

func quantizeTile(img image.Image, origin image.Point) Tile {
	var luma [TileSize * TileSize]int
	transparent := false

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			c := color.NRGBAModel.Convert(img.At(origin.X+x, origin.Y+y)).(color.NRGBA)
			i := y*TileSize + x
			if c.A < 0x80 {
				luma[i] = -1
				transparent = true
				continue
			}
			luma[i] = (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
		}
	}

	seen := map[int]bool{}
	var levels []int
	for _, l := range luma {
		if l >= 0 && !seen[l] {
			seen[l] = true
			levels = append(levels, l)
		}
	}
	sort.Ints(levels)

	slots, first := 4, 0
	if transparent {
		slots, first = 3, 1
	}

	rank := make(map[int]uint8, len(levels))
	for r, l := range levels {
		idx := r
		if len(levels) > slots {
			idx = r * slots / len(levels)
		}
		rank[l] = uint8(first + idx)
	}

	var t Tile
	for i, l := range luma {
		if l >= 0 {
			t[i] = rank[l]
		}
	}
	return t
}
