package sprite

// Rows reports, for each sprite in entries, which of its 8 pixel rows are
// drawn when at most limit sprites may share a scanline. Bit n of the result
// is set when row n is visible. Sprites earlier in entries win. A limit of 0
// or less draws everything.
func Rows(entries []Sprite, limit int) []uint8 {
	rows := make([]uint8, len(entries))
	if limit <= 0 {
		for i := range rows {
			rows[i] = 0xFF
		}
		return rows
	}

	var perLine [256]int
	for i, s := range entries {
		for row := 0; row < Size; row++ {
			line := int(s.Y) + row
			if line >= len(perLine) {
				break
			}
			if perLine[line] >= limit {
				continue
			}
			perLine[line]++
			rows[i] |= 1 << row
		}
	}
	return rows
}
