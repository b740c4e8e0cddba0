// Package sprite models the per-frame hardware sprite list (OAM).
package sprite

// Size is the width and height of one sprite in pixels.
const Size = 8

// Sink receives sprite descriptors for the current frame.
type Sink interface {
	Submit(x, y int, tile, palette uint8)
}

// Sprite is one OAM entry. Coordinates wrap to 8 bits like the hardware does.
type Sprite struct {
	X, Y    uint8
	Tile    uint8
	Palette uint8
}

// OAM collects up to budget sprites per frame. Submissions past the budget
// are dropped without notice; earlier entries have draw priority.
type OAM struct {
	entries []Sprite
	budget  int
}

func NewOAM(budget int) *OAM {
	if budget < 0 {
		budget = 0
	}
	return &OAM{
		entries: make([]Sprite, 0, budget),
		budget:  budget,
	}
}

func (o *OAM) Clear() { o.entries = o.entries[:0] }

func (o *OAM) Submit(x, y int, tile, palette uint8) {
	if len(o.entries) >= o.budget {
		return
	}
	o.entries = append(o.entries, Sprite{
		X:       uint8(x),
		Y:       uint8(y),
		Tile:    tile,
		Palette: palette & 0x3,
	})
}

func (o *OAM) Len() int { return len(o.entries) }

// Entries returns the sprites submitted this frame in priority order. The
// slice is reused after the next Clear.
func (o *OAM) Entries() []Sprite { return o.entries }

// Recorder is a Sink that keeps every submission unbounded, with the
// original int coordinates.
type Recorder struct {
	Calls []Call
}

type Call struct {
	X, Y    int
	Tile    uint8
	Palette uint8
}

func (r *Recorder) Submit(x, y int, tile, palette uint8) {
	r.Calls = append(r.Calls, Call{X: x, Y: y, Tile: tile, Palette: palette})
}

func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }
