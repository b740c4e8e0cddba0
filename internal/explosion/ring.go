// Package explosion keeps the short-lived explosion animations of the game
// loop in a fixed-capacity ring and turns them into sprites once per frame.
package explosion

import "github.com/iburimskiy/explosions/internal/sprite"

// Params are the animation constants shared by every effect in a ring.
type Params struct {
	Frames    int // animation frames in the tile bank
	FrameSpan int // screen frames per animation frame
	Lifetime  int // starting countdown value, at most Frames*FrameSpan-1
	BaseTile  uint8
	Palette   uint8
}

// Effect is one running explosion. Y is the anchor the effect was spawned at;
// the drawn position rises one pixel per frame from there.
type Effect struct {
	X, Y      int
	Remaining int
}

// Ring holds up to Cap() effects in creation order. Spawning into a full ring
// drops the oldest effect.
type Ring struct {
	params Params
	slots  []Effect
	head   int
	count  int
}

func NewRing(capacity int, p Params) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	if p.Frames < 1 {
		p.Frames = 1
	}
	if p.FrameSpan < 1 {
		p.FrameSpan = 1
	}
	if p.Lifetime < 1 {
		p.Lifetime = max(p.Frames*p.FrameSpan-1, 1)
	}
	return &Ring{
		params: p,
		slots:  make([]Effect, capacity),
	}
}

func (r *Ring) Params() Params { return r.params }
func (r *Ring) Cap() int       { return len(r.slots) }
func (r *Ring) Len() int       { return r.count }

// Spawn starts a new effect anchored at (x, y).
func (r *Ring) Spawn(x, y int) {
	tail := (r.head + r.count) % len(r.slots)
	r.slots[tail] = Effect{X: x, Y: y, Remaining: r.params.Lifetime}

	if r.count == len(r.slots) {
		// tail overwrote the oldest slot
		r.head = (r.head + 1) % len(r.slots)
		return
	}
	r.count++
}

// AdvanceAndRender submits one sprite per live effect, oldest first, then ages
// every effect by one frame. Effects whose countdown reaches zero are retired.
func (r *Ring) AdvanceAndRender(sink sprite.Sink) {
	expired := 0
	for i := 0; i < r.count; i++ {
		e := &r.slots[(r.head+i)%len(r.slots)]

		sink.Submit(e.X, r.spriteY(e), r.params.BaseTile+uint8(r.frame(e)), r.params.Palette)

		e.Remaining--
		if e.Remaining <= 0 {
			expired++
		}
	}

	// Every effect starts with the same lifetime, so expiries always form a
	// prefix of the live range.
	r.head = (r.head + expired) % len(r.slots)
	r.count -= expired
}

// Each calls fn for every live effect in creation order.
func (r *Ring) Each(fn func(Effect)) {
	for i := 0; i < r.count; i++ {
		fn(r.slots[(r.head+i)%len(r.slots)])
	}
}

func (r *Ring) spriteY(e *Effect) int {
	return e.Y + e.Remaining - r.params.Lifetime
}

// frame plays the animation forward while the countdown runs down.
func (r *Ring) frame(e *Effect) int {
	f := r.params.Frames - 1 - e.Remaining/r.params.FrameSpan
	if f < 0 {
		// lifetime longer than the animation holds the first frame
		return 0
	}
	return f
}
