package explosion

import (
	"testing"

	"github.com/iburimskiy/explosions/internal/sprite"
)

const baseTile = 0x30

func newTestRing(capacity int) *Ring {
	return NewRing(capacity, Params{
		Frames:    8,
		FrameSpan: 4,
		Lifetime:  31,
		BaseTile:  baseTile,
		Palette:   1,
	})
}

func live(r *Ring) []Effect {
	var out []Effect
	r.Each(func(e Effect) { out = append(out, e) })
	return out
}

func TestSpawnKeepsNewestWhenFull(t *testing.T) {
	r := newTestRing(8)
	for i := 0; i < 20; i++ {
		r.Spawn(i, 0)
		if r.Len() > r.Cap() {
			t.Fatalf("expected at most %d live effects, got %d", r.Cap(), r.Len())
		}
	}

	got := live(r)
	if len(got) != 8 {
		t.Fatalf("expected 8 live effects, got %d", len(got))
	}
	for i, e := range got {
		if want := 12 + i; e.X != want {
			t.Errorf("slot %d: expected x=%d, got %d", i, want, e.X)
		}
	}
}

func TestSpawnEvictsOnlyOldest(t *testing.T) {
	r := newTestRing(8)
	for i := 0; i < 9; i++ {
		r.Spawn(i, 100+i)
	}

	got := live(r)
	if len(got) != 8 {
		t.Fatalf("expected 8 live effects, got %d", len(got))
	}
	if got[0].X != 1 {
		t.Fatalf("expected first effect to be evicted, oldest is x=%d", got[0].X)
	}
	if got[7].X != 8 {
		t.Fatalf("expected newest effect last, got x=%d", got[7].X)
	}
}

func TestAdvanceEmptyIsNoop(t *testing.T) {
	r := newTestRing(8)
	var rec sprite.Recorder

	for i := 0; i < 3; i++ {
		r.AdvanceAndRender(&rec)
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("expected no submissions, got %d", len(rec.Calls))
	}
	if r.Len() != 0 || r.head != 0 {
		t.Fatalf("expected untouched ring, got len=%d head=%d", r.Len(), r.head)
	}
}

func TestFirstFrameRendersAtAnchor(t *testing.T) {
	r := newTestRing(8)
	var rec sprite.Recorder

	r.Spawn(100, 50)
	r.AdvanceAndRender(&rec)

	if len(rec.Calls) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(rec.Calls))
	}
	want := sprite.Call{X: 100, Y: 50, Tile: baseTile, Palette: 1}
	if rec.Calls[0] != want {
		t.Fatalf("expected %+v, got %+v", want, rec.Calls[0])
	}
	if got := live(r); len(got) != 1 || got[0].Remaining != 30 {
		t.Fatalf("expected one live effect with 30 frames left, got %+v", got)
	}
}

func TestLifetimeDriftAndFrames(t *testing.T) {
	r := newTestRing(8)
	var rec sprite.Recorder

	r.Spawn(40, 200)
	for k := 0; k < 31; k++ {
		rec.Reset()
		r.AdvanceAndRender(&rec)
		if len(rec.Calls) != 1 {
			t.Fatalf("advance %d: expected 1 submission, got %d", k, len(rec.Calls))
		}
		c := rec.Calls[0]
		if c.Y != 200-k {
			t.Fatalf("advance %d: expected y=%d, got %d", k, 200-k, c.Y)
		}
		remaining := 31 - k
		if want := uint8(baseTile + 7 - remaining/4); c.Tile != want {
			t.Fatalf("advance %d: expected tile %#x, got %#x", k, want, c.Tile)
		}
	}

	if r.Len() != 0 {
		t.Fatalf("expected effect retired after 31 advances, %d live", r.Len())
	}
	rec.Reset()
	r.AdvanceAndRender(&rec)
	if len(rec.Calls) != 0 {
		t.Fatalf("expected nothing drawn after expiry, got %d", len(rec.Calls))
	}
}

func TestFramesAreMonotonic(t *testing.T) {
	r := newTestRing(1)
	var rec sprite.Recorder

	r.Spawn(0, 0)
	for r.Len() > 0 {
		r.AdvanceAndRender(&rec)
	}

	seen := map[uint8]bool{}
	prev := rec.Calls[0].Tile
	for _, c := range rec.Calls {
		if c.Tile < prev {
			t.Fatalf("animation went backwards: %#x after %#x", c.Tile, prev)
		}
		prev = c.Tile
		seen[c.Tile] = true
	}
	if len(seen) != 8 {
		t.Fatalf("expected 8 distinct frames, got %d", len(seen))
	}
	if prev != baseTile+7 {
		t.Fatalf("expected last frame %#x, got %#x", baseTile+7, prev)
	}
}

func TestNoDoubleAdvance(t *testing.T) {
	r := newTestRing(8)
	var rec sprite.Recorder

	r.Spawn(1, 1)
	r.AdvanceAndRender(&rec)
	r.Spawn(2, 2)
	r.AdvanceAndRender(&rec)

	got := live(r)
	if len(got) != 2 {
		t.Fatalf("expected 2 live effects, got %d", len(got))
	}
	if got[0].Remaining != 29 {
		t.Errorf("expected A with 29 left, got %d", got[0].Remaining)
	}
	if got[1].Remaining != 30 {
		t.Errorf("expected B with 30 left, got %d", got[1].Remaining)
	}
}

func TestRetireAcrossWrap(t *testing.T) {
	r := newTestRing(4)
	var rec sprite.Recorder

	// Stagger spawns so the live range wraps past the end of the slots.
	for i := 0; i < 6; i++ {
		r.Spawn(i, 0)
		for j := 0; j < 10; j++ {
			r.AdvanceAndRender(&rec)
		}
	}

	got := live(r)
	// 10 frames apart with a 31 frame lifetime leaves the last 3 spawns alive.
	if len(got) != 3 {
		t.Fatalf("expected 3 live effects, got %d", len(got))
	}
	for i, e := range got {
		if e.X != 3+i {
			t.Errorf("slot %d: expected x=%d, got %d", i, 3+i, e.X)
		}
	}

	rec.Reset()
	r.AdvanceAndRender(&rec)
	for i, c := range rec.Calls {
		if c.X != got[i].X {
			t.Fatalf("expected creation order, call %d is x=%d", i, c.X)
		}
	}
}

func TestSubmitsInCreationOrder(t *testing.T) {
	r := newTestRing(3)
	var rec sprite.Recorder

	for i := 0; i < 5; i++ {
		r.Spawn(i, 0)
	}
	r.AdvanceAndRender(&rec)

	want := []int{2, 3, 4}
	if len(rec.Calls) != len(want) {
		t.Fatalf("expected %d submissions, got %d", len(want), len(rec.Calls))
	}
	for i, x := range want {
		if rec.Calls[i].X != x {
			t.Errorf("call %d: expected x=%d, got %d", i, x, rec.Calls[i].X)
		}
	}
}

func TestNewRingFillsDefaults(t *testing.T) {
	r := NewRing(0, Params{Frames: 8, FrameSpan: 4})
	if r.Cap() != 1 {
		t.Fatalf("expected capacity clamped to 1, got %d", r.Cap())
	}
	if got := r.Params().Lifetime; got != 31 {
		t.Fatalf("expected derived lifetime 31, got %d", got)
	}
}
