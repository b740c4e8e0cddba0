package sprite

import "testing"

func TestOAMDropsPastBudget(t *testing.T) {
	o := NewOAM(4)
	for i := 0; i < 10; i++ {
		o.Submit(i, i, uint8(i), 0)
	}

	if o.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", o.Len())
	}
	for i, s := range o.Entries() {
		if int(s.Tile) != i {
			t.Errorf("entry %d: expected tile %d, got %d", i, i, s.Tile)
		}
	}

	o.Clear()
	if o.Len() != 0 {
		t.Fatalf("expected empty OAM after Clear, got %d", o.Len())
	}
	o.Submit(1, 1, 9, 0)
	if o.Len() != 1 {
		t.Fatalf("expected budget to reset after Clear, got %d", o.Len())
	}
}

func TestOAMWrapsCoordinates(t *testing.T) {
	o := NewOAM(64)
	o.Submit(-1, 260, 0x30, 5)

	s := o.Entries()[0]
	if s.X != 255 || s.Y != 4 {
		t.Fatalf("expected wrapped (255, 4), got (%d, %d)", s.X, s.Y)
	}
	if s.Palette != 1 {
		t.Fatalf("expected palette masked to 1, got %d", s.Palette)
	}
}

func TestRowsScanlineLimit(t *testing.T) {
	entries := []Sprite{
		{Y: 10}, {Y: 10}, {Y: 14}, {Y: 100},
	}

	rows := Rows(entries, 2)
	if rows[0] != 0xFF || rows[1] != 0xFF {
		t.Fatalf("expected first two sprites fully visible, got %08b %08b", rows[0], rows[1])
	}
	// Lines 14..17 are already taken twice, so only 18..21 remain.
	if rows[2] != 0xF0 {
		t.Fatalf("expected lower half of third sprite, got %08b", rows[2])
	}
	if rows[3] != 0xFF {
		t.Fatalf("expected unrelated sprite visible, got %08b", rows[3])
	}
}

func TestRowsUnlimited(t *testing.T) {
	entries := make([]Sprite, 20)
	for _, r := range Rows(entries, 0) {
		if r != 0xFF {
			t.Fatalf("expected every row visible, got %08b", r)
		}
	}
}

func TestRowsClipsBottom(t *testing.T) {
	rows := Rows([]Sprite{{Y: 252}}, 8)
	if rows[0] != 0x0F {
		t.Fatalf("expected rows past line 255 clipped, got %08b", rows[0])
	}
}
