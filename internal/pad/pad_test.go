package pad

import "testing"

func TestScriptPlaysStepsInOrder(t *testing.T) {
	s := &Script{Steps: []Step{
		{Buttons: A, Frames: 2},
		{Buttons: 0, Frames: 1},
		{Buttons: B | Left, Frames: 1},
	}}

	want := []Buttons{A, A, 0, B | Left, 0, 0}
	for i, w := range want {
		if got := s.Poll(); got != w {
			t.Fatalf("frame %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestScriptLoops(t *testing.T) {
	s := &Script{Loop: true, Steps: []Step{
		{Buttons: A, Frames: 1},
		{Buttons: Up, Frames: 1},
	}}

	want := []Buttons{A, Up, A, Up, A}
	for i, w := range want {
		if got := s.Poll(); got != w {
			t.Fatalf("frame %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestScriptLoopWithoutFramesTerminates(t *testing.T) {
	s := &Script{Loop: true, Steps: []Step{{Buttons: A}}}
	if got := s.Poll(); got != 0 {
		t.Fatalf("expected no buttons, got %v", got)
	}
}

func TestPressedEdge(t *testing.T) {
	cases := []struct {
		prev, now Buttons
		want      bool
	}{
		{0, A, true},
		{A, A, false},
		{A, 0, false},
		{B, A | B, true},
	}
	for _, c := range cases {
		if got := c.now.Pressed(c.prev, A); got != c.want {
			t.Errorf("Pressed(%v -> %v): expected %v, got %v", c.prev, c.now, c.want, got)
		}
	}
}

func TestHoldReleasesAfterFrames(t *testing.T) {
	h := NewHold(3)
	h.Press(A | Right)

	for i := 0; i < 3; i++ {
		if got := h.Poll(); got != A|Right {
			t.Fatalf("poll %d: expected A+Right, got %v", i, got)
		}
	}
	if got := h.Poll(); got != 0 {
		t.Fatalf("expected release, got %v", got)
	}

	h.Press(B)
	h.Poll()
	h.Press(B)
	for i := 0; i < 3; i++ {
		if got := h.Poll(); got != B {
			t.Fatalf("repeat poll %d: expected B, got %v", i, got)
		}
	}
}

func TestButtonsString(t *testing.T) {
	if s := (A | Up).String(); s != "A+Up" {
		t.Fatalf("expected A+Up, got %q", s)
	}
	if s := Buttons(0).String(); s != "-" {
		t.Fatalf("expected -, got %q", s)
	}
}
