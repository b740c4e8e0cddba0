package palette

import (
	"image/color"
	"testing"
)

func TestRGBAWraps(t *testing.T) {
	if RGBA(0x40) != RGBA(0x00) {
		t.Fatalf("expected index 0x40 to wrap to 0x00")
	}
	want := color.RGBA{R: 0xF8, G: 0x38, B: 0x00, A: 0xFF}
	if got := RGBA(0x16); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSetColor(t *testing.T) {
	s := Sprites
	if got, want := s.Color(1, 2), RGBA(0x2a); got != want {
		t.Fatalf("expected explosion colour 2 to be %v, got %v", want, got)
	}
	if got, want := s.Color(5, 6), RGBA(0x2a); got != want {
		t.Fatalf("expected indices to be masked, got %v", got)
	}
}
