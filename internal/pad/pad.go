// Package pad describes controller state as a button bitmask and provides
// pollers that do not depend on a windowing backend.
package pad

import "strings"

type Buttons uint8

const (
	A Buttons = 1 << iota
	B
	Select
	Start
	Up
	Down
	Left
	Right
)

// Poller returns the buttons held during the current frame.
type Poller interface {
	Poll() Buttons
}

// PollerFunc adapts a function to Poller.
type PollerFunc func() Buttons

func (f PollerFunc) Poll() Buttons { return f() }

func (b Buttons) Held(m Buttons) bool { return b&m != 0 }

// Pressed reports buttons in m that are held now but were not in prev.
func (b Buttons) Pressed(prev, m Buttons) bool { return b&m != 0 && prev&m == 0 }

func (b Buttons) String() string {
	if b == 0 {
		return "-"
	}
	names := [...]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}
	var parts []string
	for i, n := range names {
		if b&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "+")
}

// Step is one entry of a Script: Buttons held for Frames frames.
type Step struct {
	Buttons Buttons
	Frames  int
}

// Script replays a fixed sequence of button states. When Loop is set it
// restarts at the end, otherwise it returns 0 forever.
type Script struct {
	Steps []Step
	Loop  bool

	idx   int
	frame int
}

func (s *Script) Poll() Buttons {
	for s.idx < len(s.Steps) {
		st := s.Steps[s.idx]
		if s.frame < st.Frames {
			s.frame++
			return st.Buttons
		}
		s.idx++
		s.frame = 0
		if s.idx == len(s.Steps) && s.Loop {
			s.idx = 0
			if !s.hasFrames() {
				return 0
			}
		}
	}
	return 0
}

func (s *Script) hasFrames() bool {
	for _, st := range s.Steps {
		if st.Frames > 0 {
			return true
		}
	}
	return false
}

// Hold turns key press events into held buttons. Terminals only report key
// repeats, never releases, so a button stays held for Frames polls after its
// last press.
type Hold struct {
	Frames int

	left [8]int
}

func NewHold(frames int) *Hold {
	if frames < 1 {
		frames = 1
	}
	return &Hold{Frames: frames}
}

// Press marks the buttons in b as held.
func (h *Hold) Press(b Buttons) {
	for i := range h.left {
		if b&(1<<i) != 0 {
			h.left[i] = h.Frames
		}
	}
}

func (h *Hold) Poll() Buttons {
	var b Buttons
	for i := range h.left {
		if h.left[i] > 0 {
			b |= 1 << i
			h.left[i]--
		}
	}
	return b
}
