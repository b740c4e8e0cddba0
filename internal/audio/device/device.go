// Package device connects audio.Player to the system speaker.
package device

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

type Speaker struct{}

// Open starts the speaker at rate with a 50ms buffer.
func Open(rate beep.SampleRate) (Speaker, error) {
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return Speaker{}, fmt.Errorf("speaker init: %w", err)
	}
	return Speaker{}, nil
}

func (Speaker) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Close stops everything that is playing.
func (Speaker) Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}
