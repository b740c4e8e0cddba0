// Package audio prepares and plays the explosion sound.
package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)
	boomLength        = 350 * time.Millisecond
	resampleQuality   = 4
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Output mixes streamers into the sound device.
type Output interface {
	Play(s ...beep.Streamer)
}

// Player plays one shared explosion sample per Boom. A Player without an
// Output ignores Boom.
type Player struct {
	out  Output
	rate beep.SampleRate

	mu     sync.RWMutex
	boom   *beep.Buffer
	volume float64
}

// New prepares the synthesized explosion for an output running at rate.
func New(out Output, rate beep.SampleRate) *Player {
	return &Player{
		out:    out,
		rate:   rate,
		volume: 1,
		boom:   synthBuffer(rate, boomLength, uint64(time.Now().UnixNano())),
	}
}

func Muted() *Player { return &Player{rate: DefaultSampleRate, volume: 1} }

func (p *Player) Muted() bool { return p.out == nil }

// SetVolume sets playback volume in [0, 1] for later booms.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = clamp01(v)
	p.mu.Unlock()
}

func (p *Player) Boom() {
	if p.out == nil {
		return
	}
	p.mu.RLock()
	buf, volume := p.boom, p.volume
	p.mu.RUnlock()

	s := &effects.Gain{Streamer: buf.Streamer(0, buf.Len()), Gain: volume - 1}
	p.out.Play(s)
}

// LoadSample replaces the synthesized explosion with a wav, mp3 or flac file.
func (p *Player) LoadSample(path string) error {
	buf, err := decodeSample(path, p.rate)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.boom = buf
	p.mu.Unlock()

	log.WithFields(log.Fields{
		"path":     path,
		"duration": p.rate.D(buf.Len()).Round(time.Millisecond),
	}).Info("explosion sample loaded")
	return nil
}

func decodeSample(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Decode based on extension
	ext := strings.ToLower(filepath.Ext(path))
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return buf, nil
}

// Synth returns a decaying noise burst of length d.
func Synth(rate beep.SampleRate, d time.Duration, seed uint64) beep.Streamer {
	total := rate.N(d)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pos := 0
	var lp float64

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(total)
			// low-passed noise that darkens as it fades
			cut := 0.6 - 0.5*t
			lp += cut * (r.Float64()*2 - 1 - lp)
			v := lp * math.Exp(-5*t)
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
}

func synthBuffer(rate beep.SampleRate, d time.Duration, seed uint64) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(Synth(rate, d, seed))
	return buf
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
