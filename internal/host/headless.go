// Package host drives the game loop from a frame source: a plain ticker for
// headless runs or a terminal screen. The desktop window lives in package
// window.
package host

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/explosions/internal/game"
	"github.com/iburimskiy/explosions/internal/pad"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64 // stop after this many frames, 0 runs until ctx is done
	// LogEvery logs a summary line every this many frames, 0 disables it.
	LogEvery uint64
}

// DemoScript holds A while circling the cog, so headless runs exercise
// spawning, eviction and expiry.
func DemoScript() *pad.Script {
	return &pad.Script{Loop: true, Steps: []pad.Step{
		{Buttons: pad.A | pad.Right, Frames: 40},
		{Buttons: pad.A | pad.Down | pad.B, Frames: 40},
		{Buttons: pad.Left, Frames: 40},
		{Buttons: pad.A | pad.Up, Frames: 40},
		{Buttons: 0, Frames: 40},
	}}
}

// RunHeadless steps g once per tick of a Hz ticker. A zero Hz runs at 60.
func RunHeadless(ctx context.Context, g *game.Game, p pad.Poller, cfg HeadlessConfig) error {
	if cfg.Hz == 0 {
		cfg.Hz = 60
	}

	var d time.Duration
	if cfg.Hz > 0 {
		d = time.Second / time.Duration(cfg.Hz)
	}
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	log.WithFields(log.Fields{"hz": cfg.Hz, "ticks": cfg.Ticks}).Info("headless run started")

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			g.Step(p)
			tick++
			if cfg.LogEvery > 0 && tick%cfg.LogEvery == 0 {
				log.Info(g.Summary())
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				log.WithField("summary", g.Summary()).Info("headless run finished")
				return nil
			}
		}
	}
}
