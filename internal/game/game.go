package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/explosions/internal/config"
	"github.com/iburimskiy/explosions/internal/explosion"
	"github.com/iburimskiy/explosions/internal/pad"
	"github.com/iburimskiy/explosions/internal/palette"
	"github.com/iburimskiy/explosions/internal/sprite"
)

const (
	Greeting = "Hello, NES!"

	// Text positions in tiles
	GreetingCol = 10
	GreetingRow = 10
	StatusCol   = 14
	StatusRow   = 12

	cogTiles = 3
)

// Rand8 is an 8-bit uniform random source.
type Rand8 func() uint8

// Sounder is told about every explosion spawn.
type Sounder interface {
	Boom()
}

// Game owns all per-frame state: the explosion ring, the sprite list, the
// cogwheel and the palette cycling. It is driven by one Step call per frame
// and is not safe for concurrent use.
type Game struct {
	cfg   *config.Config
	ring  *explosion.Ring
	oam   *sprite.OAM
	rand  Rand8
	sound Sounder

	cogX, cogY int
	prevPad    pad.Buttons
	frame      uint8
	ticks      uint64

	bg           palette.Set
	paletteColor uint8
	counter      int
	status       string

	spawned uint64
}

type Option func(*Game)

func WithRand(r Rand8) Option { return func(g *Game) { g.rand = r } }

func WithSounder(s Sounder) Option { return func(g *Game) { g.sound = s } }

func New(cfg *config.Config, opts ...Option) *Game {
	e := cfg.Effects
	g := &Game{
		cfg: cfg,
		ring: explosion.NewRing(e.Capacity, explosion.Params{
			Frames:    e.Frames,
			FrameSpan: e.FrameSpan,
			Lifetime:  e.Lifetime,
			BaseTile:  e.BaseTile,
			Palette:   e.Palette,
		}),
		oam:  sprite.NewOAM(cfg.Display.SpriteBudget),
		cogX: cfg.Cog.X,
		cogY: cfg.Cog.Y,
		bg:   palette.Background,
	}

	seed := uint64(time.Now().UnixNano())
	r := rand.New(rand.NewPCG(seed, seed>>1))
	g.rand = func() uint8 { return uint8(r.UintN(256)) }

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Step runs one frame: clear sprites, poll input, move the cog, spawn,
// draw and age explosions, then the cog, then cycle the palette. Explosions
// are submitted before the cog so they win sprite priority.
func (g *Game) Step(p pad.Poller) {
	g.frame++
	g.ticks++

	g.oam.Clear()

	buttons := p.Poll()
	g.move(buttons)

	if buttons.Held(pad.A) {
		interval := uint8(g.cfg.Spawn.Interval - 1)
		if buttons.Pressed(g.prevPad, pad.A) || g.frame&interval == 0 {
			g.spawn()
		}
	}
	g.prevPad = buttons

	g.ring.AdvanceAndRender(g.oam)

	for row := 0; row < cogTiles; row++ {
		for col := 0; col < cogTiles; col++ {
			x := g.cogX + col*sprite.Size
			y := g.cogY + row*sprite.Size
			g.oam.Submit(x, y, uint8(row<<4+col), 0)
		}
	}

	g.counter++
	if g.counter == g.cfg.Palette.CyclePeriod {
		g.counter = 0
		g.paletteColor = (g.paletteColor + 1) % palette.Size
		g.bg[0][3] = g.paletteColor
		g.status = fmt.Sprintf("$%02x", g.paletteColor)
	}
}

func (g *Game) move(b pad.Buttons) {
	speed := g.cfg.Cog.Speed
	if b.Held(pad.B) {
		speed = g.cfg.Cog.Boost
	}

	switch {
	case b.Held(pad.Up):
		g.cogY = wrap(g.cogY - speed)
	case b.Held(pad.Down):
		g.cogY = wrap(g.cogY + speed)
	}

	switch {
	case b.Held(pad.Left):
		g.cogX = wrap(g.cogX - speed)
	case b.Held(pad.Right):
		g.cogX = wrap(g.cogX + speed)
	}
}

func (g *Game) spawn() {
	jitter := g.cfg.Spawn.Jitter
	x := g.cogX + int(g.rand()&jitter)
	y := g.cogY + g.cfg.Spawn.YOffset + int(g.rand()&jitter)

	g.ring.Spawn(x, y)
	g.spawned++

	log.WithFields(log.Fields{
		"x":     x,
		"y":     y,
		"live":  g.ring.Len(),
		"frame": g.ticks,
	}).Debug("spawn explosion")

	if g.sound != nil {
		g.sound.Boom()
	}
}

// wrap keeps screen coordinates in the 8-bit range the hardware uses.
func wrap(v int) int { return int(uint8(v)) }

func (g *Game) OAM() *sprite.OAM        { return g.oam }
func (g *Game) Ring() *explosion.Ring   { return g.ring }
func (g *Game) Config() *config.Config  { return g.cfg }
func (g *Game) Background() palette.Set { return g.bg }
func (g *Game) Cog() (x, y int)         { return g.cogX, g.cogY }
func (g *Game) Ticks() uint64           { return g.ticks }
func (g *Game) Spawned() uint64         { return g.spawned }

// Status is the palette colour text shown under the greeting, empty until
// the first cycle.
func (g *Game) Status() string { return g.status }

// Elapsed is the wall-clock time the frames run so far represent at the
// configured tick rate.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.ticks) * time.Second / time.Duration(g.cfg.Display.TPS)
}
