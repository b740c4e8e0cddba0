package host

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/explosions/internal/chr"
	"github.com/iburimskiy/explosions/internal/config"
	"github.com/iburimskiy/explosions/internal/game"
	"github.com/iburimskiy/explosions/internal/pad"
	"github.com/iburimskiy/explosions/internal/palette"
	"github.com/iburimskiy/explosions/internal/sprite"
)

// A terminal cell covers 4x8 screen pixels, so a sprite spans two cells.
const (
	cellWidth  = 4
	cellHeight = 8

	TermCols = config.ScreenWidth / cellWidth
	TermRows = config.ScreenHeight / cellHeight

	// frames a key stays held after its last repeat
	keyHoldFrames = 6
)

var shades = []rune{' ', '░', '▒', '▓', '█'}

type TerminalConfig struct {
	TPS   int
	Ticks uint64 // stop after this many frames, 0 runs until quit
}

// RunTerminal runs g on an initialised tcell screen until Escape, q, Ctrl-C
// or ctx is done. The caller owns the screen.
func RunTerminal(ctx context.Context, screen tcell.Screen, g *game.Game, bank *chr.Bank, cfg TerminalConfig) error {
	if cfg.TPS <= 0 {
		cfg.TPS = config.TPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TPS))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	held := pad.NewHold(keyHoldFrames)
	limit := g.Config().Display.ScanlineLimit

	log.Info("terminal run started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				b, quit := TerminalButtons(ev.Key(), ev.Rune())
				if quit {
					log.WithField("summary", g.Summary()).Info("terminal run finished")
					return nil
				}
				held.Press(b)
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			g.Step(held)
			DrawTerminal(screen, g, bank, limit)
			screen.Show()
			if cfg.Ticks > 0 && g.Ticks() >= cfg.Ticks {
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalised or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// TerminalButtons maps a key to pad buttons. Arrows or WASD move, z/k is A,
// x/j is B, Enter is Start and Tab is Select.
func TerminalButtons(key tcell.Key, r rune) (b pad.Buttons, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, true
	case tcell.KeyUp:
		return pad.Up, false
	case tcell.KeyDown:
		return pad.Down, false
	case tcell.KeyLeft:
		return pad.Left, false
	case tcell.KeyRight:
		return pad.Right, false
	case tcell.KeyEnter:
		return pad.Start, false
	case tcell.KeyTab:
		return pad.Select, false
	case tcell.KeyRune:
	default:
		return 0, false
	}

	switch r {
	case 'q', 'Q':
		return 0, true
	case 'z', 'Z', 'k', 'K':
		return pad.A, false
	case 'x', 'X', 'j', 'J':
		return pad.B, false
	case 'w', 'W':
		return pad.Up, false
	case 's', 'S':
		return pad.Down, false
	case 'a', 'A':
		return pad.Left, false
	case 'd', 'D':
		return pad.Right, false
	}
	return 0, false
}

// DrawTerminal renders the background text and the frame's sprites as shade
// blocks, honouring the per-scanline sprite limit.
func DrawTerminal(screen tcell.Screen, g *game.Game, bank *chr.Bank, scanlineLimit int) {
	bgSet := g.Background()
	bgColor := rgb(bgSet.Color(0, 0))
	base := tcell.StyleDefault.Background(bgColor)

	for y := 0; y < TermRows; y++ {
		for x := 0; x < TermCols; x++ {
			screen.SetContent(x, y, ' ', nil, base)
		}
	}

	textStyle := base.Foreground(rgb(bgSet.Color(0, 3)))
	drawText(screen, game.GreetingCol*2, game.GreetingRow, game.Greeting, textStyle)
	drawText(screen, game.StatusCol*2, game.StatusRow, g.Status(), textStyle)

	entries := g.OAM().Entries()
	rows := sprite.Rows(entries, scanlineLimit)

	// Draw lowest priority first so earlier sprites end up on top.
	for i := len(entries) - 1; i >= 0; i-- {
		s := entries[i]
		tile := &bank.Tiles[s.Tile]
		for half := 0; half < 2; half++ {
			r, c, ok := shade(tile, half, rows[i])
			if !ok {
				continue
			}
			cx := (int(s.X) + half*cellWidth) / cellWidth
			cy := (int(s.Y) + cellHeight/2) / cellHeight
			if cx >= TermCols || cy >= TermRows {
				continue
			}
			style := base.Foreground(rgb(palette.Sprites.Color(s.Palette, c)))
			screen.SetContent(cx, cy, r, nil, style)
		}
	}
}

// shade summarises one 4x8 half of a tile: a block rune by coverage and the
// most used colour index among its visible rows.
func shade(t *chr.Tile, half int, visible uint8) (rune, uint8, bool) {
	var counts [4]int
	lit := 0
	for y := 0; y < chr.TileSize; y++ {
		if visible&(1<<y) == 0 {
			continue
		}
		for x := half * cellWidth; x < (half+1)*cellWidth; x++ {
			if c := t.Pixel(x, y); c != 0 {
				counts[c]++
				lit++
			}
		}
	}
	if lit == 0 {
		return 0, 0, false
	}

	best := uint8(1)
	for c := uint8(2); c < 4; c++ {
		if counts[c] > counts[best] {
			best = c
		}
	}

	level := 1 + lit*(len(shades)-2)/(cellWidth*cellHeight)
	return shades[level], best, true
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func rgb(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
