// Package window runs the game loop in a desktop window. Ebiten's fixed
// tick rate stands in for the vertical blank: one Update is one frame.
package window

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/explosions/internal/audio"
	"github.com/iburimskiy/explosions/internal/chr"
	"github.com/iburimskiy/explosions/internal/config"
	"github.com/iburimskiy/explosions/internal/game"
)

const title = "Explosions"

type Options struct {
	Bank   *chr.Bank
	Player *audio.Player
}

type dialogKind int

const (
	dialogCHR dialogKind = iota
	dialogSound
)

type dialogResult struct {
	kind dialogKind
	path string
	err  error
}

type hostGame struct {
	g      *game.Game
	pad    *poller
	render *renderer
	player *audio.Player

	// file dialogs block, so they run off the game goroutine
	dialogs    chan dialogResult
	dialogOpen bool

	showHUD bool
	lastErr error
}

// Run opens the window and blocks until it closes or Escape is pressed.
func Run(g *game.Game, opts Options) error {
	bank := opts.Bank
	if bank == nil {
		bank = chr.Default()
	}
	player := opts.Player
	if player == nil {
		player = audio.Muted()
	}

	h := &hostGame{
		g:       g,
		pad:     &poller{},
		render:  newRenderer(bank),
		player:  player,
		dialogs: make(chan dialogResult, 1),
	}

	scale := g.Config().Display.Scale
	ebiten.SetWindowSize(config.ScreenWidth*scale, config.ScreenHeight*scale)
	ebiten.SetWindowTitle(title + " - Z/X: A/B, arrows: move, O: open CHR, P: open sound, F1: HUD, Esc: quit")
	ebiten.SetTPS(g.Config().Display.TPS)

	log.WithFields(log.Fields{"scale": scale, "tps": g.Config().Display.TPS}).Info("window run started")
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.WithField("summary", g.Summary()).Info("window run finished")
	return nil
}

func (h *hostGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		h.showHUD = !h.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		h.openDialog(dialogCHR)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		h.openDialog(dialogSound)
	}

	select {
	case res := <-h.dialogs:
		h.dialogOpen = false
		h.lastErr = h.apply(res)
	default:
	}

	h.g.Step(h.pad)
	return nil
}

func (h *hostGame) Draw(screen *ebiten.Image) {
	h.render.draw(screen, h.g)

	if h.showHUD {
		ebitenutil.DebugPrintAt(screen, h.g.Summary(), 2, 2)
	}
	if h.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+h.lastErr.Error(), 2, config.ScreenHeight-18)
	}
}

func (h *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func (h *hostGame) openDialog(kind dialogKind) {
	if h.dialogOpen {
		return
	}
	h.dialogOpen = true

	go func() {
		var (
			path string
			err  error
		)
		switch kind {
		case dialogCHR:
			path, err = zenity.SelectFile(
				zenity.Title("Open CHR Bank"),
				zenity.FileFilters{{
					Name:     "CHR",
					Patterns: []string{"*.chr", "*.bin"},
				}},
			)
		case dialogSound:
			path, err = zenity.SelectFile(
				zenity.Title("Open Explosion Sound"),
				zenity.FileFilters{{
					Name:     "Audio",
					Patterns: []string{"*.wav", "*.mp3", "*.flac"},
				}},
			)
		}
		h.dialogs <- dialogResult{kind: kind, path: path, err: err}
	}()
}

func (h *hostGame) apply(res dialogResult) error {
	if res.err != nil {
		if errors.Is(res.err, zenity.ErrCanceled) {
			return nil
		}
		return res.err
	}

	switch res.kind {
	case dialogCHR:
		bank, err := chr.LoadFile(res.path)
		if err != nil {
			return err
		}
		h.render.setBank(bank)
		log.WithField("path", res.path).Info("CHR bank loaded")
	case dialogSound:
		if h.player.Muted() {
			return errors.New("audio is disabled")
		}
		return h.player.LoadSample(res.path)
	}
	return nil
}
