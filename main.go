package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"

	"github.com/iburimskiy/explosions/internal/audio"
	"github.com/iburimskiy/explosions/internal/audio/device"
	"github.com/iburimskiy/explosions/internal/chr"
	"github.com/iburimskiy/explosions/internal/config"
	"github.com/iburimskiy/explosions/internal/game"
	"github.com/iburimskiy/explosions/internal/host"
	"github.com/iburimskiy/explosions/internal/window"
)

type options struct {
	configPath string
	chrPath    string
	soundPath  string
	headless   bool
	terminal   bool
	mute       bool
	verbose    bool
	ticks      uint64
	hz         int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.StringVar(&opts.chrPath, "chr", "", "CHR bank to draw sprites from (default: built-in tiles)")
	flag.StringVar(&opts.soundPath, "sound", "", "explosion sound (wav, mp3 or flac)")
	flag.BoolVar(&opts.headless, "headless", false, "run without a window, driven by a scripted pad")
	flag.BoolVar(&opts.terminal, "term", false, "render to the terminal")
	flag.BoolVar(&opts.mute, "mute", false, "disable audio")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Uint64Var(&opts.ticks, "ticks", 0, "stop after this many frames (headless and terminal), 0 runs forever")
	flag.IntVar(&opts.hz, "hz", config.TPS, "headless frame rate")
	flag.Parse()

	log.SetOutput(colorable.NewColorableStderr())
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})

	if err := run(opts); err != nil {
		log.WithError(err).Error("explosions failed")
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.hz < 1 {
		return fmt.Errorf("-hz must be >= 1, got %d", opts.hz)
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if opts.verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	bank := chr.Default()
	if opts.chrPath != "" {
		if bank, err = chr.LoadFile(opts.chrPath); err != nil {
			return err
		}
		log.WithField("path", opts.chrPath).Info("CHR bank loaded")
	}

	player, closeAudio := openAudio(opts, cfg.Audio)
	defer closeAudio()

	g := game.New(cfg, game.WithSounder(player))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.headless:
		err = host.RunHeadless(ctx, g, host.DemoScript(), host.HeadlessConfig{
			Hz:       opts.hz,
			Ticks:    opts.ticks,
			LogEvery: uint64(opts.hz),
		})
	case opts.terminal:
		err = runTerminal(ctx, g, bank, cfg, opts.ticks)
	default:
		err = window.Run(g, window.Options{Bank: bank, Player: player})
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openAudio falls back to a muted player when no output device is available.
func openAudio(opts options, cfg config.AudioConfig) (*audio.Player, func()) {
	if opts.mute || opts.headless {
		return audio.Muted(), func() {}
	}

	spk, err := device.Open(audio.DefaultSampleRate)
	if err != nil {
		log.WithError(err).Warn("audio disabled")
		return audio.Muted(), func() {}
	}

	player := audio.New(spk, audio.DefaultSampleRate)
	player.SetVolume(cfg.Volume)
	if opts.soundPath != "" {
		if err := player.LoadSample(opts.soundPath); err != nil {
			log.WithError(err).WithField("path", opts.soundPath).Warn("keeping synthesized explosion sound")
		}
	}
	return player, spk.Close
}

func runTerminal(ctx context.Context, g *game.Game, bank *chr.Bank, cfg *config.Config, ticks uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	// logrus output would scribble over the screen
	log.SetOutput(io.Discard)
	defer log.SetOutput(colorable.NewColorableStderr())

	return host.RunTerminal(ctx, screen, g, bank, host.TerminalConfig{
		TPS:   cfg.Display.TPS,
		Ticks: ticks,
	})
}
