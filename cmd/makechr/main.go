// Command makechr converts a PNG, GIF or BMP tile sheet into a 4 KiB CHR bank.
//
//	makechr -o sprites.chr sheet.png
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"

	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"

	"github.com/iburimskiy/explosions/internal/chr"
)

func main() {
	out := flag.String("o", "out.chr", "output CHR file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-o out.chr] sheet.png\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetOutput(colorable.NewColorableStderr())
	log.SetFormatter(&log.TextFormatter{ForceColors: true, DisableTimestamp: true})

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := convert(flag.Arg(0), *out); err != nil {
		log.WithError(err).Error("makechr failed")
		os.Exit(1)
	}
}

func convert(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", in, err)
	}

	bank, n := chr.FromImage(img)
	fields := log.Fields{"input": in, "format": format, "tiles": n}
	if n > chr.BankTiles {
		log.WithFields(fields).Warnf("sheet holds more than %d tiles, extra tiles dropped", chr.BankTiles)
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := bank.Encode(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	log.WithFields(fields).WithField("output", out).Info("bank written")
	return nil
}
