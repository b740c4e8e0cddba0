// Package chr reads and writes NES pattern tables: 256 tiles of 8x8 pixels,
// two bits per pixel, stored as two 8-byte bit planes per tile.
package chr

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	TileSize  = 8
	TileBytes = 16
	BankTiles = 256
	BankBytes = BankTiles * TileBytes
)

var ErrShortBank = errors.New("chr: bank shorter than one tile")

// Tile holds palette indices 0-3 in row-major order. Index 0 is transparent
// for sprites.
type Tile [TileSize * TileSize]uint8

func (t *Tile) Pixel(x, y int) uint8 { return t[y*TileSize+x] }

func (t *Tile) Set(x, y int, c uint8) { t[y*TileSize+x] = c & 0x3 }

// Bank is one 4 KiB pattern table.
type Bank struct {
	Tiles [BankTiles]Tile
}

// Decode reads up to one bank from r. Inputs shorter than a full bank leave
// the remaining tiles blank; a partial trailing tile is ignored.
func Decode(r io.Reader) (*Bank, error) {
	buf := make([]byte, BankBytes)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("chr: read bank: %w", err)
	}
	if n < TileBytes {
		return nil, ErrShortBank
	}

	b := &Bank{}
	for i := 0; i < n/TileBytes; i++ {
		b.Tiles[i] = decodeTile(buf[i*TileBytes : (i+1)*TileBytes])
	}
	return b, nil
}

func decodeTile(data []byte) Tile {
	var t Tile
	for y := 0; y < TileSize; y++ {
		lo, hi := data[y], data[y+TileSize]
		for x := 0; x < TileSize; x++ {
			shift := 7 - x
			t[y*TileSize+x] = (lo>>shift)&1 | ((hi>>shift)&1)<<1
		}
	}
	return t
}

// Encode writes the full 4 KiB bank.
func (b *Bank) Encode(w io.Writer) error {
	buf := make([]byte, BankBytes)
	for i := range b.Tiles {
		encodeTile(&b.Tiles[i], buf[i*TileBytes:(i+1)*TileBytes])
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("chr: write bank: %w", err)
	}
	return nil
}

func encodeTile(t *Tile, out []byte) {
	for y := 0; y < TileSize; y++ {
		var lo, hi byte
		for x := 0; x < TileSize; x++ {
			c := t[y*TileSize+x]
			lo = lo<<1 | c&1
			hi = hi<<1 | (c>>1)&1
		}
		out[y] = lo
		out[y+TileSize] = hi
	}
}

// LoadFile decodes the first bank of a CHR file.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, nil
}
