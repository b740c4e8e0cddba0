package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/explosions/internal/pad"
)

var keyMap = []struct {
	keys   []ebiten.Key
	button pad.Buttons
}{
	{[]ebiten.Key{ebiten.KeyZ, ebiten.KeyK}, pad.A},
	{[]ebiten.Key{ebiten.KeyX, ebiten.KeyJ}, pad.B},
	{[]ebiten.Key{ebiten.KeyTab}, pad.Select},
	{[]ebiten.Key{ebiten.KeyEnter}, pad.Start},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, pad.Up},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, pad.Down},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, pad.Left},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, pad.Right},
}

var gamepadMap = []struct {
	button ebiten.StandardGamepadButton
	pad    pad.Buttons
}{
	{ebiten.StandardGamepadButtonRightBottom, pad.A},
	{ebiten.StandardGamepadButtonRightLeft, pad.B},
	{ebiten.StandardGamepadButtonCenterLeft, pad.Select},
	{ebiten.StandardGamepadButtonCenterRight, pad.Start},
	{ebiten.StandardGamepadButtonLeftTop, pad.Up},
	{ebiten.StandardGamepadButtonLeftBottom, pad.Down},
	{ebiten.StandardGamepadButtonLeftLeft, pad.Left},
	{ebiten.StandardGamepadButtonLeftRight, pad.Right},
}

// poller reads the keyboard and every gamepad with a standard layout.
type poller struct {
	gamepads []ebiten.GamepadID
}

func (p *poller) Poll() pad.Buttons {
	var b pad.Buttons
	for _, m := range keyMap {
		for _, k := range m.keys {
			if ebiten.IsKeyPressed(k) {
				b |= m.button
			}
		}
	}

	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	for _, id := range p.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, m := range gamepadMap {
			if ebiten.IsStandardGamepadButtonPressed(id, m.button) {
				b |= m.pad
			}
		}
	}
	return b
}
