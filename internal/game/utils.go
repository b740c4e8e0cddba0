package game

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as MM:SS
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Summary is a one-line description of the loop state for HUDs and logs.
func (g *Game) Summary() string {
	return fmt.Sprintf("%s  live %d/%d  spawned %d  sprites %d",
		FormatDuration(g.Elapsed()), g.ring.Len(), g.ring.Cap(), g.spawned, g.oam.Len())
}
