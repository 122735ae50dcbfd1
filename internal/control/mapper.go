package control

import (
	"math"

	"github.com/frudas24/deskcontrol/internal/event"
)

// NormToPosition maps normalized coordinates to a pixel position on a screen of the given size.
func NormToPosition(xn, yn float64, screen event.Size) event.Position {
	return event.Position{
		Point: event.Point{
			X: int32(normToPixels(clamp01(xn), int(screen.Width))),
			Y: int32(normToPixels(clamp01(yn), int(screen.Height))),
		},
		ScreenSize: screen,
	}
}

func normToPixels(norm float64, span int) int {
	if span <= 1 {
		return 0
	}
	return int(math.Round(norm * float64(span-1)))
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
