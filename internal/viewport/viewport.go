package viewport

import (
	"math"

	"github.com/ivlev/deckplay/internal/deck"
)

// Size is a width/height pair, logical units or pixels
type Size struct {
	W, H float64
}

// Rect is a placed, scaled canvas
type Rect struct {
	X, Y, W, H float64
}

// Logical is the fixed 16:9 canvas all geometry is expressed in
var Logical = Size{W: deck.CanvasWidth, H: deck.CanvasHeight}

// Fit returns the scale at which the logical canvas fits inside the viewport.
// A degenerate viewport yields 0.
func Fit(logical, view Size) float64 {
	if logical.W <= 0 || logical.H <= 0 || view.W <= 0 || view.H <= 0 {
		return 0
	}
	return math.Min(view.W/logical.W, view.H/logical.H)
}

// Letterbox centers the scaled canvas inside the viewport
func Letterbox(logical, view Size) Rect {
	s := Fit(logical, view)
	w, h := logical.W*s, logical.H*s
	return Rect{
		X: (view.W - w) / 2,
		Y: (view.H - h) / 2,
		W: w,
		H: h,
	}
}
