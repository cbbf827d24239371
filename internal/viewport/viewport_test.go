package viewport

import (
	"math"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		view Size
		want float64
	}{
		{"exact", Size{1280, 720}, 1},
		{"full hd", Size{1920, 1080}, 1.5},
		{"wide", Size{2560, 720}, 1},
		{"tall", Size{640, 1000}, 0.5},
		{"zero", Size{0, 720}, 0},
		{"negative", Size{-1, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(Logical, tt.view); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Fit(%v) = %f, want %f", tt.view, got, tt.want)
			}
		})
	}
}

func TestLetterbox(t *testing.T) {
	r := Letterbox(Logical, Size{1920, 1200})
	if r.W != 1920 || r.H != 1080 || r.X != 0 || r.Y != 60 {
		t.Errorf("unexpected letterbox %+v", r)
	}

	r = Letterbox(Logical, Size{0, 0})
	if r.W != 0 || r.H != 0 {
		t.Errorf("degenerate viewport should be empty, got %+v", r)
	}
}
