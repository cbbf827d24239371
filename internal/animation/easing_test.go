package animation

import (
	"math"
	"testing"
)

func TestPlaybackProgress(t *testing.T) {
	pb := Playback{DurationMs: 1000, DelayMs: 200}

	tests := []struct {
		elapsed float64
		want    float64
	}{
		{0, 0},
		{200, 0},
		{700, 0.5},
		{1200, 1},
		{5000, 1},
	}

	for _, tt := range tests {
		got := pb.Progress(tt.elapsed)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Progress at %.0fms = %.4f, want %.4f", tt.elapsed, got, tt.want)
		}
	}

	if got := (Playback{}).Progress(1); got != 1 {
		t.Errorf("zero duration should complete immediately, got %f", got)
	}
	if got := pb.End(); got != 1200 {
		t.Errorf("End = %f, want 1200", got)
	}
}

func TestEasingMonotonic(t *testing.T) {
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := easeInOut(float64(i) / 100)
		if v < prev {
			t.Fatalf("easing decreased at %d: %f < %f", i, v, prev)
		}
		prev = v
	}
	if got := Lerp(Offset{}, Offset{DX: 150, DY: 50}, 0.5); got != (Offset{DX: 75, DY: 25}) {
		t.Errorf("Lerp = %+v", got)
	}
}

func TestPlaybackOffsetAt(t *testing.T) {
	pb := Playback{DurationMs: 400, Target: Offset{DX: 150, DY: 150}}

	if got := pb.OffsetAt(0); got != (Offset{}) {
		t.Errorf("offset before start = %+v", got)
	}
	if got := pb.OffsetAt(200); got != (Offset{DX: 75, DY: 75}) {
		t.Errorf("offset at midpoint = %+v", got)
	}
	if got := pb.OffsetAt(400); got != pb.Target {
		t.Errorf("offset at end = %+v, want %+v", got, pb.Target)
	}
}

func TestPlaybackOpacityAt(t *testing.T) {
	tests := []struct {
		name       string
		pb         Playback
		start, end float64
	}{
		{"entrance", Playback{DurationMs: 300, FromHidden: true}, 0, 1},
		{"exit", Playback{DurationMs: 300, ToHidden: true}, 1, 0},
		{"emphasis", Playback{DurationMs: 300}, 1, 1},
	}

	for _, tt := range tests {
		if got := tt.pb.OpacityAt(0); got != tt.start {
			t.Errorf("%s: opacity at start = %f, want %f", tt.name, got, tt.start)
		}
		if got := tt.pb.OpacityAt(300); got != tt.end {
			t.Errorf("%s: opacity at end = %f, want %f", tt.name, got, tt.end)
		}
	}
}
