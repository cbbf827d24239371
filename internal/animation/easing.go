package animation

// Progress returns the eased completion in [0, 1] of the effect elapsedMs
// after its step began. The delay counts as not started.
func (pb Playback) Progress(elapsedMs float64) float64 {
	t := elapsedMs - float64(pb.DelayMs)
	switch {
	case t <= 0:
		return 0
	case pb.DurationMs <= 0 || t >= float64(pb.DurationMs):
		return 1
	}
	return easeInOut(t / float64(pb.DurationMs))
}

// OffsetAt is the motion displacement reached at elapsedMs
func (pb Playback) OffsetAt(elapsedMs float64) Offset {
	return Lerp(Offset{}, pb.Target, pb.Progress(elapsedMs))
}

// OpacityAt fades entrances in and exits out. Other effects stay opaque.
func (pb Playback) OpacityAt(elapsedMs float64) float64 {
	switch {
	case pb.FromHidden:
		return pb.Progress(elapsedMs)
	case pb.ToHidden:
		return 1 - pb.Progress(elapsedMs)
	}
	return 1
}

// End is when the effect settles, delay included
func (pb Playback) End() float64 {
	return float64(pb.DelayMs + pb.DurationMs)
}

// Lerp interpolates between two offsets
func Lerp(a, b Offset, t float64) Offset {
	return Offset{DX: a.DX + (b.DX-a.DX)*t, DY: a.DY + (b.DY-a.DY)*t}
}

// easeInOut is the cubic ease-in-out curve behind DefaultTiming
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2 - 2*t
	return 1 - u*u*u/2
}
