package segment

// FadeWindow carries the fade timing handed to the render engine, in seconds
// relative to the segment start.
type FadeWindow struct {
	In       float64
	OutStart float64
	Out      float64
}

// ComputeFadeWindow derives fade-in/fade-out timing for a segment. The fade
// duration applies symmetrically; the fade-out begins fadeMs before the
// segment ends, floored at zero. Windows are not clamped: for segments
// shorter than twice the fade duration the fade-in and fade-out overlap.
func ComputeFadeWindow(seg Segment, fadeMs int) FadeWindow {
	fade := float64(fadeMs) / 1000
	outStart := seg.Duration() - fade
	if outStart < 0 {
		outStart = 0
	}
	return FadeWindow{In: fade, OutStart: outStart, Out: fade}
}
