package trimmer

import "math"

// HandleHalfWidth is the visual half-width of a handle in pixels. The click
// and indicator frame is inset by this amount on each side.
const HandleHalfWidth = 12.0

// Bounds is the rendered horizontal extent of the bar in client coordinates.
type Bounds struct {
	Left  float64
	Width float64
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// minGapFor returns the minimum separation enforced between start and end.
func minGapFor(duration float64) float64 {
	return math.Min(duration*0.1, 5)
}

// lowerStart moves start down one ulp at a time until end-start >= gap
// holds exactly, never below 0.
func lowerStart(start, end, gap float64) float64 {
	for end-start < gap && start > 0 {
		start = math.Nextafter(start, math.Inf(-1))
	}
	return start
}

// raiseEnd moves end up one ulp at a time until end-start >= gap holds
// exactly, never above limit.
func raiseEnd(start, end, gap, limit float64) float64 {
	for end-start < gap && end < limit {
		end = math.Nextafter(end, math.Inf(1))
	}
	return end
}

// pointerToTime maps a client x coordinate to a time in the raw-time frame,
// which treats the bar's outer edges as 0 and duration and ignores handle
// width entirely.
func pointerToTime(clientX float64, bar Bounds, duration float64) float64 {
	if bar.Width <= 0 {
		return 0
	}
	return clamp01((clientX-bar.Left)/bar.Width) * duration
}

// insetSpan returns the pixel extent of [start, end] in the inset frame,
// relative to the bar's left edge. This is where handles visually render.
func insetSpan(start, end, duration, width float64) (startPx, endPx float64) {
	startPx = start/duration*width + HandleHalfWidth
	endPx = end/duration*width - HandleHalfWidth
	return startPx, endPx
}

// percentOf returns t as a percentage of duration, bounded to [0, 100].
func percentOf(t, duration float64) float64 {
	return clamp01(t/duration) * 100
}
