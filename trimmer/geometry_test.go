package trimmer

import (
	"math"
	"testing"
)

func TestPointerToTime(t *testing.T) {
	bar := Bounds{Left: 50, Width: 500}
	tests := []struct {
		x    float64
		want float64
	}{
		{50, 0},
		{300, 60},
		{550, 120},
		{0, 0},
		{1000, 120},
	}
	for _, tt := range tests {
		if got := pointerToTime(tt.x, bar, 120); !approx(got, tt.want) {
			t.Errorf("pointerToTime(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
	if got := pointerToTime(100, Bounds{}, 120); got != 0 {
		t.Errorf("zero-width bar = %v, want 0", got)
	}
}

func TestInsetSpan(t *testing.T) {
	startPx, endPx := insetSpan(0, 120, 120, 600)
	if startPx != HandleHalfWidth || endPx != 600-HandleHalfWidth {
		t.Errorf("full range inset = (%v, %v)", startPx, endPx)
	}

	startPx, endPx = insetSpan(30, 90, 120, 600)
	if !approx(startPx, 162) || !approx(endPx, 438) {
		t.Errorf("inset = (%v, %v), want (162, 438)", startPx, endPx)
	}
}

func TestGapSettledExactly(t *testing.T) {
	// A pair a drag produced: the gap is a hair short of 5.
	const start, end = 12.340898246541821, 17.340898246541819
	if end-start >= 5 {
		t.Fatalf("inputs already satisfy the gap: %v", end-start)
	}

	lowered := lowerStart(start, end, 5)
	if end-lowered < 5 || lowered > start {
		t.Errorf("lowerStart = %v, gap %v", lowered, end-lowered)
	}
	if end-math.Nextafter(lowered, math.Inf(1)) >= 5 {
		t.Errorf("lowerStart moved further than needed: %v", lowered)
	}

	raised := raiseEnd(start, end, 5, 120)
	if raised-start < 5 || raised < end {
		t.Errorf("raiseEnd = %v, gap %v", raised, raised-start)
	}
	if math.Nextafter(raised, math.Inf(-1))-start >= 5 {
		t.Errorf("raiseEnd moved further than needed: %v", raised)
	}
}

func TestGapSettlingBounds(t *testing.T) {
	if got := lowerStart(0, 4, 5); got != 0 {
		t.Errorf("lowerStart below 0 = %v", got)
	}
	if got := raiseEnd(6, 10, 5, 10); got != 10 {
		t.Errorf("raiseEnd above limit = %v", got)
	}
	if got := lowerStart(3, 10, 5); got != 3 {
		t.Errorf("lowerStart moved a satisfied start: %v", got)
	}
}
