package ui

import (
	"math"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/chrisuehlinger/cliptrim/trimmer"
)

func newTestView(t *testing.T, opts Options) (*TrimmerView, fyne.Window) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	v, err := NewTrimmerView(w, opts)
	if err != nil {
		t.Fatalf("NewTrimmerView failed: %v", err)
	}
	t.Cleanup(v.Stop)
	w.SetContent(v.Content())
	w.Resize(fyne.NewSize(800, 500))
	return v, w
}

func barX(v *TrimmerView, fraction float64) float32 {
	b := (&surface{view: v}).BarBounds()
	return float32(b.Left + fraction*b.Width)
}

func TestInitialLabels(t *testing.T) {
	v, _ := newTestView(t, Options{Duration: 120})

	if v.startLabel.Text != "00:00" || v.endLabel.Text != "02:00" || v.durationLabel.Text != "02:00" {
		t.Errorf("labels = %q %q %q", v.startLabel.Text, v.durationLabel.Text, v.endLabel.Text)
	}
	if v.bar.layout.EndPercent != 100 {
		t.Errorf("end percent = %v, want 100", v.bar.layout.EndPercent)
	}
}

func TestHandleDragMovesStart(t *testing.T) {
	v, _ := newTestView(t, Options{Duration: 120})
	h := v.bar.startHandle

	h.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(barX(v, 0.75), 0)}})
	if got := v.Selector().ActiveHandle(); got != trimmer.HandleStart {
		t.Errorf("active handle = %v, want start", got)
	}
	if !h.active {
		t.Error("start handle should be highlighted while dragging")
	}

	h.DragEnd()
	s := v.Selector()
	if s.ActiveHandle() != trimmer.HandleNone || h.active {
		t.Error("drag should end on release")
	}
	if math.Abs(s.StartTime()-90) > 0.5 {
		t.Errorf("start = %v, want about 90", s.StartTime())
	}
	if math.Abs(v.bar.layout.StartPercent-75) > 0.5 {
		t.Errorf("start percent = %v, want about 75", v.bar.layout.StartPercent)
	}
	if math.Abs(v.player.CurrentTime()-s.StartTime()) > 1e-9 {
		t.Errorf("preview seek = %v, want %v", v.player.CurrentTime(), s.StartTime())
	}
}

func TestBarTapSeeks(t *testing.T) {
	v, _ := newTestView(t, Options{Duration: 120})

	v.bar.Tapped(&fyne.PointEvent{AbsolutePosition: fyne.NewPos(barX(v, 0.5), 10)})
	if cur := v.player.CurrentTime(); math.Abs(cur-60) > 1 {
		t.Errorf("position = %v, want about 60", cur)
	}
}

func TestTapMediaTogglesPlayback(t *testing.T) {
	v, _ := newTestView(t, Options{Duration: 30})

	test.Tap(v.media)
	if v.player.Paused() {
		t.Fatal("tap should start playback")
	}
	if !v.media.cue.Visible() {
		t.Error("cue should be visible after toggling")
	}

	v.Step(700 * time.Millisecond)
	if v.media.cue.Visible() {
		t.Error("cue should hide after the cue duration")
	}
	if v.media.clock.Text != "00:00 / 00:30" {
		t.Errorf("clock = %q", v.media.clock.Text)
	}

	test.Tap(v.media)
	if !v.player.Paused() {
		t.Error("second tap should pause")
	}
}

func TestConfirmRequiresTitle(t *testing.T) {
	var submitted []trimmer.Fields
	v, w := newTestView(t, Options{
		Duration: 60,
		OnSubmit: func(f trimmer.Fields) error {
			submitted = append(submitted, f)
			return nil
		},
	})

	test.Tap(v.trimButton)
	if len(submitted) != 0 {
		t.Errorf("submitted without a title: %+v", submitted)
	}
	top := w.Canvas().Overlays().Top()
	if top == nil {
		t.Fatal("missing title alert should be shown")
	}
	w.Canvas().Overlays().Remove(top)
	if w.Canvas().Focused() != v.titleEntry {
		t.Error("title entry should receive focus")
	}
}

func TestConfirmSubmitsRange(t *testing.T) {
	var submitted []trimmer.Fields
	v, _ := newTestView(t, Options{
		Duration: 60,
		Title:    "intro",
		OnSubmit: func(f trimmer.Fields) error {
			submitted = append(submitted, f)
			return nil
		},
	})

	test.Tap(v.trimButton)
	want := trimmer.Fields{StartTimeSeconds: 0, EndTimeSeconds: 60, VideoTitle: "intro"}
	if len(submitted) != 1 || submitted[0] != want {
		t.Errorf("submitted = %+v, want %+v", submitted, want)
	}
}

func TestLoadReplacesSelector(t *testing.T) {
	v, _ := newTestView(t, Options{Duration: 60})
	first := v.Selector()

	second, err := v.Load(10)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !first.Destroyed() {
		t.Error("previous selector should be destroyed")
	}
	if second.Duration() != 10 || v.endLabel.Text != "00:10" {
		t.Errorf("duration = %v end label = %q", second.Duration(), v.endLabel.Text)
	}
	v.player.SetCurrentTime(4)
	if _, err := v.Load(0); err == nil {
		t.Error("Load(0) should fail")
	}
	if v.Selector() != second || second.Destroyed() {
		t.Error("a rejected Load should keep the current selector")
	}
	if v.player.Duration() != 10 || v.player.CurrentTime() != 4 {
		t.Errorf("player = %v at %v after a rejected Load, want 10 at 4", v.player.Duration(), v.player.CurrentTime())
	}
}

func TestStopDestroysSelector(t *testing.T) {
	v, _ := newTestView(t, Options{Duration: 60})
	s := v.Selector()

	v.Stop()
	v.Stop()
	if !s.Destroyed() || v.Selector() != nil {
		t.Error("Stop should destroy the selector")
	}
	v.Step(time.Second)
	if v.player.CurrentTime() != 0 {
		t.Error("Step after Stop should do nothing")
	}
}
