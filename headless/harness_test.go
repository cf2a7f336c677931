package headless

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/chrisuehlinger/cliptrim/markup"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

func newHarness(t *testing.T, duration float64, opts Options) *Harness {
	t.Helper()
	h, err := New(duration, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(h.Close)
	return h
}

func element(t *testing.T, h *Harness, id string) *markup.Element {
	t.Helper()
	el, ok := h.Doc.Element(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}
	return el
}

func TestInitialMarkup(t *testing.T) {
	h := newHarness(t, 120, Options{})

	if got := element(t, h, IDRightHandle).Style("left"); got != "100%" {
		t.Errorf("right handle left = %q, want 100%%", got)
	}
	if got := element(t, h, IDRightHandle).Style("transform"); got != "translateX(-100%)" {
		t.Errorf("right handle transform = %q", got)
	}
	if got := element(t, h, IDProgressBar).Style("width"); got != "100%" {
		t.Errorf("progress width = %q, want 100%%", got)
	}
	if got := element(t, h, IDEndTime).Text(); got != "02:00" {
		t.Errorf("end label = %q, want 02:00", got)
	}
	if got := element(t, h, IDPositionMarker).Style("left"); got != "12px" {
		t.Errorf("marker left = %q, want 12px", got)
	}
}

func TestDragWritesMarkup(t *testing.T) {
	h := newHarness(t, 120, Options{})

	h.PointerDown(trimmer.HandleStart)
	if !element(t, h, IDLeftHandle).HasClass("active") {
		t.Error("left handle should be active while dragging")
	}
	if got := h.Doc.Body().Style("cursor"); got != "ew-resize" {
		t.Errorf("cursor = %q, want ew-resize", got)
	}
	h.PointerMove(h.XForTime(30))
	h.PointerUp()

	if element(t, h, IDLeftHandle).HasClass("active") {
		t.Error("active class not removed")
	}
	if got := h.Doc.Body().Style("cursor"); got != "default" {
		t.Errorf("cursor = %q, want default", got)
	}
	if got := element(t, h, IDLeftHandle).Style("left"); got != "25%" {
		t.Errorf("left handle left = %q, want 25%%", got)
	}
	if got := element(t, h, IDSelectedDuration).Text(); got != "01:30" {
		t.Errorf("duration label = %q, want 01:30", got)
	}
	if math.Abs(h.Player.CurrentTime()-30) > 1e-9 {
		t.Errorf("preview position = %v, want 30", h.Player.CurrentTime())
	}
}

func TestPlaybackLoopsInsideSelection(t *testing.T) {
	h := newHarness(t, 20, Options{Autoplay: true})
	h.Drag(trimmer.HandleStart, h.XForTime(4))
	h.Drag(trimmer.HandleEnd, h.XForTime(10))

	sel := h.Selector()
	h.Advance(7 * time.Second)

	cur := h.Player.CurrentTime()
	if cur < sel.StartTime() || cur >= sel.EndTime() {
		t.Errorf("position %v escaped selection [%v, %v)", cur, sel.StartTime(), sel.EndTime())
	}
	if h.Player.Paused() {
		t.Error("looping should keep playing")
	}
}

func TestPlaybackLoopsAtClipEnd(t *testing.T) {
	h := newHarness(t, 2, Options{Autoplay: true})
	h.Advance(3 * time.Second)

	if h.Player.Paused() {
		t.Error("player paused at clip end instead of looping")
	}
	if h.Player.CurrentTime() >= 2 {
		t.Errorf("position = %v, want looped back", h.Player.CurrentTime())
	}
}

func TestPlayPauseCue(t *testing.T) {
	h := newHarness(t, 60, Options{})
	overlay := element(t, h, IDPlayPauseOverlay)
	icon := element(t, h, IDPlayPauseIcon)

	h.ClickMedia()
	if !overlay.HasClass("show") || icon.ClassName() != "pi pi-play" {
		t.Errorf("overlay class = %q icon = %q", overlay.ClassName(), icon.ClassName())
	}
	h.Advance(trimmer.CueDuration)
	if overlay.HasClass("show") {
		t.Error("overlay should hide after the cue duration")
	}

	h.ClickMedia()
	if icon.ClassName() != "pi pi-pause" || !h.Player.Paused() {
		t.Errorf("icon = %q paused = %v", icon.ClassName(), h.Player.Paused())
	}
}

func TestConfirmFillsHiddenFields(t *testing.T) {
	h := newHarness(t, 120, Options{})
	h.Drag(trimmer.HandleEnd, h.XForTime(90))
	h.Form.SetTitle("holiday")

	h.Confirm()

	subs := h.Form.Submissions()
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	if subs[0].StartTimeSeconds != 0 || math.Abs(subs[0].EndTimeSeconds-90) > 1e-9 || subs[0].VideoTitle != "holiday" {
		t.Errorf("submission = %+v", subs[0])
	}
	if got := element(t, h, IDTitleField).Value(); got != "holiday" {
		t.Errorf("hidden title = %q", got)
	}
}

func TestConfirmWithoutTitle(t *testing.T) {
	h := newHarness(t, 120, Options{})

	h.Confirm()

	if len(h.Form.Submissions()) != 0 {
		t.Error("submission accepted without a title")
	}
	if alerts := h.Form.Alerts(); len(alerts) != 1 || alerts[0] != trimmer.MissingTitlePrompt {
		t.Errorf("alerts = %v", alerts)
	}
	if h.Form.FocusCount() != 1 {
		t.Errorf("focus count = %d, want 1", h.Form.FocusCount())
	}
	if got := element(t, h, IDStartField).Value(); got != "" {
		t.Errorf("hidden start field written: %q", got)
	}
}

func TestOnSubmitError(t *testing.T) {
	h := newHarness(t, 120, Options{})
	boom := errors.New("rejected")
	h.Form.OnSubmit = func(trimmer.Fields) error { return boom }
	h.Form.SetTitle("clip")

	if err := h.Selector().Submit(); !errors.Is(err, boom) {
		t.Errorf("Submit error = %v, want %v", err, boom)
	}
}

func TestLoadReplacesSelector(t *testing.T) {
	h := newHarness(t, 120, Options{})
	first := h.Selector()

	second, err := h.Load(45)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !first.Destroyed() {
		t.Error("previous selector still active")
	}
	if second.Duration() != 45 || h.Player.Duration() != 45 {
		t.Errorf("durations = %v / %v, want 45", second.Duration(), h.Player.Duration())
	}
	if n := h.Targets.Document.Len(); n != 2 {
		t.Errorf("document listeners = %d, want 2", n)
	}

	if _, err := h.Load(0); !errors.Is(err, trimmer.ErrInvalidDuration) {
		t.Errorf("Load(0) error = %v, want ErrInvalidDuration", err)
	}
	if h.Selector() != second || second.Destroyed() {
		t.Error("a rejected Load should keep the current selector")
	}
	if h.Player.Duration() != 45 {
		t.Errorf("player duration = %v after a rejected Load, want 45", h.Player.Duration())
	}
}

func TestListenersReleasedOnClose(t *testing.T) {
	h := newHarness(t, 60, Options{})

	counts := h.Listeners()
	if counts["document"] != 2 || counts[IDTrimButton] != 1 || counts[IDLeftHandle] != 1 {
		t.Errorf("listeners = %v", counts)
	}
	h.Advance(250 * time.Millisecond)
	if h.Elapsed() != 250*time.Millisecond {
		t.Errorf("Elapsed = %v, want 250ms", h.Elapsed())
	}

	h.Close()
	for name, n := range h.Listeners() {
		if n != 0 {
			t.Errorf("%s still has %d listeners after Close", name, n)
		}
	}
}

func TestTemplateMissingRegions(t *testing.T) {
	_, err := New(10, Options{Template: `<html><body><div id="trimmer-bar"></div></body></html>`})
	var missing *markup.MissingRegionError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingRegionError", err)
	}
	if !strings.Contains(err.Error(), IDLeftHandle) {
		t.Errorf("error %q should name %s", err, IDLeftHandle)
	}
}

func TestBarWidthOverride(t *testing.T) {
	h := newHarness(t, 100, Options{BarWidth: 1000})
	if got := h.Surface.BarBounds().Width; got != 1000 {
		t.Errorf("bar width = %v, want 1000", got)
	}
	h.ClickBar(500)
	if math.Abs(h.Player.CurrentTime()-50) > 1e-9 {
		t.Errorf("position = %v, want 50", h.Player.CurrentTime())
	}
}
