// Package trimmer implements the range selector behind the clip trimmer:
// two draggable handles bounding a [start, end] range within a clip, a
// timeline that seeks on click, a playback marker that loops inside the
// selection, and a play/pause toggle with a transient icon cue.
//
// A Selector is not safe for concurrent use. Every call, including the
// event handlers and scheduler callbacks it registers, must happen on one
// goroutine.
package trimmer

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/chrisuehlinger/cliptrim/event"
)

// CueDuration is how long the play/pause icon stays visible.
const CueDuration = 600 * time.Millisecond

// Deps are the collaborators a Selector binds to. Form may be nil when the
// host has no submission path.
type Deps struct {
	Media     MediaSource
	Surface   Surface
	Targets   Targets
	Scheduler Scheduler
	Form      Form
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Selector) {
		if log != nil {
			s.log = log
		}
	}
}

// WithObserver sets the activity observer.
func WithObserver(o Observer) Option {
	return func(s *Selector) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithID overrides the generated instance ID.
func WithID(id string) Option {
	return func(s *Selector) {
		s.id = id
	}
}

// Selector owns the trim range for one loaded clip.
type Selector struct {
	id       string
	duration float64
	minGap   float64
	start    float64
	end      float64
	active   Handle

	media    MediaSource
	surface  Surface
	sched    Scheduler
	form     Form
	bindings []binding

	frameID  int
	cueTimer int
	stopped  bool

	log      *slog.Logger
	observer Observer
}

// ValidateDuration reports whether duration is usable for a clip: finite
// and positive.
func ValidateDuration(duration float64) error {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return &InvalidDurationError{Duration: duration}
	}
	return nil
}

// New creates a Selector for a clip of the given duration in seconds, binds
// its listeners, writes the initial layout and starts the position loop.
func New(duration float64, deps Deps, opts ...Option) (*Selector, error) {
	if err := ValidateDuration(duration); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	s := &Selector{
		id:       uuid.NewString(),
		duration: duration,
		minGap:   minGapFor(duration),
		start:    0,
		end:      duration,
		active:   HandleNone,
		media:    deps.Media,
		surface:  deps.Surface,
		sched:    deps.Scheduler,
		form:     deps.Form,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(slog.String("selector", s.id))

	s.bind(deps.Targets)
	s.updateDisplay()
	s.tick(time.Time{})

	s.observer.SelectorCreated(s.id)
	s.log.Info("selector created",
		slog.Float64("duration", s.duration),
		slog.Float64("min_gap", s.minGap),
	)
	return s, nil
}

func (d Deps) validate() error {
	switch {
	case d.Media == nil:
		return errors.New("trimmer: media source is required")
	case d.Surface == nil:
		return errors.New("trimmer: surface is required")
	case d.Scheduler == nil:
		return errors.New("trimmer: scheduler is required")
	case d.Targets.StartHandle == nil || d.Targets.EndHandle == nil:
		return errors.New("trimmer: handle targets are required")
	case d.Targets.Bar == nil || d.Targets.Media == nil || d.Targets.Document == nil:
		return errors.New("trimmer: bar, media and document targets are required")
	}
	return nil
}

func (s *Selector) bind(t Targets) {
	s.listen(t.StartHandle, event.PointerDown, func(e *event.Event) {
		e.PreventDefault()
		s.StartDrag(HandleStart)
	})
	s.listen(t.EndHandle, event.PointerDown, func(e *event.Event) {
		e.PreventDefault()
		s.StartDrag(HandleEnd)
	})
	s.listen(t.Document, event.PointerMove, func(e *event.Event) {
		s.DragTo(e.ClientX)
	})
	s.listen(t.Document, event.PointerUp, func(*event.Event) {
		s.EndDrag()
	})
	s.listen(t.Bar, event.Click, func(e *event.Event) {
		s.ClickTimeline(e.ClientX)
	})
	s.listen(t.Media, event.Click, func(e *event.Event) {
		e.PreventDefault()
		s.TogglePlayPause()
	})
	if t.Confirm != nil && s.form != nil {
		s.listen(t.Confirm, event.Click, func(e *event.Event) {
			e.PreventDefault()
			_ = s.Submit()
		})
	}
}

// ID returns the instance ID used in logs and metrics.
func (s *Selector) ID() string { return s.id }

// Duration returns the clip duration in seconds.
func (s *Selector) Duration() float64 { return s.duration }

// MinGap returns the minimum enforced separation between start and end.
func (s *Selector) MinGap() float64 { return s.minGap }

// StartTime returns the selection start in seconds.
func (s *Selector) StartTime() float64 { return s.start }

// EndTime returns the selection end in seconds.
func (s *Selector) EndTime() float64 { return s.end }

// Range returns the selection as (start, end) in seconds. It stays valid
// after Destroy.
func (s *Selector) Range() (start, end float64) { return s.start, s.end }

// ActiveHandle returns the handle being dragged, or HandleNone.
func (s *Selector) ActiveHandle() Handle { return s.active }

// Destroyed reports whether Destroy has been called.
func (s *Selector) Destroyed() bool { return s.stopped }

// Destroy detaches every listener, stops the position loop and cancels any
// pending cue timer. It is safe to call more than once.
func (s *Selector) Destroy() {
	if s.stopped {
		return
	}
	s.stopped = true

	s.unbindAll()
	if s.frameID != 0 {
		s.sched.CancelFrame(s.frameID)
		s.frameID = 0
	}
	if s.cueTimer != 0 {
		s.sched.ClearTimeout(s.cueTimer)
		s.cueTimer = 0
	}

	s.observer.SelectorDestroyed(s.id)
	s.log.Info("selector destroyed",
		slog.Float64("start", s.start),
		slog.Float64("end", s.end),
	)

	s.media = nil
	s.surface = nil
	s.form = nil
}

// StartDrag begins dragging a handle.
func (s *Selector) StartDrag(h Handle) {
	if s.stopped || h == HandleNone {
		return
	}
	if s.active != HandleNone && s.active != h {
		s.surface.SetHandleActive(s.active, false)
	}
	s.active = h
	s.surface.SetHandleActive(h, true)
	s.observer.DragStarted(h)
	s.log.Debug("drag started", slog.String("handle", h.String()))
}

// DragTo moves the active handle to the time under clientX. It does nothing
// when no drag is in progress.
func (s *Selector) DragTo(clientX float64) {
	if s.stopped || s.active == HandleNone {
		return
	}
	bar := s.surface.BarBounds()
	if bar.Width <= 0 {
		return
	}
	t := pointerToTime(clientX, bar, s.duration)

	// end-minGap and start+minGap round, so the gap is settled exactly
	// after the clamp.
	if s.active == HandleStart {
		s.start = clamp(math.Min(t, s.end-s.minGap), 0, s.duration)
		s.start = lowerStart(s.start, s.end, s.minGap)
	} else {
		s.end = clamp(math.Max(t, s.start+s.minGap), 0, s.duration)
		s.end = raiseEnd(s.start, s.end, s.minGap, s.duration)
	}

	s.updateDisplay()
}

// EndDrag ends any drag in progress.
func (s *Selector) EndDrag() {
	if s.stopped || s.active == HandleNone {
		return
	}
	h := s.active
	s.active = HandleNone
	s.surface.SetHandleActive(HandleStart, false)
	s.surface.SetHandleActive(HandleEnd, false)
	s.log.Debug("drag ended",
		slog.String("handle", h.String()),
		slog.Float64("start", s.start),
		slog.Float64("end", s.end),
	)
}

// ClickTimeline seeks within the selection to the point under clientX. It
// is ignored while dragging and for clicks outside the inset span.
func (s *Selector) ClickTimeline(clientX float64) {
	if s.stopped || s.active != HandleNone {
		return
	}
	bar := s.surface.BarBounds()
	x := clientX - bar.Left
	startPx, endPx := insetSpan(s.start, s.end, s.duration, bar.Width)
	if endPx <= startPx || x < startPx || x > endPx {
		return
	}

	relative := clamp01((x - startPx) / (endPx - startPx))
	s.media.SetCurrentTime(s.start + relative*(s.end-s.start))
	s.observer.Seeked(SeekClick)
}

// updateDisplay writes the derived layout and, while dragging, moves the
// playback position to preview the edge being adjusted.
func (s *Selector) updateDisplay() {
	startPct := percentOf(s.start, s.duration)
	endPct := percentOf(s.end, s.duration)

	s.surface.SetLayout(Layout{
		StartPercent:     startPct,
		EndPercent:       endPct,
		FillLeftPercent:  startPct,
		FillWidthPercent: endPct - startPct,
		StartLabel:       FormatTime(s.start),
		DurationLabel:    FormatTime(s.end - s.start),
		EndLabel:         FormatTime(s.end),
	})

	switch s.active {
	case HandleStart:
		s.media.SetCurrentTime(s.start)
		s.observer.Seeked(SeekPreview)
	case HandleEnd:
		s.media.SetCurrentTime(math.Max(s.end-1, s.start))
		s.observer.Seeked(SeekPreview)
	}
}

// tick updates the position marker and reschedules itself until Destroy.
func (s *Selector) tick(time.Time) {
	s.frameID = 0
	if s.stopped {
		return
	}
	s.updatePositionIndicator()
	if s.stopped {
		return
	}
	s.frameID = s.sched.RequestFrame(s.tick)
}

func (s *Selector) updatePositionIndicator() {
	defer func() {
		if p := recover(); p != nil {
			s.log.Debug("position update recovered", slog.Any("panic", p))
		}
	}()

	current := s.media.CurrentTime()
	fraction := clamp01((current - s.start) / (s.end - s.start))
	bar := s.surface.BarBounds()
	startPx, endPx := insetSpan(s.start, s.end, s.duration, bar.Width)
	s.surface.SetMarker(startPx + fraction*(endPx-startPx))

	// Loop back inside the selection; play state is left as it is.
	if current >= s.end {
		s.media.SetCurrentTime(s.start)
		s.observer.Seeked(SeekLoop)
		s.log.Debug("playback looped", slog.Float64("from", current), slog.Float64("to", s.start))
	}
}

// TogglePlayPause starts or pauses playback and flashes the matching cue.
func (s *Selector) TogglePlayPause() {
	if s.stopped {
		return
	}
	if s.media.Paused() {
		s.media.Play()
		s.showCue(IconPlay)
		s.observer.Toggled(true)
	} else {
		s.media.Pause()
		s.showCue(IconPause)
		s.observer.Toggled(false)
	}
}

// showCue shows the icon and hides it after CueDuration. A pending hide
// from an earlier toggle is replaced, and the cue is forced hidden before
// being shown again.
func (s *Selector) showCue(icon Icon) {
	if s.cueTimer != 0 {
		s.sched.ClearTimeout(s.cueTimer)
		s.cueTimer = 0
	}
	s.surface.SetCue(icon, false)
	s.surface.SetCue(icon, true)
	s.cueTimer = s.sched.SetTimeout(func() {
		s.cueTimer = 0
		if s.stopped {
			return
		}
		s.surface.SetCue(icon, false)
	}, CueDuration)
}
