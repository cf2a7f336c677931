package headless

import (
	"log/slog"
	"time"

	"github.com/chrisuehlinger/cliptrim/event"
	"github.com/chrisuehlinger/cliptrim/loop"
	"github.com/chrisuehlinger/cliptrim/markup"
	"github.com/chrisuehlinger/cliptrim/media"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

// epoch is where every harness clock starts.
var epoch = time.Unix(0, 0).UTC()

// Options configures a Harness.
type Options struct {
	// Template is the region markup. Defaults to DefaultTemplate.
	Template string
	// BarWidth overrides the bar width declared by the template.
	BarWidth float64
	// Autoplay starts the player as soon as the clip loads.
	Autoplay bool
	Logger   *slog.Logger
	Observer trimmer.Observer
}

// Targets are the event targets of the headless regions.
type Targets struct {
	StartHandle *event.Target
	EndHandle   *event.Target
	Bar         *event.Target
	Media       *event.Target
	Document    *event.Target
	Confirm     *event.Target
}

// Harness wires a trimmer to a headless surface, a simulated player, a
// loop and a form.
type Harness struct {
	Doc     *markup.Document
	Loop    *loop.Loop
	Player  *media.Player
	Surface *Surface
	Form    *Form
	Targets Targets

	manager  *trimmer.Manager
	autoplay bool
}

// New builds a harness and loads a clip of the given duration.
func New(duration float64, opts Options) (*Harness, error) {
	tmpl := opts.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	doc, err := markup.Parse(tmpl)
	if err != nil {
		return nil, err
	}
	surface, err := NewSurface(doc)
	if err != nil {
		return nil, err
	}
	form, err := NewForm(doc)
	if err != nil {
		return nil, err
	}
	if opts.BarWidth > 0 {
		b := surface.BarBounds()
		b.Width = opts.BarWidth
		surface.SetBarBounds(b)
	}

	h := &Harness{
		Doc:      doc,
		Loop:     loop.New(epoch),
		Player:   media.NewPlayer(duration),
		Surface:  surface,
		Form:     form,
		autoplay: opts.Autoplay,
		Targets: Targets{
			StartHandle: event.NewTarget(IDLeftHandle),
			EndHandle:   event.NewTarget(IDRightHandle),
			Bar:         event.NewTarget(IDBar),
			Media:       event.NewTarget(IDVideoPlayer),
			Document:    event.NewTarget("document"),
			Confirm:     event.NewTarget(IDTrimButton),
		},
	}

	deps := trimmer.Deps{
		Media:   h.Player,
		Surface: surface,
		Targets: trimmer.Targets{
			StartHandle: h.Targets.StartHandle,
			EndHandle:   h.Targets.EndHandle,
			Bar:         h.Targets.Bar,
			Media:       h.Targets.Media,
			Document:    h.Targets.Document,
			Confirm:     h.Targets.Confirm,
		},
		Scheduler: h.Loop,
		Form:      form,
	}
	var sopts []trimmer.Option
	if opts.Logger != nil {
		sopts = append(sopts, trimmer.WithLogger(opts.Logger))
	}
	if opts.Observer != nil {
		sopts = append(sopts, trimmer.WithObserver(opts.Observer))
	}
	h.manager = trimmer.NewManager(deps, sopts...)

	if _, err := h.Load(duration); err != nil {
		return nil, err
	}
	return h, nil
}

// Load swaps in a new clip: the player is reloaded and a fresh selector
// replaces the previous one. A rejected duration leaves the current clip
// untouched.
func (h *Harness) Load(duration float64) (*trimmer.Selector, error) {
	if err := trimmer.ValidateDuration(duration); err != nil {
		return nil, err
	}
	h.Player.Load(duration)
	if h.autoplay {
		h.Player.Play()
	}
	return h.manager.Load(duration)
}

// Listeners returns the number of registered listeners per target name.
func (h *Harness) Listeners() map[string]int {
	counts := make(map[string]int)
	for _, t := range []*event.Target{
		h.Targets.StartHandle, h.Targets.EndHandle, h.Targets.Bar,
		h.Targets.Media, h.Targets.Document, h.Targets.Confirm,
	} {
		counts[t.Name()] = t.Len()
	}
	return counts
}

// Elapsed returns how much loop time has passed since the harness was built.
func (h *Harness) Elapsed() time.Duration {
	return h.Loop.Now().Sub(epoch)
}

// Selector returns the active selector, or nil.
func (h *Harness) Selector() *trimmer.Selector {
	return h.manager.Current()
}

// Close destroys the active selector.
func (h *Harness) Close() {
	h.manager.Close()
}

// XForTime returns the client x coordinate that maps to t in the raw-time
// frame of the active selector.
func (h *Harness) XForTime(t float64) float64 {
	b := h.Surface.BarBounds()
	s := h.Selector()
	if s == nil || b.Width <= 0 {
		return b.Left
	}
	return b.Left + t/s.Duration()*b.Width
}

// PointerDown presses the pointer on a handle.
func (h *Harness) PointerDown(handle trimmer.Handle) {
	target := h.Targets.StartHandle
	if handle == trimmer.HandleEnd {
		target = h.Targets.EndHandle
	}
	target.Dispatch(&event.Event{Type: event.PointerDown})
}

// PointerMove moves the pointer anywhere on the document.
func (h *Harness) PointerMove(clientX float64) {
	h.Targets.Document.Dispatch(&event.Event{Type: event.PointerMove, ClientX: clientX})
}

// PointerUp releases the pointer anywhere on the document.
func (h *Harness) PointerUp() {
	h.Targets.Document.Dispatch(&event.Event{Type: event.PointerUp})
}

// Drag presses a handle, moves to clientX and releases.
func (h *Harness) Drag(handle trimmer.Handle, clientX float64) {
	h.PointerDown(handle)
	h.PointerMove(clientX)
	h.PointerUp()
}

// ClickBar clicks the timeline bar.
func (h *Harness) ClickBar(clientX float64) {
	h.Targets.Bar.Dispatch(&event.Event{Type: event.Click, ClientX: clientX})
}

// ClickMedia clicks the media surface.
func (h *Harness) ClickMedia() {
	h.Targets.Media.Dispatch(&event.Event{Type: event.Click})
}

// Confirm clicks the trim button.
func (h *Harness) Confirm() {
	h.Targets.Confirm.Dispatch(&event.Event{Type: event.Click})
}

// Step advances playback and the loop by dt.
func (h *Harness) Step(dt time.Duration) {
	h.Player.Advance(dt)
	h.Loop.Step(dt)
}

// RunFrames steps n display refreshes.
func (h *Harness) RunFrames(n int) {
	for i := 0; i < n; i++ {
		h.Step(loop.FrameInterval)
	}
}

// Advance steps frame by frame until d has elapsed.
func (h *Harness) Advance(d time.Duration) {
	for d > 0 {
		dt := loop.FrameInterval
		if d < dt {
			dt = d
		}
		h.Step(dt)
		d -= dt
	}
}
