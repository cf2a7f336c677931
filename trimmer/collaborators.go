package trimmer

import (
	"time"

	"github.com/chrisuehlinger/cliptrim/event"
)

// Handle identifies one of the two draggable handles.
type Handle int

const (
	HandleNone Handle = iota
	HandleStart
	HandleEnd
)

func (h Handle) String() string {
	switch h {
	case HandleStart:
		return "start"
	case HandleEnd:
		return "end"
	default:
		return "none"
	}
}

// Icon is the play/pause cue shown over the media surface.
type Icon int

const (
	IconPlay Icon = iota + 1
	IconPause
)

func (i Icon) String() string {
	if i == IconPause {
		return "pause"
	}
	return "play"
}

// MediaSource is the playable media the selector previews and loops.
type MediaSource interface {
	CurrentTime() float64
	SetCurrentTime(seconds float64)
	Paused() bool
	Play()
	Pause()
}

// Layout is the derived visual state written to the surface after every
// range change. Percentages are of the bar width.
type Layout struct {
	StartPercent     float64
	EndPercent       float64
	FillLeftPercent  float64
	FillWidthPercent float64
	StartLabel       string
	DurationLabel    string
	EndLabel         string
}

// Surface is the set of visual regions the selector writes to. The selector
// never creates regions; it only binds to the ones it is given. BarBounds is
// the only read, used to map pointer coordinates onto the bar.
type Surface interface {
	BarBounds() Bounds
	SetLayout(l Layout)
	SetMarker(px float64)
	SetHandleActive(h Handle, active bool)
	SetCue(icon Icon, visible bool)
}

// EventTarget is a region that delivers input events. *event.Target
// satisfies it.
type EventTarget interface {
	AddEventListener(typ event.Type, handler event.Handler) event.ListenerID
	RemoveEventListener(typ event.Type, id event.ListenerID) bool
}

// Targets are the event sources the selector binds to. Document is the
// wider scope pointer move and pointer up are observed on. Confirm is
// optional.
type Targets struct {
	StartHandle EventTarget
	EndHandle   EventTarget
	Bar         EventTarget
	Media       EventTarget
	Document    EventTarget
	Confirm     EventTarget
}

// Scheduler runs frame callbacks and timers. Returned IDs must be non-zero.
// *loop.Loop satisfies it.
type Scheduler interface {
	RequestFrame(callback func(now time.Time)) int
	CancelFrame(id int)
	SetTimeout(callback func(), delay time.Duration) int
	ClearTimeout(id int)
}

// Fields are the values handed to the form collaborator on submission.
type Fields struct {
	StartTimeSeconds float64
	EndTimeSeconds   float64
	VideoTitle       string
}

// Form is the hosting form that owns the title input and the actual
// submission transport.
type Form interface {
	Title() string
	Alert(message string)
	FocusTitle()
	Fill(f Fields)
	Submit() error
}

// SeekSource says which actor moved the playback position.
type SeekSource string

const (
	SeekPreview SeekSource = "preview"
	SeekClick   SeekSource = "click"
	SeekLoop    SeekSource = "loop"
)

// Observer receives notifications about selector activity. All methods are
// called on the selector's goroutine.
type Observer interface {
	SelectorCreated(id string)
	SelectorDestroyed(id string)
	DragStarted(h Handle)
	Seeked(source SeekSource)
	Toggled(playing bool)
	Submitted(err error)
}

type nopObserver struct{}

func (nopObserver) SelectorCreated(string)   {}
func (nopObserver) SelectorDestroyed(string) {}
func (nopObserver) DragStarted(Handle)       {}
func (nopObserver) Seeked(SeekSource)        {}
func (nopObserver) Toggled(bool)             {}
func (nopObserver) Submitted(error)          {}
