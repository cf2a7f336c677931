// Package ui provides the desktop trimmer window using Fyne.
package ui

import (
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/cliptrim/event"
	"github.com/chrisuehlinger/cliptrim/loop"
	"github.com/chrisuehlinger/cliptrim/media"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

// Options configures a TrimmerView.
type Options struct {
	Duration     float64
	Title        string
	PlaybackRate float64
	Logger       *slog.Logger
	Observer     trimmer.Observer
	// OnSubmit receives the trimmed range when the user confirms.
	OnSubmit func(trimmer.Fields) error
}

// TrimmerView is the trimmer UI inside a window: a media area, the
// timeline bar, the time labels and the upload form.
type TrimmerView struct {
	window fyne.Window
	loop   *loop.Loop
	player *media.Player

	// Event targets the selector binds to
	startTarget    *event.Target
	endTarget      *event.Target
	barTarget      *event.Target
	mediaTarget    *event.Target
	documentTarget *event.Target
	confirmTarget  *event.Target

	// Widgets
	media         *mediaWidget
	bar           *barWidget
	startLabel    *widget.Label
	durationLabel *widget.Label
	endLabel      *widget.Label
	titleEntry    *widget.Entry
	trimButton    *widget.Button
	content       fyne.CanvasObject

	form    *form
	manager *trimmer.Manager

	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	closed    bool
}

// NewTrimmerView builds the view for win and loads a clip of
// opts.Duration seconds.
func NewTrimmerView(win fyne.Window, opts Options) (*TrimmerView, error) {
	v := &TrimmerView{
		window:         win,
		loop:           loop.New(time.Now()),
		player:         media.NewPlayer(opts.Duration),
		startTarget:    event.NewTarget("left-handle"),
		endTarget:      event.NewTarget("right-handle"),
		barTarget:      event.NewTarget("trimmer-bar"),
		mediaTarget:    event.NewTarget("video-player"),
		documentTarget: event.NewTarget("document"),
		confirmTarget:  event.NewTarget("trim-button"),
		done:           make(chan struct{}),
	}
	if opts.PlaybackRate > 0 {
		v.player.SetRate(opts.PlaybackRate)
	}

	v.setupUI(opts)
	v.setupKeyboardShortcuts()

	deps := trimmer.Deps{
		Media:   v.player,
		Surface: &surface{view: v},
		Targets: trimmer.Targets{
			StartHandle: v.startTarget,
			EndHandle:   v.endTarget,
			Bar:         v.barTarget,
			Media:       v.mediaTarget,
			Document:    v.documentTarget,
			Confirm:     v.confirmTarget,
		},
		Scheduler: v.loop,
		Form:      v.form,
	}
	var sopts []trimmer.Option
	if opts.Logger != nil {
		sopts = append(sopts, trimmer.WithLogger(opts.Logger))
	}
	if opts.Observer != nil {
		sopts = append(sopts, trimmer.WithObserver(opts.Observer))
	}
	v.manager = trimmer.NewManager(deps, sopts...)

	if _, err := v.manager.Load(opts.Duration); err != nil {
		return nil, err
	}
	v.media.setClock(0, opts.Duration)
	return v, nil
}

// setupUI creates the view's widgets.
func (v *TrimmerView) setupUI(opts Options) {
	v.media = newMediaWidget(v.mediaTarget)
	v.bar = newBarWidget(v.barTarget,
		newHandleWidget(v.startTarget, v.documentTarget),
		newHandleWidget(v.endTarget, v.documentTarget),
	)

	v.startLabel = widget.NewLabel("00:00")
	v.durationLabel = widget.NewLabel("00:00")
	v.durationLabel.Alignment = fyne.TextAlignCenter
	v.endLabel = widget.NewLabel("00:00")
	v.endLabel.Alignment = fyne.TextAlignTrailing

	v.titleEntry = widget.NewEntry()
	v.titleEntry.SetPlaceHolder("Video name")
	v.titleEntry.SetText(opts.Title)

	v.trimButton = widget.NewButtonWithIcon("Trim & upload", theme.UploadIcon(), v.confirm)
	v.trimButton.Importance = widget.HighImportance

	v.form = &form{window: v.window, title: v.titleEntry, onSubmit: opts.OnSubmit}

	labels := container.NewGridWithColumns(3, v.startLabel, v.durationLabel, v.endLabel)
	formRow := container.NewBorder(nil, nil, nil, v.trimButton, v.titleEntry)
	v.content = container.NewBorder(nil,
		container.NewVBox(v.bar, labels, formRow),
		nil, nil,
		v.media,
	)
}

// setupKeyboardShortcuts sets up keyboard shortcuts.
func (v *TrimmerView) setupKeyboardShortcuts() {
	// Space: play/pause, unless the title entry has focus
	v.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeySpace {
			v.mediaTarget.Dispatch(&event.Event{Type: event.Click})
		}
	})

	// Ctrl+Enter: trim & upload
	v.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyReturn,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		v.confirm()
	})
}

func (v *TrimmerView) confirm() {
	v.confirmTarget.Dispatch(&event.Event{Type: event.Click})
}

// Content returns the root canvas object of the view.
func (v *TrimmerView) Content() fyne.CanvasObject {
	return v.content
}

// Selector returns the active selector, or nil once stopped.
func (v *TrimmerView) Selector() *trimmer.Selector {
	return v.manager.Current()
}

// Player returns the simulated player behind the media area.
func (v *TrimmerView) Player() *media.Player {
	return v.player
}

// Load swaps in a new clip and a fresh selector. A rejected duration
// leaves the current clip untouched.
func (v *TrimmerView) Load(duration float64) (*trimmer.Selector, error) {
	if err := trimmer.ValidateDuration(duration); err != nil {
		return nil, err
	}
	v.player.Load(duration)
	s, err := v.manager.Load(duration)
	if err != nil {
		return nil, err
	}
	v.media.setClock(0, duration)
	return s, nil
}

// Step advances playback and the frame loop by dt. It must run on the
// Fyne main goroutine.
func (v *TrimmerView) Step(dt time.Duration) {
	if v.closed {
		return
	}
	v.player.Advance(dt)
	v.loop.Step(dt)
	v.media.setClock(v.player.CurrentTime(), v.player.Duration())
}

// Start begins pumping frames at the display rate.
func (v *TrimmerView) Start() {
	v.startOnce.Do(func() {
		go v.pump()
	})
}

func (v *TrimmerView) pump() {
	ticker := time.NewTicker(loop.FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-v.done:
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			fyne.Do(func() {
				v.Step(dt)
			})
		}
	}
}

// Stop ends the frame pump and destroys the selector.
func (v *TrimmerView) Stop() {
	v.stopOnce.Do(func() {
		close(v.done)
		v.closed = true
		v.manager.Close()
		v.loop.Clear()
	})
}

// Run opens the trimmer in a new window and blocks until it is closed.
func Run(opts Options, width, height float32) error {
	a := app.NewWithID("com.chrisuehlinger.cliptrim")
	w := a.NewWindow("cliptrim")
	w.Resize(fyne.NewSize(width, height))

	v, err := NewTrimmerView(w, opts)
	if err != nil {
		return err
	}
	w.SetContent(v.Content())
	w.SetOnClosed(v.Stop)
	v.Start()
	w.ShowAndRun()
	return nil
}
