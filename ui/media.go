package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/cliptrim/event"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

// mediaWidget stands in for the video surface: a dark frame showing the
// playback clock, with the play/pause cue overlaid. Taps go to the media
// target.
type mediaWidget struct {
	widget.BaseWidget

	target *event.Target
	frame  *canvas.Rectangle
	clock  *canvas.Text
	cue    *widget.Icon
}

func newMediaWidget(target *event.Target) *mediaWidget {
	m := &mediaWidget{
		target: target,
		frame:  canvas.NewRectangle(color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}),
		clock:  canvas.NewText("00:00 / 00:00", color.White),
		cue:    widget.NewIcon(theme.MediaPlayIcon()),
	}
	m.clock.TextSize = 28
	m.clock.Alignment = fyne.TextAlignCenter
	m.cue.Hide()
	m.ExtendBaseWidget(m)
	return m
}

func (m *mediaWidget) CreateRenderer() fyne.WidgetRenderer {
	cue := container.NewCenter(container.NewGridWrap(fyne.NewSize(96, 96), m.cue))
	return widget.NewSimpleRenderer(container.NewStack(m.frame, container.NewCenter(m.clock), cue))
}

func (m *mediaWidget) MinSize() fyne.Size {
	return fyne.NewSize(320, 180)
}

func (m *mediaWidget) Tapped(*fyne.PointEvent) {
	m.target.Dispatch(&event.Event{Type: event.Click})
}

func (m *mediaWidget) setClock(current, duration float64) {
	text := trimmer.FormatTime(current) + " / " + trimmer.FormatTime(duration)
	if m.clock.Text == text {
		return
	}
	m.clock.Text = text
	m.clock.Refresh()
}

func (m *mediaWidget) setCue(icon trimmer.Icon, visible bool) {
	if icon == trimmer.IconPause {
		m.cue.SetResource(theme.MediaPauseIcon())
	} else {
		m.cue.SetResource(theme.MediaPlayIcon())
	}
	if visible {
		m.cue.Show()
	} else {
		m.cue.Hide()
	}
}
