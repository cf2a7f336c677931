package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/cliptrim/trimmer"
)

// surface draws selector state onto the view's widgets.
type surface struct {
	view *TrimmerView
}

func (s *surface) BarBounds() trimmer.Bounds {
	bar := s.view.bar
	pos := fyne.NewPos(0, 0)
	if a := fyne.CurrentApp(); a != nil {
		pos = a.Driver().AbsolutePositionForObject(bar)
	}
	return trimmer.Bounds{Left: float64(pos.X), Width: float64(bar.Size().Width)}
}

func (s *surface) SetLayout(l trimmer.Layout) {
	v := s.view
	v.bar.layout = l
	v.bar.Refresh()
	v.startLabel.SetText(l.StartLabel)
	v.durationLabel.SetText(l.DurationLabel)
	v.endLabel.SetText(l.EndLabel)
}

func (s *surface) SetMarker(px float64) {
	s.view.bar.marker = float32(px)
	s.view.bar.Refresh()
}

func (s *surface) SetHandleActive(h trimmer.Handle, active bool) {
	switch h {
	case trimmer.HandleStart:
		s.view.bar.startHandle.setActive(active)
	case trimmer.HandleEnd:
		s.view.bar.endHandle.setActive(active)
	}
}

func (s *surface) SetCue(icon trimmer.Icon, visible bool) {
	s.view.media.setCue(icon, visible)
}

// form is the upload form: the title entry plus whatever OnSubmit does
// with the filled fields.
type form struct {
	window   fyne.Window
	title    *widget.Entry
	onSubmit func(trimmer.Fields) error
	fields   trimmer.Fields
}

func (f *form) Title() string {
	return f.title.Text
}

func (f *form) Alert(message string) {
	dialog.ShowInformation("Missing title", message, f.window)
}

func (f *form) FocusTitle() {
	f.window.Canvas().Focus(f.title)
}

func (f *form) Fill(fields trimmer.Fields) {
	f.fields = fields
}

func (f *form) Submit() error {
	if f.onSubmit == nil {
		return nil
	}
	return f.onSubmit(f.fields)
}
