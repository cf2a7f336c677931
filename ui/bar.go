package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/cliptrim/event"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

const barHeight = 36

var (
	trackColor        = color.NRGBA{R: 0x3a, G: 0x3a, B: 0x44, A: 0xff}
	fillColor         = color.NRGBA{R: 0x2f, G: 0x7d, B: 0xf6, A: 0x80}
	handleColor       = color.NRGBA{R: 0x2f, G: 0x7d, B: 0xf6, A: 0xff}
	handleActiveColor = color.NRGBA{R: 0x8f, G: 0xc1, B: 0xff, A: 0xff}
	markerColor       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// handleWidget is a draggable handle. Pressing it delivers pointer down to
// its own target; movement and release go to the document target, the
// way a browser reports them outside the handle once a drag is under way.
type handleWidget struct {
	widget.BaseWidget

	target   *event.Target
	document *event.Target
	rect     *canvas.Rectangle
	pressed  bool
	active   bool
}

func newHandleWidget(target, document *event.Target) *handleWidget {
	h := &handleWidget{
		target:   target,
		document: document,
		rect:     canvas.NewRectangle(handleColor),
	}
	h.rect.CornerRadius = 3
	h.ExtendBaseWidget(h)
	return h
}

func (h *handleWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.rect)
}

func (h *handleWidget) Cursor() desktop.Cursor {
	return desktop.HResizeCursor
}

func (h *handleWidget) MouseDown(ev *desktop.MouseEvent) {
	h.press(ev.AbsolutePosition.X)
}

func (h *handleWidget) MouseUp(*desktop.MouseEvent) {
	h.release()
}

func (h *handleWidget) Dragged(ev *fyne.DragEvent) {
	if !h.pressed {
		h.press(ev.AbsolutePosition.X)
	}
	h.document.Dispatch(&event.Event{Type: event.PointerMove, ClientX: float64(ev.AbsolutePosition.X)})
}

func (h *handleWidget) DragEnd() {
	h.release()
}

func (h *handleWidget) press(x float32) {
	h.pressed = true
	h.target.Dispatch(&event.Event{Type: event.PointerDown, ClientX: float64(x)})
}

func (h *handleWidget) release() {
	if !h.pressed {
		return
	}
	h.pressed = false
	h.document.Dispatch(&event.Event{Type: event.PointerUp})
}

func (h *handleWidget) setActive(active bool) {
	if h.active == active {
		return
	}
	h.active = active
	if active {
		h.rect.FillColor = handleActiveColor
	} else {
		h.rect.FillColor = handleColor
	}
	h.rect.Refresh()
}

// barWidget is the timeline: a track, the selected fill, both handles and
// the playback marker. Taps go to the bar target.
type barWidget struct {
	widget.BaseWidget

	target      *event.Target
	startHandle *handleWidget
	endHandle   *handleWidget

	layout trimmer.Layout
	marker float32
}

func newBarWidget(target *event.Target, startHandle, endHandle *handleWidget) *barWidget {
	b := &barWidget{
		target:      target,
		startHandle: startHandle,
		endHandle:   endHandle,
		layout:      trimmer.Layout{EndPercent: 100, FillWidthPercent: 100},
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *barWidget) Tapped(ev *fyne.PointEvent) {
	b.target.Dispatch(&event.Event{
		Type:    event.Click,
		ClientX: float64(ev.AbsolutePosition.X),
		ClientY: float64(ev.AbsolutePosition.Y),
	})
}

func (b *barWidget) MinSize() fyne.Size {
	return fyne.NewSize(4*trimmer.HandleHalfWidth+theme.Padding(), barHeight)
}

func (b *barWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &barRenderer{
		bar:    b,
		track:  canvas.NewRectangle(trackColor),
		fill:   canvas.NewRectangle(fillColor),
		marker: canvas.NewRectangle(markerColor),
	}
	r.objects = []fyne.CanvasObject{r.track, r.fill, b.startHandle, b.endHandle, r.marker}
	return r
}

type barRenderer struct {
	bar     *barWidget
	track   *canvas.Rectangle
	fill    *canvas.Rectangle
	marker  *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *barRenderer) Layout(size fyne.Size) {
	l := r.bar.layout
	w := size.Width
	handleW := float32(2 * trimmer.HandleHalfWidth)

	r.track.Move(fyne.NewPos(0, 0))
	r.track.Resize(size)

	startX := float32(l.FillLeftPercent/100) * w
	fillW := float32(l.FillWidthPercent/100) * w
	r.fill.Move(fyne.NewPos(startX, 0))
	r.fill.Resize(fyne.NewSize(fillW, size.Height))

	// The start handle's left edge sits on the start; the end handle's
	// right edge sits on the end.
	r.bar.startHandle.Move(fyne.NewPos(float32(l.StartPercent/100)*w, 0))
	r.bar.startHandle.Resize(fyne.NewSize(handleW, size.Height))
	r.bar.endHandle.Move(fyne.NewPos(float32(l.EndPercent/100)*w-handleW, 0))
	r.bar.endHandle.Resize(fyne.NewSize(handleW, size.Height))

	r.marker.Move(fyne.NewPos(r.bar.marker-1, 0))
	r.marker.Resize(fyne.NewSize(2, size.Height))
}

func (r *barRenderer) MinSize() fyne.Size {
	return r.bar.MinSize()
}

func (r *barRenderer) Refresh() {
	r.Layout(r.bar.Size())
	canvas.Refresh(r.bar)
}

func (r *barRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *barRenderer) Destroy() {}
