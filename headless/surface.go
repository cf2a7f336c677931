// Package headless runs a trimmer without a window. Regions live in an HTML
// document parsed from a template, input arrives through event targets the
// caller dispatches on, and time advances only when the caller steps it.
package headless

import (
	_ "embed"
	"strconv"

	"github.com/chrisuehlinger/cliptrim/markup"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

//go:embed trimmer.html
var DefaultTemplate string

// Region ids the surface and form bind to.
const (
	IDBar              = "trimmer-bar"
	IDLeftHandle       = "left-handle"
	IDRightHandle      = "right-handle"
	IDProgressBar      = "progress-bar"
	IDPositionMarker   = "position-indicator"
	IDStartTime        = "start-time"
	IDSelectedDuration = "selected-duration"
	IDEndTime          = "end-time"
	IDVideoPlayer      = "video-player"
	IDPlayPauseOverlay = "play-pause-overlay"
	IDPlayPauseIcon    = "play-pause-icon"
	IDTrimButton       = "trim-button"
	IDTitleInput       = "video-title-input"
	IDStartField       = "start-time-seconds"
	IDEndField         = "end-time-seconds"
	IDTitleField       = "video-title"
	IDUploadForm       = "video-upload-form"
)

var surfaceIDs = []string{
	IDBar, IDLeftHandle, IDRightHandle, IDProgressBar, IDPositionMarker,
	IDStartTime, IDSelectedDuration, IDEndTime,
	IDVideoPlayer, IDPlayPauseOverlay, IDPlayPauseIcon,
}

// Surface writes trimmer layout into a markup document.
type Surface struct {
	doc           *markup.Document
	body          *markup.Element
	bar           *markup.Element
	leftHandle    *markup.Element
	rightHandle   *markup.Element
	fill          *markup.Element
	marker        *markup.Element
	startLabel    *markup.Element
	durationLabel *markup.Element
	endLabel      *markup.Element
	overlay       *markup.Element
	icon          *markup.Element

	active map[trimmer.Handle]bool
}

// NewSurface binds to the regions of doc. Every region must already exist.
func NewSurface(doc *markup.Document) (*Surface, error) {
	if err := doc.Require(surfaceIDs...); err != nil {
		return nil, err
	}
	el := func(id string) *markup.Element {
		e, _ := doc.Element(id)
		return e
	}
	return &Surface{
		doc:           doc,
		body:          doc.Body(),
		bar:           el(IDBar),
		leftHandle:    el(IDLeftHandle),
		rightHandle:   el(IDRightHandle),
		fill:          el(IDProgressBar),
		marker:        el(IDPositionMarker),
		startLabel:    el(IDStartTime),
		durationLabel: el(IDSelectedDuration),
		endLabel:      el(IDEndTime),
		overlay:       el(IDPlayPauseOverlay),
		icon:          el(IDPlayPauseIcon),
		active:        make(map[trimmer.Handle]bool),
	}, nil
}

// BarBounds reads the bar extent from its data-left and data-width
// attributes.
func (s *Surface) BarBounds() trimmer.Bounds {
	return trimmer.Bounds{
		Left:  s.bar.FloatAttr("data-left", 0),
		Width: s.bar.FloatAttr("data-width", 0),
	}
}

// SetBarBounds simulates the bar being laid out at a new position or width.
func (s *Surface) SetBarBounds(b trimmer.Bounds) {
	s.bar.SetAttr("data-left", formatNumber(b.Left))
	s.bar.SetAttr("data-width", formatNumber(b.Width))
}

func (s *Surface) SetLayout(l trimmer.Layout) {
	s.leftHandle.SetStyle("left", percent(l.StartPercent))
	s.rightHandle.SetStyle("left", percent(l.EndPercent))
	s.rightHandle.SetStyle("transform", "translateX(-100%)")

	s.fill.SetStyle("left", percent(l.FillLeftPercent))
	s.fill.SetStyle("width", percent(l.FillWidthPercent))

	s.startLabel.SetText(l.StartLabel)
	s.durationLabel.SetText(l.DurationLabel)
	s.endLabel.SetText(l.EndLabel)
}

func (s *Surface) SetMarker(px float64) {
	s.marker.SetStyle("left", formatNumber(px)+"px")
}

func (s *Surface) SetHandleActive(h trimmer.Handle, active bool) {
	var el *markup.Element
	switch h {
	case trimmer.HandleStart:
		el = s.leftHandle
	case trimmer.HandleEnd:
		el = s.rightHandle
	default:
		return
	}
	if active {
		el.AddClass("active")
	} else {
		el.RemoveClass("active")
	}
	s.active[h] = active

	cursor := "default"
	if s.active[trimmer.HandleStart] || s.active[trimmer.HandleEnd] {
		cursor = "ew-resize"
	}
	s.body.SetStyle("cursor", cursor)
}

func (s *Surface) SetCue(icon trimmer.Icon, visible bool) {
	s.icon.SetClassName("pi pi-" + icon.String())
	if visible {
		s.overlay.AddClass("show")
	} else {
		s.overlay.RemoveClass("show")
	}
}

// Document returns the document the surface writes into.
func (s *Surface) Document() *markup.Document {
	return s.doc
}

func percent(v float64) string {
	return formatNumber(v) + "%"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
