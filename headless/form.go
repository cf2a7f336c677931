package headless

import (
	"fmt"
	"strconv"

	"github.com/chrisuehlinger/cliptrim/markup"
	"github.com/chrisuehlinger/cliptrim/trimmer"
)

var formIDs = []string{IDTitleInput, IDStartField, IDEndField, IDTitleField, IDUploadForm}

// Form is the hosting upload form. Fill writes the hidden fields; Submit
// reads them back and hands them to OnSubmit.
type Form struct {
	titleInput *markup.Element
	startField *markup.Element
	endField   *markup.Element
	titleField *markup.Element

	// OnSubmit receives every submission. A nil OnSubmit accepts all.
	OnSubmit func(f trimmer.Fields) error

	alerts      []string
	focusCount  int
	submissions []trimmer.Fields
}

// NewForm binds to the form regions of doc.
func NewForm(doc *markup.Document) (*Form, error) {
	if err := doc.Require(formIDs...); err != nil {
		return nil, err
	}
	el := func(id string) *markup.Element {
		e, _ := doc.Element(id)
		return e
	}
	return &Form{
		titleInput: el(IDTitleInput),
		startField: el(IDStartField),
		endField:   el(IDEndField),
		titleField: el(IDTitleField),
	}, nil
}

// SetTitle types a title into the title input.
func (f *Form) SetTitle(title string) {
	f.titleInput.SetValue(title)
}

func (f *Form) Title() string {
	return f.titleInput.Value()
}

func (f *Form) Alert(message string) {
	f.alerts = append(f.alerts, message)
}

func (f *Form) FocusTitle() {
	f.focusCount++
	f.titleInput.SetAttr("autofocus", "")
}

func (f *Form) Fill(fields trimmer.Fields) {
	f.startField.SetValue(formatNumber(fields.StartTimeSeconds))
	f.endField.SetValue(formatNumber(fields.EndTimeSeconds))
	f.titleField.SetValue(fields.VideoTitle)
}

func (f *Form) Submit() error {
	start, err := strconv.ParseFloat(f.startField.Value(), 64)
	if err != nil {
		return fmt.Errorf("read %s: %w", IDStartField, err)
	}
	end, err := strconv.ParseFloat(f.endField.Value(), 64)
	if err != nil {
		return fmt.Errorf("read %s: %w", IDEndField, err)
	}
	fields := trimmer.Fields{
		StartTimeSeconds: start,
		EndTimeSeconds:   end,
		VideoTitle:       f.titleField.Value(),
	}
	if f.OnSubmit != nil {
		if err := f.OnSubmit(fields); err != nil {
			return err
		}
	}
	f.submissions = append(f.submissions, fields)
	return nil
}

// Alerts returns the prompts shown to the user so far.
func (f *Form) Alerts() []string {
	return append([]string(nil), f.alerts...)
}

// FocusCount returns how many times focus was returned to the title input.
func (f *Form) FocusCount() int {
	return f.focusCount
}

// Submissions returns the accepted submissions in order.
func (f *Form) Submissions() []trimmer.Fields {
	return append([]trimmer.Fields(nil), f.submissions...)
}
