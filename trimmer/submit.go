package trimmer

import (
	"fmt"
	"log/slog"
	"strings"
)

// MissingTitlePrompt is shown to the user when the title is empty.
const MissingTitlePrompt = "Please choose a video name."

// Submit validates the title and hands the range and title to the form.
// An empty title alerts the user, returns focus to the title input and
// writes nothing.
func (s *Selector) Submit() error {
	if s.stopped {
		return ErrDestroyed
	}
	if s.form == nil {
		return ErrNoForm
	}

	title := s.form.Title()
	if strings.TrimSpace(title) == "" {
		err := &MissingTitleError{}
		s.form.Alert(MissingTitlePrompt)
		s.form.FocusTitle()
		s.observer.Submitted(err)
		s.log.Info("submission rejected", slog.String("reason", "missing title"))
		return err
	}

	s.form.Fill(Fields{
		StartTimeSeconds: s.start,
		EndTimeSeconds:   s.end,
		VideoTitle:       title,
	})
	if err := s.form.Submit(); err != nil {
		err = fmt.Errorf("trimmer: submit form: %w", err)
		s.observer.Submitted(err)
		s.log.Error("submission failed", slog.Any("error", err))
		return err
	}

	s.observer.Submitted(nil)
	s.log.Info("submission handed off",
		slog.Float64("start", s.start),
		slog.Float64("end", s.end),
		slog.String("title", title),
	)
	return nil
}
