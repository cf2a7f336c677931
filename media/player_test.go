package media

import (
	"testing"
	"time"
)

func TestPlayerAdvance(t *testing.T) {
	p := NewPlayer(10)
	p.Advance(time.Second)
	if p.CurrentTime() != 0 {
		t.Errorf("paused player advanced to %v", p.CurrentTime())
	}

	p.Play()
	p.Advance(1500 * time.Millisecond)
	if p.CurrentTime() != 1.5 {
		t.Errorf("CurrentTime = %v, want 1.5", p.CurrentTime())
	}

	p.SetRate(2)
	p.Advance(time.Second)
	if p.CurrentTime() != 3.5 {
		t.Errorf("CurrentTime = %v, want 3.5", p.CurrentTime())
	}
}

func TestPlayerHoldsAtEnd(t *testing.T) {
	p := NewPlayer(2)
	p.Play()
	p.Advance(5 * time.Second)

	if p.CurrentTime() != 2 || !p.Ended() || p.Paused() {
		t.Errorf("at end: time = %v ended = %v paused = %v", p.CurrentTime(), p.Ended(), p.Paused())
	}

	p.Pause()
	p.Play()
	if p.CurrentTime() != 0 {
		t.Errorf("Play at end should restart, time = %v", p.CurrentTime())
	}
}

func TestPlayerSeekClamps(t *testing.T) {
	p := NewPlayer(10)
	p.SetCurrentTime(-4)
	if p.CurrentTime() != 0 {
		t.Errorf("CurrentTime = %v, want 0", p.CurrentTime())
	}
	p.SetCurrentTime(42)
	if p.CurrentTime() != 10 {
		t.Errorf("CurrentTime = %v, want 10", p.CurrentTime())
	}
}
