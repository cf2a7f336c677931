// Package media provides a simulated media element: a playback position
// that advances with host time while playing. It stands in for a decoded
// clip wherever the host has no real decoder.
package media

import (
	"math"
	"time"
)

// Player tracks playback position and play state for a clip of known
// duration. At the end of the clip the position holds at duration without
// changing play state, so a seek back resumes playback immediately.
type Player struct {
	duration float64
	current  float64
	paused   bool
	rate     float64
}

// NewPlayer creates a paused player positioned at 0.
func NewPlayer(duration float64) *Player {
	return &Player{duration: duration, paused: true, rate: 1}
}

// Load replaces the clip, rewinding to 0. Play state is unchanged.
func (p *Player) Load(duration float64) {
	p.duration = duration
	p.current = 0
}

// Duration returns the clip duration in seconds.
func (p *Player) Duration() float64 { return p.duration }

// CurrentTime returns the playback position in seconds.
func (p *Player) CurrentTime() float64 { return p.current }

// SetCurrentTime seeks, clamping into [0, duration].
func (p *Player) SetCurrentTime(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	p.current = math.Max(0, math.Min(p.duration, seconds))
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

// Play resumes playback. Playing from the end restarts at 0.
func (p *Player) Play() {
	if p.current >= p.duration {
		p.current = 0
	}
	p.paused = false
}

// Pause pauses playback.
func (p *Player) Pause() { p.paused = true }

// SetRate sets the playback rate. Non-positive rates are ignored.
func (p *Player) SetRate(rate float64) {
	if rate > 0 {
		p.rate = rate
	}
}

// Advance moves the position forward by dt of host time while playing.
func (p *Player) Advance(dt time.Duration) {
	if p.paused || dt <= 0 {
		return
	}
	p.current += dt.Seconds() * p.rate
	if p.current > p.duration {
		p.current = p.duration
	}
}

// Ended reports whether the position has reached the end of the clip.
func (p *Player) Ended() bool { return p.current >= p.duration }
