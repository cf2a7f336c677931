// Package loop provides a cooperative scheduler for animation-frame
// callbacks and one-shot timers.
//
// A Loop keeps its own clock. Nothing runs until the host calls Step, which
// advances the clock, fires due timers in due order, and then runs the frame
// callbacks that were requested before the step began. Callbacks requested
// from inside a frame run on the following step, matching how
// requestAnimationFrame behaves in a browser.
package loop

import (
	"sort"
	"sync"
	"time"
)

// FrameInterval is the nominal display refresh period (60Hz).
const FrameInterval = time.Second / 60

// frame is a queued animation-frame callback.
type frame struct {
	id        int
	callback  func(now time.Time)
	cancelled bool
}

// timer is a scheduled one-shot callback.
type timer struct {
	id       int
	callback func()
	dueTime  time.Time
	cleared  bool
}

// Loop schedules frame callbacks and timers. Its methods may be called from
// any goroutine, but callbacks only ever run inside Step on the caller's
// goroutine.
type Loop struct {
	now    time.Time
	nextID int
	frames []*frame
	byID   map[int]*frame
	timers map[int]*timer
	mu     sync.Mutex
}

// New creates a Loop whose clock starts at start.
func New(start time.Time) *Loop {
	return &Loop{
		now:    start,
		nextID: 1,
		byID:   make(map[int]*frame),
		timers: make(map[int]*timer),
	}
}

// Now returns the loop's current clock value.
func (l *Loop) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

func (l *Loop) allocID() int {
	id := l.nextID
	l.nextID++
	return id
}

// RequestFrame queues callback for the next step and returns a non-zero ID.
func (l *Loop) RequestFrame(callback func(now time.Time)) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := &frame{id: l.allocID(), callback: callback}
	l.frames = append(l.frames, f)
	l.byID[f.id] = f
	return f.id
}

// CancelFrame cancels a queued frame callback. Unknown IDs are ignored.
func (l *Loop) CancelFrame(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.byID[id]; ok {
		f.cancelled = true
		delete(l.byID, id)
	}
}

// SetTimeout schedules callback to run once delay has elapsed on the loop
// clock and returns a non-zero ID.
func (l *Loop) SetTimeout(callback func(), delay time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	t := &timer{
		id:       l.allocID(),
		callback: callback,
		dueTime:  l.now.Add(delay),
	}
	l.timers[t.id] = t
	return t.id
}

// ClearTimeout cancels a pending timer. Unknown IDs are ignored.
func (l *Loop) ClearTimeout(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[id]; ok {
		t.cleared = true
		delete(l.timers, id)
	}
}

// Step advances the clock by dt, fires every timer that has come due, then
// runs one batch of frame callbacks.
func (l *Loop) Step(dt time.Duration) {
	l.mu.Lock()
	if dt > 0 {
		l.now = l.now.Add(dt)
	}
	now := l.now

	var due []*timer
	for _, t := range l.timers {
		if !t.dueTime.After(now) {
			due = append(due, t)
		}
	}
	for _, t := range due {
		delete(l.timers, t.id)
	}
	l.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].dueTime.Equal(due[j].dueTime) {
			return due[i].id < due[j].id
		}
		return due[i].dueTime.Before(due[j].dueTime)
	})

	// Execute due timers outside the lock
	for _, t := range due {
		l.mu.Lock()
		cleared := t.cleared
		l.mu.Unlock()
		if !cleared {
			t.callback()
		}
	}

	l.mu.Lock()
	batch := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, f := range batch {
		l.mu.Lock()
		cancelled := f.cancelled
		delete(l.byID, f.id)
		l.mu.Unlock()
		if !cancelled {
			f.callback(now)
		}
	}
}

// Pending returns the number of queued frame callbacks and pending timers.
func (l *Loop) Pending() (frames, timers int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID), len(l.timers)
}

// Clear drops every queued frame and timer.
func (l *Loop) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.byID {
		f.cancelled = true
	}
	for _, t := range l.timers {
		t.cleared = true
	}
	l.frames = nil
	l.byID = make(map[int]*frame)
	l.timers = make(map[int]*timer)
}
