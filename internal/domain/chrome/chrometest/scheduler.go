// Package chrometest provides a manually advanced Scheduler for tests.
package chrometest

import (
	"sort"
	"sync"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
)

// Scheduler fires callbacks only when Advance moves its clock past them
type Scheduler struct {
	mu      sync.Mutex
	now     time.Duration
	nextID  int
	pending []*timer
}

type timer struct {
	s       *Scheduler
	id      int
	due     time.Duration
	fn      func()
	stopped bool
}

var _ chrome.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc registers fn to run once the clock reaches now+d
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) chrome.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t := &timer{s: s, id: s.nextID, due: s.now + d, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward and runs every due callback in due order
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now += d
	var due, rest []*timer
	for _, t := range s.pending {
		switch {
		case t.stopped:
		case t.due <= s.now:
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.pending = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of live timers
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped {
		return false
	}
	for _, p := range t.s.pending {
		if p == t {
			t.stopped = true
			return true
		}
	}
	return false
}
