package chrome

import "time"

// Timer is a pending scheduled callback
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to Scheduler
type SchedulerFunc func(d time.Duration, fn func()) Timer

// AfterFunc calls f(d, fn)
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

// WallClock schedules on the runtime timer. Callbacks run on their own goroutine.
var WallClock Scheduler = SchedulerFunc(func(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
})

// Deliver wraps a scheduler so that callbacks are handed to post instead of
// running directly, typically onto an event loop.
func Deliver(s Scheduler, post func(func())) Scheduler {
	return SchedulerFunc(func(d time.Duration, fn func()) Timer {
		return s.AfterFunc(d, func() { post(fn) })
	})
}
