// Package scheduler keeps a registry of delayed callbacks that fire as a game clock advances.
//
// Nothing here runs on its own goroutine. The owner calls Advance once per tick with the
// elapsed time, and due callbacks run synchronously, earliest first. Callbacks scheduled
// at the same instant run in the order they were scheduled.
package scheduler

import (
	"sort"
	"time"
)

// Handle identifies a scheduled task
type Handle uint64

type task struct {
	handle Handle
	group  string
	at     time.Duration
	fn     func()
}

// Scheduler is a delayed-callback registry keyed by group
type Scheduler struct {
	now    time.Duration
	tasks  []*task
	nextID Handle
}

// New returns an empty scheduler
func New() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once delay has elapsed
// A nil fn is allowed: the task then only marks its group as pending until it expires.
func (s *Scheduler) After(group string, delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}

	s.nextID++
	s.tasks = append(s.tasks, &task{
		handle: s.nextID,
		group:  group,
		at:     s.now + delay,
		fn:     fn,
	})

	return s.nextID
}

// Cancel discards a task without running it
func (s *Scheduler) Cancel(handle Handle) bool {
	for i, t := range s.tasks {
		if t.handle == handle {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}

	return false
}

// IsPending returns true if any task in the group has yet to run
func (s *Scheduler) IsPending(group string) bool {
	for _, t := range s.tasks {
		if t.group == group {
			return true
		}
	}

	return false
}

// Busy returns true if any task is waiting
func (s *Scheduler) Busy() bool {
	return len(s.tasks) > 0
}

// Advance moves the clock forward and runs every task that became due
// Tasks scheduled from inside a callback are measured from that callback's due time,
// and run during this same call if they fall due before the new clock time.
func (s *Scheduler) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}

	target := s.now + elapsed
	fired := 0
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}

		s.now = t.at
		fired++
		if t.fn != nil {
			t.fn()
		}
	}

	s.now = target
	return fired
}

// nextDue removes and returns the earliest task due at or before target
func (s *Scheduler) nextDue(target time.Duration) *task {
	if len(s.tasks) == 0 {
		return nil
	}

	// handles increase monotonically, so a stable sort by due time keeps scheduling order on ties
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].at < s.tasks[j].at
	})

	t := s.tasks[0]
	if t.at > target {
		return nil
	}

	s.tasks = s.tasks[1:]
	return t
}

// Clear discards every pending task without running it
func (s *Scheduler) Clear() {
	s.tasks = nil
}
