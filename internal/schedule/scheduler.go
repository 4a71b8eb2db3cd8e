// Package schedule provides a cooperative, tick-driven task scheduler.
//
// All tasks run on the goroutine that calls Advance, one at a time, in order
// of their due time (ties broken by insertion order). Every task is stamped
// with the scheduler epoch current when it was scheduled; Cancel bumps the
// epoch so that nothing scheduled before it can ever run.
package schedule

import (
	"sort"
	"time"
)

// Task is a unit of deferred work.
type Task func()

type entry struct {
	at    time.Duration
	seq   uint64
	epoch uint64
	fn    Task
}

// Scheduler runs tasks against a virtual clock advanced by the caller.
type Scheduler struct {
	now     time.Duration
	epoch   uint64
	seq     uint64
	entries []entry // sorted by (at, seq)
}

// New creates an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Epoch returns the current cancellation epoch.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.entries)
}

// After schedules fn to run d after the current virtual time.
// Negative delays are treated as zero.
func (s *Scheduler) After(d time.Duration, fn Task) {
	if d < 0 {
		d = 0
	}
	s.seq++
	e := entry{at: s.now + d, seq: s.seq, epoch: s.epoch, fn: fn}

	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].at > e.at
	})
	s.entries = append(s.entries, entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}

// Cancel invalidates every pending task and returns the new epoch.
func (s *Scheduler) Cancel() uint64 {
	s.epoch++
	s.entries = s.entries[:0]
	return s.epoch
}

// Advance moves the clock forward by dt, running every task that falls due.
// Each task observes Now() equal to its own due time, so tasks scheduled from
// inside a task keep exact spacing regardless of tick granularity.
// Returns the number of tasks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	ran := 0

	for len(s.entries) > 0 && s.entries[0].at <= target {
		e := s.entries[0]
		s.entries = s.entries[1:]
		if e.epoch != s.epoch {
			continue
		}
		s.now = e.at
		e.fn()
		ran++
	}

	s.now = target
	return ran
}
