package platform

import (
	"sort"
	"time"
)

type scheduled struct {
	due time.Duration
	seq uint64
	fn  func()
}

// ManualScheduler is a Scheduler on a virtual clock that only moves when
// Advance or RunNext is called. Callbacks run on the caller's goroutine.
type ManualScheduler struct {
	epoch   time.Time
	now     time.Duration
	seq     uint64
	pending []scheduled
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{epoch: time.Unix(0, 0)}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.seq++
	s.pending = append(s.pending, scheduled{due: s.now + d, seq: s.seq, fn: fn})
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].due == s.pending[j].due {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].due < s.pending[j].due
	})
}

// Advance moves the clock forward by d, firing every callback that comes
// due on the way, including ones scheduled by earlier callbacks. It returns
// the number of callbacks fired.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	fired := 0
	for len(s.pending) > 0 && s.pending[0].due <= target {
		s.fire()
		fired++
	}
	s.now = target
	return fired
}

// RunNext jumps to the earliest pending callback and fires it. It reports
// false when nothing is pending.
func (s *ManualScheduler) RunNext() bool {
	if len(s.pending) == 0 {
		return false
	}
	s.fire()
	return true
}

func (s *ManualScheduler) fire() {
	next := s.pending[0]
	s.pending = s.pending[1:]
	s.now = next.due
	next.fn()
}

func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

func (s *ManualScheduler) Elapsed() time.Duration {
	return s.now
}

// Now returns the virtual wall time; usable as a core.Clock source.
func (s *ManualScheduler) Now() time.Time {
	return s.epoch.Add(s.now)
}
