package platform

import (
	"context"
	"sync"
	"time"

	"github.com/spaghettifunk/gyre/engine/containers"
	"github.com/spaghettifunk/gyre/engine/core"
)

// Scheduler defers a callback by a fixed duration. Implementations must run
// fn on the same context as every other engine call.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

const DefaultQueueCapacity = 1024

// EventLoop is the single event-processing context of the process. Every
// callback, whether posted by another goroutine or fired by a timer, runs
// on the goroutine that called Run, one at a time and in FIFO order.
type EventLoop struct {
	mu      sync.Mutex
	queue   *containers.RingQueue[func()]
	wake    chan struct{}
	done    chan struct{}
	stopped bool
	timers  map[*time.Timer]struct{}
}

func NewEventLoop(capacity int) *EventLoop {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &EventLoop{
		queue:  containers.NewRingQueue[func()](capacity),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		timers: make(map[*time.Timer]struct{}),
	}
}

// Post enqueues fn to run on the loop. It is safe to call from any goroutine.
func (l *EventLoop) Post(fn func()) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return core.ErrLoopStopped
	}
	err := l.queue.Enqueue(fn)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Call posts fn and blocks until it has run on the loop, returning its error.
func (l *EventLoop) Call(fn func() error) error {
	result := make(chan error, 1)
	if err := l.Post(func() { result <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-l.done:
		return core.ErrLoopStopped
	}
}

// AfterFunc arms a one-shot timer that posts fn to the loop when it fires.
// The timer itself never runs fn.
func (l *EventLoop) AfterFunc(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.mu.Unlock()

		if err := l.Post(fn); err != nil {
			core.LogWarn("dropping deferred callback: %s", err)
		}
	})
	l.timers[t] = struct{}{}
}

// Run processes callbacks until ctx is cancelled. Pending timers are
// stopped and queued callbacks are discarded on exit.
func (l *EventLoop) Run(ctx context.Context) error {
	defer l.shutdown()
	for {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			fn()
			if ctx.Err() != nil {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-l.wake:
		}
	}
}

// Done is closed once Run has returned.
func (l *EventLoop) Done() <-chan struct{} {
	return l.done
}

func (l *EventLoop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn, err := l.queue.Dequeue()
	if err != nil {
		return nil, false
	}
	return fn, true
}

func (l *EventLoop) shutdown() {
	l.mu.Lock()
	l.stopped = true
	for t := range l.timers {
		t.Stop()
	}
	l.timers = nil
	l.mu.Unlock()
	close(l.done)
}
