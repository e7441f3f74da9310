package nimsforestkiosk

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"
)

// Scheduler runs delayed callbacks on a single queue.
type Scheduler interface {
	// AfterFunc schedules fn to run once d has elapsed. Scheduled calls cannot be cancelled.
	AfterFunc(d time.Duration, fn func())

	// Now returns the scheduler's current time.
	Now() time.Time
}

// EventQueue is a Scheduler that also accepts work to run on its queue immediately.
type EventQueue interface {
	Scheduler

	// Do runs fn on the queue and returns once it has completed.
	Do(fn func()) error
}

// Loop is an EventQueue backed by a go-eventloop loop and the wall clock.
// Timers and submitted functions never run concurrently with each other.
type Loop struct {
	loop    *eventloop.Loop
	stopped chan struct{}
	once    sync.Once
}

// NewLoop creates a loop. Call Run to start processing.
func NewLoop() (*Loop, error) {
	loop, err := eventloop.New()
	if err != nil {
		return nil, fmt.Errorf("create event loop: %w", err)
	}
	return &Loop{
		loop:    loop,
		stopped: make(chan struct{}),
	}, nil
}

// Run processes the queue until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.stopped) })
	return l.loop.Run(ctx)
}

// AfterFunc implements Scheduler. Timers scheduled after the loop has stopped are dropped.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	if _, err := l.loop.ScheduleTimer(d, fn); err != nil {
		Logger.WithError(err).Debug("timer dropped")
	}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Do implements EventQueue. It must not be called from the loop goroutine.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if err := l.loop.Submit(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrLoopStopped, err)
	}

	select {
	case <-finished:
		return nil
	case <-l.stopped:
		return ErrLoopStopped
	}
}

// ManualScheduler is an EventQueue on a virtual clock that only moves when Advance is called.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue taskQueue
}

// NewManualScheduler creates a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	heap.Push(&s.queue, &task{at: s.now.Add(d), seq: s.seq, fn: fn})
}

// Now implements Scheduler.
func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Do implements EventQueue by running fn inline.
func (s *ManualScheduler) Do(fn func()) error {
	fn()
	return nil
}

// Advance moves the clock forward by d, running every task that falls due on the way
// in deadline order. Tasks scheduled by those tasks run too if they fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	for s.queue.Len() > 0 && !s.queue[0].at.After(target) {
		next := heap.Pop(&s.queue).(*task)
		s.now = next.at
		s.mu.Unlock()
		next.fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// Pending returns the number of tasks not yet run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

type task struct {
	at  time.Time
	seq uint64
	fn  func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(*task)) }

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
