// Package sched provides a single-threaded cooperative task scheduler.
//
// A task is a plain function that suspends itself by calling Yield. The
// scheduler hands control to exactly one task body at a time: Go runs a new
// task up to its first suspension point before returning, and Tick resumes
// every suspended task once, in the order the tasks were started. Task bodies
// therefore never interleave, even though each one is backed by a goroutine.
package sched

import (
	"context"
	"fmt"
	"log"
	"slices"
)

// Yielder is the handle a running task uses to suspend itself.
type Yielder interface {
	// Context returns the context the task was started with.
	Context() context.Context
	// Yield suspends the task until the next Tick.
	Yield()
}

// Task is a cooperatively scheduled unit of work.
type Task struct {
	name   string
	ctx    context.Context
	resume chan struct{}
	parked chan struct{}
	done   bool
	err    error
}

// Context returns the context the task was started with.
func (t *Task) Context() context.Context {
	return t.ctx
}

// Yield hands control back to the scheduler and blocks until the task is
// resumed by the next Tick. It must only be called from the task's own body.
func (t *Task) Yield() {
	t.parked <- struct{}{}
	<-t.resume
}

// Name returns the task name given to Go.
func (t *Task) Name() string {
	return t.name
}

// Done reports whether the task body has returned.
func (t *Task) Done() bool {
	return t.done
}

// Err returns the error recorded if the task body panicked.
func (t *Task) Err() error {
	return t.err
}

// Scheduler drives tasks one step at a time.
type Scheduler struct {
	tasks  []*Task
	ticks  uint64
	logger *log.Logger
}

// New creates an empty scheduler. A nil logger uses log.Default().
func New(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{logger: logger}
}

// Go starts fn as a new task and runs it until it first yields or returns.
func (s *Scheduler) Go(ctx context.Context, name string, fn func(y Yielder)) *Task {
	if ctx == nil {
		ctx = context.Background()
	}
	t := &Task{
		name:   name,
		ctx:    ctx,
		resume: make(chan struct{}),
		parked: make(chan struct{}),
	}

	go func() {
		<-t.resume
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task %s panicked: %v", t.name, r)
				s.logger.Printf("sched: %v", t.err)
			}
			t.done = true
			t.parked <- struct{}{}
		}()
		fn(t)
	}()

	s.tasks = append(s.tasks, t)
	s.step(t)
	return t
}

// Tick resumes every suspended task exactly once. Tasks started while the
// tick is in progress have already run their first step and wait for the
// next tick.
func (s *Scheduler) Tick() {
	s.ticks++

	for _, t := range slices.Clone(s.tasks) {
		if !t.done {
			s.step(t)
		}
	}

	s.tasks = slices.DeleteFunc(s.tasks, func(t *Task) bool { return t.done })
}

// RunUntilIdle ticks until no task is pending or maxTicks is reached. It
// returns the number of ticks performed.
func (s *Scheduler) RunUntilIdle(maxTicks int) int {
	n := 0
	for s.Pending() > 0 && n < maxTicks {
		s.Tick()
		n++
	}
	return n
}

// Pending returns the number of tasks that have not finished.
func (s *Scheduler) Pending() int {
	count := 0
	for _, t := range s.tasks {
		if !t.done {
			count++
		}
	}
	return count
}

// Ticks returns the number of ticks processed so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// step transfers control to t and waits for it to park or finish.
func (s *Scheduler) step(t *Task) {
	t.resume <- struct{}{}
	<-t.parked
}

// WithContext returns a Yielder that suspends through y but reports ctx.
// It lets a task thread a derived context (a tracing span, for example)
// into the calls it makes.
func WithContext(y Yielder, ctx context.Context) Yielder {
	return ctxYielder{Yielder: y, ctx: ctx}
}

type ctxYielder struct {
	Yielder
	ctx context.Context
}

func (c ctxYielder) Context() context.Context {
	return c.ctx
}
