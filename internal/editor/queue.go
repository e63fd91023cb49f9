package editor

import "context"

// Dispatcher schedules fn to run on the timeline that owns the document.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(fn func())

// Dispatch calls f(fn).
func (f DispatchFunc) Dispatch(fn func()) { f(fn) }

// Queue is a Dispatcher for hosts without an event loop of their own, such
// as the headless compose command and tests. Completions wait in the queue
// until the owner drains it.
type Queue struct {
	ch chan func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{ch: make(chan func(), 64)}
}

// Dispatch enqueues fn. It blocks while the queue is full.
func (q *Queue) Dispatch(fn func()) {
	q.ch <- fn
}

// Drain runs every queued function without waiting and returns how many
// ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// RunNext waits for one queued function and runs it.
func (q *Queue) RunNext(ctx context.Context) error {
	select {
	case fn := <-q.ch:
		fn()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
