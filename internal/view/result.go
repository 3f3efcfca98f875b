// Package view holds the presentation-independent controllers behind each
// screen. Every remote fetch goes through a Result, which tracks the
// idle/loading/success/error cycle and fences out responses to superseded
// requests.
package view

import (
	"context"
	"sync"
)

// Status is the phase of a Result.
type Status int

const (
	Idle Status = iota
	Loading
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Succeeded:
		return "success"
	case Failed:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of a Result. Data is only meaningful when Status is
// Succeeded and Err is only set when Status is Failed.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

func (s State[T]) Loading() bool { return s.Status == Loading }

// Message returns the error text, or "" when there is no error.
func (s State[T]) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Fetch performs the remote call for one request.
type Fetch[T any] func(ctx context.Context) (T, error)

// Pending is a started request that has not run yet. Execute may be called
// from any goroutine.
type Pending[T any] struct {
	gen   uint64
	ctx   context.Context
	fetch Fetch[T]
}

// Outcome is the result of executing a Pending, to be handed back to Finish.
type Outcome[T any] struct {
	gen  uint64
	data T
	err  error
}

// Generation identifies the request an outcome belongs to.
func (o Outcome[T]) Generation() uint64 { return o.gen }

// Execute runs the fetch with the request's own context.
func (p Pending[T]) Execute() Outcome[T] {
	data, err := p.fetch(p.ctx)
	return Outcome[T]{gen: p.gen, data: data, err: err}
}

// Generation identifies the request.
func (p Pending[T]) Generation() uint64 { return p.gen }

// Result is the state of one kind of fetch. The zero value is idle and ready
// to use. A Result must not be copied after first use.
type Result[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State[T]
}

// Start clears data and error, enters loading and issues a new generation.
// Any request still in flight is canceled and its outcome will be discarded.
func (r *Result[T]) Start(parent context.Context, fetch Fetch[T]) Pending[T] {
	ctx, cancel := context.WithCancel(parent)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersede()
	r.cancel = cancel
	r.state = State[T]{Status: Loading}
	return Pending[T]{gen: r.gen, ctx: ctx, fetch: fetch}
}

// Finish applies o if it belongs to the latest request and reports whether it
// did. Exactly one of data or error is populated.
func (r *Result[T]) Finish(o Outcome[T]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.gen != r.gen || r.state.Status != Loading {
		return false
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if o.err != nil {
		r.state = State[T]{Status: Failed, Err: o.err}
	} else {
		r.state = State[T]{Status: Succeeded, Data: o.data}
	}
	return true
}

// Fail enters the error state without a network call.
func (r *Result[T]) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersede()
	r.state = State[T]{Status: Failed, Err: err}
}

// Reset returns to idle and discards anything in flight.
func (r *Result[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersede()
	r.state = State[T]{}
}

// Run starts, executes and finishes a request on the calling goroutine.
func (r *Result[T]) Run(ctx context.Context, fetch Fetch[T]) State[T] {
	r.Finish(r.Start(ctx, fetch).Execute())
	return r.State()
}

// State returns a snapshot.
func (r *Result[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// supersede invalidates the current generation. Callers hold r.mu.
func (r *Result[T]) supersede() {
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
