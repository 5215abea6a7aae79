// Package contact models the delivery side of the contact form: the payload,
// the Submitter capability and a simulated transport.
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrRejected is returned by a transport that refused the transmission.
var ErrRejected = errors.New("transmission rejected")

// Payload is what the form sends.
type Payload struct {
	Name    string
	Email   string
	Message string
}

// Key identifies identical payloads.
func (p Payload) Key() string {
	return fmt.Sprintf("%s\x00%s\x00%s", p.Name, p.Email, p.Message)
}

// Submitter delivers a payload.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, p Payload) error

func (f SubmitterFunc) Submit(ctx context.Context, p Payload) error { return f(ctx, p) }

// Simulated waits a fixed delay and succeeds. If FailEvery is n > 0, every
// nth attempt fails with ErrRejected.
type Simulated struct {
	Delay     time.Duration
	FailEvery int

	mu       sync.Mutex
	attempts int
}

// NewSimulated returns a simulated transport with the given delay.
func NewSimulated(delay time.Duration, failEvery int) *Simulated {
	return &Simulated{Delay: delay, FailEvery: failEvery}
}

// Submit blocks for Delay or until ctx is done.
func (s *Simulated) Submit(ctx context.Context, p Payload) error {
	s.mu.Lock()
	s.attempts++
	n := s.attempts
	s.mu.Unlock()

	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}
	if s.FailEvery > 0 && n%s.FailEvery == 0 {
		return fmt.Errorf("attempt %d: %w", n, ErrRejected)
	}
	return nil
}

// Attempts returns how many submissions were started.
func (s *Simulated) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Dispatcher collapses concurrent submissions of an identical payload into
// a single delivery through the wrapped Submitter. The shared delivery runs
// until every waiting caller has returned.
type Dispatcher struct {
	next  Submitter
	group singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the context shared by the callers of one payload.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// NewDispatcher wraps next.
func NewDispatcher(next Submitter) *Dispatcher {
	return &Dispatcher{next: next, flights: make(map[string]*flight)}
}

// Submit delivers p, sharing the result with concurrent callers of the same
// payload. A caller whose ctx is done returns early without cancelling the
// delivery for the others.
func (d *Dispatcher) Submit(ctx context.Context, p Payload) error {
	key := p.Key()
	f := d.join(ctx, key)
	defer d.leave(key, f)

	ch := d.group.DoChan(key, func() (interface{}, error) {
		return nil, d.next.Submit(f.ctx, p)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (d *Dispatcher) join(ctx context.Context, key string) *flight {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.flights[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		d.flights[key] = f
	}
	f.waiters++
	return f
}

func (d *Dispatcher) leave(key string, f *flight) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f.waiters--
	if f.waiters == 0 {
		f.cancel()
		delete(d.flights, key)
	}
}

// waiting returns the number of callers waiting on p.
func (d *Dispatcher) waiting(p Payload) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if f, ok := d.flights[p.Key()]; ok {
		return f.waiters
	}
	return 0
}
