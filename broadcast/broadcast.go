package broadcast

import (
	"context"
	"errors"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/flattree"
)

// DefaultCapacity is the channel buffer size used by Subscribe if capacity
// is 0.
const DefaultCapacity = 64

// ErrClosed is returned when subscribing to a closed sink.
var ErrClosed = errors.New("broadcast: sink is closed")

// Sink is a flattree.ChangeSink publishing every change to all of its
// subscribers. A Sink is safe for concurrent use. Publishing blocks while a
// subscriber's buffer is full.
type Sink struct {
	cast   *caster.Caster
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
	wg     sync.WaitGroup
}

// Subscription is a single subscriber's view of a Sink. C delivers changes
// until the subscription is cancelled or the sink is closed, after which C
// will be closed.
type Subscription struct {
	C    <-chan flattree.Change
	raw  chan interface{}
	sink *Sink
	once sync.Once
}

// New creates a broadcast sink. Cancelling ctx closes the sink.
func New(ctx context.Context) *Sink {
	return &Sink{
		cast: caster.New(ctx),
		subs: make(map[*Subscription]struct{}),
	}
}

// Changed publishes c to all current subscribers. It is part of interface
// flattree.ChangeSink.
func (s *Sink) Changed(c flattree.Change) {
	if !s.cast.Pub(c) {
		tracer().Infof("broadcast: dropping change %s, sink is closed", c)
	}
}

// Subscribe registers a new subscriber, buffering up to capacity changes.
// Cancelling ctx ends the subscription.
func (s *Sink) Subscribe(ctx context.Context, capacity uint) (*Subscription, error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	raw, ok := s.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	out := make(chan flattree.Change, capacity)
	sub := &Subscription{C: out, raw: raw, sink: s}
	s.subs[sub] = struct{}{}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(out)
		for m := range raw {
			if c, ok := m.(flattree.Change); ok {
				out <- c
			}
		}
		s.mu.Lock()
		delete(s.subs, sub)
		s.mu.Unlock()
	}()
	return sub, nil
}

// Subscribers returns the number of active subscriptions.
func (s *Sink) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close ends all subscriptions and waits until every pending change has been
// handed to its subscriber. Subscribers have to keep reading C until it is
// closed. Changes published after Close are dropped.
func (s *Sink) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cast.Close()
	s.wg.Wait()
}

// Cancel ends the subscription. Changes still buffered in C may be read
// until C is closed.
func (sub *Subscription) Cancel() {
	sub.once.Do(func() {
		sub.sink.cast.Unsub(sub.raw)
	})
}
