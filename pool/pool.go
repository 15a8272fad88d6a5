/*
Package pool provides a small, bounded object pool.

Objects are handed out by Obtain and given back by Recycle. At most
MaxRetained recycled objects are kept for re-use; surplus objects are dropped
and left to the garbage collector. Every object known to a pool is either in
use by a client or resting in the pool, and recycling an object which already
rests in the pool is an error.

Pools are not safe for concurrent use. For concurrent clients, use sync.Pool.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package pool

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'flattree'
func tracer() tracing.Trace {
	return tracing.Select("flattree")
}

// DefaultMaxRetained is used if Config.MaxRetained is 0.
const DefaultMaxRetained = 16

var (
	// ErrInvalidConfig signals an invalid pool configuration.
	ErrInvalidConfig = errors.New("pool: invalid configuration")
	// ErrRecycled is returned when recycling an object which rests in the
	// pool already.
	ErrRecycled = errors.New("pool: object already recycled")
	// ErrNilObject is returned when recycling nil.
	ErrNilObject = errors.New("pool: cannot recycle nil")
)

// State tells whether an object is in use or resting in a pool.
type State uint8

// Object states.
const (
	InUse State = iota
	InPool
)

func (s State) String() string {
	if s == InPool {
		return "in-pool"
	}
	return "in-use"
}

// Config configures a pool.
type Config[T any] struct {
	// MaxRetained bounds the number of recycled objects kept for re-use.
	MaxRetained int
	// New creates a fresh object. Required.
	New func() *T
	// Reset clears an object when it is recycled. Optional.
	Reset func(*T)
}

func (cfg Config[T]) validate() error {
	if cfg.New == nil {
		return fmt.Errorf("%w: constructor is required", ErrInvalidConfig)
	}
	if cfg.MaxRetained < 0 {
		return fmt.Errorf("%w: negative retention bound %d", ErrInvalidConfig, cfg.MaxRetained)
	}
	return nil
}

// Pool is a bounded stack of re-usable objects.
type Pool[T any] struct {
	cfg     Config[T]
	stack   []*T
	resting map[*T]struct{}
}

// New creates an empty pool.
func New[T any](cfg Config[T]) (*Pool[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MaxRetained == 0 {
		cfg.MaxRetained = DefaultMaxRetained
	}
	return &Pool[T]{
		cfg:     cfg,
		stack:   make([]*T, 0, cfg.MaxRetained),
		resting: make(map[*T]struct{}, cfg.MaxRetained),
	}, nil
}

// Obtain returns a recycled object, or a fresh one if the pool is empty.
func (p *Pool[T]) Obtain() *T {
	if n := len(p.stack); n > 0 {
		item := p.stack[n-1]
		p.stack[n-1] = nil
		p.stack = p.stack[:n-1]
		delete(p.resting, item)
		return item
	}
	return p.cfg.New()
}

// Recycle hands item back to the pool. The client must not use item
// afterwards.
func (p *Pool[T]) Recycle(item *T) error {
	if item == nil {
		return ErrNilObject
	}
	if p.State(item) == InPool {
		tracer().Errorf("pool: object %p is recycled twice", item)
		return ErrRecycled
	}
	if p.cfg.Reset != nil {
		p.cfg.Reset(item)
	}
	if len(p.stack) < p.cfg.MaxRetained {
		p.stack = append(p.stack, item)
		p.resting[item] = struct{}{}
	}
	return nil
}

// State reports whether item currently rests in the pool.
func (p *Pool[T]) State(item *T) State {
	if _, ok := p.resting[item]; ok {
		return InPool
	}
	return InUse
}

// Len returns the number of objects resting in the pool.
func (p *Pool[T]) Len() int {
	return len(p.stack)
}

// MaxRetained returns the retention bound.
func (p *Pool[T]) MaxRetained() int {
	return p.cfg.MaxRetained
}

// Drain drops all resting objects.
func (p *Pool[T]) Drain() {
	clear(p.stack)
	p.stack = p.stack[:0]
	clear(p.resting)
}
