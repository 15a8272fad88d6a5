package flattree

import "fmt"

// DefaultCapacity is the number of arena slots pre-allocated by New if
// Config.Capacity is 0.
const DefaultCapacity = 16

// Config configures a tree arena.
type Config struct {
	// Sink receives one Change per effective mutating call. May be nil.
	Sink ChangeSink
	// Capacity is the number of node slots to pre-allocate.
	Capacity int
}

func (cfg Config) normalized() Config {
	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.Capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidConfig, cfg.Capacity)
	}
	return nil
}
