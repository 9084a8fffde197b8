package game

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"lukechampine.com/frand"

	"github.com/vovakirdan/tui-2048/internal/board"
)

type options struct {
	rng          board.Rand
	chanceTwo    float64
	sleeper      Sleeper
	winThreshold int
	logger       *log.Logger
	listeners    []Listener
}

// Option configures a Game.
type Option func(*options)

// WithRand sets the spawn random source.
func WithRand(rng board.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithSeed seeds a math/rand source for spawning.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithChanceTwo sets the probability that a spawned tile is a 2.
func WithChanceTwo(p float64) Option {
	return func(o *options) {
		o.chanceTwo = p
	}
}

// WithSleeper replaces the pacing between computer moves.
func WithSleeper(s Sleeper) Option {
	return func(o *options) {
		if s != nil {
			o.sleeper = s
		}
	}
}

// WithWinThreshold sets the tile value that signals a win.
func WithWinThreshold(v int) Option {
	return func(o *options) {
		if v > 0 {
			o.winThreshold = v
		}
	}
}

// WithLogger sets the logger for move and outcome records.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithListener adds an event listener.
func WithListener(l Listener) Option {
	return func(o *options) {
		if l != nil {
			o.listeners = append(o.listeners, l)
		}
	}
}

// resolveLogger returns the logger opts would set, without building the
// rest of the options.
func resolveLogger(opts []Option) *log.Logger {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		return log.New(io.Discard)
	}
	return o.logger
}

func buildOptions(opts []Option) options {
	o := options{
		chanceTwo:    DefaultChanceTwo,
		sleeper:      timerSleeper{},
		winThreshold: DefaultWinThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(int64(frand.Uint64n(math.MaxInt64))))
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}
