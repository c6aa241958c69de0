package clients

import (
	"sync"
	"time"
)

// State is the position of a Breaker.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota

	// StateOpen rejects calls until the cool-down has passed.
	StateOpen

	// StateHalfOpen lets a limited number of trial calls through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a Breaker.
type BreakerConfig struct {
	// MaxFailures consecutive failures open the breaker.
	MaxFailures int

	// CoolDown is how long the breaker stays open before probing.
	CoolDown time.Duration

	// Trials is both the number of concurrent half-open calls allowed and
	// the number of successes needed to close again.
	Trials int
}

// Breaker stops calling an upstream that keeps failing.
//
//   - closed → open after MaxFailures consecutive failures
//   - open → half-open once CoolDown has passed
//   - half-open → closed after Trials successes
//   - half-open → open on any failure
type Breaker struct {
	mu        sync.Mutex
	state     State
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time
	cfg       BreakerConfig

	onChange func(from, to State)
	now      func() time.Time
}

// NewBreaker creates a closed breaker. Zero fields get small defaults.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}

	if cfg.CoolDown <= 0 {
		cfg.CoolDown = 30 * time.Second
	}

	if cfg.Trials <= 0 {
		cfg.Trials = 1
	}

	return &Breaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to run after each transition, outside the lock.
func (b *Breaker) OnStateChange(fn func(from, to State)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.onChange = fn
}

// Allow reports whether a call may proceed. A true result must be followed
// by exactly one Success or Failure.
func (b *Breaker) Allow() bool {
	b.mu.Lock()

	allowed := false
	from, to := b.state, b.state

	switch b.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if b.now().Sub(b.openedAt) >= b.cfg.CoolDown {
			to = b.moveLocked(StateHalfOpen)
			b.inFlight = 1
			allowed = true
		}

	case StateHalfOpen:
		if b.inFlight < b.cfg.Trials {
			b.inFlight++
			allowed = true
		}
	}

	fn := b.onChange
	b.mu.Unlock()

	notify(fn, from, to)

	return allowed
}

// Success records a completed call.
func (b *Breaker) Success() {
	b.mu.Lock()

	from, to := b.state, b.state

	switch b.state {
	case StateClosed:
		b.failures = 0

	case StateHalfOpen:
		b.inFlight--
		b.successes++

		if b.successes >= b.cfg.Trials {
			to = b.moveLocked(StateClosed)
		}
	}

	fn := b.onChange
	b.mu.Unlock()

	notify(fn, from, to)
}

// Failure records a failed call.
func (b *Breaker) Failure() {
	b.mu.Lock()

	from, to := b.state, b.state

	switch b.state {
	case StateClosed:
		b.failures++

		if b.failures >= b.cfg.MaxFailures {
			to = b.moveLocked(StateOpen)
		}

	case StateHalfOpen:
		b.inFlight--
		to = b.moveLocked(StateOpen)
	}

	fn := b.onChange
	b.mu.Unlock()

	notify(fn, from, to)
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// moveLocked changes state and resets counters. Callers hold mu.
func (b *Breaker) moveLocked(to State) State {
	b.state = to
	b.failures = 0
	b.successes = 0

	if to == StateOpen {
		b.openedAt = b.now()
		b.inFlight = 0
	}

	return to
}

func notify(fn func(from, to State), from, to State) {
	if fn != nil && from != to {
		fn(from, to)
	}
}
