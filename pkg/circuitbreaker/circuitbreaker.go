// Package circuitbreaker guards the gateway's hop to the server so a dead
// backend fails fast instead of tying up request handlers.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned while the breaker refuses calls.
var ErrOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

// Breaker counts failures inside a sliding window. After maxFailures the
// breaker opens for cooldown; the first call after cooldown probes the
// backend (half-open) and either closes the breaker or reopens it.
type Breaker struct {
	mu          sync.Mutex
	maxFailures int
	cooldown    time.Duration
	window      time.Duration
	state       State
	failures    []time.Time
	openedAt    time.Time
}

func New(maxFailures int, cooldown, window time.Duration) *Breaker {
	return &Breaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		window:      window,
		state:       StateClosed,
	}
}

// Do runs fn under the breaker. When the breaker is open, fn is not called
// and ErrOpen is returned.
func (b *Breaker) Do(fn func() error) error {
	if !b.allow() {
		return ErrOpen
	}
	err := fn()
	b.report(err)
	return err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if time.Since(b.openedAt) < b.cooldown {
			return false
		}
		b.state = StateHalfOpen
	}
	return true
}

func (b *Breaker) report(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if err == nil {
		if b.state == StateHalfOpen {
			b.state = StateClosed
		}
		b.failures = b.failures[:0]
		return
	}

	if b.state == StateHalfOpen {
		b.state = StateOpen
		b.openedAt = now
		b.failures = b.failures[:0]
		return
	}

	b.failures = append(b.failures, now)
	b.trim(now)
	if len(b.failures) >= b.maxFailures {
		b.state = StateOpen
		b.openedAt = now
		b.failures = b.failures[:0]
	}
}

func (b *Breaker) trim(now time.Time) {
	cutoff := now.Add(-b.window)
	kept := b.failures[:0]
	for _, t := range b.failures {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	b.failures = kept
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
