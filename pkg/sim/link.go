// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// defaultChunkBits is the burst of the link, 8 KiB.
const defaultChunkBits = 8 * 1024 * 8

var errInvalidTrace = errors.New("bandwidth trace needs at least one step and positive rates and durations")

// Step is a period of constant link capacity.
type Step struct {
	Duration time.Duration
	// Rate in bits per second
	Rate int
}

// Trace is a piecewise constant link capacity. The last step lasts forever.
type Trace []Step

func (t Trace) validate() error {
	if len(t) == 0 {
		return errInvalidTrace
	}
	for i, s := range t {
		if s.Rate <= 0 || (s.Duration <= 0 && i < len(t)-1) {
			return fmt.Errorf("%w: step %d: %+v", errInvalidTrace, i, s)
		}
	}

	return nil
}

// rateAt returns the capacity at offset into the trace.
func (t Trace) rateAt(offset time.Duration) int {
	for _, s := range t[:len(t)-1] {
		if offset < s.Duration {
			return s.Rate
		}
		offset -= s.Duration
	}

	return t[len(t)-1].Rate
}

// link models a bottleneck as a token bucket of bits that refills at the
// trace's rate.
type link struct {
	trace   Trace
	start   time.Time
	chunk   int
	limiter *rate.Limiter
	current int
}

func newLink(trace Trace, start time.Time, chunk int) *link {
	current := trace.rateAt(0)

	return &link{
		trace:   trace,
		start:   start,
		chunk:   chunk,
		limiter: rate.NewLimiter(rate.Limit(current), chunk),
		current: current,
	}
}

// transfer returns when bits sent at t have been delivered. Capacity
// changes are applied at chunk boundaries.
func (l *link) transfer(t time.Time, bits int) time.Time {
	for bits > 0 {
		if r := l.trace.rateAt(t.Sub(l.start)); r != l.current {
			l.limiter.SetLimitAt(t, rate.Limit(r))
			l.current = r
		}
		n := min(bits, l.chunk)
		t = t.Add(l.limiter.ReserveN(t, n).DelayFrom(t))
		bits -= n
	}

	return t
}
