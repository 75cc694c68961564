// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import (
	"fmt"
	"time"
)

// ThroughputSample is the rate measured for one completed transfer.
type ThroughputSample struct {
	// Requested is when the request that produced the transfer was sent.
	Requested time.Time
	// Completed is when the response was received.
	Completed time.Time
	// Rate in bits per second.
	Rate float64
}

type throughputEstimator struct {
	history []ThroughputSample
}

func (e *throughputEstimator) record(requested, completed time.Time, bits int) (ThroughputSample, error) {
	if bits < 0 {
		return ThroughputSample{}, fmt.Errorf("%w: %v", errNegativeSize, bits)
	}
	elapsed := completed.Sub(requested)
	if elapsed <= 0 {
		return ThroughputSample{}, fmt.Errorf("%w: %v", ErrNonPositiveElapsed, elapsed)
	}
	sample := ThroughputSample{
		Requested: requested,
		Completed: completed,
		Rate:      float64(bits) / elapsed.Seconds(),
	}
	e.history = append(e.history, sample)

	return sample, nil
}

// windowedAverage returns the mean rate of all samples starting with the
// oldest one requested after now-window. If every sample is older, only the
// latest one is used.
func (e *throughputEstimator) windowedAverage(now time.Time, window time.Duration) (float64, error) {
	if len(e.history) == 0 {
		return 0, ErrNoThroughputSamples
	}
	cutoff := now.Add(-window)
	start := len(e.history) - 1
	for i, s := range e.history {
		if s.Requested.After(cutoff) {
			start = i

			break
		}
	}
	sum := 0.0
	for _, s := range e.history[start:] {
		sum += s.Rate
	}

	return sum / float64(len(e.history)-start), nil
}

func (e *throughputEstimator) last() (float64, error) {
	if len(e.history) == 0 {
		return 0, ErrNoThroughputSamples
	}

	return e.history[len(e.history)-1].Rate, nil
}

func (e *throughputEstimator) len() int {
	return len(e.history)
}
