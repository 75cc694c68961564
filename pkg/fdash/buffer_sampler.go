// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import "time"

// BufferReporter reports the current playback buffer occupancy. ok is false
// while no measurement exists.
type BufferReporter interface {
	BufferLevel() (level time.Duration, ok bool)
}

// BufferReporterFunc is an adapter to use a plain function as a
// BufferReporter.
type BufferReporterFunc func() (time.Duration, bool)

// BufferLevel implements BufferReporter.
func (f BufferReporterFunc) BufferLevel() (time.Duration, bool) {
	return f()
}

// BufferSample is the buffer occupancy observed at one decision.
type BufferSample struct {
	Timestamp time.Time
	// Level in seconds of media.
	Level float64
}

type bufferSampler struct {
	reporter BufferReporter
	history  []BufferSample
}

// sample records the current occupancy in seconds. A missing measurement
// counts as an empty buffer.
func (s *bufferSampler) sample(now time.Time) float64 {
	level := 0.0
	if d, ok := s.reporter.BufferLevel(); ok {
		level = d.Seconds()
	}
	s.history = append(s.history, BufferSample{Timestamp: now, Level: level})

	return level
}

// delta returns the change between the two latest samples.
func (s *bufferSampler) delta() (float64, bool) {
	n := len(s.history)
	if n < 2 {
		return 0, false
	}

	return s.history[n-1].Level - s.history[n-2].Level, true
}
