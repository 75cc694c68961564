// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"time"
)

var (
	errInvalidSegmentDuration = errors.New("segment duration must be positive")
	errInvalidSegments        = errors.New("number of segments must be positive")
	errInvalidMaxBuffer       = errors.New("maximum buffer must hold at least one segment")
	errInvalidLatency         = errors.New("request latency must be positive")
	errInvalidManifestSize    = errors.New("manifest size must be positive")
)

// Config represents the configuration of a simulated session.
type Config struct {
	// Playback duration of every segment
	SegmentDuration time.Duration
	// Number of segments requested after the manifest
	Segments int
	// Buffer occupancy above which the player waits before the next request
	MaxBuffer time.Duration
	// Fixed delay between sending a request and the first bit of the response
	Latency time.Duration
	// Size of the manifest in bits
	ManifestBits int
	// Virtual time the session starts at
	Start time.Time
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SegmentDuration: 2 * time.Second,
		Segments:        100,
		MaxBuffer:       60 * time.Second,
		Latency:         50 * time.Millisecond,
		ManifestBits:    40_000,
		Start:           time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (c Config) validate() error {
	if c.SegmentDuration <= 0 {
		return errInvalidSegmentDuration
	}
	if c.Segments <= 0 {
		return errInvalidSegments
	}
	if c.MaxBuffer < c.SegmentDuration {
		return errInvalidMaxBuffer
	}
	// a zero latency would let a transfer inside the link burst finish in
	// no time at all
	if c.Latency <= 0 {
		return errInvalidLatency
	}
	if c.ManifestBits <= 0 {
		return errInvalidManifestSize
	}

	return nil
}
