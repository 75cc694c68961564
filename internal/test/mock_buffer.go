// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package test

import "time"

// MockBuffer replays a scripted sequence of playback buffer levels. Each
// call to BufferLevel returns the next level; once the script is exhausted
// the last level is repeated. An empty script reports no measurement.
type MockBuffer struct {
	Levels []time.Duration
	calls  int
}

// NewMockBuffer returns a MockBuffer replaying levels given in seconds.
func NewMockBuffer(seconds ...float64) *MockBuffer {
	levels := make([]time.Duration, len(seconds))
	for i, s := range seconds {
		levels[i] = time.Duration(s * float64(time.Second))
	}

	return &MockBuffer{Levels: levels}
}

// BufferLevel returns the next scripted level.
func (b *MockBuffer) BufferLevel() (time.Duration, bool) {
	if len(b.Levels) == 0 {
		return 0, false
	}
	i := b.calls
	if i >= len(b.Levels) {
		i = len(b.Levels) - 1
	}
	b.calls++

	return b.Levels[i], true
}

// Calls returns how often BufferLevel was called.
func (b *MockBuffer) Calls() int {
	return b.calls
}
