// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import "time"

// Decision describes how the quality of one segment request was chosen.
type Decision struct {
	Timestamp time.Time
	// Buffer occupancy in seconds
	Buffer    float64
	Level     LevelMembership
	Trend     TrendMembership
	Strengths CategoryStrengths
	// Factor the throughput estimate is scaled by
	Factor float64
	// Windowed throughput estimate in bits per second
	WindowedRate float64
	// Most recent throughput sample in bits per second
	LastRate float64
	// Target bitrate, Factor * WindowedRate
	Target    float64
	Candidate int
	Previous  int
	Selected  int
	// Held is set when the candidate was rejected in favor of Previous
	Held bool
}

// Switched reports whether the decision changed the quality.
func (d Decision) Switched() bool {
	return d.Selected != d.Previous
}
