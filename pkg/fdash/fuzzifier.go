// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import "math"

// LevelMembership holds the degrees to which a buffer level is short, close
// to the timescale, or long.
type LevelMembership struct {
	Short float64
	Close float64
	Long  float64
}

// TrendMembership holds the degrees to which the buffer is falling, steady
// or rising between two samples.
type TrendMembership struct {
	Falling float64
	Steady  float64
	Rising  float64
}

// neutralTrend is used until two buffer samples exist.
var neutralTrend = TrendMembership{Falling: 0, Steady: 1, Rising: 0}

// fuzzifyLevel maps buffer occupancy b (seconds) onto the short, close and
// long trapezoids of timescale t (seconds).
func fuzzifyLevel(b, t float64) LevelMembership {
	var m LevelMembership

	switch {
	case b < 2*t/3:
		m.Short = 1
	case b > t:
		m.Short = 0
	default:
		m.Short = 3 - 3*b/t
	}

	switch {
	case b < 2*t/3 || b > 4*t:
		m.Close = 0
	case b < t:
		m.Close = 3*b/t - 2
	default:
		m.Close = 4.0/3 - b/(3*t)
	}

	switch {
	case b > 4*t:
		m.Long = 1
	case b < t:
		m.Long = 0
	default:
		m.Long = b/(3*t) - 1.0/3
	}

	m.Short = clampUnit(m.Short)
	m.Close = clampUnit(m.Close)
	m.Long = clampUnit(m.Long)

	return m
}

// fuzzifyTrend maps the difference between the two latest buffer samples
// onto the falling, steady and rising trapezoids of timescale t.
func fuzzifyTrend(delta, t float64) TrendMembership {
	var m TrendMembership

	switch {
	case delta < -2*t/3:
		m.Falling = 1
	case delta > 0:
		m.Falling = 0
	default:
		m.Falling = -3 * delta / (2 * t)
	}

	switch {
	case delta < -2*t/3 || delta > 4*t:
		m.Steady = 0
	case delta < 0:
		m.Steady = -3 * delta / (2 * t)
	default:
		m.Steady = 1 - delta/(4*t)
	}

	switch {
	case delta < 0:
		m.Rising = 0
	case delta > 4*t:
		m.Rising = 1
	default:
		m.Rising = delta / (4 * t)
	}

	m.Falling = clampUnit(m.Falling)
	m.Steady = clampUnit(m.Steady)
	m.Rising = clampUnit(m.Rising)

	return m
}

// clampUnit clamps x to [0, 1]. NaN is left untouched.
func clampUnit(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}
