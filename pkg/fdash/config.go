// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import "time"

// DefaultInitialBitrate is the quality assumed before the first decision.
const DefaultInitialBitrate = 46_980

// Config represents the configuration of a fuzzy rate-adaptation controller.
type Config struct {
	// Buffer health timescale the membership functions are scaled by (T)
	BufferTimescale time.Duration
	// Length of the window the throughput estimate averages over (d)
	ThroughputWindow time.Duration
	// Quality assumed before the first decision, snapped onto the ladder once
	// it is known
	InitialBitrate int
	// Output weight of each category used for defuzzification
	Weights Weights
	// Assignment of the nine rules to output categories
	RuleBase RuleBase
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BufferTimescale:  30 * time.Second,
		ThroughputWindow: 15 * time.Second,
		InitialBitrate:   DefaultInitialBitrate,
		Weights:          DefaultWeights,
		RuleBase:         DefaultRuleBase,
	}
}

func (c Config) validate() error {
	if c.BufferTimescale <= 0 {
		return errInvalidTimescale
	}
	if c.ThroughputWindow <= 0 {
		return errInvalidWindow
	}
	if c.InitialBitrate <= 0 {
		return errInvalidBitrate
	}
	if err := c.Weights.validate(); err != nil {
		return err
	}

	return c.RuleBase.validate()
}
