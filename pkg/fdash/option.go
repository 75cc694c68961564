// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import (
	"time"

	"github.com/pion/logging"
)

// Option can be used to configure a Controller.
type Option func(*Controller) error

// Log sets a logger for the controller.
func Log(log logging.LeveledLogger) Option {
	return func(c *Controller) error {
		c.log = log

		return nil
	}
}

// WithLoggerFactory sets a logger factory for the controller.
func WithLoggerFactory(loggerFactory logging.LoggerFactory) Option {
	return func(c *Controller) error {
		c.loggerFactory = loggerFactory

		return nil
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(c *Controller) error {
		if err := config.validate(); err != nil {
			return err
		}
		c.config = config

		return nil
	}
}

// BufferTimescale sets the buffer health timescale T.
func BufferTimescale(t time.Duration) Option {
	return func(c *Controller) error {
		if t <= 0 {
			return errInvalidTimescale
		}
		c.config.BufferTimescale = t

		return nil
	}
}

// ThroughputWindow sets the window the throughput estimate averages over.
func ThroughputWindow(d time.Duration) Option {
	return func(c *Controller) error {
		if d <= 0 {
			return errInvalidWindow
		}
		c.config.ThroughputWindow = d

		return nil
	}
}

// InitialBitrate sets the quality assumed before the first decision.
func InitialBitrate(rate int) Option {
	return func(c *Controller) error {
		if rate <= 0 {
			return errInvalidBitrate
		}
		c.config.InitialBitrate = rate

		return nil
	}
}

// WithWeights sets the output weight of each category.
func WithWeights(w Weights) Option {
	return func(c *Controller) error {
		if err := w.validate(); err != nil {
			return err
		}
		c.config.Weights = w

		return nil
	}
}

// WithRuleBase sets the assignment of rules to output categories.
func WithRuleBase(b RuleBase) Option {
	return func(c *Controller) error {
		if err := b.validate(); err != nil {
			return err
		}
		c.config.RuleBase = b

		return nil
	}
}

// WithNow sets the clock used to timestamp requests and responses.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) error {
		if now == nil {
			return errNilNow
		}
		c.now = now

		return nil
	}
}

// WithDecisionWriter sets a callback invoked with every decision.
func WithDecisionWriter(w func(Decision)) Option {
	return func(c *Controller) error {
		if w == nil {
			return errNilDecisionWriter
		}
		c.decisionWriter = w

		return nil
	}
}
