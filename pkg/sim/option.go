// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package sim

import "github.com/pion/logging"

// Option can be used to configure a Session.
type Option func(*Session) error

// Log sets a logger for the session.
func Log(log logging.LeveledLogger) Option {
	return func(s *Session) error {
		s.log = log

		return nil
	}
}

// WithLoggerFactory sets a logger factory for the session.
func WithLoggerFactory(loggerFactory logging.LoggerFactory) Option {
	return func(s *Session) error {
		s.loggerFactory = loggerFactory

		return nil
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(s *Session) error {
		if err := config.validate(); err != nil {
			return err
		}
		s.config = config

		return nil
	}
}

// Segments sets the number of segments requested after the manifest.
func Segments(n int) Option {
	return func(s *Session) error {
		if n <= 0 {
			return errInvalidSegments
		}
		s.config.Segments = n

		return nil
	}
}
