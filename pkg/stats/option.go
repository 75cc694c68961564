// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package stats

import (
	"errors"
	"time"

	"github.com/pion/logging"
)

var errNilNow = errors.New("now function is nil")

// Option can be used to configure a RecorderFactory.
type Option func(*RecorderFactory) error

// Log sets a logger for the recorders.
func Log(log logging.LeveledLogger) Option {
	return func(f *RecorderFactory) error {
		f.log = log

		return nil
	}
}

// WithLoggerFactory sets a logger factory for the recorders.
func WithLoggerFactory(loggerFactory logging.LoggerFactory) Option {
	return func(f *RecorderFactory) error {
		f.loggerFactory = loggerFactory

		return nil
	}
}

// WithNow sets the clock used to time transfers.
func WithNow(now func() time.Time) Option {
	return func(f *RecorderFactory) error {
		if now == nil {
			return errNilNow
		}
		f.now = now

		return nil
	}
}

// Namespace sets the namespace of the exported metric names.
func Namespace(namespace string) Option {
	return func(f *RecorderFactory) error {
		f.namespace = namespace

		return nil
	}
}
