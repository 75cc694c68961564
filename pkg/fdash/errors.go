// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import "errors"

var (
	// ErrUnknownSession indicates that a session ID was not assigned.
	ErrUnknownSession = errors.New("unknown session ID")
	// ErrNoLadder indicates that a segment decision was requested before a
	// manifest response provided the quality ladder.
	ErrNoLadder = errors.New("no quality ladder received")
	// ErrNoThroughputSamples indicates that no transfer has completed yet.
	ErrNoThroughputSamples = errors.New("no throughput samples recorded")
	// ErrNonPositiveElapsed indicates a response that completed no later than
	// its request.
	ErrNonPositiveElapsed = errors.New("elapsed time between request and response is not positive")
	// ErrNoPendingRequest indicates a response without a matching request.
	ErrNoPendingRequest = errors.New("response without pending request")
	// ErrUnexpectedResponse indicates a response of a different kind than
	// the pending request.
	ErrUnexpectedResponse = errors.New("response does not match pending request")
	// ErrNoDecision indicates that a session has not decided any quality yet.
	ErrNoDecision = errors.New("no decision made yet")
	// ErrNoActiveRule indicates that no fuzzy rule fired.
	ErrNoActiveRule = errors.New("no fuzzy rule fired")

	errNegativeSize       = errors.New("transfer size is negative")
	errInvalidTimescale   = errors.New("buffer timescale must be positive")
	errInvalidWindow      = errors.New("throughput window must be positive")
	errInvalidBitrate     = errors.New("initial bitrate must be positive")
	errInvalidWeight      = errors.New("category weights must be positive and finite")
	errNilBufferReporter  = errors.New("buffer reporter is nil")
	errNilNow             = errors.New("now function is nil")
	errNilDecisionWriter  = errors.New("decision writer is nil")
	errNilReporterFactory = errors.New("buffer reporter provider is nil")
	errInvalidCategory    = errors.New("invalid rule category")
)
