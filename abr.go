// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package abr contains the Controller interface used by adaptive streaming
// clients to pick the quality of each segment request, together with helpers
// to chain and build controllers per session.
package abr

// SessionID identifies a single streaming session.
type SessionID = string

// Controller is driven by the streaming client's request/response events. A
// Controller instance belongs to exactly one session and is called
// sequentially from a single goroutine.
type Controller interface {
	// OnManifestRequest is called before the manifest request is sent.
	OnManifestRequest(attributes Attributes) error

	// OnManifestResponse is called when the manifest has been received. bits
	// is the size of the transfer and ladder the parsed quality ladder.
	OnManifestResponse(bits int, ladder Ladder, attributes Attributes) error

	// OnSegmentRequest is called before each segment request is sent. The
	// chosen quality is attached to attributes with SetQuality.
	OnSegmentRequest(attributes Attributes) error

	// OnSegmentResponse is called when a segment has been received.
	OnSegmentResponse(bits int, attributes Attributes) error

	// Close releases anything the Controller holds for its session.
	Close() error
}
