// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package abr

// NoOp is a Controller that does not modify any event. It can be embedded
// by controllers that only care about a subset of the events.
type NoOp struct{}

// OnManifestRequest implements Controller.
func (i *NoOp) OnManifestRequest(Attributes) error {
	return nil
}

// OnManifestResponse implements Controller.
func (i *NoOp) OnManifestResponse(int, Ladder, Attributes) error {
	return nil
}

// OnSegmentRequest implements Controller.
func (i *NoOp) OnSegmentRequest(Attributes) error {
	return nil
}

// OnSegmentResponse implements Controller.
func (i *NoOp) OnSegmentResponse(int, Attributes) error {
	return nil
}

// Close implements Controller.
func (i *NoOp) Close() error {
	return nil
}
