// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package abr

import (
	"errors"
)

type attributeKeyType int

const (
	qualityKey attributeKeyType = iota
)

var (
	errInvalidQualityType = errors.New("found invalid quality type in attributes map")
	// ErrNoQuality indicates that no controller attached a quality to a request.
	ErrNoQuality = errors.New("no quality attached to request")
)

// Attributes are a generic key/value store passed along with every event.
type Attributes map[interface{}]interface{}

// Get returns the attribute associated with key.
func (a Attributes) Get(key interface{}) interface{} {
	return a[key]
}

// Set sets the attribute associated with key to the given value.
func (a Attributes) Set(key interface{}, val interface{}) {
	a[key] = val
}

// SetQuality attaches the selected bitrate (bits per second) to a segment
// request.
func (a Attributes) SetQuality(bitrate int) {
	a[qualityKey] = bitrate
}

// Quality returns the bitrate attached to a segment request.
func (a Attributes) Quality() (int, error) {
	val, ok := a[qualityKey]
	if !ok {
		return 0, ErrNoQuality
	}
	bitrate, ok := val.(int)
	if !ok {
		return 0, errInvalidQualityType
	}

	return bitrate, nil
}
