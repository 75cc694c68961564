// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package abr

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLadder indicates that a quality ladder has no levels.
	ErrEmptyLadder = errors.New("quality ladder is empty")
	// ErrUnorderedLadder indicates that a quality ladder is not strictly increasing.
	ErrUnorderedLadder = errors.New("quality ladder is not strictly increasing")
)

// Ladder is the ordered list of bitrates, in bits per second, a stream is
// available in. Levels are ascending.
type Ladder []int

// Validate checks that the ladder is non-empty and strictly increasing.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return ErrEmptyLadder
	}
	for i := 1; i < len(l); i++ {
		if l[i] <= l[i-1] {
			return fmt.Errorf("%w: level %d (%d) after %d", ErrUnorderedLadder, i, l[i], l[i-1])
		}
	}

	return nil
}

// Lowest returns the lowest level. The ladder must be valid.
func (l Ladder) Lowest() int {
	return l[0]
}

// Highest returns the highest level. The ladder must be valid.
func (l Ladder) Highest() int {
	return l[len(l)-1]
}

// Floor returns the highest level that is lower than or equal to bitrate, or
// the lowest level if there is none. The ladder must be valid.
func (l Ladder) Floor(bitrate int) int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i] <= bitrate {
			return l[i]
		}
	}

	return l[0]
}

// Clone returns a copy of the ladder.
func (l Ladder) Clone() Ladder {
	if l == nil {
		return nil
	}
	c := make(Ladder, len(l))
	copy(c, l)

	return c
}
