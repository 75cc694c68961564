// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package types contains unit types shared by the controllers.
package types

import "fmt"

const (
	// BitPerSecond is a data rate of 1 bit per second
	BitPerSecond = DataRate(1)
	// KiloBitPerSecond is a data rate of 1 kilobit per second
	KiloBitPerSecond = 1000 * BitPerSecond
	// MegaBitPerSecond is a data rate of 1 megabit per second
	MegaBitPerSecond = 1000 * KiloBitPerSecond
)

// DataRate in bit per second
type DataRate float64

// String formats the rate with the largest unit that keeps it above one.
func (r DataRate) String() string {
	switch {
	case r >= MegaBitPerSecond || r <= -MegaBitPerSecond:
		return fmt.Sprintf("%.3f Mbps", float64(r/MegaBitPerSecond))
	case r >= KiloBitPerSecond || r <= -KiloBitPerSecond:
		return fmt.Sprintf("%.3f kbps", float64(r/KiloBitPerSecond))
	default:
		return fmt.Sprintf("%.0f bps", float64(r))
	}
}
