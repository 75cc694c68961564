// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import "github.com/pion/abr"

type selection struct {
	target    float64
	candidate int
	selected  int
	held      bool
}

// selectRate scales the throughput estimate by factor, picks the highest
// level strictly below the result and decides whether to switch to it.
//
// The switch is suppressed when it would raise the quality above the last
// measured rate while the buffer is short, or lower it below the last
// measured rate while the buffer is long.
func selectRate(
	factor, windowed, last float64, ladder abr.Ladder, previous int, level LevelMembership,
) selection {
	target := factor * windowed

	candidate := ladder.Lowest()
	for i := len(ladder) - 1; i >= 0; i-- {
		if float64(ladder[i]) < target {
			candidate = ladder[i]

			break
		}
	}

	rising := float64(candidate) > last && level.Short > 0
	falling := float64(candidate) < last && level.Long > 0
	if rising || falling {
		return selection{target: target, candidate: candidate, selected: previous, held: true}
	}

	return selection{target: target, candidate: candidate, selected: candidate}
}
