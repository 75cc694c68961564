// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import (
	"fmt"
	"math"
)

// Weights holds the output weight of each category, indexed by Category.
type Weights [numCategories]float64

// DefaultWeights scale the throughput estimate by a quarter for a sharp
// decrease up to twice for a sharp increase.
var DefaultWeights = Weights{
	DecreaseSharply: 0.25,
	Decrease:        0.5,
	NoChange:        1.0,
	Increase:        1.5,
	IncreaseSharply: 2.0,
}

func (w Weights) validate() error {
	for c, weight := range w {
		if !(weight > 0) || math.IsInf(weight, 0) {
			return fmt.Errorf("%w: %v=%v", errInvalidWeight, Category(c), weight)
		}
	}

	return nil
}

// defuzzify returns the center of gravity of the weights, each weighted by
// the strength of its category.
func (w Weights) defuzzify(s CategoryStrengths) (float64, error) {
	var num, den float64
	for c, strength := range s {
		num += w[c] * strength
		den += strength
	}
	if !(den > 0) {
		return 0, ErrNoActiveRule
	}

	return num / den, nil
}
