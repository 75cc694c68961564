// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package fdash

import (
	"fmt"
	"math"
)

// Category is an output category of the rule base.
type Category int

const (
	// DecreaseSharply maps to the lowest output weight (R).
	DecreaseSharply Category = iota
	// Decrease (SR).
	Decrease
	// NoChange (NC).
	NoChange
	// Increase (SI).
	Increase
	// IncreaseSharply maps to the highest output weight (I).
	IncreaseSharply

	numCategories
)

func (c Category) String() string {
	switch c {
	case DecreaseSharply:
		return "decrease-sharply"
	case Decrease:
		return "decrease"
	case NoChange:
		return "no-change"
	case Increase:
		return "increase"
	case IncreaseSharply:
		return "increase-sharply"
	default:
		return fmt.Sprintf("invalid category: %d", c)
	}
}

// CategoryStrengths holds the aggregated strength of each output category,
// indexed by Category.
type CategoryStrengths [numCategories]float64

// RuleBase assigns each combination of buffer level (rows: short, close,
// long) and buffer trend (columns: falling, steady, rising) to an output
// category.
type RuleBase [3][3]Category

var (
	// DefaultRuleBase favors decreasing while the buffer is short, even when
	// it is rising again.
	DefaultRuleBase = RuleBase{
		{DecreaseSharply, Decrease, Decrease},
		{Decrease, NoChange, Increase},
		{NoChange, Increase, IncreaseSharply},
	}

	// HoldOnRecoveryRuleBase keeps the quality when a short buffer is
	// already rising.
	HoldOnRecoveryRuleBase = RuleBase{
		{DecreaseSharply, Decrease, NoChange},
		{Decrease, NoChange, Increase},
		{NoChange, Increase, IncreaseSharply},
	}
)

func (b RuleBase) validate() error {
	for _, row := range b {
		for _, c := range row {
			if c < DecreaseSharply || c >= numCategories {
				return fmt.Errorf("%w: %v", errInvalidCategory, c)
			}
		}
	}

	return nil
}

// evaluate fires the nine rules as the minimum of their level and trend
// degree, and aggregates the rules of each category by their Euclidean norm.
func (b RuleBase) evaluate(level LevelMembership, trend TrendMembership) CategoryStrengths {
	levels := [3]float64{level.Short, level.Close, level.Long}
	trends := [3]float64{trend.Falling, trend.Steady, trend.Rising}

	var squares CategoryStrengths
	for i, l := range levels {
		for j, t := range trends {
			r := math.Min(l, t)
			squares[b[i][j]] += r * r
		}
	}

	var strengths CategoryStrengths
	for c, sq := range squares {
		strengths[c] = math.Sqrt(sq)
	}

	return strengths
}
