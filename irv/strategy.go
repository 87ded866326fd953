// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import "fmt"

// EliminationStrategy controls how a tie for last place is resolved.
type EliminationStrategy int

const (
	// StrategyRandom eliminates exactly one option, chosen uniformly at
	// random from those tied for the lowest vote count.
	StrategyRandom EliminationStrategy = iota

	// StrategyBatch eliminates every option tied for the lowest vote count
	// in the same round.
	StrategyBatch
)

func (s EliminationStrategy) String() string {
	switch s {
	case StrategyBatch:
		return "batch"
	default:
		return "random"
	}
}

// ParseStrategy maps the wire strings "random" and "batch" to a strategy.
// The empty string parses as StrategyRandom, the default.
func ParseStrategy(s string) (EliminationStrategy, error) {
	switch s {
	case "", "random":
		return StrategyRandom, nil
	case "batch":
		return StrategyBatch, nil
	}
	return StrategyRandom, fmt.Errorf("unknown elimination strategy %q", s)
}
