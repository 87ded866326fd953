// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

// RoundResult records the state of one counting round: the first-choice vote
// count for every option still active at the start of the round, the options
// eliminated at the end of it, and the winner if the round produced one.
// Results are created by the Counter, one per round, and never mutated after.
type RoundResult struct {
	// Number is the 1-based round number.
	Number int

	// VoteCounts maps each option active at the start of the round to the
	// number of ballots whose highest-ranked active option it was. Options
	// that received no votes appear with a count of zero.
	VoteCounts map[string]int

	// Eliminated lists the options removed at the end of the round, in
	// lexicographic order. Empty for the winning round.
	Eliminated []string

	// Winner is the option that won in this round, or empty if the round
	// ended in elimination.
	Winner string
}

// clone returns a copy sharing no state with the receiver.
func (r RoundResult) clone() RoundResult {
	counts := make(map[string]int, len(r.VoteCounts))
	for option, n := range r.VoteCounts {
		counts[option] = n
	}
	var eliminated []string
	if len(r.Eliminated) > 0 {
		eliminated = append(eliminated, r.Eliminated...)
	}
	return RoundResult{
		Number:     r.Number,
		VoteCounts: counts,
		Eliminated: eliminated,
		Winner:     r.Winner,
	}
}
