// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Counter runs instant-runoff counts over a fixed set of options. It is not
// safe for concurrent use: CountVotes and RoundResults share the per-count
// round state, so callers must serialize calls or use one Counter per count.
type Counter struct {
	options  []string
	strategy EliminationStrategy
	rng      *rand.Rand

	rounds  []RoundResult
	counted bool
}

// A CounterOption configures a Counter at construction.
type CounterOption func(*Counter)

// WithStrategy sets the tie-break strategy. The default is StrategyRandom.
func WithStrategy(s EliminationStrategy) CounterOption {
	return func(c *Counter) { c.strategy = s }
}

// WithRand sets the random source used for StrategyRandom tie-breaks, so
// tests can seed it for reproducible eliminations. When unset the shared
// math/rand/v2 source is used.
func WithRand(r *rand.Rand) CounterOption {
	return func(c *Counter) { c.rng = r }
}

// NewCounter builds a Counter for the given options. The option set must be
// non-empty and free of duplicates.
func NewCounter(options []string, opts ...CounterOption) (*Counter, error) {
	if err := validateOptions(options); err != nil {
		return nil, err
	}
	c := &Counter{
		options:  append([]string(nil), options...),
		strategy: StrategyRandom,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func validateOptions(options []string) error {
	if len(options) == 0 {
		return ErrNoOptions
	}
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		if _, dup := seen[option]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateOption, option)
		}
		seen[option] = struct{}{}
	}
	return nil
}

// Options returns a copy of the current option set.
func (c *Counter) Options() []string {
	return append([]string(nil), c.options...)
}

// SetOptions replaces the option set. The same validation as NewCounter
// applies.
func (c *Counter) SetOptions(options []string) error {
	if err := validateOptions(options); err != nil {
		return err
	}
	c.options = append([]string(nil), options...)
	return nil
}

// AddOption appends a new option to the set.
func (c *Counter) AddOption(option string) error {
	for _, existing := range c.options {
		if existing == option {
			return fmt.Errorf("%w: %q", ErrOptionExists, option)
		}
	}
	c.options = append(c.options, option)
	return nil
}

// RemoveOption removes an option from the set.
func (c *Counter) RemoveOption(option string) error {
	for i, existing := range c.options {
		if existing == option {
			c.options = append(c.options[:i], c.options[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrOptionNotFound, option)
}

// CountVotes runs an instant-runoff count over the given ballots and returns
// the winning option. Ballots map a voter key to that voter's ranking, best
// first; partial rankings are allowed. Each round tallies every ballot's
// highest-ranked still-active option, declares a winner on a strict majority
// of non-exhausted ballots, and otherwise eliminates the option(s) with the
// fewest votes according to the configured strategy. ErrNoWinner is returned
// if a round eliminates every remaining option at once.
//
// Validation failures (ErrUnknownOption, ErrDuplicateRanking) are reported
// before any tallying and leave results from a previous count intact. A call
// that passes validation replaces them.
func (c *Counter) CountVotes(ballots map[string][]string) (string, error) {
	if err := c.validateBallots(ballots); err != nil {
		return "", err
	}
	c.rounds = nil
	c.counted = true

	active := make(map[string]struct{}, len(c.options))
	for _, option := range c.options {
		active[option] = struct{}{}
	}

	for round := 1; ; round++ {
		counts, total := tally(ballots, active)

		if winner, ok := majority(counts, total); ok {
			c.rounds = append(c.rounds, RoundResult{Number: round, VoteCounts: counts, Winner: winner})
			return winner, nil
		}

		// The last option standing wins by default, even without a strict
		// majority (every ballot naming it may be exhausted).
		if len(active) == 1 {
			var winner string
			for option := range active {
				winner = option
			}
			c.rounds = append(c.rounds, RoundResult{Number: round, VoteCounts: counts, Winner: winner})
			return winner, nil
		}

		eliminated := c.eliminate(counts)
		c.rounds = append(c.rounds, RoundResult{Number: round, VoteCounts: counts, Eliminated: eliminated})
		for _, option := range eliminated {
			delete(active, option)
		}

		if len(active) == 0 {
			return "", ErrNoWinner
		}
	}
}

// RoundResults returns the ordered round results of the most recent count.
// The returned slice and its contents are copies; mutating them does not
// affect the Counter.
func (c *Counter) RoundResults() ([]RoundResult, error) {
	if !c.counted {
		return nil, ErrNotCounted
	}
	results := make([]RoundResult, len(c.rounds))
	for i, r := range c.rounds {
		results[i] = r.clone()
	}
	return results, nil
}

func (c *Counter) validateBallots(ballots map[string][]string) error {
	valid := make(map[string]struct{}, len(c.options))
	for _, option := range c.options {
		valid[option] = struct{}{}
	}
	for voter, ranking := range ballots {
		seen := make(map[string]struct{}, len(ranking))
		for _, option := range ranking {
			if _, ok := valid[option]; !ok {
				return fmt.Errorf("ballot %q names %q: %w", voter, option, ErrUnknownOption)
			}
			if _, dup := seen[option]; dup {
				return fmt.Errorf("ballot %q names %q twice: %w", voter, option, ErrDuplicateRanking)
			}
			seen[option] = struct{}{}
		}
	}
	return nil
}

// tally counts each ballot toward its highest-ranked active option. Ballots
// with no active option left are exhausted and count toward nothing. Every
// active option appears in the returned map, zero-vote options included.
func tally(ballots map[string][]string, active map[string]struct{}) (map[string]int, int) {
	counts := make(map[string]int, len(active))
	for option := range active {
		counts[option] = 0
	}
	total := 0
	for _, ranking := range ballots {
		for _, option := range ranking {
			if _, ok := active[option]; ok {
				counts[option]++
				total++
				break
			}
		}
	}
	return counts, total
}

// majority reports the option holding strictly more than half of the votes
// cast this round, if any.
func majority(counts map[string]int, total int) (string, bool) {
	for option, n := range counts {
		if n*2 > total {
			return option, true
		}
	}
	return "", false
}

// eliminate returns the options removed this round: all options tied for the
// lowest count under StrategyBatch, or a single random pick among them under
// StrategyRandom. Tied candidates are sorted first so the recorded order is
// stable within a run and seeded draws reproduce.
func (c *Counter) eliminate(counts map[string]int) []string {
	lowest := -1
	for _, n := range counts {
		if lowest < 0 || n < lowest {
			lowest = n
		}
	}

	var tied []string
	for option, n := range counts {
		if n == lowest {
			tied = append(tied, option)
		}
	}
	sort.Strings(tied)

	if c.strategy == StrategyRandom && len(tied) > 1 {
		return []string{tied[c.intN(len(tied))]}
	}
	return tied
}

func (c *Counter) intN(n int) int {
	if c.rng != nil {
		return c.rng.IntN(n)
	}
	return rand.IntN(n)
}
