// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package irv implements instant-runoff voting: voters rank options by
preference, and the weakest option is eliminated round by round until one
option holds a strict majority of the ballots still casting a vote.

# Counting

A Counter is built over a fixed option set and fed ballots, each an ordered
ranking of options (best first, partial rankings allowed):

	counter, err := irv.NewCounter([]string{"A", "B", "C"})
	winner, err := counter.CountVotes(map[string][]string{
		"alice": {"A", "B", "C"},
		"bob":   {"B", "A", "C"},
		"carol": {"C", "A", "B"},
		"dave":  {"A", "C", "B"},
		"erin":  {"B", "C", "A"},
	})

Each round, every ballot counts toward its highest-ranked option that has not
been eliminated. An option with strictly more than half of the round's votes
wins. Otherwise the option(s) with the fewest votes are eliminated and the
affected ballots redistribute to their next active choice. A ballot whose
every option has been eliminated is exhausted and casts no further votes.

# Tie-breaking

Ties for last place are resolved by the configured EliminationStrategy:

  - StrategyRandom (default): one tied option is eliminated at random.
  - StrategyBatch: all tied options are eliminated in the same round.

Under StrategyBatch a count is fully deterministic. Under StrategyRandom the
random source can be injected with WithRand for reproducible tests; a caller
wanting a different random outcome re-invokes CountVotes.

# Round results

CountVotes records one RoundResult per round. RoundResults returns them, in
order, as copies:

	rounds, err := counter.RoundResults()

If a round eliminates every remaining option at once (all tied at the lowest
count with no majority ever reached), CountVotes returns ErrNoWinner after
recording that final round.

A Counter is not safe for concurrent use; serialize calls or use one Counter
per concurrent count.
*/
package irv
