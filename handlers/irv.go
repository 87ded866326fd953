// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/rank-choicer/auth"
	"github.com/danielhkuo/rank-choicer/irv"
	"github.com/danielhkuo/rank-choicer/models"
)

// ComputeIRVResult runs an instant-runoff count over a poll's stored ballots
// and returns the winner plus the per-round tallies. The poll resolves unless
// every remaining option is eliminated in the same round without a majority,
// in which case Resolved is false and no winner is set.
func ComputeIRVResult(db *sql.DB, pollID, elimination string) (*models.IRVResult, error) {
	strategy, err := irv.ParseStrategy(elimination)
	if err != nil {
		return nil, fmt.Errorf("poll %s: %w", pollID, err)
	}

	optionIDs, labels, err := getPollOptionIDs(db, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	ballots, ballotIDs, err := getPollRankings(db, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ballots: %w", err)
	}

	counter, err := irv.NewCounter(optionIDs, irv.WithStrategy(strategy))
	if err != nil {
		return nil, fmt.Errorf("failed to build counter: %w", err)
	}

	resolved := true
	winnerID, err := counter.CountVotes(ballots)
	if errors.Is(err, irv.ErrNoWinner) {
		resolved = false
		winnerID = ""
	} else if err != nil {
		// Stored ballots are validated at submission, so this indicates
		// corrupt data rather than bad input.
		return nil, fmt.Errorf("count failed: %w", err)
	}

	rounds, err := counter.RoundResults()
	if err != nil {
		return nil, fmt.Errorf("failed to read round results: %w", err)
	}

	tallies := make([]models.RoundTally, len(rounds))
	for i, round := range rounds {
		tallies[i] = models.RoundTally{
			Round:      round.Number,
			VoteCounts: round.VoteCounts,
			Eliminated: round.Eliminated,
			WinnerID:   round.Winner,
		}
	}

	return &models.IRVResult{
		WinnerID:    winnerID,
		WinnerLabel: labels[winnerID],
		Resolved:    resolved,
		Rounds:      tallies,
		BallotCount: len(ballotIDs),
		InputsHash:  auth.HashInputs(ballotIDs),
	}, nil
}

// getPollOptionIDs retrieves a poll's option IDs (sorted, so the counter's
// option universe is stable) and their labels.
func getPollOptionIDs(db *sql.DB, pollID string) ([]string, map[string]string, error) {
	rows, err := db.Query(`
		SELECT id, label FROM option WHERE poll_id = $1 ORDER BY id
	`, pollID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var ids []string
	labels := make(map[string]string)
	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		labels[id] = label
	}

	return ids, labels, rows.Err()
}

// getPollRankings loads every ballot's ranked option IDs, best first, keyed
// by ballot ID, plus the full list of ballot IDs for the inputs hash.
func getPollRankings(db *sql.DB, pollID string) (map[string][]string, []string, error) {
	ballotRows, err := db.Query(`
		SELECT id FROM ballot WHERE poll_id = $1
	`, pollID)
	if err != nil {
		return nil, nil, err
	}
	defer ballotRows.Close()

	var ballotIDs []string
	for ballotRows.Next() {
		var id string
		if err := ballotRows.Scan(&id); err != nil {
			return nil, nil, err
		}
		ballotIDs = append(ballotIDs, id)
	}
	if err := ballotRows.Err(); err != nil {
		return nil, nil, err
	}

	rows, err := db.Query(`
		SELECT r.ballot_id, r.option_id
		FROM ranking r
		JOIN ballot b ON r.ballot_id = b.id
		WHERE b.poll_id = $1
		ORDER BY r.ballot_id, r.position
	`, pollID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	ballots := make(map[string][]string, len(ballotIDs))
	for rows.Next() {
		var ballotID, optionID string
		if err := rows.Scan(&ballotID, &optionID); err != nil {
			return nil, nil, err
		}
		ballots[ballotID] = append(ballots[ballotID], optionID)
	}

	return ballots, ballotIDs, rows.Err()
}
