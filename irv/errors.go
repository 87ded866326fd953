// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package irv

import "errors"

var (
	// Configuration errors, returned by NewCounter and SetOptions.
	ErrNoOptions       = errors.New("options list cannot be empty")
	ErrDuplicateOption = errors.New("duplicate options are not allowed")

	// Option management errors.
	ErrOptionExists   = errors.New("option already exists")
	ErrOptionNotFound = errors.New("option does not exist")

	// Ballot validation errors, returned by CountVotes before any tallying.
	ErrUnknownOption    = errors.New("ballot references an unknown option")
	ErrDuplicateRanking = errors.New("ballot ranks an option more than once")

	// ErrNoWinner is returned when every remaining option is eliminated in
	// the same round without any option ever reaching a majority.
	ErrNoWinner = errors.New("no winner: all remaining options eliminated without a majority")

	// ErrNotCounted is returned by RoundResults before the first count.
	ErrNotCounted = errors.New("no count has been run")
)
