// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Voting method constants
const (
	MethodIRV = "irv"
)

// Elimination strategy constants (tie-break policy for last place)
const (
	EliminationRandom = "random"
	EliminationBatch  = "batch"
)

// Device role constants
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// Platform constants
const (
	PlatformIOS     = "ios"
	PlatformMacOS   = "macos"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// Request types

type CreatePollRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorName string `json:"creator_name"`
	Elimination string `json:"elimination,omitempty"` // "random" (default) or "batch"
}

type AddOptionRequest struct {
	Label string `json:"label"`
}

type ClaimUsernameRequest struct {
	Username string `json:"username"`
}

// Ranking is the voter's option IDs in preference order, best first. A
// partial ranking is allowed; omitted options receive no preference.
type SubmitBallotRequest struct {
	Ranking []string `json:"ranking"`
}

type RegisterDeviceRequest struct {
	Platform string `json:"platform"`
}

// Response types

type CreatePollResponse struct {
	PollID   string `json:"poll_id"`
	AdminKey string `json:"admin_key"`
}

type AddOptionResponse struct {
	OptionID string `json:"option_id"`
}

type PublishPollResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type ClaimUsernameResponse struct {
	VoterToken string `json:"voter_token"`
}

type SubmitBallotResponse struct {
	BallotID string `json:"ballot_id"`
	Message  string `json:"message"`
}

type MyBallotResponse struct {
	BallotID    string    `json:"ballot_id"`
	Ranking     []string  `json:"ranking"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ClosePollResponse struct {
	ClosedAt time.Time      `json:"closed_at"`
	Snapshot ResultSnapshot `json:"snapshot"`
}

type RecountResponse struct {
	Snapshot ResultSnapshot `json:"snapshot"`
}

type PollPreviewResponse struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	OptionCount int    `json:"option_count"`
	BallotCount int    `json:"ballot_count"`
	ClosedAgo   string `json:"closed_ago,omitempty"` // e.g. "2 hours ago"
}

type RegisterDeviceResponse struct {
	DeviceID string `json:"device_id"`
	IsNew    bool   `json:"is_new"`
}

// Domain types

type Poll struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatorName     string     `json:"creator_name"`
	Method          string     `json:"method"`
	Elimination     string     `json:"elimination"`
	Status          string     `json:"status"`
	ShareSlug       *string    `json:"share_slug,omitempty"`
	ClosesAt        *time.Time `json:"closes_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	FinalSnapshotID *string    `json:"final_snapshot_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Option struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Label  string `json:"label"`
}

type PollWithOptions struct {
	Poll    Poll     `json:"poll"`
	Options []Option `json:"options"`
}

type Ballot struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	VoterToken  string    `json:"-"` // Never expose in JSON
	SubmittedAt time.Time `json:"submitted_at"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
}

type DeviceInfo struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// IRV result types

// RoundTally is the wire form of one counting round: first-choice votes per
// still-active option, the options eliminated at the end of the round, and
// the winner if the round produced one.
type RoundTally struct {
	Round      int            `json:"round"`
	VoteCounts map[string]int `json:"vote_counts"`
	Eliminated []string       `json:"eliminated,omitempty"`
	WinnerID   string         `json:"winner_id,omitempty"`
}

// IRVResult is the outcome of counting one poll's ballots. Resolved is false
// when every remaining option was eliminated in the same round without a
// majority.
type IRVResult struct {
	WinnerID    string       `json:"winner_id,omitempty"`
	WinnerLabel string       `json:"winner_label,omitempty"`
	Resolved    bool         `json:"resolved"`
	Rounds      []RoundTally `json:"rounds"`
	BallotCount int          `json:"ballot_count"`
	InputsHash  string       `json:"inputs_hash"` // Hash of all ballot IDs for verification
}

type ResultSnapshot struct {
	ID         string    `json:"id"`
	PollID     string    `json:"poll_id"`
	Method     string    `json:"method"`
	ComputedAt time.Time `json:"computed_at"`
	Result     IRVResult `json:"result"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
