// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, creator_name, elimination
  - AddOptionRequest: label
  - ClaimUsernameRequest: username
  - SubmitBallotRequest: ranking ([]string, option IDs best first)
  - RegisterDeviceRequest: platform

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll_id, admin_key
  - AddOptionResponse: option_id
  - PublishPollResponse: share_slug, share_url
  - ClaimUsernameResponse: voter_token
  - SubmitBallotResponse: ballot_id, message
  - MyBallotResponse: ballot_id, ranking, submitted_at
  - ClosePollResponse: closed_at, snapshot
  - RecountResponse: snapshot
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata, lifecycle state, and elimination strategy
  - Option: voting option with label
  - Ballot: voter submission metadata
  - RoundTally: one instant-runoff round (vote counts, eliminations, winner)
  - IRVResult: winner, resolved flag, per-round tallies, inputs hash
  - ResultSnapshot: immutable result record

# Constants

Status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Voting method:

	MethodIRV = "irv"

Elimination strategies:

	EliminationRandom = "random"
	EliminationBatch  = "batch"

Device roles:

	RoleVoter = "voter"
	RoleAdmin = "admin"

Platforms:

	PlatformIOS     = "ios"
	PlatformMacOS   = "macos"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
*/
package models
