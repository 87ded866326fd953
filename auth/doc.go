// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation, key validation, and hashing.

# Admin Keys

Admin keys are HMAC-SHA256 over the poll ID, so they are deterministic and
verifiable without storage:

	key := auth.GenerateAdminKey(pollID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(pollID, key, cfg.AdminKeySalt)

# Voter Tokens

Voter tokens are 192-bit random values, URL-safe base64 encoded:

	token, err := auth.GenerateVoterToken()

# Share Slugs

Share slugs are short base62 strings derived from the poll ID via HMAC:

	slug := auth.GenerateShareSlug(pollID, cfg.PollSlugSalt)

# Hashing

HashIP produces a salted, truncated digest of a client IP for deduplication
without storing the address. HashInputs produces an order-independent digest
of the ballot IDs that went into a count, stored alongside result snapshots
for verification.
*/
package auth
