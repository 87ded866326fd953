// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

# Schema

CreateSchema builds all tables with IF NOT EXISTS, so it is safe to run on
every startup:

	if err := db.CreateSchema(conn); err != nil {
		// ...
	}

# Tables

  - poll: metadata, lifecycle status, and elimination strategy
  - option: voting options per poll
  - username_claim: voter identity per poll (poll_id, username unique)
  - ballot: one submission per voter per poll
  - ranking: ordered option preferences per ballot (position 1 = first choice)
  - result_snapshot: immutable counted results (JSON payload)
  - device: registered client devices
  - device_poll: device-to-poll links with role and voter token

# Key Constraints

  - poll.share_slug (unique)
  - username_claim (poll_id, username) unique
  - ballot (poll_id, voter_token) unique - one ballot per voter
  - ranking (ballot_id, position) unique - no two options at the same rank
  - device.device_uuid (unique)

The DDL runs unchanged on SQLite and PostgreSQL.
*/
package db
