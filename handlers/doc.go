// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handler Groups

  - PollHandler: poll lifecycle (create, options, publish, close, recount)
  - VotingHandler: username claims and ranked ballot submission
  - ResultsHandler: public poll views and sealed results
  - DeviceHandler: device registration and poll links

# Counting

ComputeIRVResult bridges storage and the irv package: it loads a poll's
options and ranked ballots, runs the instant-runoff count with the poll's
configured elimination strategy, and returns the winner plus round-by-round
tallies. ClosePoll stores that result as an immutable snapshot; Recount
produces a fresh snapshot from the same ballots, which matters for polls
using random tie-breaking.

# Result Sealing

Results are never exposed while a poll is open. GetResults returns 403 until
the poll closes, then serves the final snapshot.
*/
package handlers
