// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires HTTP routes to handlers using Go 1.22+ pattern routing.

# Routes

Poll management (X-Admin-Key header):

	POST   /polls
	GET    /polls/{id}/admin
	POST   /polls/{id}/options
	DELETE /polls/{id}/options/{optionID}
	POST   /polls/{id}/publish
	POST   /polls/{id}/close
	POST   /polls/{id}/recount

Voting (public, X-Voter-Token header for ballots):

	POST /polls/{slug}/claim-username
	POST /polls/{slug}/ballots
	GET  /polls/{slug}/my-ballot

Results (public; sealed until the poll closes):

	GET /polls/{slug}
	GET /polls/{slug}/results
	GET /polls/{slug}/ballot-count
	GET /polls/{slug}/preview

Devices (X-Device-UUID header):

	POST /devices/register
	GET  /devices/me
	GET  /devices/my-polls
*/
package router
