// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Rank Choicer API server.

Rank Choicer is a group polling service where voters rank options in order
of preference and the winner is decided by instant-runoff counting: the
lowest-ranked option is eliminated round by round until one option holds a
strict majority of the remaining ballots.

# Starting the Server

The server reads configuration from environment variables (a .env file is
loaded if present) or CLI flags:

	DATABASE_URL=rank-choicer.db go run main.go

Or with flags:

	go run main.go -p 3419 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - POLL_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - irv: the instant-runoff counting algorithm, independent of HTTP and SQL
  - handlers: HTTP request handlers (polls, voting, results, devices)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
