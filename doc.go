// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the quickpoll API server.

quickpoll is a poll and vote service: owners create single-question polls,
anyone votes once (or many times, if the poll allows it), and per-poll
analytics are kept in step with the vote ledger.

# Starting the Server

The server reads environment variables (optionally from a .env file) or CLI
flags:

	DATABASE_URL=quickpoll.db JWT_SECRET=... IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): HS256 secret for bearer tokens
  - IP_HASH_SALT (--ip-salt): salt for anonymous voter hashing

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REDIS_ADDR (--redis-addr): publish change events to Redis
  - REDIS_CHANNEL (--redis-channel): channel name (default: quickpoll.events)
  - TRACE_STDOUT (--trace-stdout): print spans to stdout

# Architecture

  - handlers: HTTP request handlers (polls, voting, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, identity, JSON helpers
  - store: transactional poll and vote operations
  - access: the access-control matrix
  - analytics: incremental analytics maintenance
  - db: connections and embedded migrations
  - events: post-commit change notifications
  - observability: tracing setup
  - models: request, response and domain types
  - auth: tokens, IDs and IP hashing
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
