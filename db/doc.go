// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Connections

Open returns a *gorm.DB for either backend:

	conn, err := db.Open(db.TypePostgres, "postgres://...")
	conn, err := db.Open(db.TypeSQLite, "quickpoll.db")

PostgreSQL uses the lib/pq driver; SQLite uses the pure-Go modernc driver with
foreign keys and a busy timeout enabled on every connection, and a single open
connection so concurrent writers queue instead of failing.

# Migrations

Migrate applies the embedded goose migrations for the connection's dialect:

	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times.

# Tables

  - polls: poll definitions (options stored as a JSON array)
  - votes: the append-only vote ledger
  - poll_analytics: one derived row per poll with at least one vote

# Relationships

	polls 1──* votes
	polls 1──1 poll_analytics

Both foreign keys use ON DELETE CASCADE.

# Duplicate Votes

votes.dedupe_key is "user:<id>" or "ip:<origin>" for polls that allow a single
vote per identity and NULL otherwise. The unique index on (poll_id, dedupe_key)
makes two concurrent votes from one identity fail at the storage layer.
IsUniqueViolation recognises that failure from either driver.
*/
package db
