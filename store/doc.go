// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the poll repository and vote ledger.

A Store wraps a *gorm.DB opened by package db and is safe for concurrent use:

	st := store.New(conn,
		store.WithPublisher(publisher),
	)

Every operation takes the caller's identity as an explicit argument. The
empty string is an anonymous caller; there is no ambient session.

# Polls

	CreatePoll   validate, then insert (authenticated callers only)
	GetPoll      poll plus analytics; inactive polls are visible to the owner only
	ListPolls    the caller's own polls, newest first
	UpdatePoll   partial update by the owner
	DeletePoll   removes the poll, its votes and its analytics

Fields are trimmed before validation and checked in a fixed order (title,
question, option count, option uniqueness, then description) so the first
failure reported is stable.

# Votes

SubmitVote runs inside one transaction that locks the poll row, checks
eligibility, inserts the vote and folds it into the analytics row. On a
single-vote poll a voter is identified by user ID, or by hashed network
origin when anonymous. The votes table carries a unique index on
(poll_id, dedupe_key), so two racing submissions from one voter cannot
both commit; the loser gets a Conflict error.

A cast vote is never altered or deleted on its own; votes leave the ledger
only when their poll is deleted. RecomputeAnalytics lets the owner rebuild
the analytics row from the ledger and reports whether it had drifted.

# Errors

Every error returned is an *apperr.Error whose kind maps to an HTTP status.
Storage failures are Internal and are logged here with slog.

# Events

After commit, writes publish a models.Event through the configured
events.Publisher. Publish failures are logged and never fail the write.
*/
package store
