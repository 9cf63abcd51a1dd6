// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the quickpoll API.

# Handler Types

Each handler is a struct holding the poll store; VotingHandler also keeps
the config for the IP hash salt:

  - PollHandler: poll lifecycle (create, list, get, update, delete)
  - VotingHandler: vote submission, listing and vote status
  - ResultsHandler: live results and analytics recompute

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(store.New(conn))

Handlers only decode requests and encode responses. Access rules,
validation and the vote ledger live in the store; store errors are mapped
to status codes by middleware.WriteError.

# Identity

The caller is whatever middleware.WithIdentity resolved from the bearer
token. An empty identity is anonymous:

	POST /polls           → CreatePoll (requires identity)
	PATCH /polls/{id}     → UpdatePoll (owner only)
	DELETE /polls/{id}    → DeletePoll (owner only)

# Voting

Anyone may vote on an active, unexpired poll:

	POST /polls/{id}/votes → SubmitVote

Signed-in voters are deduplicated by user id. Anonymous voters are
deduplicated by a salted hash of their client IP (auth.HashIP); the raw
address and user agent never appear in a response.

option_index must be an integral JSON number. 1 and 1.0 are the same index;
0.5 is rejected as an invalid option.
*/
package handlers
