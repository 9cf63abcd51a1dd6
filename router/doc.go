// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quickpoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store.New(conn), cfg)

Every API route is wrapped in middleware.WithLogging and
middleware.WithIdentity. A bearer token is optional everywhere; the store
decides what an anonymous caller may do.

# Endpoints

Health:

	GET /health

Polls (create, list, update and delete require a token):

	POST   /polls
	GET    /polls
	GET    /polls/{id}
	PATCH  /polls/{id}
	DELETE /polls/{id}

Votes (anyone may vote; a cast vote is final):

	POST /polls/{id}/votes
	GET  /polls/{id}/votes
	GET  /polls/{id}/vote-status

Results:

	GET  /polls/{id}/results
	POST /polls/{id}/analytics/recompute

# Error Mapping

	400 validation failure or malformed JSON
	401 missing or invalid token where one is required
	403 not the owner, poll inactive or expired
	404 poll missing, or inactive and not yours
	409 already voted
*/
package router
