// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/handlers"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(st)
	votingHandler := handlers.NewVotingHandler(st, cfg)
	resultsHandler := handlers.NewResultsHandler(st)

	// Every API route logs and resolves the optional bearer identity
	withID := middleware.WithIdentity(cfg.JWTSecret)
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(withID(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management
	handle("POST /polls", pollHandler.CreatePoll)
	handle("GET /polls", pollHandler.ListPolls)
	handle("GET /polls/{id}", pollHandler.GetPoll)
	handle("PATCH /polls/{id}", pollHandler.UpdatePoll)
	handle("DELETE /polls/{id}", pollHandler.DeletePoll)

	// Voting (signed-in or anonymous)
	handle("POST /polls/{id}/votes", votingHandler.SubmitVote)
	handle("GET /polls/{id}/votes", votingHandler.ListVotes)
	handle("GET /polls/{id}/vote-status", votingHandler.GetVoteStatus)

	// Results
	handle("GET /polls/{id}/results", resultsHandler.GetResults)
	handle("POST /polls/{id}/analytics/recompute", resultsHandler.RecomputeAnalytics)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickpoll API v1"))
	})

	return mux
}
