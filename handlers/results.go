// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/store"
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(st *store.Store) *ResultsHandler {
	return &ResultsHandler{store: st}
}

// GetResults handles GET /polls/{id}/results
// Results are live; the same visibility rule as GetPoll applies
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := h.store.GetPoll(r.Context(), pollID, middleware.UserID(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll.Analytics)
}

// RecomputeAnalytics handles POST /polls/{id}/analytics/recompute
// Owner-only; rebuilds analytics from the vote ledger
func (h *ResultsHandler) RecomputeAnalytics(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	a, diverged, err := h.store.RecomputeAnalytics(r.Context(), pollID, middleware.UserID(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("analytics recomputed", "poll_id", pollID, "diverged", diverged)

	middleware.JSONResponse(w, http.StatusOK, models.RecomputeAnalyticsResponse{
		Analytics: a,
		Diverged:  diverged,
	})
}
