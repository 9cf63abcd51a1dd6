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

type PollHandler struct {
	store *store.Store
}

func NewPollHandler(st *store.Store) *PollHandler {
	return &PollHandler{store: st}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	userID := middleware.UserID(r.Context())
	poll, err := h.store.CreatePoll(r.Context(), req, userID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "owner", userID)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPolls handles GET /polls
// Returns only the caller's own polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListPolls(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// UpdatePoll handles PATCH /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.store.UpdatePoll(r.Context(), pollID, req, middleware.UserID(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("poll updated", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	deleted, err := h.store.DeletePoll(r.Context(), pollID, middleware.UserID(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, deleted)
}
