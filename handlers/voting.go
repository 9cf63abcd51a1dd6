// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/danielhkuo/quickpoll/apperr"
	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/cliparse"
	"github.com/danielhkuo/quickpoll/middleware"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/store"
)

type VotingHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewVotingHandler(st *store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: st, cfg: cfg}
}

// SubmitVote handles POST /polls/{id}/votes
// Works for signed-in and anonymous callers; anonymous voters are
// identified by a salted hash of their network origin.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionIndex == nil {
		middleware.WriteError(w, apperr.Validation("option_index", "option_index is required"))
		return
	}

	index, ok := optionIndex(*req.OptionIndex)
	if !ok {
		middleware.WriteError(w, apperr.Validation("option_index", "invalid option"))
		return
	}

	voter := models.Voter{UserID: middleware.UserID(r.Context())}
	if voter.UserID == "" {
		voter.IP = auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
		voter.UserAgent = r.UserAgent()
	}

	vote, poll, err := h.store.SubmitVote(r.Context(), pollID, index, voter)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "vote_id", vote.ID, "anonymous", vote.Anonymous())

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Vote:    vote,
		Poll:    poll,
		Message: "Vote recorded",
	})
}

// ListVotes handles GET /polls/{id}/votes
// voter_id is only filled in for the owner, or for the caller's own votes
func (h *VotingHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	votes, err := h.store.ListVotes(r.Context(), pollID, middleware.UserID(r.Context()))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}

// GetVoteStatus handles GET /polls/{id}/vote-status
// Always 200; anonymous callers get has_voted=false
func (h *VotingHandler) GetVoteStatus(w http.ResponseWriter, r *http.Request) {
	status := h.store.GetVoteStatus(r.Context(), r.PathValue("id"), middleware.UserID(r.Context()))

	middleware.JSONResponse(w, http.StatusOK, models.VoteStatusResponse{
		HasVoted: status.HasVoted,
		Vote:     status.Vote,
	})
}

// optionIndex accepts only integral JSON numbers that fit an int.
func optionIndex(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
