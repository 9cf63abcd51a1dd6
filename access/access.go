// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package access

import (
	"github.com/danielhkuo/quickpoll/apperr"
	"github.com/danielhkuo/quickpoll/models"
)

type Action int

const (
	ReadPoll Action = iota
	CreatePoll
	UpdatePoll
	DeletePoll
	ReadResults
	CastVote
	RepairAnalytics
)

func (a Action) String() string {
	switch a {
	case ReadPoll:
		return "read_poll"
	case CreatePoll:
		return "create_poll"
	case UpdatePoll:
		return "update_poll"
	case DeletePoll:
		return "delete_poll"
	case ReadResults:
		return "read_results"
	case CastVote:
		return "cast_vote"
	case RepairAnalytics:
		return "repair_analytics"
	default:
		return "unknown"
	}
}

// Authorize decides whether callerID may perform action on poll.
// An empty callerID is an anonymous caller. poll may be nil for CreatePoll.
// A nil return means allow.
func Authorize(action Action, callerID string, poll *models.Poll) error {
	switch action {
	case CreatePoll:
		if callerID == "" {
			return apperr.Unauthorized("authentication required")
		}
		return nil

	case ReadPoll, ReadResults:
		// Hidden polls look exactly like missing ones
		if poll == nil || !(poll.IsActive || isOwner(callerID, poll)) {
			return apperr.NotFound("poll not found")
		}
		return nil

	case UpdatePoll, DeletePoll, RepairAnalytics:
		if callerID == "" {
			return apperr.Unauthorized("authentication required")
		}
		if poll == nil {
			return apperr.NotFound("poll not found")
		}
		if !isOwner(callerID, poll) {
			return apperr.Forbidden("only the poll owner can " + verb(action))
		}
		return nil

	case CastVote:
		// Eligibility (active, not expired) belongs to the vote ledger
		if poll == nil {
			return apperr.NotFound("poll not found")
		}
		return nil
	}

	return apperr.Forbidden("action not permitted")
}

func isOwner(callerID string, poll *models.Poll) bool {
	return callerID != "" && callerID == poll.CreatedBy
}

func verb(action Action) string {
	switch action {
	case UpdatePoll:
		return "update this poll"
	case DeletePoll:
		return "delete this poll"
	default:
		return "recompute analytics for this poll"
	}
}
