// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/danielhkuo/quickpoll/access"
	"github.com/danielhkuo/quickpoll/analytics"
	"github.com/danielhkuo/quickpoll/apperr"
	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/db"
	"github.com/danielhkuo/quickpoll/models"
)

const (
	msgAlreadyVoted        = "you have already voted on this poll"
	msgAlreadyVotedNetwork = "a vote has already been cast from this network on this poll"
)

// SubmitVote records one vote for optionIndex and folds it into the poll's
// analytics in the same transaction. Checks run in a fixed order: existence,
// active, expiry, option range, then duplicate voter.
func (s *Store) SubmitVote(ctx context.Context, pollID string, optionIndex int, voter models.Voter) (vote models.Vote, result models.PollWithAnalytics, err error) {
	ctx, span := s.startSpan(ctx, "store.SubmitVote", pollID)
	defer func() { endSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findPoll(tx, pollID, true)
		if err != nil {
			return err
		}
		if err := authorize(access.CastVote, voter.UserID, rec); err != nil {
			return err
		}

		now := s.clock()
		poll := rec.toModel()
		if !poll.IsActive {
			return apperr.Forbidden("poll not accepting votes")
		}
		if poll.Expired(now) {
			return apperr.Forbidden("poll expired")
		}
		if optionIndex < 0 || optionIndex >= len(poll.Options) {
			return apperr.Validation("option_index", "invalid option")
		}

		row := voteRecord{
			ID:          auth.NewID(),
			PollID:      pollID,
			OptionIndex: optionIndex,
			OptionText:  poll.Options[optionIndex],
			CreatedAt:   now,
		}
		if voter.UserID != "" {
			row.VoterID = &voter.UserID
		} else {
			row.VoterIP = optionalString(voter.IP)
			row.UserAgent = optionalString(voter.UserAgent)
		}
		candidate := row.toModel()
		key := analytics.VoterKey(candidate)

		newVoter := key != ""
		if key != "" {
			prior, err := countByIdentity(tx, pollID, candidate)
			if err != nil {
				return err
			}
			if prior > 0 && !poll.AllowMultipleVotes {
				return conflictFor(candidate)
			}
			newVoter = prior == 0
		}
		if !poll.AllowMultipleVotes && key != "" {
			row.DedupeKey = &key
		}

		if err := tx.Create(&row).Error; err != nil {
			if db.IsUniqueViolation(err) {
				return conflictFor(candidate)
			}
			return apperr.Internal("failed to record vote", err)
		}

		current, found, err := loadAnalytics(tx, pollID)
		if err != nil {
			return err
		}
		saved, err := saveAnalytics(tx, analytics.Apply(current, candidate, newVoter), found, now)
		if err != nil {
			return err
		}

		vote = candidate
		result = models.PollWithAnalytics{Poll: poll, Analytics: saved}
		return nil
	})
	if err != nil {
		if apperr.Is(err, apperr.KindInternal) {
			slog.Error("failed to submit vote", "poll_id", pollID, "error", err)
		}
		return models.Vote{}, models.PollWithAnalytics{}, err
	}

	s.publish(ctx, models.EventVoteCast, pollID, &result.Analytics)
	return vote, result, nil
}

// GetVoteStatus reports the caller's most recent vote on a poll. It never
// fails: anonymous callers and storage errors both read as "not voted".
func (s *Store) GetVoteStatus(ctx context.Context, pollID, callerID string) models.VoteStatus {
	if callerID == "" {
		return models.VoteStatus{}
	}

	ctx, span := s.startSpan(ctx, "store.GetVoteStatus", pollID)
	defer span.End()

	var row voteRecord
	err := s.db.WithContext(ctx).
		Where("poll_id = ? AND voter_id = ?", pollID, callerID).
		Order("created_at DESC").
		Order("id DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.VoteStatus{}
	}
	if err != nil {
		span.RecordError(err)
		slog.Error("failed to load vote status", "poll_id", pollID, "error", err)
		return models.VoteStatus{}
	}

	v := row.toModel()
	return models.VoteStatus{HasVoted: true, Vote: &v}
}

// ListVotes returns a poll's votes oldest first. Only the owner sees every
// voter_id; other callers see their own and nothing else.
func (s *Store) ListVotes(ctx context.Context, pollID, callerID string) (votes []models.Vote, err error) {
	ctx, span := s.startSpan(ctx, "store.ListVotes", pollID)
	defer func() { endSpan(span, err) }()

	tx := s.db.WithContext(ctx)
	rec, err := findPoll(tx, pollID, false)
	if err != nil {
		return nil, err
	}
	if err := authorize(access.ReadResults, callerID, rec); err != nil {
		return nil, err
	}

	rows, err := pollVotes(tx, pollID)
	if err != nil {
		slog.Error("failed to list votes", "poll_id", pollID, "error", err)
		return nil, err
	}

	owner := callerID != "" && callerID == rec.CreatedBy
	votes = make([]models.Vote, len(rows))
	for i, row := range rows {
		votes[i] = row.toModel()
		if !owner && (row.VoterID == nil || *row.VoterID != callerID) {
			votes[i].VoterID = nil
		}
	}
	return votes, nil
}

// RecomputeAnalytics rebuilds a poll's analytics from its vote ledger and
// stores the result. diverged reports whether the maintained row disagreed.
func (s *Store) RecomputeAnalytics(ctx context.Context, pollID, callerID string) (result models.PollAnalytics, diverged bool, err error) {
	ctx, span := s.startSpan(ctx, "store.RecomputeAnalytics", pollID)
	defer func() { endSpan(span, err) }()

	if callerID == "" {
		return models.PollAnalytics{}, false, apperr.Unauthorized("authentication required")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findPoll(tx, pollID, true)
		if err != nil {
			return err
		}
		if err := authorize(access.RepairAnalytics, callerID, rec); err != nil {
			return err
		}

		rows, err := pollVotes(tx, pollID)
		if err != nil {
			return err
		}
		votes := make([]models.Vote, len(rows))
		for i, row := range rows {
			votes[i] = row.toModel()
		}

		current, found, err := loadAnalytics(tx, pollID)
		if err != nil {
			return err
		}
		fresh := analytics.Recompute(pollID, votes)
		diverged = !analytics.Equivalent(current, fresh)

		if !found && len(votes) == 0 {
			result = fresh
			return nil
		}
		result, err = saveAnalytics(tx, fresh, found, s.clock())
		return err
	})
	if err != nil {
		if apperr.Is(err, apperr.KindInternal) {
			slog.Error("failed to recompute analytics", "poll_id", pollID, "error", err)
		}
		return models.PollAnalytics{}, false, err
	}

	if diverged {
		slog.Warn("analytics diverged from vote ledger", "poll_id", pollID)
	}
	return result, diverged, nil
}

func conflictFor(v models.Vote) error {
	if v.Anonymous() {
		return apperr.Conflict(msgAlreadyVotedNetwork)
	}
	return apperr.Conflict(msgAlreadyVoted)
}

// countByIdentity counts the votes on a poll sharing v's voter identity.
// Callers must only pass votes with a non-empty analytics.VoterKey.
func countByIdentity(tx *gorm.DB, pollID string, v models.Vote) (int64, error) {
	q := tx.Model(&voteRecord{}).Where("poll_id = ?", pollID)
	if v.Anonymous() {
		q = q.Where("voter_id IS NULL AND voter_ip = ?", *v.VoterIP)
	} else {
		q = q.Where("voter_id = ?", *v.VoterID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, apperr.Internal("failed to check prior votes", err)
	}
	return n, nil
}

func pollVotes(tx *gorm.DB, pollID string) ([]voteRecord, error) {
	var rows []voteRecord
	err := tx.Where("poll_id = ?", pollID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal("failed to load votes", err)
	}
	return rows, nil
}
