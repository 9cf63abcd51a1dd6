// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/danielhkuo/quickpoll/access"
	"github.com/danielhkuo/quickpoll/analytics"
	"github.com/danielhkuo/quickpoll/apperr"
	"github.com/danielhkuo/quickpoll/auth"
	"github.com/danielhkuo/quickpoll/models"
)

// CreatePoll validates req and stores a new active poll owned by ownerID.
func (s *Store) CreatePoll(ctx context.Context, req models.CreatePollRequest, ownerID string) (result models.PollWithAnalytics, err error) {
	ctx, span := s.startSpan(ctx, "store.CreatePoll", "")
	defer func() { endSpan(span, err) }()

	if err := access.Authorize(access.CreatePoll, ownerID, nil); err != nil {
		return models.PollWithAnalytics{}, err
	}

	title, err := validateTitle(req.Title)
	if err != nil {
		return models.PollWithAnalytics{}, err
	}
	question, err := validateQuestion(req.Question)
	if err != nil {
		return models.PollWithAnalytics{}, err
	}
	options, err := normalizeOptions(req.Options)
	if err != nil {
		return models.PollWithAnalytics{}, err
	}
	description, err := validateDescription(req.Description)
	if err != nil {
		return models.PollWithAnalytics{}, err
	}

	now := s.clock()
	rec := pollRecord{
		ID:                 auth.NewID(),
		Title:              title,
		Description:        optionalString(description),
		Question:           question,
		Options:            options,
		CreatedBy:          ownerID,
		IsActive:           true,
		AllowMultipleVotes: req.AllowMultipleVotes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.ExpiresAt != nil {
		at := req.ExpiresAt.UTC().Truncate(time.Microsecond)
		rec.ExpiresAt = &at
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		slog.Error("failed to create poll", "error", err)
		return models.PollWithAnalytics{}, apperr.Internal("failed to create poll", err)
	}

	result = withAnalytics(&rec, analytics.Empty(rec.ID))
	s.publish(ctx, models.EventPollCreated, rec.ID, nil)
	return result, nil
}

// GetPoll returns a poll with its analytics. Inactive polls are visible
// only to their owner.
func (s *Store) GetPoll(ctx context.Context, pollID, callerID string) (result models.PollWithAnalytics, err error) {
	ctx, span := s.startSpan(ctx, "store.GetPoll", pollID)
	defer func() { endSpan(span, err) }()

	tx := s.db.WithContext(ctx)
	rec, err := findPoll(tx, pollID, false)
	if err != nil {
		return models.PollWithAnalytics{}, err
	}
	if err := authorize(access.ReadPoll, callerID, rec); err != nil {
		return models.PollWithAnalytics{}, err
	}

	a, _, err := loadAnalytics(tx, pollID)
	if err != nil {
		return models.PollWithAnalytics{}, err
	}
	return withAnalytics(rec, a), nil
}

// ListPolls returns every poll owned by ownerID, newest first.
func (s *Store) ListPolls(ctx context.Context, ownerID string) (result []models.PollWithAnalytics, err error) {
	ctx, span := s.startSpan(ctx, "store.ListPolls", "")
	defer func() { endSpan(span, err) }()

	if ownerID == "" {
		return nil, apperr.Unauthorized("authentication required")
	}

	tx := s.db.WithContext(ctx)

	var recs []pollRecord
	err = tx.Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&recs).Error
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		return nil, apperr.Internal("failed to list polls", err)
	}

	result = make([]models.PollWithAnalytics, 0, len(recs))
	if len(recs) == 0 {
		return result, nil
	}

	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}

	var rows []analyticsRecord
	if err := tx.Where("poll_id IN ?", ids).Find(&rows).Error; err != nil {
		slog.Error("failed to load analytics", "error", err)
		return nil, apperr.Internal("failed to list polls", err)
	}
	byPoll := make(map[string]models.PollAnalytics, len(rows))
	for _, row := range rows {
		byPoll[row.PollID] = row.toModel()
	}

	for i := range recs {
		a, ok := byPoll[recs[i].ID]
		if !ok {
			a = analytics.Empty(recs[i].ID)
		}
		result = append(result, withAnalytics(&recs[i], a))
	}
	return result, nil
}

// UpdatePoll applies the supplied fields of req. Fields are validated with
// the same rules and in the same order as CreatePoll.
func (s *Store) UpdatePoll(ctx context.Context, pollID string, req models.UpdatePollRequest, callerID string) (result models.PollWithAnalytics, err error) {
	ctx, span := s.startSpan(ctx, "store.UpdatePoll", pollID)
	defer func() { endSpan(span, err) }()

	if callerID == "" {
		return models.PollWithAnalytics{}, apperr.Unauthorized("authentication required")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findPoll(tx, pollID, true)
		if err != nil {
			return err
		}
		if err := authorize(access.UpdatePoll, callerID, rec); err != nil {
			return err
		}

		changes, err := pollChanges(req)
		if err != nil {
			return err
		}
		changes["updated_at"] = s.clock()
		if err := tx.Model(&pollRecord{}).Where("id = ?", pollID).Updates(changes).Error; err != nil {
			return apperr.Internal("failed to update poll", err)
		}

		updated, err := findPoll(tx, pollID, false)
		if err != nil {
			return err
		}
		a, _, err := loadAnalytics(tx, pollID)
		if err != nil {
			return err
		}
		result = withAnalytics(updated, a)
		return nil
	})
	if err != nil {
		if apperr.Is(err, apperr.KindInternal) {
			slog.Error("failed to update poll", "poll_id", pollID, "error", err)
		}
		return models.PollWithAnalytics{}, err
	}

	s.publish(ctx, models.EventPollUpdated, pollID, &result.Analytics)
	return result, nil
}

// DeletePoll removes a poll together with its votes and analytics.
func (s *Store) DeletePoll(ctx context.Context, pollID, callerID string) (result models.DeletePollResponse, err error) {
	ctx, span := s.startSpan(ctx, "store.DeletePoll", pollID)
	defer func() { endSpan(span, err) }()

	if callerID == "" {
		return models.DeletePollResponse{}, apperr.Unauthorized("authentication required")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findPoll(tx, pollID, true)
		if err != nil {
			return err
		}
		if err := authorize(access.DeletePoll, callerID, rec); err != nil {
			return err
		}

		if err := tx.Where("poll_id = ?", pollID).Delete(&voteRecord{}).Error; err != nil {
			return apperr.Internal("failed to delete votes", err)
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&analyticsRecord{}).Error; err != nil {
			return apperr.Internal("failed to delete analytics", err)
		}
		if err := tx.Where("id = ?", pollID).Delete(&pollRecord{}).Error; err != nil {
			return apperr.Internal("failed to delete poll", err)
		}

		result = models.DeletePollResponse{ID: rec.ID, Title: rec.Title}
		return nil
	})
	if err != nil {
		if apperr.Is(err, apperr.KindInternal) {
			slog.Error("failed to delete poll", "poll_id", pollID, "error", err)
		}
		return models.DeletePollResponse{}, err
	}

	s.publish(ctx, models.EventPollDeleted, pollID, nil)
	return result, nil
}

// pollChanges validates the supplied fields of req and maps them to columns.
func pollChanges(req models.UpdatePollRequest) (map[string]any, error) {
	changes := map[string]any{}
	if req.Title != nil {
		title, err := validateTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		changes["title"] = title
	}
	if req.Question != nil {
		question, err := validateQuestion(*req.Question)
		if err != nil {
			return nil, err
		}
		changes["question"] = question
	}
	if req.Options != nil {
		options, err := normalizeOptions(req.Options)
		if err != nil {
			return nil, err
		}
		changes["options"] = datatypes.JSONSlice[string](options)
	}
	if req.Description != nil {
		description, err := validateDescription(*req.Description)
		if err != nil {
			return nil, err
		}
		if description == "" {
			changes["description"] = nil
		} else {
			changes["description"] = description
		}
	}
	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
	}
	if req.AllowMultipleVotes != nil {
		changes["allow_multiple_votes"] = *req.AllowMultipleVotes
	}
	switch {
	case req.ClearExpiresAt:
		changes["expires_at"] = nil
	case req.ExpiresAt != nil:
		changes["expires_at"] = req.ExpiresAt.UTC().Truncate(time.Microsecond)
	}

	return changes, nil
}

// authorize runs an access check against a possibly missing poll record.
func authorize(action access.Action, callerID string, rec *pollRecord) error {
	if rec == nil {
		return access.Authorize(action, callerID, nil)
	}
	poll := rec.toModel()
	return access.Authorize(action, callerID, &poll)
}
