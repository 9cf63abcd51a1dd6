// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danielhkuo/quickpoll/analytics"
	"github.com/danielhkuo/quickpoll/apperr"
	"github.com/danielhkuo/quickpoll/events"
	"github.com/danielhkuo/quickpoll/models"
	"github.com/danielhkuo/quickpoll/observability"
)

// Store is the poll repository and vote ledger. Every operation takes the
// caller's identity explicitly; the empty string is an anonymous caller.
type Store struct {
	db        *gorm.DB
	publisher events.Publisher
	now       func() time.Time
	tracer    trace.Tracer
}

type Option func(*Store)

// WithPublisher sets where change events go after commit.
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithClock overrides the store's notion of now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(conn *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:        conn,
		publisher: events.Nop{},
		now:       func() time.Time { return time.Now() },
		tracer:    observability.Tracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Microsecond precision matches what PostgreSQL keeps.
func (s *Store) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Store) startSpan(ctx context.Context, name, pollID string) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, name)
	if pollID != "" {
		span.SetAttributes(attribute.String("poll.id", pollID))
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.KindOf(err).String())
	}
	span.End()
}

func (s *Store) publish(ctx context.Context, eventType, pollID string, a *models.PollAnalytics) {
	event := models.Event{Type: eventType, PollID: pollID, Analytics: a, At: s.clock()}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish event", "type", eventType, "poll_id", pollID, "error", err)
	}
}

// findPoll loads a poll; lock takes a row lock for the rest of the transaction.
func findPoll(tx *gorm.DB, pollID string, lock bool) (*pollRecord, error) {
	q := tx
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rec pollRecord
	err := q.Take(&rec, "id = ?", pollID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internalf(err, "load poll %s", pollID)
	}
	return &rec, nil
}

// loadAnalytics returns the maintained row, or zero values when the poll has
// never received a vote. found reports whether the row exists.
func loadAnalytics(tx *gorm.DB, pollID string) (a models.PollAnalytics, found bool, err error) {
	var rec analyticsRecord
	err = tx.Take(&rec, "poll_id = ?", pollID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return analytics.Empty(pollID), false, nil
	}
	if err != nil {
		return models.PollAnalytics{}, false, apperr.Internalf(err, "load analytics %s", pollID)
	}
	return rec.toModel(), true, nil
}

func saveAnalytics(tx *gorm.DB, a models.PollAnalytics, found bool, now time.Time) (models.PollAnalytics, error) {
	rec := analyticsFromModel(a, now)

	var err error
	if found {
		err = tx.Save(&rec).Error
	} else {
		err = tx.Create(&rec).Error
	}
	if err != nil {
		return models.PollAnalytics{}, apperr.Internalf(err, "save analytics %s", a.PollID)
	}
	return rec.toModel(), nil
}

func withAnalytics(rec *pollRecord, a models.PollAnalytics) models.PollWithAnalytics {
	return models.PollWithAnalytics{Poll: rec.toModel(), Analytics: a}
}
