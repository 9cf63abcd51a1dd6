// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"time"

	"gorm.io/datatypes"

	"github.com/danielhkuo/quickpoll/models"
)

// Timestamps are set by the store's clock, never by gorm.

type pollRecord struct {
	ID                 string `gorm:"primaryKey"`
	Title              string
	Description        *string
	Question           string
	Options            datatypes.JSONSlice[string]
	CreatedBy          string
	IsActive           bool
	AllowMultipleVotes bool
	ExpiresAt          *time.Time
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (pollRecord) TableName() string { return "polls" }

func (r pollRecord) toModel() models.Poll {
	p := models.Poll{
		ID:                 r.ID,
		Title:              r.Title,
		Question:           r.Question,
		Options:            append([]string{}, r.Options...),
		CreatedBy:          r.CreatedBy,
		IsActive:           r.IsActive,
		AllowMultipleVotes: r.AllowMultipleVotes,
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.ExpiresAt != nil {
		at := r.ExpiresAt.UTC()
		p.ExpiresAt = &at
	}
	return p
}

type voteRecord struct {
	ID          string `gorm:"primaryKey"`
	PollID      string
	OptionIndex int
	OptionText  string
	VoterID     *string
	VoterIP     *string
	UserAgent   *string
	DedupeKey   *string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

func (voteRecord) TableName() string { return "votes" }

func (r voteRecord) toModel() models.Vote {
	return models.Vote{
		ID:          r.ID,
		PollID:      r.PollID,
		OptionIndex: r.OptionIndex,
		OptionText:  r.OptionText,
		VoterID:     r.VoterID,
		VoterIP:     r.VoterIP,
		UserAgent:   r.UserAgent,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type analyticsRecord struct {
	PollID       string `gorm:"primaryKey"`
	TotalVotes   int
	UniqueVoters int
	OptionCounts datatypes.JSONType[map[string]int]
	LastVoteAt   *time.Time
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`
}

func (analyticsRecord) TableName() string { return "poll_analytics" }

func (r analyticsRecord) toModel() models.PollAnalytics {
	counts := map[string]int{}
	for k, v := range r.OptionCounts.Data() {
		counts[k] = v
	}

	a := models.PollAnalytics{
		PollID:       r.PollID,
		TotalVotes:   r.TotalVotes,
		UniqueVoters: r.UniqueVoters,
		OptionCounts: counts,
	}
	if r.LastVoteAt != nil {
		at := r.LastVoteAt.UTC()
		a.LastVoteAt = &at
	}
	updated := r.UpdatedAt.UTC()
	a.UpdatedAt = &updated
	return a
}

func analyticsFromModel(a models.PollAnalytics, now time.Time) analyticsRecord {
	counts := make(map[string]int, len(a.OptionCounts))
	for k, v := range a.OptionCounts {
		if v > 0 {
			counts[k] = v
		}
	}
	return analyticsRecord{
		PollID:       a.PollID,
		TotalVotes:   a.TotalVotes,
		UniqueVoters: a.UniqueVoters,
		OptionCounts: datatypes.NewJSONType(counts),
		LastVoteAt:   a.LastVoteAt,
		UpdatedAt:    now,
	}
}
