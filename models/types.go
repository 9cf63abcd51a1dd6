// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll field limits
const (
	TitleMinLen       = 3
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
	QuestionMinLen    = 5
	QuestionMaxLen    = 500
	MinOptions        = 2
	MaxOptions        = 10
)

// Event types published after a committed change
const (
	EventPollCreated = "poll.created"
	EventPollUpdated = "poll.updated"
	EventPollDeleted = "poll.deleted"
	EventVoteCast    = "vote.cast"
)

// Request types

type CreatePollRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Question           string     `json:"question"`
	Options            []string   `json:"options"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
}

// Every field is optional; nil means "leave unchanged".
type UpdatePollRequest struct {
	Title              *string    `json:"title,omitempty"`
	Description        *string    `json:"description,omitempty"`
	Question           *string    `json:"question,omitempty"`
	Options            []string   `json:"options,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
	AllowMultipleVotes *bool      `json:"allow_multiple_votes,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	ClearExpiresAt     bool       `json:"clear_expires_at,omitempty"`
}

// OptionIndex is a float so non-integral input can be rejected as an invalid
// option rather than as malformed JSON.
type SubmitVoteRequest struct {
	OptionIndex *float64 `json:"option_index"`
}

// Response types

type DeletePollResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type SubmitVoteResponse struct {
	Vote    Vote              `json:"vote"`
	Poll    PollWithAnalytics `json:"poll"`
	Message string            `json:"message"`
}

type VoteStatusResponse struct {
	HasVoted bool  `json:"has_voted"`
	Vote     *Vote `json:"vote"`
}

type RecomputeAnalyticsResponse struct {
	Analytics PollAnalytics `json:"analytics"`
	Diverged  bool          `json:"diverged"`
}

// Domain types

type Poll struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Question           string     `json:"question"`
	Options            []string   `json:"options"`
	CreatedBy          string     `json:"created_by"`
	IsActive           bool       `json:"is_active"`
	AllowMultipleVotes bool       `json:"allow_multiple_votes"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Expired reports whether the poll has an expiry at or before now.
func (p Poll) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}

type Vote struct {
	ID          string    `json:"id"`
	PollID      string    `json:"poll_id"`
	OptionIndex int       `json:"option_index"`
	OptionText  string    `json:"option_text"`
	VoterID     *string   `json:"voter_id,omitempty"`
	VoterIP     *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

// Anonymous reports whether the vote was cast without an authenticated identity.
func (v Vote) Anonymous() bool {
	return v.VoterID == nil || *v.VoterID == ""
}

// option index (as a decimal string) -> vote count
type PollAnalytics struct {
	PollID       string         `json:"poll_id"`
	TotalVotes   int            `json:"total_votes"`
	UniqueVoters int            `json:"unique_voters"`
	OptionCounts map[string]int `json:"option_counts"`
	LastVoteAt   *time.Time     `json:"last_vote_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

type PollWithAnalytics struct {
	Poll
	Analytics PollAnalytics `json:"analytics"`
}

// Voter identifies who is casting a vote. UserID is empty for anonymous voters;
// IP and UserAgent are only persisted for anonymous votes.
type Voter struct {
	UserID    string
	IP        string
	UserAgent string
}

type VoteStatus struct {
	HasVoted bool
	Vote     *Vote
}

// Event is the payload published on the change channel.
type Event struct {
	Type      string         `json:"type"`
	PollID    string         `json:"poll_id"`
	Analytics *PollAnalytics `json:"analytics,omitempty"`
	At        time.Time      `json:"at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
