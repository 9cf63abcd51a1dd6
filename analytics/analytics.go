// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"maps"
	"strconv"
	"time"

	"github.com/danielhkuo/quickpoll/models"
)

// Empty returns the zero-valued analytics for a poll with no votes.
func Empty(pollID string) models.PollAnalytics {
	return models.PollAnalytics{
		PollID:       pollID,
		OptionCounts: map[string]int{},
	}
}

// OptionKey is the option_counts key for an option index.
func OptionKey(index int) string {
	return strconv.Itoa(index)
}

// VoterKey identifies the voter behind a vote for unique_voters.
// Authenticated and anonymous identities never collide. An anonymous vote
// without an origin has no countable identity and yields "".
func VoterKey(v models.Vote) string {
	if !v.Anonymous() {
		return "user:" + *v.VoterID
	}
	if v.VoterIP != nil && *v.VoterIP != "" {
		return "ip:" + *v.VoterIP
	}
	return ""
}

// Apply folds one inserted vote into a. newVoter is true when no other vote
// in the ledger shares the vote's VoterKey.
func Apply(a models.PollAnalytics, v models.Vote, newVoter bool) models.PollAnalytics {
	out := clone(a)
	out.TotalVotes++
	if newVoter && VoterKey(v) != "" {
		out.UniqueVoters++
	}
	out.OptionCounts[OptionKey(v.OptionIndex)]++

	if out.LastVoteAt == nil || v.CreatedAt.After(*out.LastVoteAt) {
		at := v.CreatedAt
		out.LastVoteAt = &at
	}
	return out
}

// Recompute derives analytics from scratch over every vote of a poll.
func Recompute(pollID string, votes []models.Vote) models.PollAnalytics {
	out := Empty(pollID)
	seen := make(map[string]struct{}, len(votes))

	for _, v := range votes {
		key := VoterKey(v)
		_, dup := seen[key]
		if key != "" {
			seen[key] = struct{}{}
		}
		out = Apply(out, v, !dup)
	}
	return out
}

// Equivalent compares the derived fields of two analytics rows. Zero-valued
// option keys are treated as absent and updated_at is ignored.
func Equivalent(a, b models.PollAnalytics) bool {
	if a.PollID != b.PollID || a.TotalVotes != b.TotalVotes || a.UniqueVoters != b.UniqueVoters {
		return false
	}
	if !sameInstant(a.LastVoteAt, b.LastVoteAt) {
		return false
	}
	return maps.Equal(nonZero(a.OptionCounts), nonZero(b.OptionCounts))
}

func clone(a models.PollAnalytics) models.PollAnalytics {
	out := a
	out.OptionCounts = make(map[string]int, len(a.OptionCounts)+1)
	maps.Copy(out.OptionCounts, a.OptionCounts)
	if a.LastVoteAt != nil {
		at := *a.LastVoteAt
		out.LastVoteAt = &at
	}
	return out
}

func nonZero(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
