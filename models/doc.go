// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, description, question, options, allow_multiple_votes, expires_at
  - UpdatePollRequest: any subset of the poll fields, plus clear_expires_at
  - SubmitVoteRequest: option_index

# Response Types

Types for JSON responses:

  - PollWithAnalytics: a poll joined with its analytics row
  - DeletePollResponse: id, title
  - SubmitVoteResponse: vote, poll, message
  - VoteStatusResponse: has_voted, vote
  - RecomputeAnalyticsResponse: analytics, diverged
  - ErrorResponse: error, message, field

# Domain Types

  - Poll: question, ordered options, owner, activity and expiry gates
  - Vote: immutable ledger entry with an option_text snapshot
  - PollAnalytics: totals derived from the vote ledger
  - Voter: the identity casting a vote (user id or anonymous origin)
  - Event: change notification published after commit

Votes never serialise voter_ip or user_agent.

# Limits

	TitleMinLen..TitleMaxLen       = 3..200
	DescriptionMaxLen              = 1000
	QuestionMinLen..QuestionMaxLen = 5..500
	MinOptions..MaxOptions         = 2..10

Lengths are counted in runes after trimming surrounding whitespace.
*/
package models
