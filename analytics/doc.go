// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analytics maintains PollAnalytics as a materialization of the vote ledger.

The functions are pure; the store calls them inside the same transaction that
inserts a vote, so a committed vote is always reflected in its poll's
analytics row. Votes are never deleted on their own; deleting a poll drops its
analytics row with the ledger.

	a = analytics.Apply(a, vote, newVoter)      // on insert
	fresh := analytics.Recompute(pollID, votes) // from scratch

Recompute over the full ledger must always be Equivalent to the maintained row.

# Unique Voters

Identities are keyed by VoterKey: "user:<id>" for authenticated votes and
"ip:<hashed origin>" for anonymous ones. The two domains are independent, so a
signed-in user and an anonymous visitor from the same network count twice.
*/
package analytics
