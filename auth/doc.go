// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity tokens, ID generation, and IP hashing.

# Identity Tokens

Callers authenticate with an HS256 JWT whose subject is the user id:

	userID, err := auth.VerifyToken(tokenString, secret)

Tokens are issued by the identity provider. IssueToken exists for tests and
local tooling:

	token, err := auth.IssueToken("user-123", secret, time.Hour)

Only HS256 is accepted; expired tokens and tokens without a subject are
rejected.

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()

# IP Hashing

Anonymous votes are deduplicated by network origin. The origin is stored as a
salted hash, never as the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. Shared NAT and proxies make
this a weak identity; it is a deduplication heuristic, not authentication.
*/
package auth
