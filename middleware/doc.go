// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets a trace span named after its route pattern and one
completion log line (method, path, status, duration_ms).

# Identity

WithIdentity reads an optional bearer token:

	withID := middleware.WithIdentity(cfg.JWTSecret)
	mux.HandleFunc("POST /polls", middleware.WithLogging(withID(h.CreatePoll)))

No Authorization header means an anonymous caller. A present but invalid
token is answered with 401 before the handler runs. Handlers read the
caller with UserID(r.Context()), which is "" for anonymous requests.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Store errors carry their kind; WriteError turns them into the matching
status and includes the offending field for validation failures:

	middleware.WriteError(w, err)

Parse JSON request bodies:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Anonymous votes are deduplicated on a salted hash of this value.
*/
package middleware
