// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client_ip) and completion (status,
duration_ms).

# Admin Guard

Admin routes require the election's admin key in X-Admin-Key:

	mux.HandleFunc("GET /dashboard", middleware.WithLogging(
		middleware.RequireAdmin(cfg.ElectionID, cfg.AdminKeySalt, h.Dashboard)))

Agent tokens are checked by the submission handlers themselves, since the
token is bound to the polling unit named in the request body.

# CORS Middleware

Enable cross-origin requests for the monitoring dashboard:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Agent-Token.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.ResultsSubmission
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used in request logs and rejected-credential warnings.
*/
package middleware
