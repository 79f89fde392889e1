// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across client layers.
var (
	// ErrNotFound indicates the requested resource does not exist on the server.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the server rejected the request for lack of a valid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession indicates no cached session user is available locally.
	ErrNoSession = errors.New("no session (login required)")

	// ErrForbidden indicates the session lacks the required role (admin endpoints).
	ErrForbidden = errors.New("forbidden")
)
