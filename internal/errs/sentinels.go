// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/transport layers.
var (
	// ErrNotFound indicates the requested project, chunk, or token does not exist
	// within the caller's scope.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing or bad credential, or a credential
	// lacking the required capability (read vs write vs admin).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidFormat indicates a malformed token or request body.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrExpired indicates a session token past its embedded expiry.
	ErrExpired = errors.New("expired")

	// ErrIntegrity indicates a signature or digest mismatch on a fetched chunk.
	// A chunk that fails this check must never be instantiated or cached.
	ErrIntegrity = errors.New("integrity failure")

	// ErrResolutionFailed indicates a transport-level failure fetching a chunk.
	// Retrying is left to the caller.
	ErrResolutionFailed = errors.New("resolution failed")

	// ErrSigningFailure indicates the server could not produce a signature
	// (e.g., malformed stored private key). Fatal for the request.
	ErrSigningFailure = errors.New("signing failure")
)
