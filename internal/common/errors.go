// Package common defines shared constants, helpers and sentinel errors used
// across client and server layers of gophschedule. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrUnavailable = errors.New("store unavailable")
	ErrWriteFailed = errors.New("store write failed")

	// Parse errors raised while reading the store. During bulk reads these
	// are logged and skipped.
	ErrMalformedIndex      = errors.New("malformed schedule index")
	ErrMalformedRecord     = errors.New("malformed schedule record")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")

	// Workflow errors.
	ErrInvalidInput       = errors.New("invalid input")
	ErrCredentialDeclined = errors.New("credential declined")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrLoginExpired   = errors.New("login message expired")
	ErrBadSignature   = errors.New("bad signature")
)
