package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAuthenticationFailed is the single error returned for every
	// authentication failure: unknown key, deactivated license, expired
	// license, fingerprint mismatch. Collapsing the causes keeps the
	// endpoint from leaking which check rejected the key.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrTooManyAttempts is returned while a license key is locked out after
	// repeated failures.
	ErrTooManyAttempts = errors.New("too many attempts, try again later")

	ErrInvalidGoalValue    = errors.New("invalid goal value")
	ErrInvalidStartBalance = errors.New("invalid start balance value")
	ErrInvalidExpiryFormat = errors.New("invalid expiration date format")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
