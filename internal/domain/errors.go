package domain

import "errors"

var (
	// ErrUnrecognizedEvent is returned when a log does not match any known event signature
	ErrUnrecognizedEvent = errors.New("unrecognized event")

	// ErrMalformedEvent is returned when a log matches a known signature but cannot be decoded
	ErrMalformedEvent = errors.New("malformed event")

	// ErrUnknownToken is returned when an event references a token that has not been minted yet
	ErrUnknownToken = errors.New("unknown token")

	// ErrInvariantViolation is returned when applying an event would break a projection invariant
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidPosition is returned when a stored cursor value cannot be parsed
	ErrInvalidPosition = errors.New("invalid position")

	// ErrSubscriptionFailed is returned when subscription to logs fails
	ErrSubscriptionFailed = errors.New("subscription failed")
)
