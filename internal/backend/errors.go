package backend

import "errors"

var (
	// ErrUnavailable indicates the booking backend is unreachable.
	ErrUnavailable = errors.New("booking backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("booking backend request timed out")

	// ErrRequestRejected indicates the backend answered but refused the
	// operation, either with a non-2xx status or success=false.
	ErrRequestRejected = errors.New("booking backend rejected the request")

	// ErrInvalidPayload indicates a backend response could not be decoded.
	ErrInvalidPayload = errors.New("invalid booking backend payload")
)
