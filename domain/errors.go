package domain

import (
	"errors"
	"fmt"
	"time"
)

// Input validation errors (rejected before any store access)
var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidLoanNumber = errors.New("invalid loan application number")
	ErrInvalidCode       = errors.New("invalid verification code format")
)

// Lookup errors
var (
	ErrLoanNotFound = errors.New("loan application not found")
)

// Verification errors (each carries a distinct machine-readable reason)
var (
	ErrSessionNotFound = errors.New("no verification session found")
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrCodeMismatch    = errors.New("invalid verification code")
	ErrTooManyAttempts = errors.New("too many verification attempts")
)

// Dashboard session errors
var (
	ErrUserNotFound   = errors.New("user not verified")
	ErrSessionExpired = errors.New("session has expired")
)

// Delivery errors
var (
	ErrEmailDelivery = errors.New("failed to send email")
)

// RateLimitError reports a throttled request together with when the
// window resets.
type RateLimitError struct {
	Action    ActionType
	ResetTime time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, resets at %s", e.Action, e.ResetTime.Format(time.RFC3339))
}

// IsRateLimited reports whether err is a rate-limit rejection and, if so,
// returns it.
func IsRateLimited(err error) (*RateLimitError, bool) {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle, true
	}
	return nil, false
}
