package mocks

import (
	"context"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// MockRateLimiter implements domain.RateLimiter for testing
type MockRateLimiter struct {
	CheckFunc func(ctx context.Context, identifier string, identifierType domain.IdentifierType, action domain.ActionType, maxRequests int, window time.Duration) (*domain.RateLimitResult, error)
}

// NewMockRateLimiter creates a new MockRateLimiter with default behaviors
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

// Check allows everything unless overridden
func (m *MockRateLimiter) Check(ctx context.Context, identifier string, identifierType domain.IdentifierType, action domain.ActionType, maxRequests int, window time.Duration) (*domain.RateLimitResult, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, identifier, identifierType, action, maxRequests, window)
	}
	return &domain.RateLimitResult{
		Allowed:         true,
		Remaining:       maxRequests - 1,
		ResetTime:       time.Now().Add(window),
		CurrentRequests: 1,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.RateLimiter = (*MockRateLimiter)(nil)
