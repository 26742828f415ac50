package mocks

import (
	"context"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// MockVerifiedUserRepository implements domain.VerifiedUserRepository
// for testing
type MockVerifiedUserRepository struct {
	UpsertFunc         func(ctx context.Context, email string, loanNumber int64) (*domain.VerifiedUser, error)
	FindFunc           func(ctx context.Context, email string, loanNumber int64) (*domain.VerifiedUser, error)
	RefreshSessionFunc func(ctx context.Context, email string, loanNumber int64, sessionID *string) (*domain.VerifiedUser, error)
	DeactivateFunc     func(ctx context.Context, email string, loanNumber int64) error
}

// NewMockVerifiedUserRepository creates a new mock with default behaviors
func NewMockVerifiedUserRepository() *MockVerifiedUserRepository {
	return &MockVerifiedUserRepository{}
}

func defaultVerifiedUser(email string, loanNumber int64) *domain.VerifiedUser {
	now := time.Now()
	return &domain.VerifiedUser{
		ID:                    1,
		Email:                 email,
		LoanApplicationNumber: loanNumber,
		FirstVerifiedAt:       now,
		LastLoginAt:           now,
		TotalLogins:           1,
		IsActive:              true,
		SessionExpiresAt:      now.Add(15 * time.Minute),
	}
}

// Upsert creates a fresh user unless overridden
func (m *MockVerifiedUserRepository) Upsert(ctx context.Context, email string, loanNumber int64) (*domain.VerifiedUser, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, email, loanNumber)
	}
	return defaultVerifiedUser(email, loanNumber), nil
}

// Find returns an active user unless overridden
func (m *MockVerifiedUserRepository) Find(ctx context.Context, email string, loanNumber int64) (*domain.VerifiedUser, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, email, loanNumber)
	}
	return defaultVerifiedUser(email, loanNumber), nil
}

// RefreshSession bumps total_logins unless overridden
func (m *MockVerifiedUserRepository) RefreshSession(ctx context.Context, email string, loanNumber int64, sessionID *string) (*domain.VerifiedUser, error) {
	if m.RefreshSessionFunc != nil {
		return m.RefreshSessionFunc(ctx, email, loanNumber, sessionID)
	}
	user := defaultVerifiedUser(email, loanNumber)
	user.TotalLogins = 2
	user.CurrentSessionID = sessionID
	return user, nil
}

// Deactivate succeeds unless overridden
func (m *MockVerifiedUserRepository) Deactivate(ctx context.Context, email string, loanNumber int64) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, email, loanNumber)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.VerifiedUserRepository = (*MockVerifiedUserRepository)(nil)
