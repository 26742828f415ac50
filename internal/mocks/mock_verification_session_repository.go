package mocks

import (
	"context"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// MockVerificationSessionRepository implements
// domain.VerificationSessionRepository for testing
type MockVerificationSessionRepository struct {
	CreateFunc         func(ctx context.Context, session *domain.VerificationSession) error
	FindUnverifiedFunc func(ctx context.Context, email string, loanNumber int64) (*domain.VerificationSession, error)
	ConsumeAttemptFunc func(ctx context.Context, sessionID uint) error
	MarkVerifiedFunc   func(ctx context.Context, sessionID uint, at time.Time) error
}

// NewMockVerificationSessionRepository creates a new mock with default behaviors
func NewMockVerificationSessionRepository() *MockVerificationSessionRepository {
	return &MockVerificationSessionRepository{}
}

// Create succeeds unless overridden
func (m *MockVerificationSessionRepository) Create(ctx context.Context, session *domain.VerificationSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	session.ID = 1
	return nil
}

// FindUnverified returns a live session unless overridden
func (m *MockVerificationSessionRepository) FindUnverified(ctx context.Context, email string, loanNumber int64) (*domain.VerificationSession, error) {
	if m.FindUnverifiedFunc != nil {
		return m.FindUnverifiedFunc(ctx, email, loanNumber)
	}
	return &domain.VerificationSession{
		ID:                    1,
		Email:                 email,
		LoanApplicationNumber: loanNumber,
		CodeHash:              "hash:123456",
		CodeExpiresAt:         time.Now().Add(10 * time.Minute),
		AttemptsCount:         0,
		MaxAttempts:           3,
	}, nil
}

// ConsumeAttempt succeeds unless overridden
func (m *MockVerificationSessionRepository) ConsumeAttempt(ctx context.Context, sessionID uint) error {
	if m.ConsumeAttemptFunc != nil {
		return m.ConsumeAttemptFunc(ctx, sessionID)
	}
	return nil
}

// MarkVerified succeeds unless overridden
func (m *MockVerificationSessionRepository) MarkVerified(ctx context.Context, sessionID uint, at time.Time) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, sessionID, at)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.VerificationSessionRepository = (*MockVerificationSessionRepository)(nil)
