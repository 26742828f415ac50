package mocks

import (
	"context"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// MockVerificationService implements domain.VerificationService for
// handler tests
type MockVerificationService struct {
	RequestCodeFunc  func(ctx context.Context, in domain.RequestCodeInput) (*domain.RequestCodeResult, error)
	VerifyCodeFunc   func(ctx context.Context, in domain.VerifyCodeInput) (*domain.VerifyCodeResult, error)
	CheckSessionFunc func(ctx context.Context, in domain.SessionCheckInput) (*domain.SessionStatus, error)
}

// NewMockVerificationService creates a new mock with default behaviors
func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

// RequestCode succeeds unless overridden
func (m *MockVerificationService) RequestCode(ctx context.Context, in domain.RequestCodeInput) (*domain.RequestCodeResult, error) {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, in)
	}
	return &domain.RequestCodeResult{ExpiresInMinutes: 10, RemainingRequests: 2}, nil
}

// VerifyCode succeeds unless overridden
func (m *MockVerificationService) VerifyCode(ctx context.Context, in domain.VerifyCodeInput) (*domain.VerifyCodeResult, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, in)
	}
	return &domain.VerifyCodeResult{
		DashboardURL:            "http://localhost/dashboard?token=test",
		WelcomeEmailSent:        true,
		SessionExpiresInMinutes: 15,
	}, nil
}

// CheckSession succeeds unless overridden
func (m *MockVerificationService) CheckSession(ctx context.Context, in domain.SessionCheckInput) (*domain.SessionStatus, error) {
	if m.CheckSessionFunc != nil {
		return m.CheckSessionFunc(ctx, in)
	}
	now := time.Now()
	return &domain.SessionStatus{
		User: &domain.VerifiedUser{
			Email:                 in.Email,
			LoanApplicationNumber: in.LoanApplicationNumber,
			TotalLogins:           2,
			IsActive:              true,
			LastLoginAt:           now,
			SessionExpiresAt:      now.Add(15 * time.Minute),
		},
		LoanData:         &domain.LoanSummary{ApplicationNumber: in.LoanApplicationNumber, Status: "submitted"},
		ExpiresAt:        now.Add(15 * time.Minute),
		RemainingMinutes: 15,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.VerificationService = (*MockVerificationService)(nil)
