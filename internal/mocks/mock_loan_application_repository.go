package mocks

import (
	"context"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// MockLoanApplicationRepository implements
// domain.LoanApplicationRepository for testing
type MockLoanApplicationRepository struct {
	FindByNumberFunc func(ctx context.Context, loanNumber int64) (*domain.LoanApplication, error)
	SummaryFunc      func(ctx context.Context, loanNumber int64) (*domain.LoanSummary, error)
}

// NewMockLoanApplicationRepository creates a new mock with default behaviors
func NewMockLoanApplicationRepository() *MockLoanApplicationRepository {
	return &MockLoanApplicationRepository{}
}

// FindByNumber returns a matching loan unless overridden. The default
// loan belongs to a@b.com so service tests can verify ownership checks.
func (m *MockLoanApplicationRepository) FindByNumber(ctx context.Context, loanNumber int64) (*domain.LoanApplication, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, loanNumber)
	}
	return &domain.LoanApplication{
		ApplicationNumber: loanNumber,
		Email:             "a@b.com",
		ApplicantName:     "Test Applicant",
		Status:            "submitted",
		Amount:            25000,
		BranchCode:        "AKL",
		OfficerCode:       "LO1",
		SubmittedAt:       time.Now().Add(-24 * time.Hour),
	}, nil
}

// Summary returns a read-model for the default loan unless overridden
func (m *MockLoanApplicationRepository) Summary(ctx context.Context, loanNumber int64) (*domain.LoanSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, loanNumber)
	}
	return &domain.LoanSummary{
		ApplicationNumber: loanNumber,
		ApplicantName:     "Test Applicant",
		Status:            "submitted",
		Amount:            25000,
		BranchName:        "Auckland Central",
		BranchPhone:       "0800 000 000",
		OfficerName:       "Loan Officer",
		OfficerEmail:      "officer@example.com",
		SubmittedAt:       time.Now().Add(-24 * time.Hour),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.LoanApplicationRepository = (*MockLoanApplicationRepository)(nil)
