package mocks

import (
	"fmt"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueFunc func(email string, loanNumber int64, now time.Time) string
	CheckFunc func(email string, loanNumber int64, token string) bool
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue returns a deterministic token unless overridden
func (m *MockTokenService) Issue(email string, loanNumber int64, now time.Time) string {
	if m.IssueFunc != nil {
		return m.IssueFunc(email, loanNumber, now)
	}
	return fmt.Sprintf("token-%s-%d.%d", email, loanNumber, now.Unix())
}

// Check accepts tokens issued by the default Issue unless overridden
func (m *MockTokenService) Check(email string, loanNumber int64, token string) bool {
	if m.CheckFunc != nil {
		return m.CheckFunc(email, loanNumber, token)
	}
	return token != ""
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
