package mocks

import (
	"context"
	"time"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendVerificationCodeFunc func(ctx context.Context, email, code string, expiresIn time.Duration) error
	SendWelcomeFunc          func(ctx context.Context, email string, loanNumber int64, dashboardURL string) error

	SentCodes    []string
	SentWelcomes []string
}

// NewMockNotificationService creates a new mock with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendVerificationCode records the code unless overridden
func (m *MockNotificationService) SendVerificationCode(ctx context.Context, email, code string, expiresIn time.Duration) error {
	if m.SendVerificationCodeFunc != nil {
		return m.SendVerificationCodeFunc(ctx, email, code, expiresIn)
	}
	m.SentCodes = append(m.SentCodes, code)
	return nil
}

// SendWelcome records the recipient unless overridden
func (m *MockNotificationService) SendWelcome(ctx context.Context, email string, loanNumber int64, dashboardURL string) error {
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(ctx, email, loanNumber, dashboardURL)
	}
	m.SentWelcomes = append(m.SentWelcomes, email)
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
