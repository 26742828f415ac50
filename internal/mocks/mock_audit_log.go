package mocks

import (
	"context"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// RecordedAction captures one LogUserAction call.
type RecordedAction struct {
	Email      string
	LoanNumber int64
	Action     domain.ActionType
	Success    bool
	ErrMsg     string
	Metadata   map[string]interface{}
}

// RecordedEvent captures one LogSecurityEvent call.
type RecordedEvent struct {
	EventType  domain.SecurityEventType
	Severity   domain.Severity
	Email      string
	LoanNumber *int64
	EventData  map[string]interface{}
}

// MockAuditLog implements domain.AuditLog for testing, recording every
// call for assertions.
type MockAuditLog struct {
	Actions []RecordedAction
	Events  []RecordedEvent
}

// NewMockAuditLog creates a new MockAuditLog
func NewMockAuditLog() *MockAuditLog {
	return &MockAuditLog{}
}

// LogUserAction records the call
func (m *MockAuditLog) LogUserAction(ctx context.Context, email string, loanNumber int64, action domain.ActionType, success bool, ip, userAgent, errMsg string, metadata map[string]interface{}) {
	m.Actions = append(m.Actions, RecordedAction{
		Email:      email,
		LoanNumber: loanNumber,
		Action:     action,
		Success:    success,
		ErrMsg:     errMsg,
		Metadata:   metadata,
	})
}

// LogSecurityEvent records the call
func (m *MockAuditLog) LogSecurityEvent(ctx context.Context, eventType domain.SecurityEventType, severity domain.Severity, description, ip, email string, loanNumber *int64, userAgent string, eventData map[string]interface{}) {
	m.Events = append(m.Events, RecordedEvent{
		EventType:  eventType,
		Severity:   severity,
		Email:      email,
		LoanNumber: loanNumber,
		EventData:  eventData,
	})
}

// Compile-time interface compliance verification
var _ domain.AuditLog = (*MockAuditLog)(nil)
