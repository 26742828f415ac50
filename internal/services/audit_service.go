package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// AuditServiceImpl implements domain.AuditLog. Both calls are
// best-effort: repository failures land in the process log and never
// reach the caller, so audit writes cannot fail a verification flow.
type AuditServiceImpl struct {
	actions domain.UserActionRepository
	events  domain.SecurityEventRepository
}

// NewAuditService creates a new audit log service
func NewAuditService(actions domain.UserActionRepository, events domain.SecurityEventRepository) domain.AuditLog {
	return &AuditServiceImpl{actions: actions, events: events}
}

// LogUserAction implements domain.AuditLog. Only call this for loans
// already confirmed to exist.
func (s *AuditServiceImpl) LogUserAction(ctx context.Context, email string, loanNumber int64, action domain.ActionType, success bool, ip, userAgent, errMsg string, metadata map[string]interface{}) {
	entry := &domain.UserAction{
		Email:                 email,
		LoanApplicationNumber: loanNumber,
		ActionType:            action,
		Success:               success,
		IPAddress:             ip,
		UserAgent:             userAgent,
		ErrorMessage:          errMsg,
		Metadata:              encodeMetadata(metadata),
	}
	if err := s.actions.Append(ctx, entry); err != nil {
		log.Printf("AUDIT_ACTION_WRITE_FAILED: action=%s email=%s loan=%d error=%v", action, email, loanNumber, err)
	}
}

// LogSecurityEvent implements domain.AuditLog. Pass loanNumber only when
// the loan has been validated against a real record; unconfirmed numbers
// belong in eventData.
func (s *AuditServiceImpl) LogSecurityEvent(ctx context.Context, eventType domain.SecurityEventType, severity domain.Severity, description, ip, email string, loanNumber *int64, userAgent string, eventData map[string]interface{}) {
	event := &domain.SecurityEvent{
		EventType:             eventType,
		Severity:              severity,
		Description:           description,
		IPAddress:             ip,
		Email:                 email,
		LoanApplicationNumber: loanNumber,
		UserAgent:             userAgent,
		EventData:             encodeMetadata(eventData),
	}
	if err := s.events.Append(ctx, event); err != nil {
		log.Printf("AUDIT_EVENT_WRITE_FAILED: event=%s severity=%s error=%v", eventType, severity, err)
	}
}

func encodeMetadata(m map[string]interface{}) string {
	if len(m) == 0 {
		return ""
	}
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("AUDIT_METADATA_ENCODE_FAILED: error=%v", err)
		return ""
	}
	return string(data)
}

// RedactCode masks a verification code for audit metadata. Raw codes
// never appear in the audit trail.
func RedactCode(code string) string {
	if code == "" {
		return ""
	}
	return code[:1] + "*****"
}
