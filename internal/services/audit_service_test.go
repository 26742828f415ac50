package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

type stubUserActionRepo struct {
	appended []*domain.UserAction
	err      error
}

func (r *stubUserActionRepo) Append(ctx context.Context, action *domain.UserAction) error {
	if r.err != nil {
		return r.err
	}
	r.appended = append(r.appended, action)
	return nil
}

type stubSecurityEventRepo struct {
	appended []*domain.SecurityEvent
	err      error
}

func (r *stubSecurityEventRepo) Append(ctx context.Context, event *domain.SecurityEvent) error {
	if r.err != nil {
		return r.err
	}
	r.appended = append(r.appended, event)
	return nil
}

func TestAuditServiceImpl_LogUserAction(t *testing.T) {
	actions := &stubUserActionRepo{}
	svc := NewAuditService(actions, &stubSecurityEventRepo{})

	svc.LogUserAction(context.Background(), "a@b.com", 123456, domain.ActionCodeAttempt, false,
		"1.2.3.4", "test-agent", "invalid code", map[string]interface{}{
			"attempts_count": 2,
		})

	require.Len(t, actions.appended, 1)
	entry := actions.appended[0]
	assert.Equal(t, "a@b.com", entry.Email)
	assert.Equal(t, int64(123456), entry.LoanApplicationNumber)
	assert.Equal(t, domain.ActionCodeAttempt, entry.ActionType)
	assert.False(t, entry.Success)
	assert.Equal(t, "invalid code", entry.ErrorMessage)

	var metadata map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry.Metadata), &metadata))
	assert.Equal(t, float64(2), metadata["attempts_count"])
}

func TestAuditServiceImpl_LogUserAction_EmptyMetadata(t *testing.T) {
	actions := &stubUserActionRepo{}
	svc := NewAuditService(actions, &stubSecurityEventRepo{})

	svc.LogUserAction(context.Background(), "a@b.com", 123456, domain.ActionSessionCheck, true,
		"1.2.3.4", "test-agent", "", nil)

	require.Len(t, actions.appended, 1)
	assert.Empty(t, actions.appended[0].Metadata)
}

func TestAuditServiceImpl_LogSecurityEvent(t *testing.T) {
	events := &stubSecurityEventRepo{}
	svc := NewAuditService(&stubUserActionRepo{}, events)

	svc.LogSecurityEvent(context.Background(), domain.EventInvalidLoanNumber, domain.SeverityMedium,
		"verification attempted for an unknown loan application",
		"1.2.3.4", "a@b.com", nil, "test-agent", map[string]interface{}{
			"loan_application_number": int64(999999),
		})

	require.Len(t, events.appended, 1)
	event := events.appended[0]
	assert.Equal(t, domain.EventInvalidLoanNumber, event.EventType)
	assert.Equal(t, domain.SeverityMedium, event.Severity)
	assert.Nil(t, event.LoanApplicationNumber, "an unconfirmed loan stays out of the structured column")
	assert.Contains(t, event.EventData, "999999")
}

func TestAuditServiceImpl_RepositoryFailuresAreSwallowed(t *testing.T) {
	svc := NewAuditService(
		&stubUserActionRepo{err: errors.New("db down")},
		&stubSecurityEventRepo{err: errors.New("db down")},
	)

	assert.NotPanics(t, func() {
		svc.LogUserAction(context.Background(), "a@b.com", 123456, domain.ActionVerificationRequest, true,
			"1.2.3.4", "test-agent", "", nil)
		svc.LogSecurityEvent(context.Background(), domain.EventRateLimitExceeded, domain.SeverityMedium,
			"rate limit exceeded", "1.2.3.4", "a@b.com", nil, "test-agent", nil)
	})
}

func TestRedactCode(t *testing.T) {
	assert.Equal(t, "1*****", RedactCode("123456"))
	assert.Equal(t, "9*****", RedactCode("987654"))
	assert.Equal(t, "", RedactCode(""))
}
