package repositories

import (
	"context"
	"testing"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

func TestSecurityEventRepositoryImpl_Append(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSecurityEventRepository(db)

	event := &domain.SecurityEvent{
		EventType:   domain.EventInvalidLoanNumber,
		Severity:    domain.SeverityMedium,
		Description: "verification attempted for an unknown loan application",
		IPAddress:   "1.2.3.4",
		Email:       "a@b.com",
		UserAgent:   "test-agent",
		EventData:   `{"loan_application_number":999999}`,
	}
	if err := repo.Append(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID == 0 {
		t.Error("expected the row id to be populated")
	}

	var stored DBSecurityEvent
	if err := db.First(&stored, event.ID).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.LoanApplicationNumber != nil {
		t.Error("expected the unconfirmed loan number to stay out of the structured column")
	}
	if stored.EventData == "" {
		t.Error("expected event data to be stored")
	}
}

func TestUserActionRepositoryImpl_Append(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserActionRepository(db)

	action := &domain.UserAction{
		Email:                 "a@b.com",
		LoanApplicationNumber: 123456,
		ActionType:            domain.ActionCodeAttempt,
		Success:               false,
		IPAddress:             "1.2.3.4",
		ErrorMessage:          "invalid verification code",
		Metadata:              `{"code":"1*****"}`,
	}
	if err := repo.Append(context.Background(), action); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.ID == 0 {
		t.Error("expected the row id to be populated")
	}

	var count int64
	db.Model(&DBUserAction{}).Where("email = ? AND action_type = ?", "a@b.com", "code_attempt").Count(&count)
	if count != 1 {
		t.Fatalf("expected one action row, got %d", count)
	}
}
