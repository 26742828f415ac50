package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// setupTestDB creates an in-memory database with the portal tables
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&DBVerificationSession{},
		&DBVerifiedUser{},
		&DBSecurityEvent{},
		&DBUserAction{},
		&DBLoanApplication{},
		&DBBranch{},
		&DBLoanOfficer{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestSession(email string, loan int64) *domain.VerificationSession {
	return &domain.VerificationSession{
		Email:                 email,
		LoanApplicationNumber: loan,
		CodeHash:              "digest-1",
		CodeExpiresAt:         time.Now().Add(10 * time.Minute),
		AttemptsCount:         0,
		MaxAttempts:           3,
		IPAddress:             "1.2.3.4",
		UserAgent:             "test-agent",
	}
}

func TestVerificationSessionRepositoryImpl_CreateReplacesUnverified(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationSessionRepository(db)
	ctx := context.Background()

	first := newTestSession("a@b.com", 123456)
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := newTestSession("a@b.com", 123456)
	second.CodeHash = "digest-2"
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int64
	db.Model(&DBVerificationSession{}).
		Where("email = ? AND loan_application_number = ? AND is_verified = ?", "a@b.com", int64(123456), false).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one unverified session, got %d", count)
	}

	found, err := repo.FindUnverified(ctx, "a@b.com", 123456)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.CodeHash != "digest-2" {
		t.Errorf("expected the newer session to survive, got hash %q", found.CodeHash)
	}
}

func TestVerificationSessionRepositoryImpl_CreateKeepsOtherPairs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationSessionRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newTestSession("a@b.com", 123456)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, newTestSession("a@b.com", 777777)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindUnverified(ctx, "a@b.com", 123456); err != nil {
		t.Errorf("expected first pair's session to survive: %v", err)
	}
	if _, err := repo.FindUnverified(ctx, "a@b.com", 777777); err != nil {
		t.Errorf("expected second pair's session to survive: %v", err)
	}
}

func TestVerificationSessionRepositoryImpl_FindUnverifiedMiss(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationSessionRepository(db)

	_, err := repo.FindUnverified(context.Background(), "nobody@b.com", 1)
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestVerificationSessionRepositoryImpl_ConsumeAttempt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationSessionRepository(db)
	ctx := context.Background()

	session := newTestSession("a@b.com", 123456)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := repo.ConsumeAttempt(ctx, session.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found, err := repo.FindUnverified(ctx, "a@b.com", 123456)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.AttemptsCount != i {
			t.Errorf("expected attempts %d, got %d", i, found.AttemptsCount)
		}
	}
}

func TestVerificationSessionRepositoryImpl_MarkVerified(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVerificationSessionRepository(db)
	ctx := context.Background()

	session := newTestSession("a@b.com", 123456)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	at := time.Now()
	if err := repo.MarkVerified(ctx, session.ID, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A verified session is no longer an outstanding challenge.
	if _, err := repo.FindUnverified(ctx, "a@b.com", 123456); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after verification, got %v", err)
	}

	var dbSession DBVerificationSession
	if err := db.Where("id = ?", session.ID).First(&dbSession).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dbSession.IsVerified {
		t.Error("expected is_verified to be set")
	}
	if dbSession.VerifiedAt == nil {
		t.Error("expected verified_at to be set")
	}
}
