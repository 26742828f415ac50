package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// VerificationSessionRepositoryImpl implements
// domain.VerificationSessionRepository using GORM.
type VerificationSessionRepositoryImpl struct {
	db *gorm.DB
}

// DBVerificationSession is the database model for a verification session.
type DBVerificationSession struct {
	ID                    uint   `gorm:"primaryKey"`
	Email                 string `gorm:"index:idx_verification_pair;size:255"`
	LoanApplicationNumber int64  `gorm:"index:idx_verification_pair"`
	CodeHash              string `gorm:"size:64"`
	CodeExpiresAt         time.Time
	AttemptsCount         int
	MaxAttempts           int
	IsVerified            bool `gorm:"index"`
	VerifiedAt            *time.Time
	IPAddress             string    `gorm:"size:64"`
	UserAgent             string    `gorm:"size:512"`
	CreatedAt             time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBVerificationSession) TableName() string {
	return "verification_sessions"
}

// NewVerificationSessionRepository creates a new verification session repository
func NewVerificationSessionRepository(db *gorm.DB) domain.VerificationSessionRepository {
	return &VerificationSessionRepositoryImpl{db: db}
}

// Create implements domain.VerificationSessionRepository. Prior
// unverified sessions for the pair are removed first so at most one
// outstanding challenge exists. A failed delete is logged and the insert
// still attempted; the stale row loses any later race on FindUnverified
// ordering, which is an accepted risk.
func (r *VerificationSessionRepositoryImpl) Create(ctx context.Context, session *domain.VerificationSession) error {
	err := r.db.WithContext(ctx).
		Where("email = ? AND loan_application_number = ? AND is_verified = ?", session.Email, session.LoanApplicationNumber, false).
		Delete(&DBVerificationSession{}).Error
	if err != nil {
		log.Printf("VERIFICATION_SESSION_CLEANUP_FAILED: email=%s loan=%d error=%v", session.Email, session.LoanApplicationNumber, err)
	}

	dbSession := r.domainToDB(session)
	if err := r.db.WithContext(ctx).Create(dbSession).Error; err != nil {
		return err
	}
	session.ID = dbSession.ID
	session.CreatedAt = dbSession.CreatedAt
	return nil
}

// FindUnverified implements domain.VerificationSessionRepository.
func (r *VerificationSessionRepositoryImpl) FindUnverified(ctx context.Context, email string, loanNumber int64) (*domain.VerificationSession, error) {
	var dbSession DBVerificationSession
	err := r.db.WithContext(ctx).
		Where("email = ? AND loan_application_number = ? AND is_verified = ?", email, loanNumber, false).
		Order("created_at DESC").
		First(&dbSession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSession), nil
}

// ConsumeAttempt implements domain.VerificationSessionRepository. The
// increment runs in the store so concurrent verify calls never lose an
// attempt.
func (r *VerificationSessionRepositoryImpl) ConsumeAttempt(ctx context.Context, sessionID uint) error {
	return r.db.WithContext(ctx).
		Model(&DBVerificationSession{}).
		Where("id = ?", sessionID).
		UpdateColumn("attempts_count", gorm.Expr("attempts_count + ?", 1)).Error
}

// MarkVerified implements domain.VerificationSessionRepository.
func (r *VerificationSessionRepositoryImpl) MarkVerified(ctx context.Context, sessionID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&DBVerificationSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"is_verified": true,
			"verified_at": at,
		}).Error
}

func (r *VerificationSessionRepositoryImpl) domainToDB(session *domain.VerificationSession) *DBVerificationSession {
	return &DBVerificationSession{
		ID:                    session.ID,
		Email:                 session.Email,
		LoanApplicationNumber: session.LoanApplicationNumber,
		CodeHash:              session.CodeHash,
		CodeExpiresAt:         session.CodeExpiresAt,
		AttemptsCount:         session.AttemptsCount,
		MaxAttempts:           session.MaxAttempts,
		IsVerified:            session.IsVerified,
		VerifiedAt:            session.VerifiedAt,
		IPAddress:             session.IPAddress,
		UserAgent:             session.UserAgent,
	}
}

func (r *VerificationSessionRepositoryImpl) dbToDomain(dbSession *DBVerificationSession) *domain.VerificationSession {
	return &domain.VerificationSession{
		ID:                    dbSession.ID,
		Email:                 dbSession.Email,
		LoanApplicationNumber: dbSession.LoanApplicationNumber,
		CodeHash:              dbSession.CodeHash,
		CodeExpiresAt:         dbSession.CodeExpiresAt,
		AttemptsCount:         dbSession.AttemptsCount,
		MaxAttempts:           dbSession.MaxAttempts,
		IsVerified:            dbSession.IsVerified,
		VerifiedAt:            dbSession.VerifiedAt,
		IPAddress:             dbSession.IPAddress,
		UserAgent:             dbSession.UserAgent,
		CreatedAt:             dbSession.CreatedAt,
	}
}
