package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// VerifiedUserRepositoryImpl implements domain.VerifiedUserRepository
// using GORM.
type VerifiedUserRepositoryImpl struct {
	db         *gorm.DB
	sessionTTL time.Duration
}

// DBVerifiedUser is the database model for a verified user.
type DBVerifiedUser struct {
	ID                    uint   `gorm:"primaryKey"`
	Email                 string `gorm:"uniqueIndex:idx_verified_pair;size:255"`
	LoanApplicationNumber int64  `gorm:"uniqueIndex:idx_verified_pair"`
	FirstVerifiedAt       time.Time
	LastLoginAt           time.Time
	TotalLogins           int64
	IsActive              bool    `gorm:"index"`
	CurrentSessionID      *string `gorm:"size:64"`
	SessionExpiresAt      time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName returns the table name for GORM
func (DBVerifiedUser) TableName() string {
	return "verified_users"
}

// NewVerifiedUserRepository creates a new verified user repository
func NewVerifiedUserRepository(db *gorm.DB, sessionTTL time.Duration) domain.VerifiedUserRepository {
	return &VerifiedUserRepositoryImpl{db: db, sessionTTL: sessionTTL}
}

// Upsert implements domain.VerifiedUserRepository. first_verified_at is
// set once on creation and retained afterwards; every call refreshes
// last_login_at, reactivates the row and re-anchors the session expiry.
func (r *VerifiedUserRepositoryImpl) Upsert(ctx context.Context, email string, loanNumber int64) (*domain.VerifiedUser, error) {
	now := time.Now()

	var dbUser DBVerifiedUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND loan_application_number = ?", email, loanNumber).
		First(&dbUser).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		dbUser = DBVerifiedUser{
			Email:                 email,
			LoanApplicationNumber: loanNumber,
			FirstVerifiedAt:       now,
			LastLoginAt:           now,
			TotalLogins:           1,
			IsActive:              true,
			SessionExpiresAt:      now.Add(r.sessionTTL),
		}
		if err := r.db.WithContext(ctx).Create(&dbUser).Error; err != nil {
			return nil, err
		}
		return r.dbToDomain(&dbUser), nil
	}

	updates := map[string]interface{}{
		"last_login_at":      now,
		"is_active":          true,
		"session_expires_at": now.Add(r.sessionTTL),
	}
	if err := r.db.WithContext(ctx).Model(&dbUser).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.reload(ctx, email, loanNumber)
}

// Find implements domain.VerifiedUserRepository. Only active rows are
// returned; absence is domain.ErrUserNotFound, not an infrastructure
// error.
func (r *VerifiedUserRepositoryImpl) Find(ctx context.Context, email string, loanNumber int64) (*domain.VerifiedUser, error) {
	var dbUser DBVerifiedUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND loan_application_number = ? AND is_active = ?", email, loanNumber, true).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// RefreshSession implements domain.VerifiedUserRepository. total_logins
// is incremented in the store, never read-modify-written from here, and
// the new expiry is anchored to the call time rather than the previous
// expiry.
func (r *VerifiedUserRepositoryImpl) RefreshSession(ctx context.Context, email string, loanNumber int64, sessionID *string) (*domain.VerifiedUser, error) {
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&DBVerifiedUser{}).
		Where("email = ? AND loan_application_number = ? AND is_active = ?", email, loanNumber, true).
		Updates(map[string]interface{}{
			"total_logins":       gorm.Expr("total_logins + ?", 1),
			"last_login_at":      now,
			"session_expires_at": now.Add(r.sessionTTL),
			"current_session_id": sessionID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.reload(ctx, email, loanNumber)
}

// Deactivate implements domain.VerifiedUserRepository. Soft-deactivation
// is the only teardown; rows are never hard-deleted.
func (r *VerifiedUserRepositoryImpl) Deactivate(ctx context.Context, email string, loanNumber int64) error {
	result := r.db.WithContext(ctx).
		Model(&DBVerifiedUser{}).
		Where("email = ? AND loan_application_number = ?", email, loanNumber).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *VerifiedUserRepositoryImpl) reload(ctx context.Context, email string, loanNumber int64) (*domain.VerifiedUser, error) {
	var dbUser DBVerifiedUser
	err := r.db.WithContext(ctx).
		Where("email = ? AND loan_application_number = ?", email, loanNumber).
		First(&dbUser).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

func (r *VerifiedUserRepositoryImpl) dbToDomain(dbUser *DBVerifiedUser) *domain.VerifiedUser {
	return &domain.VerifiedUser{
		ID:                    dbUser.ID,
		Email:                 dbUser.Email,
		LoanApplicationNumber: dbUser.LoanApplicationNumber,
		FirstVerifiedAt:       dbUser.FirstVerifiedAt,
		LastLoginAt:           dbUser.LastLoginAt,
		TotalLogins:           dbUser.TotalLogins,
		IsActive:              dbUser.IsActive,
		CurrentSessionID:      dbUser.CurrentSessionID,
		SessionExpiresAt:      dbUser.SessionExpiresAt,
		CreatedAt:             dbUser.CreatedAt,
		UpdatedAt:             dbUser.UpdatedAt,
	}
}
