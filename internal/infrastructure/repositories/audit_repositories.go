package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// DBSecurityEvent is the database model for a security event.
type DBSecurityEvent struct {
	ID                    uint   `gorm:"primaryKey"`
	EventType             string `gorm:"index;size:64"`
	Severity              string `gorm:"index;size:16"`
	Description           string `gorm:"size:1024"`
	IPAddress             string `gorm:"size:64"`
	Email                 string `gorm:"index;size:255"`
	LoanApplicationNumber *int64 `gorm:"index"`
	UserAgent             string `gorm:"size:512"`
	EventData             string
	CreatedAt             time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBSecurityEvent) TableName() string {
	return "security_events"
}

// DBUserAction is the database model for a per-loan action log entry.
type DBUserAction struct {
	ID                    uint   `gorm:"primaryKey"`
	Email                 string `gorm:"index:idx_action_pair;size:255"`
	LoanApplicationNumber int64  `gorm:"index:idx_action_pair"`
	ActionType            string `gorm:"index;size:64"`
	Success               bool
	IPAddress             string `gorm:"size:64"`
	UserAgent             string `gorm:"size:512"`
	ErrorMessage          string `gorm:"size:1024"`
	Metadata              string
	CreatedAt             time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUserAction) TableName() string {
	return "user_action_logs"
}

// SecurityEventRepositoryImpl implements domain.SecurityEventRepository
// using GORM. Rows are append-only; nothing in the portal updates or
// deletes them.
type SecurityEventRepositoryImpl struct {
	db *gorm.DB
}

// NewSecurityEventRepository creates a new security event repository
func NewSecurityEventRepository(db *gorm.DB) domain.SecurityEventRepository {
	return &SecurityEventRepositoryImpl{db: db}
}

// Append implements domain.SecurityEventRepository.
func (r *SecurityEventRepositoryImpl) Append(ctx context.Context, event *domain.SecurityEvent) error {
	dbEvent := &DBSecurityEvent{
		EventType:             string(event.EventType),
		Severity:              string(event.Severity),
		Description:           event.Description,
		IPAddress:             event.IPAddress,
		Email:                 event.Email,
		LoanApplicationNumber: event.LoanApplicationNumber,
		UserAgent:             event.UserAgent,
		EventData:             event.EventData,
	}
	if err := r.db.WithContext(ctx).Create(dbEvent).Error; err != nil {
		return err
	}
	event.ID = dbEvent.ID
	event.CreatedAt = dbEvent.CreatedAt
	return nil
}

// UserActionRepositoryImpl implements domain.UserActionRepository using
// GORM.
type UserActionRepositoryImpl struct {
	db *gorm.DB
}

// NewUserActionRepository creates a new user action repository
func NewUserActionRepository(db *gorm.DB) domain.UserActionRepository {
	return &UserActionRepositoryImpl{db: db}
}

// Append implements domain.UserActionRepository.
func (r *UserActionRepositoryImpl) Append(ctx context.Context, action *domain.UserAction) error {
	dbAction := &DBUserAction{
		Email:                 action.Email,
		LoanApplicationNumber: action.LoanApplicationNumber,
		ActionType:            string(action.ActionType),
		Success:               action.Success,
		IPAddress:             action.IPAddress,
		UserAgent:             action.UserAgent,
		ErrorMessage:          action.ErrorMessage,
		Metadata:              action.Metadata,
	}
	if err := r.db.WithContext(ctx).Create(dbAction).Error; err != nil {
		return err
	}
	action.ID = dbAction.ID
	action.CreatedAt = dbAction.CreatedAt
	return nil
}
