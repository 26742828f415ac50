package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// LoanApplicationRepositoryImpl implements
// domain.LoanApplicationRepository. All queries are read-only
// pass-throughs; the lending system owns these tables.
type LoanApplicationRepositoryImpl struct {
	db *gorm.DB
}

// DBLoanApplication is the read-only database model for a loan application.
type DBLoanApplication struct {
	ApplicationNumber int64  `gorm:"primaryKey;autoIncrement:false"`
	Email             string `gorm:"index;size:255"`
	ApplicantName     string `gorm:"size:255"`
	Status            string `gorm:"size:64"`
	Amount            float64
	BranchCode        string `gorm:"size:16"`
	OfficerCode       string `gorm:"size:16"`
	SubmittedAt       time.Time
}

// TableName returns the table name for GORM
func (DBLoanApplication) TableName() string {
	return "loan_applications"
}

// DBBranch is the read-only lookup model for a branch.
type DBBranch struct {
	Code  string `gorm:"primaryKey;size:16"`
	Name  string `gorm:"size:255"`
	Phone string `gorm:"size:32"`
}

// TableName returns the table name for GORM
func (DBBranch) TableName() string {
	return "branches"
}

// DBLoanOfficer is the read-only lookup model for a loan officer.
type DBLoanOfficer struct {
	Code  string `gorm:"primaryKey;size:16"`
	Name  string `gorm:"size:255"`
	Email string `gorm:"size:255"`
}

// TableName returns the table name for GORM
func (DBLoanOfficer) TableName() string {
	return "loan_officers"
}

// NewLoanApplicationRepository creates a new loan application repository
func NewLoanApplicationRepository(db *gorm.DB) domain.LoanApplicationRepository {
	return &LoanApplicationRepositoryImpl{db: db}
}

// FindByNumber implements domain.LoanApplicationRepository.
func (r *LoanApplicationRepositoryImpl) FindByNumber(ctx context.Context, loanNumber int64) (*domain.LoanApplication, error) {
	var dbLoan DBLoanApplication
	err := r.db.WithContext(ctx).
		Where("application_number = ?", loanNumber).
		First(&dbLoan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return &domain.LoanApplication{
		ApplicationNumber: dbLoan.ApplicationNumber,
		Email:             dbLoan.Email,
		ApplicantName:     dbLoan.ApplicantName,
		Status:            dbLoan.Status,
		Amount:            dbLoan.Amount,
		BranchCode:        dbLoan.BranchCode,
		OfficerCode:       dbLoan.OfficerCode,
		SubmittedAt:       dbLoan.SubmittedAt,
	}, nil
}

// Summary implements domain.LoanApplicationRepository. Branch and
// officer lookups are tolerated as misses; the dashboard renders what it
// has.
func (r *LoanApplicationRepositoryImpl) Summary(ctx context.Context, loanNumber int64) (*domain.LoanSummary, error) {
	loan, err := r.FindByNumber(ctx, loanNumber)
	if err != nil {
		return nil, err
	}

	summary := &domain.LoanSummary{
		ApplicationNumber: loan.ApplicationNumber,
		ApplicantName:     loan.ApplicantName,
		Status:            loan.Status,
		Amount:            loan.Amount,
		SubmittedAt:       loan.SubmittedAt,
	}

	var branch DBBranch
	if err := r.db.WithContext(ctx).Where("code = ?", loan.BranchCode).First(&branch).Error; err == nil {
		summary.BranchName = branch.Name
		summary.BranchPhone = branch.Phone
	}

	var officer DBLoanOfficer
	if err := r.db.WithContext(ctx).Where("code = ?", loan.OfficerCode).First(&officer).Error; err == nil {
		summary.OfficerName = officer.Name
		summary.OfficerEmail = officer.Email
	}

	return summary, nil
}
