package domain

import "time"

// Environment selects the logical deployment the service operates against.
// It is configuration, never derived from request headers.
type Environment string

const (
	EnvTest       Environment = "test"
	EnvProduction Environment = "production"
)

// VerificationSession records a single outstanding one-time-code challenge
// for an (email, loan application) pair. Only the code digest is stored.
type VerificationSession struct {
	ID                    uint
	Email                 string
	LoanApplicationNumber int64
	CodeHash              string
	CodeExpiresAt         time.Time
	AttemptsCount         int
	MaxAttempts           int
	IsVerified            bool
	VerifiedAt            *time.Time
	IPAddress             string
	UserAgent             string
	CreatedAt             time.Time
}

// Expired reports whether the code window has closed at the given instant.
func (s *VerificationSession) Expired(now time.Time) bool {
	return now.After(s.CodeExpiresAt)
}

// Exhausted reports whether no verify attempts remain.
func (s *VerificationSession) Exhausted() bool {
	return s.AttemptsCount >= s.MaxAttempts
}

// VerifiedUser records that an email address has proven control for a loan
// application, enabling a short-lived dashboard session.
type VerifiedUser struct {
	ID                    uint
	Email                 string
	LoanApplicationNumber int64
	FirstVerifiedAt       time.Time
	LastLoginAt           time.Time
	TotalLogins           int64
	IsActive              bool
	CurrentSessionID      *string
	SessionExpiresAt      time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SessionValid reports whether the dashboard session is still live.
func (u *VerifiedUser) SessionValid(now time.Time) bool {
	return !now.After(u.SessionExpiresAt)
}

// LoanApplication is a read-only row from the lending system.
type LoanApplication struct {
	ApplicationNumber int64
	Email             string
	ApplicantName     string
	Status            string
	Amount            float64
	BranchCode        string
	OfficerCode       string
	SubmittedAt       time.Time
}

// LoanSummary is the consolidated read-model shown on the dashboard,
// joined over loan, branch and officer lookup data.
type LoanSummary struct {
	ApplicationNumber int64   `json:"applicationNumber"`
	ApplicantName     string  `json:"applicantName"`
	Status            string  `json:"status"`
	Amount            float64 `json:"amount"`
	BranchName        string  `json:"branchName"`
	BranchPhone       string  `json:"branchPhone"`
	OfficerName       string  `json:"officerName"`
	OfficerEmail      string  `json:"officerEmail"`
	SubmittedAt       time.Time `json:"submittedAt"`
}

// RateLimitResult is the outcome of a throttle check.
type RateLimitResult struct {
	Allowed         bool
	Remaining       int
	ResetTime       time.Time
	CurrentRequests int
	// FailedOpen is set when the counter backend was unavailable and the
	// request was allowed through as a deliberate, logged policy decision.
	FailedOpen bool
}

// SecurityEvent is an append-only audit record for activity involving
// unconfirmed or suspicious identifiers.
type SecurityEvent struct {
	ID          uint
	EventType   SecurityEventType
	Severity    Severity
	Description string
	IPAddress   string
	Email       string
	// LoanApplicationNumber is only populated for loans already validated
	// against a real record. Unconfirmed numbers go into EventData.
	LoanApplicationNumber *int64
	UserAgent             string
	EventData             string
	CreatedAt             time.Time
}

// UserAction is an audit record tied to a confirmed-existing loan application.
type UserAction struct {
	ID                    uint
	Email                 string
	LoanApplicationNumber int64
	ActionType            ActionType
	Success               bool
	IPAddress             string
	UserAgent             string
	ErrorMessage          string
	Metadata              string
	CreatedAt             time.Time
}

// RequestCodeInput carries a request-code call.
type RequestCodeInput struct {
	Email                 string
	LoanApplicationNumber int64
	IPAddress             string
	UserAgent             string
}

// RequestCodeResult is the outcome of a successful request-code call.
type RequestCodeResult struct {
	ExpiresInMinutes  int
	RemainingRequests int
}

// VerifyCodeInput carries a verify-code call.
type VerifyCodeInput struct {
	Email                 string
	LoanApplicationNumber int64
	Code                  string
	IPAddress             string
	UserAgent             string
}

// VerifyCodeResult is the outcome of a successful verification.
type VerifyCodeResult struct {
	DashboardURL            string
	WelcomeEmailSent        bool
	SessionExpiresInMinutes int
}

// SessionCheckInput carries a session-status call.
type SessionCheckInput struct {
	Email                 string
	LoanApplicationNumber int64
	IPAddress             string
	UserAgent             string
}

// SessionStatus is the outcome of a successful session-status check.
type SessionStatus struct {
	User             *VerifiedUser
	LoanData         *LoanSummary
	ExpiresAt        time.Time
	RemainingMinutes int
}
