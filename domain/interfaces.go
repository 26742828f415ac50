package domain

import (
	"context"
	"time"
)

// CodeService generates and digests one-time verification codes.
type CodeService interface {
	// Generate returns a 6-digit numeric code sampled uniformly from
	// 100000-999999.
	Generate() (string, error)
	// Hash returns the deterministic keyed digest of a code. The raw code
	// is never persisted or logged.
	Hash(code string) string
	// Verify fails closed: false on malformed code or empty digest.
	Verify(code, digest string) bool
}

// TokenService issues the dashboard access token embedded in outbound
// links. The token is an opaque display value; no route currently gates
// on Check.
type TokenService interface {
	Issue(email string, loanNumber int64, now time.Time) string
	Check(email string, loanNumber int64, token string) bool
}

// RateLimiter tracks request counts per (identifier, action) inside a
// rolling window. On backend failure implementations fail open and mark
// the result accordingly, returning the cause alongside.
type RateLimiter interface {
	Check(ctx context.Context, identifier string, identifierType IdentifierType, action ActionType, maxRequests int, window time.Duration) (*RateLimitResult, error)
}

// VerificationSessionRepository persists one-time-code challenges.
type VerificationSessionRepository interface {
	// Create removes any prior unverified session for the pair, then
	// inserts the new one.
	Create(ctx context.Context, session *VerificationSession) error
	FindUnverified(ctx context.Context, email string, loanNumber int64) (*VerificationSession, error)
	// ConsumeAttempt increments attempts_count atomically in the store.
	ConsumeAttempt(ctx context.Context, sessionID uint) error
	MarkVerified(ctx context.Context, sessionID uint, at time.Time) error
}

// VerifiedUserRepository persists dashboard session state.
type VerifiedUserRepository interface {
	// Upsert creates the row on first verification (total_logins=1,
	// first_verified_at set once) or refreshes an existing one.
	Upsert(ctx context.Context, email string, loanNumber int64) (*VerifiedUser, error)
	// Find returns only active rows; a miss is ErrUserNotFound.
	Find(ctx context.Context, email string, loanNumber int64) (*VerifiedUser, error)
	// RefreshSession requires an existing row, increments total_logins by
	// exactly one and re-anchors session_expires_at to now.
	RefreshSession(ctx context.Context, email string, loanNumber int64, sessionID *string) (*VerifiedUser, error)
	// Deactivate soft-disables the row; rows are never hard-deleted.
	Deactivate(ctx context.Context, email string, loanNumber int64) error
}

// LoanApplicationRepository reads lending-system data. Pass-through
// queries only.
type LoanApplicationRepository interface {
	FindByNumber(ctx context.Context, loanNumber int64) (*LoanApplication, error)
	Summary(ctx context.Context, loanNumber int64) (*LoanSummary, error)
}

// SecurityEventRepository appends to the security audit trail.
type SecurityEventRepository interface {
	Append(ctx context.Context, event *SecurityEvent) error
}

// UserActionRepository appends to the per-loan action log.
type UserActionRepository interface {
	Append(ctx context.Context, action *UserAction) error
}

// AuditLog is a fire-and-forget side channel. Implementations absorb
// their own failures; neither call ever returns an error to the caller.
type AuditLog interface {
	LogUserAction(ctx context.Context, email string, loanNumber int64, action ActionType, success bool, ip, userAgent, errMsg string, metadata map[string]interface{})
	// LogSecurityEvent is for identifiers that could not be confirmed
	// legitimate. An unconfirmed loan number must be passed inside
	// eventData, never as the structured loanNumber.
	LogSecurityEvent(ctx context.Context, eventType SecurityEventType, severity Severity, description, ip, email string, loanNumber *int64, userAgent string, eventData map[string]interface{})
}

// NotificationService delivers portal email.
type NotificationService interface {
	SendVerificationCode(ctx context.Context, email, code string, expiresIn time.Duration) error
	SendWelcome(ctx context.Context, email string, loanNumber int64, dashboardURL string) error
}

// VerificationService is the orchestrator external callers invoke.
type VerificationService interface {
	RequestCode(ctx context.Context, in RequestCodeInput) (*RequestCodeResult, error)
	VerifyCode(ctx context.Context, in VerifyCodeInput) (*VerifyCodeResult, error)
	CheckSession(ctx context.Context, in SessionCheckInput) (*SessionStatus, error)
}
