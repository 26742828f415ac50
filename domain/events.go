package domain

// ActionType identifies an auditable action against a confirmed loan.
type ActionType string

const (
	ActionVerificationRequest ActionType = "verification_request"
	ActionCodeAttempt         ActionType = "code_attempt"
	ActionLoginAttempt        ActionType = "login_attempt"
	ActionSessionCheck        ActionType = "session_check"
	ActionSessionExpired      ActionType = "session_expired"
)

// IdentifierType classifies the subject a rate-limit window is keyed on.
type IdentifierType string

const (
	IdentifierIP      IdentifierType = "ip"
	IdentifierEmail   IdentifierType = "email"
	IdentifierIPEmail IdentifierType = "ip_email"
)

// SecurityEventType identifies an auditable event involving identifiers
// that could not be confirmed legitimate.
type SecurityEventType string

const (
	EventInvalidLoanNumber   SecurityEventType = "invalid_loan_number"
	EventSessionNotFound     SecurityEventType = "verification_session_not_found"
	EventRateLimitExceeded   SecurityEventType = "rate_limit_exceeded"
	EventRateLimiterDegraded SecurityEventType = "rate_limiter_degraded"
	EventUnauthorizedAccess  SecurityEventType = "unauthorized_access"
)

// Severity grades a security event.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)
