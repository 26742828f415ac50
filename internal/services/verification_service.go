package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	codeInput    = regexp.MustCompile(`^\d{6}$`)
)

// VerificationConfig carries the orchestrator's tunables.
type VerificationConfig struct {
	Environment     domain.Environment
	BaseURL         string
	CodeTTL         time.Duration
	SessionTTL      time.Duration
	MaxAttempts     int
	RequestsPerHour int
	AttemptsPerHour int
	RateWindow      time.Duration
}

// VerificationServiceImpl implements domain.VerificationService. It is
// the composition root for the request-code / verify-code / session-check
// flows; HTTP handlers call nothing else.
type VerificationServiceImpl struct {
	sessions domain.VerificationSessionRepository
	users    domain.VerifiedUserRepository
	loans    domain.LoanApplicationRepository
	codes    domain.CodeService
	tokens   domain.TokenService
	limiter  domain.RateLimiter
	notifier domain.NotificationService
	audit    domain.AuditLog
	config   VerificationConfig
}

// NewVerificationService creates a new verification orchestrator.
func NewVerificationService(
	sessions domain.VerificationSessionRepository,
	users domain.VerifiedUserRepository,
	loans domain.LoanApplicationRepository,
	codes domain.CodeService,
	tokens domain.TokenService,
	limiter domain.RateLimiter,
	notifier domain.NotificationService,
	audit domain.AuditLog,
	config VerificationConfig,
) domain.VerificationService {
	return &VerificationServiceImpl{
		sessions: sessions,
		users:    users,
		loans:    loans,
		codes:    codes,
		tokens:   tokens,
		limiter:  limiter,
		notifier: notifier,
		audit:    audit,
		config:   config,
	}
}

// RequestCode implements domain.VerificationService.
func (s *VerificationServiceImpl) RequestCode(ctx context.Context, in domain.RequestCodeInput) (*domain.RequestCodeResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validatePair(in.Email, in.LoanApplicationNumber); err != nil {
		return nil, err
	}

	limit, err := s.checkRateLimit(ctx, in.Email, in.IPAddress, in.UserAgent, domain.ActionVerificationRequest, s.config.RequestsPerHour)
	if err != nil {
		return nil, err
	}

	if _, err := s.lookupLoan(ctx, in.Email, in.LoanApplicationNumber, in.IPAddress, in.UserAgent); err != nil {
		return nil, err
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	session := &domain.VerificationSession{
		Email:                 in.Email,
		LoanApplicationNumber: in.LoanApplicationNumber,
		CodeHash:              s.codes.Hash(code),
		CodeExpiresAt:         now.Add(s.config.CodeTTL),
		AttemptsCount:         0,
		MaxAttempts:           s.config.MaxAttempts,
		IPAddress:             in.IPAddress,
		UserAgent:             in.UserAgent,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create verification session: %w", err)
	}

	// The session is committed before delivery. A failed send reports
	// failure to the caller so the applicant is not left waiting for a
	// code that never arrives, but the session stays reusable via resend.
	if err := s.notifier.SendVerificationCode(ctx, in.Email, code, s.config.CodeTTL); err != nil {
		s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionVerificationRequest, false,
			in.IPAddress, in.UserAgent, "verification email delivery failed", map[string]interface{}{
				"code": RedactCode(code),
			})
		return nil, fmt.Errorf("%w: %v", domain.ErrEmailDelivery, err)
	}

	s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionVerificationRequest, true,
		in.IPAddress, in.UserAgent, "", map[string]interface{}{
			"code":               RedactCode(code),
			"expires_in_minutes": int(s.config.CodeTTL.Minutes()),
		})

	return &domain.RequestCodeResult{
		ExpiresInMinutes:  int(s.config.CodeTTL.Minutes()),
		RemainingRequests: limit.Remaining,
	}, nil
}

// VerifyCode implements domain.VerificationService. The decision order
// matters: missing session, then expiry, then exhausted attempts, then
// the hash comparison. Expired and compared attempts both consume the
// counter; the exhausted rejection does not push it past the maximum.
func (s *VerificationServiceImpl) VerifyCode(ctx context.Context, in domain.VerifyCodeInput) (*domain.VerifyCodeResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validatePair(in.Email, in.LoanApplicationNumber); err != nil {
		return nil, err
	}
	if !codeInput.MatchString(in.Code) {
		return nil, domain.ErrInvalidCode
	}

	if _, err := s.checkRateLimit(ctx, in.Email, in.IPAddress, in.UserAgent, domain.ActionCodeAttempt, s.config.AttemptsPerHour); err != nil {
		return nil, err
	}

	session, err := s.sessions.FindUnverified(ctx, in.Email, in.LoanApplicationNumber)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			// The pair may be forged; this goes to the security trail,
			// not the per-loan action log.
			s.audit.LogSecurityEvent(ctx, domain.EventSessionNotFound, domain.SeverityMedium,
				"code verification attempted without an active session",
				in.IPAddress, in.Email, nil, in.UserAgent, map[string]interface{}{
					"loan_application_number": in.LoanApplicationNumber,
				})
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load verification session: %w", err)
	}

	now := time.Now()

	if session.Expired(now) {
		s.consumeAttempt(ctx, session)
		s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionCodeAttempt, false,
			in.IPAddress, in.UserAgent, domain.ErrCodeExpired.Error(), map[string]interface{}{
				"attempts_count": session.AttemptsCount + 1,
			})
		return nil, domain.ErrCodeExpired
	}

	if session.Exhausted() {
		s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionCodeAttempt, false,
			in.IPAddress, in.UserAgent, domain.ErrTooManyAttempts.Error(), map[string]interface{}{
				"attempts_count": session.AttemptsCount,
			})
		return nil, domain.ErrTooManyAttempts
	}

	matched := s.codes.Verify(in.Code, session.CodeHash)
	s.consumeAttempt(ctx, session)

	if !matched {
		s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionCodeAttempt, false,
			in.IPAddress, in.UserAgent, domain.ErrCodeMismatch.Error(), map[string]interface{}{
				"code":           RedactCode(in.Code),
				"attempts_count": session.AttemptsCount + 1,
			})
		return nil, domain.ErrCodeMismatch
	}

	if err := s.sessions.MarkVerified(ctx, session.ID, now); err != nil {
		return nil, fmt.Errorf("failed to mark session verified: %w", err)
	}

	if _, err := s.lookupLoan(ctx, in.Email, in.LoanApplicationNumber, in.IPAddress, in.UserAgent); err != nil {
		return nil, err
	}

	user, err := s.users.Upsert(ctx, in.Email, in.LoanApplicationNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert verified user: %w", err)
	}

	token := s.tokens.Issue(in.Email, in.LoanApplicationNumber, now)
	dashboardURL := fmt.Sprintf("%s/dashboard?token=%s", strings.TrimRight(s.config.BaseURL, "/"), token)

	// Welcome email is best-effort; verification is already committed.
	welcomeSent := true
	if err := s.notifier.SendWelcome(ctx, in.Email, in.LoanApplicationNumber, dashboardURL); err != nil {
		welcomeSent = false
	}

	s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionCodeAttempt, true,
		in.IPAddress, in.UserAgent, "", map[string]interface{}{
			"total_logins":       user.TotalLogins,
			"welcome_email_sent": welcomeSent,
		})

	return &domain.VerifyCodeResult{
		DashboardURL:            dashboardURL,
		WelcomeEmailSent:        welcomeSent,
		SessionExpiresInMinutes: int(s.config.SessionTTL.Minutes()),
	}, nil
}

// CheckSession implements domain.VerificationService. An absent or
// expired session requires full re-verification; expiry is never renewed
// silently.
func (s *VerificationServiceImpl) CheckSession(ctx context.Context, in domain.SessionCheckInput) (*domain.SessionStatus, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validatePair(in.Email, in.LoanApplicationNumber); err != nil {
		return nil, err
	}

	user, err := s.users.Find(ctx, in.Email, in.LoanApplicationNumber)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.audit.LogSecurityEvent(ctx, domain.EventUnauthorizedAccess, domain.SeverityMedium,
				"session check for a pair with no verified user",
				in.IPAddress, in.Email, nil, in.UserAgent, map[string]interface{}{
					"loan_application_number": in.LoanApplicationNumber,
				})
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load verified user: %w", err)
	}

	now := time.Now()
	if !user.SessionValid(now) {
		s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionSessionExpired, false,
			in.IPAddress, in.UserAgent, domain.ErrSessionExpired.Error(), map[string]interface{}{
				"session_expired_at": user.SessionExpiresAt,
			})
		return nil, domain.ErrSessionExpired
	}

	sessionID := uuid.NewString()
	refreshed, err := s.users.RefreshSession(ctx, in.Email, in.LoanApplicationNumber, &sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	summary, err := s.loans.Summary(ctx, in.LoanApplicationNumber)
	if err != nil {
		if err == domain.ErrLoanNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load loan summary: %w", err)
	}

	s.audit.LogUserAction(ctx, in.Email, in.LoanApplicationNumber, domain.ActionSessionCheck, true,
		in.IPAddress, in.UserAgent, "", map[string]interface{}{
			"total_logins": refreshed.TotalLogins,
		})

	return &domain.SessionStatus{
		User:             refreshed,
		LoanData:         summary,
		ExpiresAt:        refreshed.SessionExpiresAt,
		RemainingMinutes: int(refreshed.SessionExpiresAt.Sub(now).Minutes()),
	}, nil
}

// checkRateLimit enforces the per-(ip, email) window for an action. A
// degraded counter backend fails open with a high-severity event; a
// throttled request is recorded and surfaced as a RateLimitError.
func (s *VerificationServiceImpl) checkRateLimit(ctx context.Context, email, ip, userAgent string, action domain.ActionType, max int) (*domain.RateLimitResult, error) {
	identifier := ip + "_" + email
	result, err := s.limiter.Check(ctx, identifier, domain.IdentifierIPEmail, action, max, s.config.RateWindow)
	if err != nil && result != nil && result.FailedOpen {
		s.audit.LogSecurityEvent(ctx, domain.EventRateLimiterDegraded, domain.SeverityHigh,
			"rate limit backend unavailable, request allowed through",
			ip, email, nil, userAgent, map[string]interface{}{
				"action": string(action),
				"error":  err.Error(),
			})
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	if !result.Allowed {
		s.audit.LogSecurityEvent(ctx, domain.EventRateLimitExceeded, domain.SeverityMedium,
			fmt.Sprintf("rate limit exceeded for %s", action),
			ip, email, nil, userAgent, map[string]interface{}{
				"action":           string(action),
				"current_requests": result.CurrentRequests,
			})
		return nil, &domain.RateLimitError{Action: action, ResetTime: result.ResetTime}
	}

	return result, nil
}

// lookupLoan confirms the loan exists and belongs to the requesting
// email. Both misses answer identically so responses cannot be used to
// enumerate valid application numbers.
func (s *VerificationServiceImpl) lookupLoan(ctx context.Context, email string, loanNumber int64, ip, userAgent string) (*domain.LoanApplication, error) {
	loan, err := s.loans.FindByNumber(ctx, loanNumber)
	if err != nil {
		if err == domain.ErrLoanNotFound {
			s.audit.LogSecurityEvent(ctx, domain.EventInvalidLoanNumber, domain.SeverityMedium,
				"verification attempted for an unknown loan application",
				ip, email, nil, userAgent, map[string]interface{}{
					"loan_application_number": loanNumber,
				})
			return nil, domain.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to look up loan application: %w", err)
	}

	if !strings.EqualFold(loan.Email, email) {
		s.audit.LogSecurityEvent(ctx, domain.EventUnauthorizedAccess, domain.SeverityHigh,
			"verification attempted with an email not on the application",
			ip, email, nil, userAgent, map[string]interface{}{
				"loan_application_number": loanNumber,
			})
		return nil, domain.ErrLoanNotFound
	}

	return loan, nil
}

// consumeAttempt persists the attempt counter increment. A failed write
// is logged but does not change the verification outcome.
func (s *VerificationServiceImpl) consumeAttempt(ctx context.Context, session *domain.VerificationSession) {
	if err := s.sessions.ConsumeAttempt(ctx, session.ID); err != nil {
		log.Printf("ATTEMPT_COUNTER_WRITE_FAILED: session_id=%d email=%s loan=%d error=%v",
			session.ID, session.Email, session.LoanApplicationNumber, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePair(email string, loanNumber int64) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	if loanNumber <= 0 {
		return domain.ErrInvalidLoanNumber
	}
	return nil
}
