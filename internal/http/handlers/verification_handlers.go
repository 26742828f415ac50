package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/http/middleware"
)

// VerificationHandlers handles the portal's verification HTTP requests.
type VerificationHandlers struct {
	svc domain.VerificationService
}

// NewVerificationHandlers creates new verification handlers
func NewVerificationHandlers(svc domain.VerificationService) *VerificationHandlers {
	return &VerificationHandlers{svc: svc}
}

// RequestCodeRequest represents a code-issuance request
type RequestCodeRequest struct {
	Email                 string `json:"email" binding:"required,email"`
	LoanApplicationNumber int64  `json:"loanApplicationNumber" binding:"required,gt=0"`
}

// VerifyCodeRequest represents a code-verification request
type VerifyCodeRequest struct {
	Email                 string `json:"email" binding:"required,email"`
	LoanApplicationNumber int64  `json:"loanApplicationNumber" binding:"required,gt=0"`
	VerificationCode      string `json:"verificationCode" binding:"required,len=6,numeric"`
}

// SessionStatusRequest represents a session-status request
type SessionStatusRequest struct {
	Email                 string `json:"email" binding:"required,email"`
	LoanApplicationNumber int64  `json:"loanApplicationNumber" binding:"required,gt=0"`
}

// RequestCode handles POST /verification/request
func (h *VerificationHandlers) RequestCode(c *gin.Context) {
	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	result, err := h.svc.RequestCode(c.Request.Context(), domain.RequestCodeInput{
		Email:                 req.Email,
		LoanApplicationNumber: req.LoanApplicationNumber,
		IPAddress:             c.GetString(middleware.CtxClientIP),
		UserAgent:             c.GetString(middleware.CtxUserAgent),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"expiresIn":         result.ExpiresInMinutes,
		"remainingAttempts": result.RemainingRequests,
	})
}

// VerifyCode handles POST /verification/verify
func (h *VerificationHandlers) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	result, err := h.svc.VerifyCode(c.Request.Context(), domain.VerifyCodeInput{
		Email:                 req.Email,
		LoanApplicationNumber: req.LoanApplicationNumber,
		Code:                  req.VerificationCode,
		IPAddress:             c.GetString(middleware.CtxClientIP),
		UserAgent:             c.GetString(middleware.CtxUserAgent),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"dashboardUrl":     result.DashboardURL,
		"welcomeEmailSent": result.WelcomeEmailSent,
		"sessionExpiresIn": result.SessionExpiresInMinutes,
	})
}

// SessionStatus handles POST /session/status
func (h *VerificationHandlers) SessionStatus(c *gin.Context) {
	var req SessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	status, err := h.svc.CheckSession(c.Request.Context(), domain.SessionCheckInput{
		Email:                 req.Email,
		LoanApplicationNumber: req.LoanApplicationNumber,
		IPAddress:             c.GetString(middleware.CtxClientIP),
		UserAgent:             c.GetString(middleware.CtxUserAgent),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"email":                 status.User.Email,
			"loanApplicationNumber": status.User.LoanApplicationNumber,
			"sessionExpiresAt":      status.User.SessionExpiresAt,
			"totalLogins":           status.User.TotalLogins,
			"lastLoginAt":           status.User.LastLoginAt,
			"isActive":              status.User.IsActive,
		},
		"comprehensiveLoanData": status.LoanData,
		"expiresAt":             status.ExpiresAt,
		"remainingMinutes":      status.RemainingMinutes,
	})
}

// respondError maps domain errors to status codes. Messages stay terse:
// category only, nothing that distinguishes a near-miss from a miss.
func respondError(c *gin.Context, err error) {
	if rle, ok := domain.IsRateLimited(err); ok {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "too many requests",
			"resetTime": rle.ResetTime,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidLoanNumber),
		errors.Is(err, domain.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
	case errors.Is(err, domain.ErrLoanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "loan application not found"})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no verification session found"})
	case errors.Is(err, domain.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "verification code expired"})
	case errors.Is(err, domain.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid verification code"})
	case errors.Is(err, domain.ErrTooManyAttempts):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "too many verification attempts"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":                  "verification required",
			"requiresReVerification": true,
		})
	case errors.Is(err, domain.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":                  "session expired",
			"expired":                true,
			"requiresReVerification": true,
		})
	case errors.Is(err, domain.ErrEmailDelivery):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to send verification email"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}
