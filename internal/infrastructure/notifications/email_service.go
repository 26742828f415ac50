package notifications

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// EmailServiceImpl implements domain.NotificationService over SMTP.
type EmailServiceImpl struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService creates a new SMTP email service
func NewEmailService(host string, port int, username, password, from string) domain.NotificationService {
	return &EmailServiceImpl{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendVerificationCode implements domain.NotificationService.
func (s *EmailServiceImpl) SendVerificationCode(ctx context.Context, email, code string, expiresIn time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your loan application verification code")

	body := fmt.Sprintf(`
		<h2>Verification code</h2>
		<p>Use the following code to access your loan application status:</p>
		<p style="font-size:24px;letter-spacing:4px"><strong>%s</strong></p>
		<p>This code expires in %d minutes. If you did not request it, you can ignore this email.</p>
	`, code, int(expiresIn.Minutes()))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification code email: %w", err)
	}

	return nil
}

// SendWelcome implements domain.NotificationService.
func (s *EmailServiceImpl) SendWelcome(ctx context.Context, email string, loanNumber int64, dashboardURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your loan application dashboard")

	body := fmt.Sprintf(`
		<h2>Email verified</h2>
		<p>You now have access to the status dashboard for application %d.</p>
		<p><a href="%s">Open your dashboard</a></p>
		<p>The link stays active while your session is live; checking your status keeps it fresh.</p>
	`, loanNumber, dashboardURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
