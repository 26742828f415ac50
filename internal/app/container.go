package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/config"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/infrastructure/auth"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/infrastructure/database"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/infrastructure/notifications"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/infrastructure/ratelimit"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/infrastructure/repositories"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	SessionRepo domain.VerificationSessionRepository
	UserRepo    domain.VerifiedUserRepository
	LoanRepo    domain.LoanApplicationRepository
	ActionRepo  domain.UserActionRepository
	EventRepo   domain.SecurityEventRepository

	CodeSvc         domain.CodeService
	TokenSvc        domain.TokenService
	RateLimiter     domain.RateLimiter
	NotificationSvc domain.NotificationService
	AuditSvc        domain.AuditLog
	VerificationSvc domain.VerificationService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initInfrastructure(); err != nil {
		return nil, err
	}
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initInfrastructure() error {
	db, err := database.Open(c.Config.DSN, c.Config.Environment)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db

	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.SessionRepo = repositories.NewVerificationSessionRepository(c.DB)
	c.UserRepo = repositories.NewVerifiedUserRepository(c.DB, c.Config.SessionTTL)
	c.LoanRepo = repositories.NewLoanApplicationRepository(c.DB)
	c.ActionRepo = repositories.NewUserActionRepository(c.DB)
	c.EventRepo = repositories.NewSecurityEventRepository(c.DB)
}

func (c *Container) initServices() {
	c.CodeSvc = auth.NewCodeService(c.Config.CodeSecret)
	c.TokenSvc = auth.NewTokenService()
	c.RateLimiter = ratelimit.NewRedisLimiter(c.RedisClient)
	c.NotificationSvc = notifications.NewEmailService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)
	c.AuditSvc = services.NewAuditService(c.ActionRepo, c.EventRepo)

	c.VerificationSvc = services.NewVerificationService(
		c.SessionRepo,
		c.UserRepo,
		c.LoanRepo,
		c.CodeSvc,
		c.TokenSvc,
		c.RateLimiter,
		c.NotificationSvc,
		c.AuditSvc,
		services.VerificationConfig{
			Environment:     c.Config.Environment,
			BaseURL:         c.Config.BaseURL,
			CodeTTL:         c.Config.CodeTTL,
			SessionTTL:      c.Config.SessionTTL,
			MaxAttempts:     c.Config.MaxAttempts,
			RequestsPerHour: c.Config.RequestsPerHour,
			AttemptsPerHour: c.Config.AttemptsPerHour,
			RateWindow:      c.Config.RateLimitWindow,
		},
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
