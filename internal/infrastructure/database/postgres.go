package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/infrastructure/repositories"
)

// Open creates a new database connection. The schema prefix follows the
// configured environment so test and production data never share tables.
func Open(dsn string, environment domain.Environment) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: fmt.Sprintf("portal_%s.", environment),
		},
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates the portal-owned tables. Loan application data is
// read-only here and owned by the lending system's own migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBVerificationSession{},
		&repositories.DBVerifiedUser{},
		&repositories.DBSecurityEvent{},
		&repositories.DBUserAction{},
	); err != nil {
		return fmt.Errorf("failed to migrate portal tables: %w", err)
	}
	return nil
}
