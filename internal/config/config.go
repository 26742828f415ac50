package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	Environment string `yaml:"environment"`
	BaseURL     string `yaml:"base_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type VerificationConfig struct {
	CodeTTL          string `yaml:"code_ttl"`
	SessionTTL       string `yaml:"session_ttl"`
	MaxAttempts      int    `yaml:"max_attempts"`
	CodeSecret       string `yaml:"code_secret"`
	RequestsPerHour  int    `yaml:"requests_per_hour"`
	AttemptsPerHour  int    `yaml:"attempts_per_hour"`
	RateLimitWindow  string `yaml:"rate_limit_window"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type LoggingConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Verification VerificationConfig `yaml:"verification"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type Config struct {
	Port        string
	GinMode     string
	Environment domain.Environment
	BaseURL     string

	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CodeTTL         time.Duration
	SessionTTL      time.Duration
	MaxAttempts     int
	CodeSecret      string
	RequestsPerHour int
	AttemptsPerHour int
	RateLimitWindow time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// values that differ per deployment (secrets, endpoints, environment).
func Load() (*Config, error) {
	return LoadFile(env("CONFIG_FILE", "config/config.yml"))
}

func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	codeTTL, err := time.ParseDuration(configFile.Verification.CodeTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid verification code TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Verification.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	rateWindow, err := time.ParseDuration(configFile.Verification.RateLimitWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	environment := domain.Environment(env("APP_ENVIRONMENT", configFile.App.Environment))
	switch environment {
	case domain.EnvTest, domain.EnvProduction:
	default:
		return nil, fmt.Errorf("unknown environment %q", environment)
	}

	secret := env("VERIFICATION_CODE_SECRET", configFile.Verification.CodeSecret)
	if secret == "" {
		return nil, fmt.Errorf("verification code secret is required")
	}

	return &Config{
		Port:        fmt.Sprintf("%d", configFile.App.Port),
		GinMode:     configFile.App.GinMode,
		Environment: environment,
		BaseURL:     env("APP_BASE_URL", configFile.App.BaseURL),

		DSN: env("DATABASE_DSN", configFile.Database.DSN),

		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       envInt("REDIS_DB", configFile.Redis.DB),

		CodeTTL:         codeTTL,
		SessionTTL:      sessionTTL,
		MaxAttempts:     configFile.Verification.MaxAttempts,
		CodeSecret:      secret,
		RequestsPerHour: configFile.Verification.RequestsPerHour,
		AttemptsPerHour: configFile.Verification.AttemptsPerHour,
		RateLimitWindow: rateWindow,

		SMTPHost:     env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:     envInt("SMTP_PORT", configFile.SMTP.Port),
		SMTPUsername: env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword: env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:     env("SMTP_FROM", configFile.SMTP.From),

		LogFile:       configFile.Logging.File,
		LogMaxSizeMB:  configFile.Logging.MaxSizeMB,
		LogMaxBackups: configFile.Logging.MaxBackups,
		LogMaxAgeDays: configFile.Logging.MaxAgeDays,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
