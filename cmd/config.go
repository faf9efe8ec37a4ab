package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    string
	LogLevel    string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BackendBaseURL string
	BackendTimeout time.Duration
	ActionTimeout  time.Duration

	OTPMaxAttempts   int
	OTPLockoutWindow time.Duration

	LedgerRetention         time.Duration
	LedgerRetentionSchedule string

	JWTSecret string

	KafkaHost              string
	KafkaOrderChangedTopic string

	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
}

var configDefaults = map[string]any{
	"HTTP_PORT":                 "8080",
	"LOG_LEVEL":                 "info",
	"ENVIRONMENT":               "development",
	"DB_PORT":                   "5432",
	"DB_SSLMODE":                "disable",
	"BACKEND_TIMEOUT":           "15s",
	"ACTION_TIMEOUT":            "30s",
	"OTP_MAX_ATTEMPTS":          5,
	"OTP_LOCKOUT_WINDOW":        "15m",
	"LEDGER_RETENTION":          "72h",
	"LEDGER_RETENTION_SCHEDULE": "0 0 * * * *",
	"KAFKA_ORDER_CHANGED_TOPIC": "order.changed",
}

// LoadConfig reads envFile when it exists and then the process environment,
// which takes precedence.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	cfg := Config{
		HTTPPort:    v.GetString("HTTP_PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Environment: v.GetString("ENVIRONMENT"),

		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		BackendBaseURL: v.GetString("BACKEND_BASE_URL"),
		BackendTimeout: v.GetDuration("BACKEND_TIMEOUT"),
		ActionTimeout:  v.GetDuration("ACTION_TIMEOUT"),

		OTPMaxAttempts:   v.GetInt("OTP_MAX_ATTEMPTS"),
		OTPLockoutWindow: v.GetDuration("OTP_LOCKOUT_WINDOW"),

		LedgerRetention:         v.GetDuration("LEDGER_RETENTION"),
		LedgerRetentionSchedule: v.GetString("LEDGER_RETENTION_SCHEDULE"),

		JWTSecret: v.GetString("JWT_SECRET"),

		KafkaHost:              v.GetString("KAFKA_HOST"),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),

		S3Bucket:          v.GetString("S3_BUCKET"),
		S3Region:          v.GetString("S3_REGION"),
		S3AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:        v.GetString("S3_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or invalid setting at once.
func (c Config) Validate() error {
	var problems []error
	required := []struct {
		key   string
		value string
	}{
		{"DB_HOST", c.DBHost},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"BACKEND_BASE_URL", c.BackendBaseURL},
		{"JWT_SECRET", c.JWTSecret},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(r.key))
		}
	}

	positive := []struct {
		key   string
		value time.Duration
	}{
		{"BACKEND_TIMEOUT", c.BackendTimeout},
		{"ACTION_TIMEOUT", c.ActionTimeout},
		{"OTP_LOCKOUT_WINDOW", c.OTPLockoutWindow},
		{"LEDGER_RETENTION", c.LedgerRetention},
	}
	for _, p := range positive {
		if p.value <= 0 {
			problems = append(problems, errs.NewValueIsInvalidError(p.key))
		}
	}

	if c.OTPMaxAttempts <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("OTP_MAX_ATTEMPTS"))
	}
	if c.S3Bucket != "" && c.S3Region == "" {
		problems = append(problems, errs.NewValueIsRequiredError("S3_REGION"))
	}

	return errors.Join(problems...)
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty disables event publishing.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
