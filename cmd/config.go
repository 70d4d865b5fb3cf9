package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"checkout/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Credentials of the courier bulk-order service. They are read from the
	// environment only and never logged.
	CourierBaseURL   string
	CourierAPIKey    string
	CourierSecretKey string
	CourierTimeout   time.Duration

	// ProxyURL, when set, routes submissions through a remote POST /api/order
	// instead of calling the courier directly.
	ProxyURL string

	KafkaHost             string
	KafkaOrderPlacedTopic string

	SessionTTL    time.Duration
	SweepSchedule string

	LogLevel  string
	LogOutput string
	LogFile   string
	LogFormat string

	SubmitRateLimit float64
	SubmitBurst     int
}

// LoadConfig reads envFile if it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		CourierBaseURL:        v.GetString("COURIER_BASE_URL"),
		CourierAPIKey:         v.GetString("COURIER_API_KEY"),
		CourierSecretKey:      v.GetString("COURIER_SECRET_KEY"),
		CourierTimeout:        v.GetDuration("COURIER_TIMEOUT"),
		ProxyURL:              v.GetString("PROXY_URL"),
		KafkaHost:             v.GetString("KAFKA_HOST"),
		KafkaOrderPlacedTopic: v.GetString("KAFKA_ORDER_PLACED_TOPIC"),
		SessionTTL:            v.GetDuration("SESSION_TTL"),
		SweepSchedule:         v.GetString("SWEEP_SCHEDULE"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		LogOutput:             v.GetString("LOG_OUTPUT"),
		LogFile:               v.GetString("LOG_FILE"),
		LogFormat:             v.GetString("LOG_FORMAT"),
		SubmitRateLimit:       v.GetFloat64("SUBMIT_RATE_LIMIT"),
		SubmitBurst:           v.GetInt("SUBMIT_BURST"),
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("COURIER_BASE_URL", "https://portal.packzy.com/api/v1")
	v.SetDefault("COURIER_TIMEOUT", "30s")
	v.SetDefault("KAFKA_ORDER_PLACED_TOPIC", "checkout.order-placed")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SWEEP_SCHEDULE", "@every 10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE", "logs/checkout.log")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SUBMIT_RATE_LIMIT", 1.0)
	v.SetDefault("SUBMIT_BURST", 5)
}

// Validate requires the courier credentials: POST /api/order is served by
// every instance, whether or not its own submissions go through PROXY_URL.
func (c Config) Validate() error {
	var keyErr, secretErr, ttlErr error
	if strings.TrimSpace(c.CourierAPIKey) == "" {
		keyErr = errs.NewValueIsRequiredError("COURIER_API_KEY")
	}
	if strings.TrimSpace(c.CourierSecretKey) == "" {
		secretErr = errs.NewValueIsRequiredError("COURIER_SECRET_KEY")
	}
	if c.SessionTTL <= 0 {
		ttlErr = errs.NewValueIsInvalidError("SESSION_TTL")
	}
	return errors.Join(keyErr, secretErr, ttlErr)
}

// DSN is the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaEnabled reports whether order events are published.
func (c Config) KafkaEnabled() bool {
	return strings.TrimSpace(c.KafkaHost) != ""
}
