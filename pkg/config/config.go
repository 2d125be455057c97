package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the services read from the environment. The API,
// the worker and the sweeper each use a subset; Load populates all of it so
// wiring stays in one place.
type Config struct {
	Port string

	AccountsTable     string
	ConversionsTable  string
	LedgerTable       string
	IdempotencyTable  string
	ParkedEventsTable string
	ConnectionsTable  string

	QueueURL string

	Workers    int
	MaxRetries int32

	// BackoffBase, BackoffFactor and BackoffCap shape the delay between
	// retries of a failed conversion.
	BackoffBase   time.Duration
	BackoffFactor int32
	BackoffCap    time.Duration

	// ConversionCost and SignupGrant are in hundredths of a credit.
	ConversionCost int64
	SignupGrant    int64

	GeneratorEndpoint string
	GeneratorModel    string
	GeneratorAPIKey   string
	GeneratorTimeout  time.Duration

	WebhookSecret    string
	WebhookTolerance time.Duration

	WebSocketEndpoint string

	// StuckThreshold is how long a conversion may sit in RUNNING before the
	// sweeper re-enqueues it.
	StuckThreshold time.Duration
}

// Load reads configuration from the environment. Table names and the queue
// URL are required; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              envString("PORT", "8080"),
		AccountsTable:     os.Getenv("ACCOUNTS_TABLE_NAME"),
		ConversionsTable:  os.Getenv("CONVERSIONS_TABLE_NAME"),
		LedgerTable:       os.Getenv("LEDGER_TABLE_NAME"),
		IdempotencyTable:  os.Getenv("IDEMPOTENCY_TABLE_NAME"),
		ParkedEventsTable: os.Getenv("PARKED_EVENTS_TABLE_NAME"),
		ConnectionsTable:  os.Getenv("CONNECTIONS_TABLE_NAME"),
		QueueURL:          os.Getenv("CONVERSIONS_QUEUE_URL"),
		GeneratorEndpoint: envString("GENERATOR_ENDPOINT", "https://api.openai.com/v1/screenshot-to-code"),
		GeneratorModel:    envString("GENERATOR_MODEL", "gpt-4-vision"),
		GeneratorAPIKey:   os.Getenv("GENERATOR_API_KEY"),
		WebhookSecret:     os.Getenv("WEBHOOK_SIGNING_SECRET"),
		WebSocketEndpoint: os.Getenv("WEBSOCKET_API_ENDPOINT"),
	}

	var err error
	if cfg.Workers, err = envInt("WORKER_COUNT", 4); err != nil {
		return nil, err
	}
	maxRetries, err := envInt("MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	cfg.MaxRetries = int32(maxRetries)

	if cfg.BackoffBase, err = envDuration("RETRY_BACKOFF_BASE", 5*time.Second); err != nil {
		return nil, err
	}
	backoffFactor, err := envInt("RETRY_BACKOFF_FACTOR", 2)
	if err != nil {
		return nil, err
	}
	cfg.BackoffFactor = int32(backoffFactor)
	if cfg.BackoffCap, err = envDuration("RETRY_BACKOFF_CAP", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.ConversionCost, err = envInt64("CONVERSION_COST", 100); err != nil {
		return nil, err
	}
	if cfg.SignupGrant, err = envInt64("SIGNUP_GRANT", 300); err != nil {
		return nil, err
	}
	if cfg.GeneratorTimeout, err = envDuration("GENERATOR_TIMEOUT", 2*time.Minute); err != nil {
		return nil, err
	}
	if cfg.WebhookTolerance, err = envDuration("WEBHOOK_TOLERANCE", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StuckThreshold, err = envDuration("STUCK_THRESHOLD", 10*time.Minute); err != nil {
		return nil, err
	}

	for name, value := range map[string]string{
		"ACCOUNTS_TABLE_NAME":      cfg.AccountsTable,
		"CONVERSIONS_TABLE_NAME":   cfg.ConversionsTable,
		"LEDGER_TABLE_NAME":        cfg.LedgerTable,
		"IDEMPOTENCY_TABLE_NAME":   cfg.IdempotencyTable,
		"PARKED_EVENTS_TABLE_NAME": cfg.ParkedEventsTable,
		"CONVERSIONS_QUEUE_URL":    cfg.QueueURL,
	} {
		if value == "" {
			return nil, fmt.Errorf("environment variable %s must be set", name)
		}
	}

	return cfg, nil
}

// RequireWebhookSecret is called by binaries that mount the payment webhook.
// An empty secret would accept HMACs computed with key "", so the route must
// not come up without one. The worker and the lambdas run without it.
func (c *Config) RequireWebhookSecret() error {
	if c.WebhookSecret == "" {
		return fmt.Errorf("environment variable WEBHOOK_SIGNING_SECRET must be set")
	}
	return nil
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
