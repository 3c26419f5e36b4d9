package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTP        HTTP
	Engine      Engine
	Ratings     RatingsAPI
	Store       Store
	TelegramBot TelegramBot
	Kafka       Kafka
	Audit       Audit
}

type HTTP struct {
	Addr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
	CORSOrigins    []string      `envconfig:"CORS_ORIGINS"`
	MCPPath        string        `envconfig:"MCP_PATH" default:"/mcp"`
}

type Engine struct {
	DefaultSimulations int           `envconfig:"DEFAULT_SIMULATIONS" default:"1000"`
	MaxSimulations     int           `envconfig:"MAX_SIMULATIONS" default:"10000"`
	MinSimulations     int           `envconfig:"MIN_SIMULATIONS" default:"100"`
	TrialBudget        time.Duration `envconfig:"TRIAL_BUDGET" default:"20s"`
	Workers            int           `envconfig:"SIM_WORKERS" default:"0"`
	BustThreshold      float64       `envconfig:"BUST_THRESHOLD" default:"40"`
	SuccessThreshold   float64       `envconfig:"SUCCESS_THRESHOLD" default:"70"`
}

// RatingsAPI points at an external ratings service. When BaseURL is empty
// the bundled ratings are used.
type RatingsAPI struct {
	BaseURL  string        `envconfig:"RATINGS_BASE_URL"`
	APIKey   string        `envconfig:"RATINGS_API_KEY"`
	CacheTTL time.Duration `envconfig:"RATINGS_CACHE_TTL" default:"24h"`
}

type Store struct {
	SQLitePath string `envconfig:"STORE_SQLITE_PATH"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Kafka struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"gm.simulations"`
}

type Audit struct {
	Enabled  bool   `envconfig:"AUDIT_ENABLED" default:"true"`
	Hour     uint   `envconfig:"AUDIT_HOUR" default:"6"`
	Minute   uint   `envconfig:"AUDIT_MINUTE" default:"0"`
	Location string `envconfig:"AUDIT_LOCATION" default:"America/Chicago"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	e := c.Engine
	if e.MaxSimulations <= 0 {
		return fmt.Errorf("MAX_SIMULATIONS must be positive, got %d", e.MaxSimulations)
	}
	if e.MinSimulations <= 0 || e.MinSimulations > e.MaxSimulations {
		return fmt.Errorf("MIN_SIMULATIONS must be in [1,%d], got %d", e.MaxSimulations, e.MinSimulations)
	}
	if e.DefaultSimulations <= 0 || e.DefaultSimulations > e.MaxSimulations {
		return fmt.Errorf("DEFAULT_SIMULATIONS must be in [1,%d], got %d", e.MaxSimulations, e.DefaultSimulations)
	}
	if e.BustThreshold > e.SuccessThreshold {
		return fmt.Errorf("BUST_THRESHOLD %.1f exceeds SUCCESS_THRESHOLD %.1f", e.BustThreshold, e.SuccessThreshold)
	}
	if e.Workers < 0 {
		return fmt.Errorf("SIM_WORKERS must not be negative")
	}
	if c.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.Audit.Hour > 23 || c.Audit.Minute > 59 {
		return fmt.Errorf("audit time %02d:%02d is invalid", c.Audit.Hour, c.Audit.Minute)
	}
	if c.TelegramBot.Token != "" && c.TelegramBot.ChatID == 0 {
		return fmt.Errorf("CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}
