package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Source   SourceConfig
	Scoring  ScoringConfig
	Report   ReportConfig
	NATS     NATSConfig
	Features FeaturesConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME" envDefault:"loyalty"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// URL returns the connection string in URL form.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// Transaction source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type SourceConfig struct {
	Kind    string `env:"SOURCE_KIND" envDefault:"csv"`
	CSVPath string `env:"SOURCE_CSV_PATH" envDefault:"member_data.csv"`
}

type ScoringConfig struct {
	BaseURL string        `env:"SCORING_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	Timeout time.Duration `env:"SCORING_TIMEOUT" envDefault:"10s"`
}

// Report sink kinds.
const (
	SinkXLSX     = "xlsx"
	SinkPostgres = "postgres"
)

type ReportConfig struct {
	Sink      string `env:"REPORT_SINK" envDefault:"xlsx"`
	XLSXPath  string `env:"REPORT_XLSX_PATH" envDefault:"member_reports.xlsx"`
	XLSXSheet string `env:"REPORT_XLSX_SHEET" envDefault:"reports"`
}

type NATSConfig struct {
	URL     string `env:"NATS_URL"`
	Subject string `env:"NATS_SUBJECT" envDefault:"loyalty.offers.decided"`
}

type FeaturesConfig struct {
	Window int `env:"FEATURES_WINDOW" envDefault:"3"`
}

func Load() (*Config, error) {
	// .env files are optional; plain environment variables always win.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceCSV, SourcePostgres:
	default:
		return fmt.Errorf("unknown SOURCE_KIND %q", c.Source.Kind)
	}
	switch c.Report.Sink {
	case SinkXLSX, SinkPostgres:
	default:
		return fmt.Errorf("unknown REPORT_SINK %q", c.Report.Sink)
	}
	if c.Features.Window <= 0 {
		return fmt.Errorf("FEATURES_WINDOW must be positive, got %d", c.Features.Window)
	}
	return nil
}

// NeedsDatabase reports whether any configured component uses Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.Source.Kind == SourcePostgres || c.Report.Sink == SinkPostgres
}
