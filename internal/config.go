package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"http_server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Currency   CurrencyConfig   `mapstructure:"currency"`
	Categories CategoriesConfig `mapstructure:"categories"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LedgerConfig pins the single owner identity this deployment serves.
// Operations still thread the owner explicitly, so multi-tenant support
// is an additive change rather than a rework.
type LedgerConfig struct {
	OwnerID string `mapstructure:"owner_id"`
}

type CurrencyConfig struct {
	BaseCurrency string        `mapstructure:"base_currency"`
	RateAPIURL   string        `mapstructure:"rate_api_url"`
	RateTimeout  time.Duration `mapstructure:"rate_timeout"`
}

type CategoriesConfig struct {
	TaxonomyPath string `mapstructure:"taxonomy_path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}
	if err := c.Ledger.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("ledger config: %v", err))
	}
	if err := c.Currency.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("currency config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *LedgerConfig) Validate() error {
	if _, err := uuid.Parse(c.OwnerID); err != nil {
		return fmt.Errorf("owner_id must be a valid UUID: %w", err)
	}
	return nil
}

func (c *LedgerConfig) Owner() uuid.UUID {
	return uuid.MustParse(c.OwnerID)
}

func (c *CurrencyConfig) Validate() error {
	if c.BaseCurrency == "" {
		return errors.New("base_currency is required")
	}
	if c.RateAPIURL == "" {
		return errors.New("rate_api_url is required")
	}
	if _, err := url.Parse(c.RateAPIURL); err != nil {
		return fmt.Errorf("invalid rate_api_url: %w", err)
	}
	return nil
}
