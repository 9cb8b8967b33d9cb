package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"spendlog/internal/core"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. SPENDLOG_SQLITE_DB_PATH.
const EnvPrefix = "SPENDLOG"

type Config struct {
	// Storage
	Backend      string `mapstructure:"backend"`
	SQLiteDBPath string `mapstructure:"sqlite_db_path"`

	// Calendar
	WeekStart string `mapstructure:"week_start"`
	Timezone  string `mapstructure:"timezone"`

	// Display
	CurrencySymbol string `mapstructure:"currency_symbol"`
	BarWidth       int    `mapstructure:"bar_width"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// ConfigFile is the file the values were read from, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

var defaults = map[string]any{
	"backend":         "sqlite",
	"sqlite_db_path":  "./data/spendlog.db",
	"week_start":      "sunday",
	"timezone":        "Local",
	"currency_symbol": "$",
	"bar_width":       24,
	"log_level":       "warn",
	"log_format":      "text",
}

// Option customizes the viper instance before values are read.
type Option func(*viper.Viper)

// WithFile reads configuration from an explicit file instead of searching
// the default locations. A missing explicit file is an error.
func WithFile(path string) Option {
	return func(v *viper.Viper) {
		if path != "" {
			v.SetConfigFile(path)
		}
	}
}

// WithOverride forces a key to value, taking precedence over file and environment.
// Empty strings are ignored so unset flags do not clobber configured values.
func WithOverride(key string, value any) Option {
	return func(v *viper.Viper) {
		if s, ok := value.(string); ok && s == "" {
			return
		}
		v.Set(key, value)
	}
}

// Load builds the configuration from defaults, an optional spendlog.yaml
// (in . or $HOME/.config/spendlog) and SPENDLOG_* environment variables.
func Load(opts ...Option) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("spendlog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "spendlog"))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, opt := range opts {
		opt(v)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	return &cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.Backend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	if c.Backend == "sqlite" && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if _, err := ParseWeekday(c.WeekStart); err != nil {
		errors = append(errors, err.Error())
	}

	if _, err := c.Location(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.BarWidth < 1 || c.BarWidth > 200 {
		errors = append(errors, fmt.Sprintf("invalid bar width %d: must be between 1 and 200", c.BarWidth))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location resolves the configured time zone. "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	switch strings.TrimSpace(c.Timezone) {
	case "", "Local", "local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Timezone)
	}
}

// Calendar returns the calendar conventions used to evaluate windows.
func (c *Config) Calendar() (core.Calendar, error) {
	start, err := ParseWeekday(c.WeekStart)
	if err != nil {
		return core.Calendar{}, err
	}
	loc, err := c.Location()
	if err != nil {
		return core.Calendar{}, fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return core.Calendar{WeekStart: start, Location: loc}, nil
}

// ParseWeekday accepts an English day name or its index (0 = sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("invalid week start %d: must be between 0 and 6", n)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid week start '%s': must be a day name or 0-6", s)
}
