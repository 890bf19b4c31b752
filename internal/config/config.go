package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type LogConfig struct {
	Level  string
	Format string // json, text or tint
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
}

type FeeConfig struct {
	CleaningRate float64
	ServiceRate  float64
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Config holds everything the server reads from the environment.
type Config struct {
	AppName        string
	Port           string
	Log            LogConfig
	FluentBit      FluentBitConfig
	Fees           FeeConfig
	CatalogPath    string
	SearchTimeout  time.Duration
	RequestTimeout time.Duration
	RateLimit      RateLimitConfig
	AllowedOrigins []string
}

// Load reads the configuration from the environment. Values from the given
// .env files (default ".env") fill in variables the runtime did not set; a
// missing file is ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var p parser
	cfg := &Config{
		AppName: getEnvAsString("APP_NAME", "staybook"),
		Port:    getEnvAsString("PORT", "8080"),
		Log: LogConfig{
			Level:  strings.ToLower(getEnvAsString("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnvAsString("LOG_FORMAT", "json")),
		},
		FluentBit: FluentBitConfig{
			Enabled: p.asBool("FLUENTBIT_ENABLED", false),
			Host:    getEnvAsString("FLUENTBIT_HOST", ""),
			Port:    p.asInt("FLUENTBIT_PORT", 24224),
		},
		Fees: FeeConfig{
			CleaningRate: p.asFloat("CLEANING_FEE_RATE", 0.15),
			ServiceRate:  p.asFloat("SERVICE_FEE_RATE", 0.10),
		},
		CatalogPath:    getEnvAsString("CATALOG_PATH", ""),
		SearchTimeout:  p.asDuration("SEARCH_TIMEOUT", 2*time.Second),
		RequestTimeout: p.asDuration("REQUEST_TIMEOUT", 10*time.Second),
		RateLimit: RateLimitConfig{
			RPS:   p.asFloat("RATE_LIMIT_RPS", 5),
			Burst: p.asInt("RATE_LIMIT_BURST", 10),
		},
		AllowedOrigins: splitList(getEnvAsString("CORS_ALLOWED_ORIGINS", "*")),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that parsing alone cannot catch.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text", "tint":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unknown format %q", c.Log.Format))
	}
	if c.Fees.CleaningRate < 0 || c.Fees.CleaningRate > 1 {
		errs = append(errs, fmt.Errorf("CLEANING_FEE_RATE: %v is outside [0,1]", c.Fees.CleaningRate))
	}
	if c.Fees.ServiceRate < 0 || c.Fees.ServiceRate > 1 {
		errs = append(errs, fmt.Errorf("SERVICE_FEE_RATE: %v is outside [0,1]", c.Fees.ServiceRate))
	}
	if c.SearchTimeout <= 0 {
		errs = append(errs, errors.New("SEARCH_TIMEOUT must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.SearchTimeout > 0 && c.RequestTimeout > 0 && c.SearchTimeout >= c.RequestTimeout {
		errs = append(errs, errors.New("SEARCH_TIMEOUT must be shorter than REQUEST_TIMEOUT"))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.FluentBit.Enabled && c.FluentBit.Host == "" {
		errs = append(errs, errors.New("FLUENTBIT_HOST is required when FLUENTBIT_ENABLED is true"))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnvAsString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser keeps the first conversion error so Load can report it.
type parser struct {
	err error
}

func (p *parser) fail(key, raw string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: cannot parse %q: %w", key, raw, err)
	}
}

func (p *parser) asInt(key string, defaultValue int) int {
	raw := getEnvAsString(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return v
}

func (p *parser) asFloat(key string, defaultValue float64) float64 {
	raw := getEnvAsString(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return v
}

func (p *parser) asBool(key string, defaultValue bool) bool {
	raw := getEnvAsString(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return v
}

func (p *parser) asDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnvAsString(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return defaultValue
	}
	return v
}
