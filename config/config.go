package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port            string
	Database        DatabaseConfig
	Auth            AuthConfig
	Stripe          StripeConfig
	CORSOrigins     []string
	Log             LogConfig
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver        string
	URL           string
	AutoMigrate   bool
	MongoURI      string
	MongoDatabase string
}

type AuthConfig struct {
	Secret       []byte
	// TokenTTL is the session token lifetime, exactly one hour unless
	// TOKEN_TTL overrides it.
	TokenTTL     time.Duration
	CookieSecure bool
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

type LogConfig struct {
	Level  string
	Format string
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env (when present) and the process environment. Every missing
// or invalid setting is reported in the returned error, not just the first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "bistro")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("MONGO_DATABASE", "bistroDb")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("PAYMENT_CURRENCY", "usd")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	var errs *multierror.Error

	cfg := &Config{
		Port: v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DB_DRIVER")),
			URL:           v.GetString("DATABASE_URL"),
			AutoMigrate:   v.GetBool("AUTO_MIGRATE"),
			MongoURI:      v.GetString("MONGO_URI"),
			MongoDatabase: v.GetString("MONGO_DATABASE"),
		},
		Auth: AuthConfig{
			Secret:       []byte(v.GetString("JWT_SECRET_KEY")),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Stripe: StripeConfig{
			SecretKey: v.GetString("STRIPE_SECRET_KEY"),
			Currency:  strings.ToLower(v.GetString("PAYMENT_CURRENCY")),
		},
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = postgresDSN(v)
	}

	if len(cfg.Auth.Secret) == 0 {
		errs = multierror.Append(errs, errors.New("JWT_SECRET_KEY is not set"))
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverMemory:
	case DriverMongo:
		if cfg.Database.MongoURI == "" {
			errs = multierror.Append(errs, errors.New("MONGO_URI is required when DB_DRIVER=mongo"))
		}
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver))
	}

	var err error
	if cfg.Auth.TokenTTL, err = parseDuration(v, "TOKEN_TTL"); err != nil {
		errs = multierror.Append(errs, err)
	}
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		errs = multierror.Append(errs, err)
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		errs = multierror.Append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.Log.Format))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func postgresDSN(v *viper.Viper) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(v.GetString("DB_USER"), v.GetString("DB_PASSWORD")),
		Host:     net.JoinHostPort(v.GetString("DB_HOST"), v.GetString("DB_PORT")),
		Path:     "/" + v.GetString("DB_NAME"),
		RawQuery: "sslmode=" + url.QueryEscape(v.GetString("DB_SSLMODE")),
	}
	return u.String()
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

// ConfigureLogging applies the level and formatter to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if c.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
