// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"

	defaultDriver       = DriverFile
	defaultStorageDir   = ".autoposter"
	defaultCartKey      = "autoposter_cart_v2"
	defaultLocale       = "ru-RU"
	defaultRecipient    = "artem_myuu"
	defaultHandoffDelay = 450 * time.Millisecond
	defaultLogLevel     = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Storage  StorageConfig
	Cart     CartConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	Log      LogConfig
}

// StorageConfig selects the backend holding the cart slot.
type StorageConfig struct {
	Driver      string
	Dir         string
	RedisAddr   string
	PostgresDSN string
}

type CartConfig struct {
	Key string
}

// CatalogConfig points at an optional YAML catalog; empty means the built-in one.
type CatalogConfig struct {
	File string
}

type CheckoutConfig struct {
	Locale       string
	Recipient    string
	HandoffDelay time.Duration
}

type LogConfig struct {
	Level string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return "config: invalid " + strings.Join(e.fields, ", ")
}

func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

type options struct {
	env       map[string]string
	systemEnv bool
}

type Option func(*options)

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over the process environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *options) {
		for k, v := range values {
			o.env[k] = v
		}
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps.
func WithoutSystemEnv() Option {
	return func(o *options) {
		o.systemEnv = false
	}
}

// Load assembles the configuration from environment variables.
func Load(opts ...Option) (Config, error) {
	o := &options{env: map[string]string{}, systemEnv: true}
	for _, opt := range opts {
		opt(o)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := o.env[key]; ok {
			return v, true
		}
		if o.systemEnv {
			return os.LookupEnv(key)
		}
		return "", false
	}

	var invalid []string

	delay, err := durationWithDefault(lookup, "AUTOPOSTER_HANDOFF_DELAY", defaultHandoffDelay)
	if err != nil || delay < 0 {
		invalid = append(invalid, "AUTOPOSTER_HANDOFF_DELAY")
	}

	cfg := Config{
		Storage: StorageConfig{
			Driver:      strings.ToLower(stringWithDefault(lookup, "AUTOPOSTER_STORAGE_DRIVER", defaultDriver)),
			Dir:         stringWithDefault(lookup, "AUTOPOSTER_STORAGE_DIR", defaultStorageDir),
			RedisAddr:   stringWithDefault(lookup, "AUTOPOSTER_REDIS_ADDR", ""),
			PostgresDSN: stringWithDefault(lookup, "AUTOPOSTER_POSTGRES_DSN", ""),
		},
		Cart: CartConfig{
			Key: stringWithDefault(lookup, "AUTOPOSTER_CART_KEY", defaultCartKey),
		},
		Catalog: CatalogConfig{
			File: stringWithDefault(lookup, "AUTOPOSTER_CATALOG_FILE", ""),
		},
		Checkout: CheckoutConfig{
			Locale:       stringWithDefault(lookup, "AUTOPOSTER_LOCALE", defaultLocale),
			Recipient:    strings.TrimPrefix(stringWithDefault(lookup, "AUTOPOSTER_RECIPIENT", defaultRecipient), "@"),
			HandoffDelay: delay,
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
	}

	invalid = append(invalid, cfg.validate()...)
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Config{}, &ValidationError{fields: invalid}
	}

	return cfg, nil
}

func (c Config) validate() []string {
	var invalid []string

	switch c.Storage.Driver {
	case DriverFile:
		if c.Storage.Dir == "" {
			invalid = append(invalid, "AUTOPOSTER_STORAGE_DIR")
		}
	case DriverMemory:
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			invalid = append(invalid, "AUTOPOSTER_REDIS_ADDR")
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			invalid = append(invalid, "AUTOPOSTER_POSTGRES_DSN")
		}
	default:
		invalid = append(invalid, "AUTOPOSTER_STORAGE_DRIVER")
	}

	if c.Cart.Key == "" {
		invalid = append(invalid, "AUTOPOSTER_CART_KEY")
	}
	if _, err := language.Parse(c.Checkout.Locale); err != nil {
		invalid = append(invalid, "AUTOPOSTER_LOCALE")
	}
	if c.Checkout.Recipient == "" {
		invalid = append(invalid, "AUTOPOSTER_RECIPIENT")
	}

	return invalid
}

func stringWithDefault(lookup func(string) (string, bool), key, def string) string {
	if v, ok := lookup(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}

func durationWithDefault(lookup func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v := stringWithDefault(lookup, key, "")
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	return d, nil
}
