package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Store backends.
const (
	StoreBackendFirestore = "firestore"
	StoreBackendMemory    = "memory"
)

// Verifier kinds.
const (
	VerifierFirebase = "firebase"
	VerifierHMAC     = "hmac"
)

// OTel exporters.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPHTTP = "otlphttp"
	ExporterOTLPGRPC = "otlpgrpc"
)

type Config struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	TrustProxies   []string `env:"TRUST_PROXIES"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	Store    StoreConfig    `envPrefix:"STORE_"`
	Firebase FirebaseConfig `envPrefix:"FIREBASE_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	PostHog  PostHogConfig  `envPrefix:"POSTHOG_"`
	OTel     OTelConfig     `envPrefix:"OTEL_"`
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Port <= 0 || c.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	for _, validate := range []func() error{
		c.Store.Validate,
		c.Auth.Validate,
		c.Redis.Validate,
		c.OTel.Validate,
	} {
		if err := validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if c.NeedsFirebase() {
		if err := c.Firebase.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// NeedsFirebase reports whether any configured component talks to Google.
func (c Config) NeedsFirebase() bool {
	return c.Store.Backend == StoreBackendFirestore || c.Auth.Verifier == VerifierFirebase
}

type StoreConfig struct {
	Backend string `env:"BACKEND" envDefault:"firestore"`
}

func (c StoreConfig) Validate() error {
	if !slices.Contains([]string{StoreBackendFirestore, StoreBackendMemory}, c.Backend) {
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendFirestore, StoreBackendMemory, c.Backend)
	}

	return nil
}

type FirebaseConfig struct {
	ProjectID       string `env:"PROJECT_ID"`
	DatabaseID      string `env:"DATABASE_ID" envDefault:"(default)"`
	CredentialsFile string `env:"CREDENTIALS_FILE"`
}

func (c FirebaseConfig) Validate() error {
	if c.ProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.DatabaseID == "" {
		return errors.New("FIREBASE_DATABASE_ID must not be empty")
	}

	return nil
}

type AuthConfig struct {
	Verifier     string        `env:"VERIFIER" envDefault:"firebase"`
	CheckRevoked bool          `env:"CHECK_REVOKED" envDefault:"false"`
	HMACSecret   string        `env:"HMAC_SECRET"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

func (c AuthConfig) Validate() error {
	switch c.Verifier {
	case VerifierFirebase:
	case VerifierHMAC:
		if len(c.HMACSecret) < 32 {
			return errors.New("AUTH_HMAC_SECRET must be at least 32 bytes")
		}
	default:
		return fmt.Errorf("AUTH_VERIFIER must be %q or %q, got %q", VerifierFirebase, VerifierHMAC, c.Verifier)
	}

	if c.CacheTTL < 0 {
		return errors.New("AUTH_CACHE_TTL must not be negative")
	}

	return nil
}

// RedisConfig configures the optional verified-token cache.
//
// The cache is disabled when Host is empty.
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Validate() error {
	if c.Enabled() && c.Port == 0 {
		return errors.New("REDIS_PORT is required when REDIS_HOST is set")
	}

	return nil
}

// PostHogConfig configures the optional analytics client.
type PostHogConfig struct {
	APIKey string `env:"API_KEY"`
	Host   string `env:"HOST" envDefault:"https://us.i.posthog.com"`
}

func (c PostHogConfig) Enabled() bool {
	return c.APIKey != ""
}

type OTelConfig struct {
	Exporter    string `env:"EXPORTER" envDefault:"none"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"account-eraser"`
}

func (c OTelConfig) Validate() error {
	if !slices.Contains([]string{ExporterNone, ExporterStdout, ExporterOTLPHTTP, ExporterOTLPGRPC}, c.Exporter) {
		return fmt.Errorf("OTEL_EXPORTER must be one of none, stdout, otlphttp, otlpgrpc, got %q", c.Exporter)
	}

	return nil
}
