// Package deps contains the dependencies for the backend and admin-cli.
package deps

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/database-playground/account-eraser/internal/accountdata"
	"github.com/database-playground/account-eraser/internal/auth"
	"github.com/database-playground/account-eraser/internal/config"
	"github.com/database-playground/account-eraser/internal/docstore"
	"github.com/database-playground/account-eraser/internal/events"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
	"github.com/redis/rueidis"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Config loads the environment variables from the .env file and returns a config.Config.
func Config() (config.Config, error) {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("error creating config", "error", err)
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("error validating config", "error", err)
		return config.Config{}, err
	}

	return cfg, nil
}

func googleClientOptions(cfg config.FirebaseConfig) []option.ClientOption {
	if cfg.CredentialsFile == "" {
		// application default credentials, or the emulators when
		// FIRESTORE_EMULATOR_HOST / FIREBASE_AUTH_EMULATOR_HOST are set
		return nil
	}

	return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
}

// FirebaseApp creates a firebase.App.
func FirebaseApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID: cfg.Firebase.ProjectID,
	}, googleClientOptions(cfg.Firebase)...)
	if err != nil {
		slog.Error("error creating firebase app", "error", err)
		return nil, err
	}

	return app, nil
}

// FirestoreClient creates a firestore.Client for the configured database.
func FirestoreClient(ctx context.Context, cfg config.Config) (*firestore.Client, error) {
	client, err := firestore.NewClientWithDatabase(ctx, cfg.Firebase.ProjectID, cfg.Firebase.DatabaseID, googleClientOptions(cfg.Firebase)...)
	if err != nil {
		slog.Error("error creating firestore client", "error", err)
		return nil, err
	}

	return client, nil
}

// NewStore creates the configured docstore.Store.
//
// The returned close function releases the underlying client.
func NewStore(ctx context.Context, cfg config.Config) (docstore.Store, func() error, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		slog.Warn("using the in-memory document store; data is not persisted")
		return docstore.NewMemoryStore(), func() error { return nil }, nil
	case config.StoreBackendFirestore:
		client, err := FirestoreClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return docstore.NewFirestoreStore(client), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// RedisClient creates a rueidis.Client, or returns nil when Redis is not configured.
func RedisClient(cfg config.Config) (rueidis.Client, error) {
	if !cfg.Redis.Enabled() {
		return nil, nil
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{
			fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		},
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		slog.Error("error creating redis client", "error", err)
		return nil, err
	}

	return client, nil
}

// NewVerifier creates the configured auth.Verifier, cached in Redis when
// redisClient is not nil and revocation is not checked.
func NewVerifier(ctx context.Context, cfg config.Config, redisClient rueidis.Client) (auth.Verifier, error) {
	var verifier auth.Verifier

	switch cfg.Auth.Verifier {
	case config.VerifierHMAC:
		slog.Warn("using HMAC token verification; do not use in production")
		verifier = auth.NewHMACVerifier([]byte(cfg.Auth.HMACSecret))
	case config.VerifierFirebase:
		app, err := FirebaseApp(ctx, cfg)
		if err != nil {
			return nil, err
		}

		client, err := app.Auth(ctx)
		if err != nil {
			slog.Error("error creating firebase auth client", "error", err)
			return nil, err
		}
		verifier = auth.NewFirebaseVerifier(client, cfg.Auth.CheckRevoked)
	default:
		return nil, fmt.Errorf("unknown verifier %q", cfg.Auth.Verifier)
	}

	return withTokenCache(verifier, cfg.Auth, redisClient), nil
}

// withTokenCache wraps verifier in the Redis token cache.
//
// A cache hit skips the wrapped verifier, so revocation checks would stop
// being made on every call. With AUTH_CHECK_REVOKED the cache is not used.
func withTokenCache(verifier auth.Verifier, cfg config.AuthConfig, redisClient rueidis.Client) auth.Verifier {
	if redisClient == nil {
		return verifier
	}

	if cfg.CheckRevoked {
		slog.Info("verified token cache disabled because revocation is checked on every call")
		return verifier
	}

	return auth.NewCachedVerifier(verifier, redisClient, cfg.CacheTTL)
}

// PostHogClient creates a posthog.Client, or returns nil when PostHog is not configured.
func PostHogClient(cfg config.Config) (posthog.Client, error) {
	if !cfg.PostHog.Enabled() {
		return nil, nil
	}

	client, err := posthog.NewWithConfig(cfg.PostHog.APIKey, posthog.Config{
		Endpoint: cfg.PostHog.Host,
	})
	if err != nil {
		slog.Error("error creating posthog client", "error", err)
		return nil, err
	}

	return client, nil
}

// Store provides the docstore.Store and closes it with the application.
func Store(lifecycle fx.Lifecycle, cfg config.Config) (docstore.Store, error) {
	store, closeStore, err := NewStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.StopHook(closeStore))
	return store, nil
}

// Redis provides the optional rueidis.Client and closes it with the application.
func Redis(lifecycle fx.Lifecycle, cfg config.Config) (rueidis.Client, error) {
	client, err := RedisClient(cfg)
	if err != nil || client == nil {
		return client, err
	}

	lifecycle.Append(fx.StopHook(client.Close))
	return client, nil
}

// PostHog provides the optional posthog.Client and flushes it with the application.
func PostHog(lifecycle fx.Lifecycle, cfg config.Config) (posthog.Client, error) {
	client, err := PostHogClient(cfg)
	if err != nil || client == nil {
		return client, err
	}

	lifecycle.Append(fx.StopHook(client.Close))
	return client, nil
}

// Verifier provides the auth.Verifier.
func Verifier(cfg config.Config, redisClient rueidis.Client) (auth.Verifier, error) {
	return NewVerifier(context.Background(), cfg, redisClient)
}

// EventService creates an events.EventService.
func EventService(posthogClient posthog.Client) *events.EventService {
	return events.NewEventService(posthogClient)
}

// Deleter creates the accountdata.Deleter.
func Deleter(store docstore.Store, eventService *events.EventService) *accountdata.Deleter {
	return accountdata.NewDeleter(store, eventService)
}

var FxCommonModule = fx.Module("common",
	fx.Provide(Config),
	fx.Provide(Store),
	fx.Provide(Redis),
	fx.Provide(PostHog),
	fx.Provide(Verifier),
	fx.Provide(EventService),
	fx.Provide(Deleter),
	fx.Invoke(OTelSDK),
)
