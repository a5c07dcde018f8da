package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/database-playground/account-eraser/httpapi"
	accountdataservice "github.com/database-playground/account-eraser/httpapi/accountdata"
	healthservice "github.com/database-playground/account-eraser/httpapi/health"
	"github.com/database-playground/account-eraser/internal/accountdata"
	"github.com/database-playground/account-eraser/internal/auth"
	"github.com/database-playground/account-eraser/internal/config"
	"github.com/database-playground/account-eraser/internal/httputils"
	"github.com/database-playground/account-eraser/internal/workers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/fx"

	_ "github.com/database-playground/account-eraser/internal/deps/logger"
)

// SlogMiddleware logs every request with the default slog logger.
func SlogMiddleware() Middleware {
	return Middleware{
		Handler: sloggin.NewWithConfig(slog.Default(), sloggin.Config{
			WithRequestID: true,
			Filters: []sloggin.Filter{
				sloggin.IgnorePath("/healthz", "/metrics"),
			},
		}),
	}
}

// TracingMiddleware starts a span for every request.
func TracingMiddleware(cfg config.Config) Middleware {
	return Middleware{
		Handler: otelgin.Middleware(cfg.OTel.ServiceName),
	}
}

// MachineMiddleware creates a machine middleware that can be injected into gin.
func MachineMiddleware() Middleware {
	return Middleware{
		Handler: httputils.MachineMiddleware(),
	}
}

// CorsMiddleware creates a cors middleware that can be injected into gin.
//
// Browsers call the function directly, so every origin is allowed unless
// ALLOWED_ORIGINS narrows it down.
func CorsMiddleware(cfg config.Config) Middleware {
	corsConfig := cors.Config{
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "User-Agent", "Referer"},
		MaxAge:       time.Hour,
	}

	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}

	return Middleware{
		Handler: cors.New(corsConfig),
	}
}

// AccountDataService creates the account data service.
func AccountDataService(verifier auth.Verifier, deleter *accountdata.Deleter) httpapi.Service {
	return accountdataservice.NewAccountDataService(verifier, deleter)
}

// HealthService creates the health service.
func HealthService() httpapi.Service {
	return healthservice.NewHealthService()
}

// GinEngine creates a gin engine.
func GinEngine(services []httpapi.Service, middlewares []Middleware, cfg config.Config) *gin.Engine {
	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.TrustProxies); err != nil {
		slog.Error("error setting trusted proxies", "error", err)
	}

	prom := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Namespace("eraser"),
		ginprom.Subsystem("http"),
		ginprom.Path("/metrics"),
	)
	engine.Use(prom.Instrument())

	for _, middleware := range middlewares {
		engine.Use(middleware.Handler)
	}

	engine.Use(gin.Recovery())

	httpapi.Register(engine, services...)

	return engine
}

// GinLifecycle starts the gin engine.
//
// On stop it drains in-flight requests, then waits for the background workers
// so that queued analytics events are handed to their clients.
func GinLifecycle(lifecycle fx.Lifecycle, engine *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				slog.Info("gin engine starting", "address", srv.Addr)

				if err := srv.ListenAndServe(); err != nil {
					if errors.Is(err, http.ErrServerClosed) {
						return
					}

					slog.Error("error running gin engine", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("error shutting down gin engine", "error", err)
			}

			workers.Global.Wait()
			return nil
		},
	})
}

// Middleware is a middleware that can be injected into gin.
type Middleware struct {
	Handler gin.HandlerFunc
}

// AnnotateMiddleware annotates a middleware function to be injected into gin.
func AnnotateMiddleware(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"middlewares"`),
	)
}

// AnnotateService annotates a service function to be injected into gin.
func AnnotateService(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"services"`),
	)
}
