package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/database-playground/account-eraser/internal/deps"
	"go.uber.org/fx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := fx.New(
		deps.FxCommonModule,
		fx.Provide(
			AnnotateMiddleware(SlogMiddleware),
			AnnotateMiddleware(TracingMiddleware),
			AnnotateMiddleware(CorsMiddleware),
			AnnotateMiddleware(MachineMiddleware),
			AnnotateService(AccountDataService),
			AnnotateService(HealthService),
			fx.Annotate(
				GinEngine,
				fx.ParamTags(`group:"services"`, `group:"middlewares"`),
			),
		),
		fx.Invoke(GinLifecycle),
	)

	if err := app.Start(ctx); err != nil {
		slog.Error("error starting server", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Gracefully shutting down server (Ctrl+C again to force stop)...")
	cancel()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("error stopping server", "error", err)
	}

	slog.Info("Server stopped")
}
