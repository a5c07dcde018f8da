package accountdata

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/database-playground/account-eraser/internal/callable"
	"github.com/database-playground/account-eraser/internal/events"
	"github.com/database-playground/account-eraser/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Invoke deletes the caller's user record and everything nested beneath it.
//
// The request payload is ignored. A call without identity fails with
// ErrUnauthenticated before anything is deleted.
func (d *Deleter) Invoke(ctx context.Context, call callable.CallContext, _ json.RawMessage) (Result, error) {
	if call.Auth == nil || call.Auth.UID == "" {
		metrics.RecordDeletion(metrics.OutcomeUnauthenticated)
		return Result{}, ErrUnauthenticated
	}

	if err := d.DeleteUserData(ctx, call.Auth.UID); err != nil {
		return Result{}, err
	}

	if d.events != nil {
		d.events.TriggerEvent(ctx, events.Event{
			Type:   events.EventTypeAccountDataDeleted,
			UserID: call.Auth.UID,
			Payload: map[string]any{
				"machine":  call.Machine,
				"provider": call.Auth.Provider,
			},
		})
	}

	return Result{OK: true}, nil
}

// DeleteUserData recursively deletes users/<uid>.
//
// Store errors are returned unchanged.
func (d *Deleter) DeleteUserData(ctx context.Context, uid string) error {
	path := UserRecordPath(uid)

	ctx, span := tracer.Start(ctx, "DeleteAccountData",
		trace.WithAttributes(
			attribute.String("user.id", uid),
			attribute.String("docstore.path", path),
		))
	defer span.End()

	start := time.Now()
	err := d.store.RecursiveDelete(ctx, path)
	metrics.ObserveDeletionDuration(time.Since(start).Seconds())
	if err != nil {
		metrics.RecordDeletion(metrics.OutcomeFailed)
		span.SetStatus(otelcodes.Error, "Failed to delete account data")
		span.RecordError(err)
		slog.Error("error deleting account data", "error", err, "user_id", uid)
		return err
	}

	metrics.RecordDeletion(metrics.OutcomeSuccess)
	span.SetStatus(otelcodes.Ok, "Account data deleted successfully")
	slog.Info("account data deleted", "user_id", uid)
	return nil
}
