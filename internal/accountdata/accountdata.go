// Package accountdata deletes a signed-in user's own data.
package accountdata

import (
	"github.com/database-playground/account-eraser/internal/callable"
	"github.com/database-playground/account-eraser/internal/docstore"
	"github.com/database-playground/account-eraser/internal/events"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("eraser.accountdata")

// UsersCollection is the collection holding one document per user.
const UsersCollection = "users"

// ErrUnauthenticated is returned when the call carries no verified identity.
var ErrUnauthenticated = callable.NewError(callable.CodeUnauthenticated, "You must be signed in.")

// Result is the acknowledgment returned by a successful deletion.
type Result struct {
	OK bool `json:"ok"`
}

// Deleter is the AccountDataDeleter.
type Deleter struct {
	store  docstore.Store
	events *events.EventService
}

// NewDeleter creates a Deleter.
//
// eventService may be nil.
func NewDeleter(store docstore.Store, eventService *events.EventService) *Deleter {
	return &Deleter{
		store:  store,
		events: eventService,
	}
}

// UserRecordPath returns the path of the user's root document.
func UserRecordPath(uid string) string {
	return docstore.PathJoin(UsersCollection, uid)
}
