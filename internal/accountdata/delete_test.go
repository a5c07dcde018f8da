package accountdata_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/database-playground/account-eraser/internal/accountdata"
	"github.com/database-playground/account-eraser/internal/auth"
	"github.com/database-playground/account-eraser/internal/callable"
	"github.com/database-playground/account-eraser/internal/docstore"
	"github.com/database-playground/account-eraser/internal/events"
	"github.com/database-playground/account-eraser/internal/workers"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// recordingStore records every path it is asked to delete.
type recordingStore struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (s *recordingStore) RecursiveDelete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return s.err
}

var _ docstore.Store = (*recordingStore)(nil)

type recordingHandler struct {
	mu     sync.Mutex
	events []events.Event
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event events.Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func signedIn(uid string) callable.CallContext {
	return callable.CallContext{
		Auth:    &auth.AuthData{UID: uid, Provider: "password"},
		Machine: "test",
	}
}

func seedUser(t *testing.T, store *docstore.MemoryStore, uid string) {
	t.Helper()

	for _, path := range []string{
		"users/" + uid,
		"users/" + uid + "/notes/n1",
		"users/" + uid + "/notes/n1/revisions/r1",
		"users/" + uid + "/settings/prefs",
	} {
		require.NoError(t, store.Set(path, map[string]any{"owner": uid}))
	}
}

func TestInvoke_Unauthenticated(t *testing.T) {
	tests := []struct {
		name string
		call callable.CallContext
	}{
		{name: "no auth", call: callable.CallContext{}},
		{name: "empty uid", call: callable.CallContext{Auth: &auth.AuthData{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			deleter := accountdata.NewDeleter(store, nil)

			result, err := deleter.Invoke(context.Background(), tt.call, nil)
			require.Error(t, err)
			require.Equal(t, accountdata.Result{}, result)

			var callableErr *callable.Error
			require.ErrorAs(t, err, &callableErr)
			require.Equal(t, callable.CodeUnauthenticated, callableErr.Code)
			require.Equal(t, "You must be signed in.", callableErr.Message)

			require.Empty(t, store.paths, "no deletion may be attempted without identity")
		})
	}
}

func TestInvoke_UnauthenticatedLeavesStoreUntouched(t *testing.T) {
	store := docstore.NewMemoryStore()
	seedUser(t, store, "abc123")
	before := store.Paths()

	_, err := accountdata.NewDeleter(store, nil).Invoke(context.Background(), callable.CallContext{}, nil)
	require.ErrorIs(t, err, accountdata.ErrUnauthenticated)

	require.Equal(t, before, store.Paths())
	require.Empty(t, store.Deletes())
}

func TestInvoke_PathDerivation(t *testing.T) {
	for _, uid := range []string{"abc123", "U", "firebase-uid-0001", "uid with spaces"} {
		t.Run(uid, func(t *testing.T) {
			store := &recordingStore{}
			deleter := accountdata.NewDeleter(store, nil)

			_, err := deleter.Invoke(context.Background(), signedIn(uid), nil)
			require.NoError(t, err)
			require.Equal(t, []string{"users/" + uid}, store.paths)
		})
	}
}

func TestInvoke_Success(t *testing.T) {
	store := docstore.NewMemoryStore()
	seedUser(t, store, "abc123")
	seedUser(t, store, "other")

	result, err := accountdata.NewDeleter(store, nil).Invoke(context.Background(), signedIn("abc123"), []byte(`{"ignored":true}`))
	require.NoError(t, err)
	require.Equal(t, accountdata.Result{OK: true}, result)

	for _, path := range store.Paths() {
		require.NotContains(t, path, "users/abc123")
	}
	require.True(t, store.Exists("users/other"))
	require.True(t, store.Exists("users/other/notes/n1/revisions/r1"))
}

func TestInvoke_ErrorPropagation(t *testing.T) {
	storeErr := status.Error(codes.PermissionDenied, "missing or insufficient permissions")
	store := &recordingStore{err: storeErr}

	result, err := accountdata.NewDeleter(store, nil).Invoke(context.Background(), signedIn("abc123"), nil)
	require.ErrorIs(t, err, storeErr)
	require.False(t, result.OK)

	callableErr := callable.FromError(err)
	require.Equal(t, callable.CodePermissionDenied, callableErr.Code)
	require.Equal(t, "missing or insufficient permissions", callableErr.Message)
}

func TestInvoke_PlainStoreErrorIsInternal(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := &recordingStore{err: storeErr}

	_, err := accountdata.NewDeleter(store, nil).Invoke(context.Background(), signedIn("abc123"), nil)
	require.ErrorIs(t, err, storeErr)
	require.Equal(t, callable.CodeInternal, callable.FromError(err).Code)
}

func TestInvoke_Idempotent(t *testing.T) {
	store := docstore.NewMemoryStore()
	seedUser(t, store, "abc123")
	deleter := accountdata.NewDeleter(store, nil)

	first, err := deleter.Invoke(context.Background(), signedIn("abc123"), nil)
	require.NoError(t, err)
	require.True(t, first.OK)

	second, err := deleter.Invoke(context.Background(), signedIn("abc123"), nil)
	require.NoError(t, err)
	require.True(t, second.OK)

	require.Equal(t, []string{"users/abc123", "users/abc123"}, store.Deletes())
	require.Empty(t, store.Paths())
}

func TestInvoke_TriggersEventOnSuccessOnly(t *testing.T) {
	worker := workers.NewWorker()
	handler := &recordingHandler{}
	eventService := events.NewEventServiceWithHandlers(worker, handler)

	store := &recordingStore{}
	deleter := accountdata.NewDeleter(store, eventService)

	_, err := deleter.Invoke(context.Background(), signedIn("abc123"), nil)
	require.NoError(t, err)

	store.err = errors.New("boom")
	_, err = deleter.Invoke(context.Background(), signedIn("def456"), nil)
	require.Error(t, err)

	_, err = deleter.Invoke(context.Background(), callable.CallContext{}, nil)
	require.Error(t, err)

	worker.Wait()

	require.Len(t, handler.events, 1)
	require.Equal(t, events.EventTypeAccountDataDeleted, handler.events[0].Type)
	require.Equal(t, "abc123", handler.events[0].UserID)
	require.Equal(t, "test", handler.events[0].Payload["machine"])
}

func TestUserRecordPath(t *testing.T) {
	require.Equal(t, "users/abc123", accountdata.UserRecordPath("abc123"))
}
