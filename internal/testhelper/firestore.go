package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	firestoreEmulatorImage = "gcr.io/google.com/cloudsdktool/google-cloud-cli:emulators"
	firestoreEmulatorPort  = "8080/tcp"
)

// NewFirestoreEmulator starts the Firestore emulator and returns its host:port.
func NewFirestoreEmulator(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        firestoreEmulatorImage,
		ExposedPorts: []string{firestoreEmulatorPort},
		Cmd: []string{
			"gcloud", "emulators", "firestore", "start",
			"--host-port=0.0.0.0:8080",
		},
		WaitingFor: wait.ForLog("Dev App Server is now running").WithStartupTimeout(2 * time.Minute),
	}
	emulatorC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("failed to create Firestore emulator container: %v", err)
	}

	t.Cleanup(func() {
		_ = emulatorC.Terminate(context.Background())
	})

	host, err := emulatorC.Host(ctx)
	if err != nil {
		t.Skipf("failed to get Firestore emulator host: %v", err)
	}
	port, err := emulatorC.MappedPort(ctx, firestoreEmulatorPort)
	if err != nil {
		t.Skipf("failed to get Firestore emulator port: %v", err)
	}

	return fmt.Sprintf("%s:%s", host, port.Port())
}

// NewFirestoreClient connects a Firestore client to a fresh emulator.
func NewFirestoreClient(t *testing.T) *firestore.Client {
	t.Helper()

	t.Setenv("FIRESTORE_EMULATOR_HOST", NewFirestoreEmulator(t))

	client, err := firestore.NewClient(context.Background(), "eraser-test")
	if err != nil {
		t.Skipf("failed to create Firestore client: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
