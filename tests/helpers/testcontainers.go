// testcontainers.go
//
// Helper for integration tests: runs a disposable Postgres container that
// stands in for the hosted remote mirror.

package helpers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MirrorDBUser     = "postgres"
	MirrorDBPassword = "mirrorpass"
	MirrorDBName     = "folio_mirror"
)

// StartMirrorPostgres starts a Postgres container and returns the mirror URL
// (credential stripped, as it would appear in MIRROR_URL) plus a terminate
// function. The password half of the configuration is MirrorDBPassword.
func StartMirrorPostgres(t *testing.T) (string, func()) {
	ctx := context.Background()

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		t.Fatalf("Failed to create port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			Name:         "folio-mirror-" + uuid.NewString()[:8],
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_USER":     MirrorDBUser,
				"POSTGRES_PASSWORD": MirrorDBPassword,
				"POSTGRES_DB":       MirrorDBName,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Postgres container: %v", err)
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate Postgres container: %v", err)
		}
	}

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		terminate()
		t.Fatalf("Failed to get container port: %v", err)
	}

	mirrorURL := fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable",
		MirrorDBUser, host, port.Port(), MirrorDBName)

	return mirrorURL, terminate
}
