//go:build e2e

package seed_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container helpers for the seeder end-to-end tests. Each test starts its own
 * Redis or DynamoDB Local container and tears it down afterwards.
 */

const (
	redisImage    = "redis:7-alpine"
	dynamodbImage = "amazon/dynamodb-local:latest"
)

// startContainer starts image and returns host:port for the exposed port.
func startContainer(t *testing.T, image, port string, waitFor wait.Strategy, cmd ...string) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{port + "/tcp"},
			Cmd:          cmd,
			WaitingFor:   waitFor,
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate %s: %v", image, err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, mappedPort.Port())
}

func startRedis(t *testing.T) string {
	t.Helper()
	return startContainer(t, redisImage, "6379",
		wait.ForLog("Ready to accept connections").WithStartupTimeout(60*time.Second))
}

func startDynamoDB(t *testing.T) string {
	t.Helper()
	addr := startContainer(t, dynamodbImage, "8000",
		wait.ForListeningPort("8000/tcp").WithStartupTimeout(60*time.Second),
		"-jar", "DynamoDBLocal.jar", "-inMemory", "-sharedDb")
	return "http://" + addr
}

// identityServer issues numbered tokens and counts how often it was asked.
func identityServer(t *testing.T, expiresIn int) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		n := calls.Add(1)
		fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":%d}`, n, expiresIn)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}
