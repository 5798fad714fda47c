package redis

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type cachedResponse struct {
	Total int      `json:"total"`
	URNs  []string `json:"urns"`
}

func TestRedisWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	host, port, containerInstance := initializeRedis(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	var client *RedisClient
	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config { return Config{Host: host, Port: port} }),
		fx.Populate(&client),
	)
	app.RequireStart()
	defer app.RequireStop()

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "search:abc", []byte(`{"a":1}`), 0))

		value, err := client.Get(ctx, "search:abc")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(value))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := client.Get(ctx, "search:missing")
		require.Error(t, err)
		assert.True(t, IsNilError(err))
	})

	t.Run("TTL is applied", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "search:ttl", []byte("x"), time.Minute))

		ttl, err := client.TTL(ctx, "search:ttl")
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("JSON round trip", func(t *testing.T) {
		in := cachedResponse{Total: 2, URNs: []string{"urn:a", "urn:b"}}
		require.NoError(t, client.SetJSON(ctx, "search:json", in, time.Minute))

		var out cachedResponse
		require.NoError(t, client.GetJSON(ctx, "search:json", &out))
		assert.Equal(t, in, out)
	})

	t.Run("Delete", func(t *testing.T) {
		n, err := client.Delete(ctx, "search:abc", "search:json", "search:none")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = client.Delete(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

// Helper functions

func initializeRedis(ctx context.Context, t *testing.T) (string, int, testcontainers.Container) {
	hostPort, err := getFreePort()
	require.NoError(t, err)

	containerInstance, err := createRedisContainer(ctx, hostPort)
	require.NoError(t, err)

	port, err := containerInstance.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := containerInstance.Host(ctx)
	require.NoError(t, err)

	// Wait for Redis to be ready
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port.Port()), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 30*time.Second, 500*time.Millisecond, "Redis port not ready")

	return host, port.Int(), containerInstance
}

func createRedisContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {
	portBindings := nat.PortMap{
		"6379/tcp": []nat.PortBinding{{HostPort: hostPort}},
	}

	req := testcontainers.ContainerRequest{
		Image: "redis:7-alpine",
		ExposedPorts: []string{
			"6379/tcp",
		},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second),
			wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second),
		),
	}

	var containerInstance testcontainers.Container
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		containerInstance, lastErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if lastErr == nil {
			return containerInstance, nil
		}

		if strings.Contains(lastErr.Error(), "docker.sock") {
			time.Sleep(time.Duration(attempt+1) * time.Second)
			continue
		}

		break
	}

	return nil, fmt.Errorf("failed to start Redis container after 3 attempts: %w", lastErr)
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	addr := l.Addr().(*net.TCPAddr)
	return strconv.Itoa(addr.Port), nil
}
