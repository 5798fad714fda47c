package qdrant

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"os"
	"strconv"
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

// QdrantContainer represents a Qdrant container for testing
type QdrantContainer struct {
	testcontainers.Container
	Host string
	Port string
}

// setupQdrantContainer sets up a Qdrant container for testing
func setupQdrantContainer(ctx context.Context) (*QdrantContainer, error) {
	// Get a random free port
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"6334/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	// Define container request
	req := testcontainers.ContainerRequest{
		Image: "qdrant/qdrant:v1.12.4",
		Env: map[string]string{
			"QDRANT__SERVICE__GRPC_PORT": "6334",
		},
		ExposedPorts: []string{"6334/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	// Start container
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	// Get host
	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	// Get mapped port
	mappedPort, err := container.MappedPort(ctx, "6334")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	portStr = mappedPort.Port()

	// Wait for Qdrant to be fully ready
	fmt.Printf("Waiting for Qdrant to be ready on %s:%s...\n", host, portStr)
	err = waitForQdrantReady(host, portStr, 30*time.Second)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("qdrant container not ready: %w", err)
	}
	fmt.Printf("Qdrant is ready on %s:%s\n", host, portStr)

	return &QdrantContainer{
		Container: container,
		Host:      host,
		Port:      portStr,
	}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer func(addr net.Listener) {
		err := addr.Close()
		if err != nil {
			fmt.Printf("Failed to close listener: %v", err)
		}
	}(addr)

	return addr.Addr().(*net.TCPAddr).Port, nil
}

// waitForQdrantReady attempts to connect to Qdrant until it's ready or times out
func waitForQdrantReady(host, port string, timeout time.Duration) error {
	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for Qdrant to be ready after %s", timeout)
		}

		// Try to establish a TCP connection
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), 2*time.Second)
		if err == nil {
			_ = conn.Close()
			// Additional wait to ensure the service is fully ready
			time.Sleep(2 * time.Second)
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}
}

// TestMain sets up the testing environment
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func generateRandomVector(dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = rand.Float32()
	}
	return v
}

// TestQdrantWithFXModule tests the qdrant package using the existing FX module
func TestQdrantWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using Qdrant on %s:%s", containerInstance.Host, containerInstance.Port)
	portNum, err := strconv.Atoi(containerInstance.Port)
	require.NoError(t, err)

	var client *QdrantClient
	app := fxtest.New(t,
		fx.Provide(func() *Config {
			return &Config{
				Endpoint:           containerInstance.Host,
				Port:               portNum,
				DenseCollection:    "products-dense",
				SparseCollection:   "products-sparse",
				DenseDimension:     8,
				CheckCompatibility: false,
				Timeout:            10 * time.Second,
			}
		}),
		FXModule,
		fx.Populate(&client),
	)
	require.NoError(t, app.Start(ctx))
	require.NotNil(t, client)

	t.Run("EnsureCollections is idempotent", func(t *testing.T) {
		require.NoError(t, client.EnsureCollections(ctx))

		dense, err := client.GetCollection(ctx, "products-dense")
		require.NoError(t, err)
		assert.Equal(t, 8, dense.VectorSize)
		assert.Equal(t, "Cosine", dense.Distance)

		_, err = client.GetCollection(ctx, "products-sparse")
		require.NoError(t, err)
	})

	t.Run("dense upsert, search and delete", func(t *testing.T) {
		points := make([]DensePoint, 5)
		for i := range points {
			points[i] = DensePoint{
				URN:     fmt.Sprintf("urn:cmp:sku:%d", i),
				Vector:  generateRandomVector(8),
				Payload: map[string]any{"brand": "Acme", "price": float64(i)},
			}
		}
		require.NoError(t, client.UpsertDense(ctx, points))
		// Upserting again overwrites by URN.
		require.NoError(t, client.UpsertDense(ctx, points))

		hits, err := client.SearchDense(ctx, points[2].Vector, 3)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "urn:cmp:sku:2", hits[0].URN)
		assert.Equal(t, "Acme", hits[0].Payload["brand"])

		info, err := client.GetCollection(ctx, "products-dense")
		require.NoError(t, err)
		assert.Equal(t, uint64(5), info.Points)

		require.NoError(t, client.Delete(ctx, []string{"urn:cmp:sku:0"}))
		info, err = client.GetCollection(ctx, "products-dense")
		require.NoError(t, err)
		assert.Equal(t, uint64(4), info.Points)
	})

	t.Run("sparse upsert and search", func(t *testing.T) {
		require.NoError(t, client.UpsertSparse(ctx, []SparsePoint{
			{URN: "urn:cmp:sku:red", Indices: []uint32{1, 7}, Values: []float32{0.8, 0.3}},
			{URN: "urn:cmp:sku:blue", Indices: []uint32{2, 9}, Values: []float32{0.9, 0.1}},
		}))

		hits, err := client.SearchSparse(ctx, []uint32{1}, []float32{1}, 5)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "urn:cmp:sku:red", hits[0].URN)
	})

	t.Run("invalid input", func(t *testing.T) {
		assert.Error(t, client.UpsertSparse(ctx, []SparsePoint{{URN: "x", Indices: []uint32{1}}}))
		assert.Error(t, client.UpsertDense(ctx, []DensePoint{{URN: "x"}}))
		_, err := client.SearchSparse(ctx, nil, nil, 5)
		assert.Error(t, err)
		assert.NoError(t, client.Delete(ctx, nil))
	})

	require.NoError(t, app.Stop(ctx))
}
