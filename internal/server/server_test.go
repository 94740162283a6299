package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"essential-notes/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Logger: &config.ConfigLogger{Level: "error"},
		Server: &config.ConfigServer{
			EnableGRPC:              true,
			PortHTTP:                0,
			PortGRPC:                0,
			HTTPReadTimeout:         5,
			HTTPWriteTimeout:        5,
			HTTPIdleTimeout:         5,
			HTTPReadHeaderTimeout:   5,
			GracefulShutdownTimeout: 5,
		},
		Gateway: &config.ConfigGateway{CORSAllowedOrigins: "*", RateLimitRPS: 100, RateLimitBurst: 100},
		Remote:  &config.ConfigRemote{Driver: config.DriverMemory, Table: "notes"},
	}
}

func TestServer_StartServeShutdown(t *testing.T) {
	// Arrange
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(testConfig(), logger)
	require.NoError(t, err)
	require.NoError(t, srv.Initialize(context.Background()))

	// Act
	errChan := srv.Start()

	// Assert: первая загрузка выполнена
	require.Eventually(t, func() bool {
		return srv.Store.Snapshot().Loaded
	}, 2*time.Second, 10*time.Millisecond)

	port := srv.HTTPListener.Addr().(*net.TCPAddr).Port
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/healthz", port))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	require.NoError(t, srv.Shutdown())
	select {
	case err := <-errChan:
		t.Fatalf("unexpected server error: %v", err)
	default:
	}
}

func TestServer_WithoutGRPC(t *testing.T) {
	cfg := testConfig()
	cfg.Server.EnableGRPC = false

	srv, err := NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, srv.Initialize(context.Background()))

	assert.Nil(t, srv.GRPCServer)
	assert.Nil(t, srv.GRPCListener)

	srv.Start()
	require.NoError(t, srv.Shutdown())
}
