package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NISHANTH0777/transport-backend/internal/config"
)

func TestNewAppliesHTTPConfig(t *testing.T) {
	cfg := config.Default().HTTP
	cfg.Host = "127.0.0.1"
	cfg.Port = 9099

	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, http.NotFoundHandler())

	assert.Equal(t, "127.0.0.1:9099", s.Addr())
	assert.Equal(t, cfg.ReadTimeout, s.httpServer.ReadTimeout)
	assert.Equal(t, cfg.WriteTimeout, s.httpServer.WriteTimeout)
	assert.Equal(t, cfg.IdleTimeout, s.httpServer.IdleTimeout)
}

func TestShutdownStopsStart(t *testing.T) {
	cfg := config.Default().HTTP
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, http.NotFoundHandler())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	// give ListenAndServe a moment to bind
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
