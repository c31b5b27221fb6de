package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/facility-heatmap/internal/infra/config"
)

type stubPreloader struct {
	called chan struct{}
}

func (s *stubPreloader) Preload(ctx context.Context) error {
	close(s.called)
	return nil
}

func TestRunPreloadsAndShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := &config.Config{HTTP: config.HTTPConfig{Address: addr}}
	server := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}
	preloader := &stubPreloader{called: make(chan struct{})}
	app := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), server, preloader)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case <-preloader.called:
	case <-time.After(2 * time.Second):
		t.Fatal("preload was not triggered")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not shut down")
	}
}
