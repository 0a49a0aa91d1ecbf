package reportserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quizlint/internal/findings"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config captures the settings for serving stored findings.
type Config struct {
	Addr    string
	PDFFont string
	Logger  *zap.Logger
	// Ready receives the bound address once the listener is open.
	Ready func(addr string)
}

// Serve serves store until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, store *findings.Store, cfg Config) error {
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	handler, err := NewHandler(store, cfg)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	server := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}
	addr := listener.Addr().String()
	cfg.Logger.Info("report server listening", zap.String("addr", addr))
	if cfg.Ready != nil {
		cfg.Ready(addr)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		cfg.Logger.Info("report server shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
