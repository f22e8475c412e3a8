package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sgaunet/notifymail/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func newServeCmd(o *options) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /{email} to send notifications over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = o.cfg.HTTPConfig.Listen
			}
			limiter := rate.NewLimiter(rate.Limit(o.cfg.HTTPConfig.RateLimit), o.cfg.HTTPConfig.Burst)
			srv := &http.Server{
				Addr:              listen,
				Handler:           api.NewServer(o.app, o.log, limiter).Routes(),
				ReadHeaderTimeout: readHeaderTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, srv, o)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config, :8080)")
	return cmd
}

func serve(ctx context.Context, srv *http.Server, o *options) error {
	errCh := make(chan error, 1)
	go func() {
		o.log.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	o.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
