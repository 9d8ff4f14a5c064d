package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/roi-calculator/internal/report"
	"github.com/iwvelando/roi-calculator/internal/savings"
	"github.com/iwvelando/roi-calculator/internal/server"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

type serveOptions struct {
	serverConfig   string
	address        string
	maxRequestSize string
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	so := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the savings API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, so)
		},
	}
	cmd.Flags().StringVar(&so.serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&so.address, "address", "", "listen address override, e.g. :8080")
	cmd.Flags().StringVar(&so.maxRequestSize, "max-request-size", "", "request body limit override, e.g. 256K or 1M")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions, so *serveOptions) error {
	cfg, err := server.LoadConfig(so.serverConfig)
	if err != nil {
		return err
	}
	if so.address != "" {
		cfg.Address = so.address
	}
	if so.maxRequestSize != "" {
		size, err := server.ParseSize(so.maxRequestSize)
		if err != nil {
			return err
		}
		cfg.SetRequestSizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, opts.logLevel())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler, err := newAPIHandler(logger, cfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		zap.String("op", "main.runServe"),
		zap.String("address", ln.Addr().String()),
		zap.Int64("maxRequestSize", cfg.RequestSizeBytes()),
		zap.String("version", version),
	)
	return serveUntilDone(ctx, logger, ln, handler)
}

// newAPIHandler builds the API handler with the calibration and block library
// overrides named in cfg.
func newAPIHandler(logger *zap.Logger, cfg *server.Config) (http.Handler, error) {
	var tables *savings.Tables
	if cfg.CalibrationFile != "" {
		var err error
		if tables, err = savings.LoadTables(cfg.CalibrationFile); err != nil {
			return nil, err
		}
	}

	var library *report.Library
	if cfg.BlocksFile != "" {
		var err error
		if library, err = report.LoadLibrary(cfg.BlocksFile); err != nil {
			return nil, err
		}
	}

	engine := savings.NewEngine(logger, tables)
	assembler := report.NewAssembler(logger, library, engine.Tables())
	return server.NewHandler(logger, engine, assembler, cfg.RequestSizeBytes(), version), nil
}

// serveUntilDone serves on ln until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish within shutdownTimeout.
func serveUntilDone(ctx context.Context, logger *zap.Logger, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server shutting down",
		zap.String("op", "main.serveUntilDone"),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("server exited",
		zap.String("op", "main.serveUntilDone"),
	)
	return nil
}
