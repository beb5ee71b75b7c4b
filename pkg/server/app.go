package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"FarmPulse/pkg/config"
	xhttp "FarmPulse/pkg/http"
	applogger "FarmPulse/pkg/logger"
)

// App owns the HTTP server lifecycle and the resources that need an
// orderly close on shutdown.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	closers    []io.Closer
	httpServer *xhttp.Server
}

// New assembles the application. Closers are closed in reverse order
// during shutdown.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler, closers ...io.Closer) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		handler: handler,
		closers: closers,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(""))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("resource close error", applogger.Error(err))
		}
	}
	a.logger.Info("shutdown complete")
	return nil
}
