package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/scrape-mcp/api"
	"github.com/use-agent/scrape-mcp/client"
	"github.com/use-agent/scrape-mcp/config"
	"github.com/use-agent/scrape-mcp/tools"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	logger := initLogger(cfg.Log)
	logger.Info("scrape-mcp starting",
		"name", cfg.Server.Name,
		"version", cfg.Server.Version,
		"transport", cfg.Server.Transport,
		"endpoint", cfg.Downstream.Endpoint,
		"timeout", cfg.Downstream.Timeout,
	)

	// ── 3. Build MCP server and register tools ──────────────────────
	s := server.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tools.Register(s, client.New(cfg.Downstream, logger), logger)

	// ── 4. Serve ────────────────────────────────────────────────────
	var err error
	switch cfg.Server.Transport {
	case "stdio":
		err = server.ServeStdio(s,
			server.WithErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		)
	case "http":
		err = serveHTTP(cfg, s, logger)
	default:
		err = fmt.Errorf("unknown transport %q (want stdio or http)", cfg.Server.Transport)
	}
	if err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("scrape-mcp stopped")
}

// serveHTTP runs the streamable HTTP transport until SIGINT/SIGTERM.
func serveHTTP(cfg *config.Config, s *server.MCPServer, logger *slog.Logger) error {
	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	streamable := server.NewStreamableHTTPServer(s)
	router := api.NewRouter(runCtx, cfg, streamable, time.Now())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr, "path", cfg.Server.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	// Give in-flight tool calls time to finish their downstream request.
	// Open event streams are cut when the deadline passes.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Downstream.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server forced shutdown", "error", err)
		return nil
	}
	logger.Info("HTTP server drained gracefully")
	return nil
}

// initLogger configures slog based on the LogConfig. Logs go to stderr:
// stdout belongs to the stdio transport.
func initLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
