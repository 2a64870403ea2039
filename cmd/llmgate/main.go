package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/germanamz/llmgate/pkg/config"
	"github.com/germanamz/llmgate/pkg/gateway"
	"github.com/germanamz/llmgate/pkg/logging"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		mcpCmd := flag.NewFlagSet("mcp", flag.ExitOnError)
		mcpCmd.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: llmgate mcp [flags]\n\nServe the gateway tools over MCP on stdin/stdout.\n\nFlags:\n")
			mcpCmd.PrintDefaults()
		}
		configPath := mcpCmd.String("config", "", "path to YAML configuration file")
		envFile := mcpCmd.String("env", ".env", "path to .env file (ignored if missing)")
		_ = mcpCmd.Parse(os.Args[2:])

		if err := loadDotEnv(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if err := runMCP(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: llmgate [flags]\n       llmgate <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  mcp     Serve the gateway tools over MCP on stdin/stdout\n")
	}

	configPath := flag.String("config", "", "path to YAML configuration file")
	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	addr := flag.String("addr", "", "listen address (overrides listen_addr)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := runHTTP(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func setup(ctx context.Context, configPath string) (*gateway.Gateway, *slog.Logger, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log := logging.New(os.Stderr, settings.LogFormat, settings.Debug)

	g, err := gateway.New(ctx, settings, log)
	if err != nil {
		return nil, nil, err
	}

	return g, log, nil
}

func runHTTP(configPath, addr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, log, err := setup(ctx, configPath)
	if err != nil {
		return err
	}

	if addr == "" {
		addr = g.Settings().ListenAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           g.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}

func runMCP(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, _, err := setup(ctx, configPath)
	if err != nil {
		return err
	}

	err = g.MCPServer().Serve(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
