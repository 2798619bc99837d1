// Command mcpshell is the MCP shell supervisor: a long-lived process that
// reads line-delimited JSON-RPC 2.0 requests from stdin and supervises
// pty-backed background shells on the caller's behalf (spec.md §1, §6).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rivershell/mcpshell/internal/config"
	"github.com/rivershell/mcpshell/internal/logging"
	"github.com/rivershell/mcpshell/internal/mcpserver"
	"github.com/rivershell/mcpshell/internal/shellsup"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var logFile string

	root := &cobra.Command{
		Use:   "mcpshell",
		Short: "MCP supervisor for interactive background shells",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, logFile)
		},
	}

	root.Flags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to an optional YAML config file")
	root.Flags().StringVar(&logFile, "log-file", "", "additionally append structured logs to this file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print the version and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	})

	return root
}

// runServe wires config, logging, the Supervisor, and the stdio server,
// then blocks until a shutdown signal arrives. Grounded on the reference
// daemon.Run (signal handling, errCh+select shutdown, graceful teardown of
// managed work before exit) and cmd/wtd/main.go's minimal cobra-root shape.
func runServe(configPath, logFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	if err := logging.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	sup := shellsup.NewSupervisor(shellsup.Options{
		MaxLogLines:  cfg.MaxLogLines,
		TickInterval: time.Duration(cfg.TickIntervalMs) * time.Millisecond,
		InputSettle:  time.Duration(cfg.InputSettleMs) * time.Millisecond,
	})

	dispatcher := mcpserver.NewDispatcher(sup)
	server := mcpserver.NewServer(dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 2)

	go func() {
		logging.Info("scheduler started", "tick_ms", cfg.TickIntervalMs)
		errCh <- sup.Run(ctx)
	}()

	go func() {
		logging.Info("mcpshell ready", "max_log_lines", cfg.MaxLogLines, "fast_mode", cfg.FastMode)
		errCh <- server.Run(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case sig := <-sigCh:
		logging.Info("received signal, shutting down", "signal", sig)
	case err := <-errCh:
		cancel()
		sup.Shutdown()
		if err != nil && err != context.Canceled {
			return fmt.Errorf("mcpshell: %w", err)
		}
		return nil
	}

	cancel()
	sup.Shutdown()
	return nil
}
