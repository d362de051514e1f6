package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MarcusGale/LLM-Router/app"
	"github.com/MarcusGale/LLM-Router/config"
	"github.com/MarcusGale/LLM-Router/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree. Running the binary with no
// subcommand serves HTTP.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "llm-router",
		Short: "Route chat turns to the best-suited LLM",
		Long: `llm-router classifies the latest user message with a small routing model,
picks one of a fixed set of backend models, and forwards the conversation to it
through OpenRouter.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newRouteCmd(),
		newChatCmd(),
		newModelsCmd(),
	)
	return rootCmd
}

// initLogger builds the process logger from cfg. The closer releases the
// rotating log file and is nil when none is configured.
func initLogger(cfg *config.Config) (*zap.Logger, io.Closer, error) {
	return observability.NewLogger(cfg.Observability)
}

// bootstrap loads configuration, builds the logger and wires the pipeline
func bootstrap(ctx context.Context) (*app.Dependencies, error) {
	cfg, err := config.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	deps.LogFile = logFile
	return deps, nil
}
