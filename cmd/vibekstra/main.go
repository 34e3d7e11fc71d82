package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibekstra/internal/config"
	"vibekstra/internal/logging"
	"vibekstra/internal/provider"
	"vibekstra/internal/solver"
	"vibekstra/internal/usage"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	providerName string
	modelName    string
	timeout      time.Duration

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vibekstra",
	Short: "Single-source shortest paths, answered by an LLM",
	Long: `vibekstra sends a weighted directed graph to a remote language model and
prints the shortest distance from a source vertex to every vertex.

Nothing is computed locally: the distances are whatever the model answers.
Credentials come from the environment (a .env file is loaded if present):

  anthropic  CLAUDE_API_KEY or ANTHROPIC_API_KEY
  gemini     GEMINI_API_KEY or GOOGLE_API_KEY
  openai     OPENAI_API_KEY`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "vibekstra.yaml", "Config file (defaults apply when missing)")
	rootCmd.PersistentFlags().StringVarP(&providerName, "provider", "p", "", "LLM provider: anthropic, gemini, openai")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "Model id (provider default when empty)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Overall operation timeout")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(providersCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, then applies command-line overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if providerName != "" {
		c.LLM.Provider = providerName
	}
	if modelName != "" {
		c.LLM.Model = modelName
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// newSolver builds the configured provider and wraps it in a Solver. The
// caller closes the provider.
func newSolver(ctx context.Context) (*solver.Solver, error) {
	pc := cfg.ProviderConfig()
	p, err := provider.New(ctx, pc, logging.For(logger, logging.CategoryProvider))
	if err != nil {
		return nil, err
	}
	logger.Debug("Provider ready",
		zap.String("provider", string(p.Name())),
		zap.String("model", p.Model()))
	return solver.New(p, logging.For(logger, logging.CategorySolver)), nil
}

// commandContext returns the command context bounded by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// withUsage attaches a fresh token tracker to ctx.
func withUsage(ctx context.Context) (context.Context, *usage.Tracker) {
	t := usage.NewTracker()
	return usage.NewContext(ctx, t), t
}

func logUsage(t *usage.Tracker) {
	s := t.Stats()
	logger.Info("Token usage",
		zap.Int("requests", s.Requests),
		zap.Int64("input_tokens", s.Total.Input),
		zap.Int64("output_tokens", s.Total.Output))
}
