// main.go bootstraps the portfolio CLI: it builds the root Cobra command and
// executes it with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/backdrop"
	"github.com/Zachkp/neon-portfolio/internal/config"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)
	handleError(os.Stderr, err)
	if err != nil {
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	envFile  string
	logLevel string
	dev      bool
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Serve or export the neon portfolio site",
		Long:          "portfolio renders a single-page personal portfolio. It can serve it live, export it as static files, or preview it in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Extra .env file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides PORTFOLIO_LOG_LEVEL")
	cmd.PersistentFlags().BoolVar(&opts.dev, "dev", false, "Human-readable development logging")

	cmd.AddCommand(
		newServeCommand(opts),
		newExportCommand(opts),
		newBackdropCommand(),
		newPreviewCommand(opts),
		newPruneCommand(opts),
	)
	cmd.Example = `  # Serve on :8080 with content from a file, reloading on edits
  PORTFOLIO_CONTENT=portfolio.yaml PORTFOLIO_WATCH_CONTENT=true portfolio serve

  # Pre-render the site into dist/
  portfolio export --out dist

  # Preview the content in the terminal
  portfolio preview`
	return cmd
}

// setup loads configuration and builds the logger. Flags win over the
// environment.
func (o *globalOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.dev {
		cfg.Dev = true
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// loadContent returns the file content when a path is configured and the
// built-in content otherwise.
func loadContent(path string) (*content.Portfolio, error) {
	if path == "" {
		return content.Default(), nil
	}
	return content.Load(path)
}

func handleError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) || errors.Is(err, context.Canceled) {
		return
	}
	message := err.Error()
	switch {
	case errors.Is(err, content.ErrInvalid):
		message = fmt.Sprintf("%s\nHint: fix the content file or unset PORTFOLIO_CONTENT to use the built-in content.", err)
	case errors.Is(err, backdrop.ErrUnknownScene):
		message = fmt.Sprintf("%s\nHint: valid scenes are %v.", err, backdrop.Scenes)
	case errors.Is(err, os.ErrPermission):
		message = fmt.Sprintf("%s\nHint: check that the output directory and database path are writable.", err)
	}
	fmt.Fprintf(w, "Error: %s\n", message)
}
