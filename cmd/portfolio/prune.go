package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zachkp/neon-portfolio/internal/storage"
)

func newPruneCommand(global *globalOptions) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete visitor records older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			window := cfg.Retention
			if cmd.Flags().Changed("older-than") {
				window = olderThan
			}
			if window <= 0 {
				return fmt.Errorf("retention window must be positive, got %s", window)
			}

			db, err := storage.Open(cmd.Context(), cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.PruneVisitors(cmd.Context(), time.Now().Add(-window))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d visitor records older than %s\n", n, window)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Override PORTFOLIO_VISITOR_RETENTION")
	return cmd
}
