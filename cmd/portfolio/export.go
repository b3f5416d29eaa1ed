package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/backdrop"
	"github.com/Zachkp/neon-portfolio/internal/config"
	"github.com/Zachkp/neon-portfolio/internal/contact"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/export"
	"github.com/Zachkp/neon-portfolio/internal/site"
)

type exportOptions struct {
	out     string
	workers int
	seed    uint64
	time    float64
}

func newExportCommand(global *globalOptions) *cobra.Command {
	opts := exportOptions{out: "dist"}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Pre-render the site into static HTML, CSS, JS and PNG files",
		Long: `export writes index.html, every section fragment, the backdrop images for
each theme, and the embedded assets. The result needs no server runtime: the
contact form simulates its delay in the browser.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			res, err := runExport(cmd.Context(), cfg, logger, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d files (%d bytes) to %s\n", res.Files, res.Bytes, opts.out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", opts.out, "Output directory")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent renders; 0 uses every CPU")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Backdrop random seed")
	cmd.Flags().Float64Var(&opts.time, "time", 0, "Backdrop animation time in seconds")
	return cmd
}

func runExport(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts exportOptions) (export.Result, error) {
	portfolio, err := loadContent(cfg.ContentPath)
	if err != nil {
		return export.Result{}, err
	}
	svc := contact.NewService(contact.SimulatedSender{Delay: cfg.Contact.Delay}, nil, logger)
	srv, err := site.New(content.NewStore(portfolio), svc, nil, logger, site.Options{
		StaticMode:   true,
		ContactDelay: cfg.Contact.Delay,
		SiteURL:      cfg.SiteURL,
	})
	if err != nil {
		return export.Result{}, err
	}

	bd := backdrop.DefaultOptions()
	bd.Seed = opts.seed
	bd.Time = opts.time

	return export.Run(ctx, srv, export.Options{
		OutDir:   opts.out,
		Backdrop: bd,
		Workers:  opts.workers,
	}, logger)
}
