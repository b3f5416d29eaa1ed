package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/neon-portfolio/internal/admin"
	"github.com/Zachkp/neon-portfolio/internal/config"
	"github.com/Zachkp/neon-portfolio/internal/contact"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/site"
	"github.com/Zachkp/neon-portfolio/internal/storage"
)

const (
	shutdownTimeout   = 10 * time.Second
	retentionInterval = 24 * time.Hour
)

func newServeCommand(global *globalOptions) *cobra.Command {
	var addr, imagesDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return runServe(cmd.Context(), cfg, logger, addr, imagesDir)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address; defaults to PORTFOLIO_HOST:PORT")
	cmd.Flags().StringVar(&imagesDir, "images", "images", "Directory served at /images when present")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger, addr, imagesDir string) error {
	gin.SetMode(cfg.GinMode)

	portfolio, err := loadContent(cfg.ContentPath)
	if err != nil {
		return err
	}
	store := content.NewStore(portfolio)

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := contact.NewService(newSender(cfg.Contact, logger), db, logger)
	srv, err := site.New(store, svc, db, logger, site.Options{
		ContactDelay: cfg.Contact.Delay,
		SiteURL:      cfg.SiteURL,
		ImagesDir:    imagesDir,
	})
	if err != nil {
		return err
	}
	engine := srv.Engine()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Admin.Enabled() {
		adm, err := admin.New(db, cfg.Admin, cfg.Retention, logger)
		if err != nil {
			return err
		}
		adm.Register(engine)
		g.Go(func() error {
			adm.RunRetention(ctx, retentionInterval)
			return nil
		})
		logger.Info("admin area enabled", zap.String("user", cfg.Admin.Username))
	}

	if cfg.WatchContent && cfg.ContentPath != "" {
		w, err := content.NewWatcher(cfg.ContentPath, store, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	if addr == "" {
		addr = cfg.Addr()
	}
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", addr), zap.String("site", cfg.SiteURL))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})
	err = g.Wait()
	// Background visit writes must land before the deferred db.Close.
	srv.WaitVisits()
	return err
}

// newSender picks real delivery when SMTP is fully configured and the
// simulated delay otherwise.
func newSender(cfg config.ContactConfig, logger *zap.Logger) contact.Sender {
	if cfg.SMTPEnabled() {
		logger.Info("contact delivery via smtp", zap.String("host", cfg.SMTPHost))
		return contact.SMTPSender{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			To:   cfg.To,
		}
	}
	logger.Info("contact delivery simulated", zap.Duration("delay", cfg.Delay))
	return contact.SimulatedSender{Delay: cfg.Delay}
}
