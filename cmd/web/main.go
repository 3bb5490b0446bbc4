package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"karthikeshrobotics.in/web/internal/cart"
	"karthikeshrobotics.in/web/internal/catalog"
	"karthikeshrobotics.in/web/internal/checkout"
	"karthikeshrobotics.in/web/internal/cms"
	"karthikeshrobotics.in/web/internal/config"
	"karthikeshrobotics.in/web/internal/i18n"
	mw "karthikeshrobotics.in/web/internal/middleware"
	"karthikeshrobotics.in/web/internal/notify"
	"karthikeshrobotics.in/web/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "web",
		Short:         "Karthikesh Robotics website",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newCatalogCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the reference datasets",
	}
	var dataDir string
	check := &cobra.Command{
		Use:   "check",
		Short: "Load and validate the catalog datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Load(dataDir)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d achievements, %d courses, %d workshops, %d products\n",
				len(c.Achievements), len(c.Courses), len(c.Workshops), len(c.Products))
			return nil
		},
	}
	check.Flags().StringVar(&dataDir, "data", "data", "directory holding the catalog YAML files")
	catalogCmd.AddCommand(check)
	return catalogCmd
}

// site bundles the dependencies shared by every handler.
type site struct {
	cfg      config.Config
	logger   *zap.Logger
	views    *views
	bundle   *i18n.Bundle
	catalog  *catalog.Catalog
	carts    *cart.Registry
	checkout *checkout.Client
	content  *cms.Client
	notifier notify.Notifier
	sessions *mw.Sessions
}

func newSite(cfg config.Config, logger *zap.Logger) (*site, error) {
	bundle, err := i18n.Load(cfg.Server.LocalesDir, "en", []string{"en"})
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	v, err := newViews(cfg.Server.TemplatesDir, cfg.Server.DevMode, bundle)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	cat, err := catalog.Load(cfg.Server.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		logger.Warn("catalog validation reported problems", zap.Error(err))
	}
	notifier, err := notify.New(cfg.Notify.SendGridAPIKey, cfg.Notify.From, cfg.Notify.To, logger)
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}
	content := cms.NewClient(cfg.Site.CMSBaseURL)
	content.SetContentDir(cfg.Server.ContentDir)

	cartLogger := logger.Named("cart")
	carts := cart.NewRegistry(
		cart.WithIdleTTL(cfg.Cart.IdleTTL),
		cart.WithEventHook(func(cartID string, ev cart.Event) {
			cartLogger.Debug("cart changed",
				zap.String("cart_id", cartID),
				zap.String("kind", string(ev.Kind)),
				zap.String("item_id", ev.ItemID),
				zap.Int("quantity", ev.Quantity),
				zap.Uint64("version", ev.Version),
			)
		}),
	)

	return &site{
		cfg:     cfg,
		logger:  logger,
		views:   v,
		bundle:  bundle,
		catalog: cat,
		carts:   carts,
		checkout: checkout.NewClient(checkout.Options{
			BaseURL:      cfg.Messaging.BaseURL,
			Phone:        cfg.Messaging.Phone,
			CommunityURL: cfg.Messaging.CommunityURL,
		}),
		content:  content,
		notifier: notifier,
		sessions: mw.NewSessions(cfg.Server.SessionSecret, cfg.Server.SecureCookies, logger),
	}, nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	s, err := newSite(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.routes(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("web listening",
			zap.String("addr", srv.Addr),
			zap.Bool("dev_mode", cfg.Server.DevMode),
			zap.String("templates", filepath.Clean(cfg.Server.TemplatesDir)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.carts.Run(gctx, cfg.Cart.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}
