package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"flashysurf/internal/app"
	"flashysurf/internal/server"
	"flashysurf/internal/services/sitemap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	vp := app.NewViper()
	var verbose bool

	cmd := &cobra.Command{
		Use:          "siteserver",
		Short:        "Serve the FlashySurf site with its sitemap and analytics endpoint",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := app.NewLogger(os.Stderr, verbose)
			slog.SetDefault(log)

			cfg, err := app.Load(vp)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, app.ConfigPath(vp), log)
		},
	}

	f := cmd.Flags()
	f.String("config", "", "config file (default ./"+app.DefaultConfigFile+")")
	f.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	f.String("root", "", "site root directory")
	f.String("base-url", "", "public base URL of the site")
	f.String("listen", "", "listen address")
	f.Bool("watch", false, "regenerate the sitemap when the site changes")
	_ = vp.BindPFlag("config", f.Lookup("config"))
	_ = vp.BindPFlag("site.root", f.Lookup("root"))
	_ = vp.BindPFlag("site.base_url", f.Lookup("base-url"))
	_ = vp.BindPFlag("server.listen", f.Lookup("listen"))
	_ = vp.BindPFlag("sitemap.watch", f.Lookup("watch"))
	return cmd
}

func run(ctx context.Context, cfg *app.Config, cfgPath string, log *slog.Logger) error {
	w, err := app.NewWire(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer w.Close()

	cache := sitemap.NewCache(w.Sitemap)
	if cfg.Sitemap.Watch {
		watcher, err := sitemap.NewWatcher(w.Sitemap, cache.Invalidate, sitemap.WithWatchLogger(log))
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
		log.Info("watching site for changes", "root", w.Sitemap.Root())
	}

	srv := server.New(cache, w.Analytics, cfg.Site.Root, log,
		server.WithHidden(w.Sitemap.Excluded),
		server.WithPrivateFiles(cfgPath, cfg.Analytics.EventsFile),
	)
	return srv.ListenAndServe(ctx, cfg.Server.Listen)
}
