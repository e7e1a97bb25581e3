package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flashysurf/internal/app"
)

var (
	verbose bool
	cfg     *app.Config
	vp      *viper.Viper
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	vp = app.NewViper()

	root := &cobra.Command{
		Use:          "flashysurf",
		Short:        "Tools for the FlashySurf landing site",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(app.NewLogger(cmd.ErrOrStderr(), verbose))

			c, err := app.Load(vp)
			if err != nil {
				return err
			}
			cfg = c
			slog.Debug("configuration loaded", "file", app.ConfigPath(vp), "root", cfg.Site.Root)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ./"+app.DefaultConfigFile+")")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.String("root", "", "site root directory")
	pf.String("base-url", "", "public base URL of the site")
	pf.String("listen", "", "listen address for the site server")
	_ = vp.BindPFlag("config", pf.Lookup("config"))
	_ = vp.BindPFlag("site.root", pf.Lookup("root"))
	_ = vp.BindPFlag("site.base_url", pf.Lookup("base-url"))
	_ = vp.BindPFlag("server.listen", pf.Lookup("listen"))

	root.AddCommand(
		sitemapCmd(),
		trackCmd(),
		eventsCmd(),
		inspectCmd(),
		carouselCmd(),
		configCmd(),
	)
	return root
}

// newWire builds services for the current configuration. Callers must Close
// the result.
func newWire(cmd *cobra.Command) (*app.Wire, error) {
	return app.NewWire(cmd.Context(), cfg, slog.Default())
}
