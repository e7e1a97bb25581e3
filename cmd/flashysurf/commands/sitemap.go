package commands

import (
	"bytes"
	"log/slog"

	"github.com/spf13/cobra"

	"flashysurf/internal/services/sitemap"
	"flashysurf/internal/store"
)

func sitemapCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Generate sitemap.xml for the site root",
		Long: `Walks the site root for index.html pages and writes a sitemaps.org
document listing every page not marked noindex. Directories named in
site.exclude are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") {
				cfg.Sitemap.Output = output
			}
			w, err := newWire(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			entries, err := w.Sitemap.Scan(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Sitemap.Output == "" || cfg.Sitemap.Output == "-" {
				return sitemap.Encode(cmd.OutOrStdout(), entries)
			}

			var buf bytes.Buffer
			if err := sitemap.Encode(&buf, entries); err != nil {
				return err
			}
			if err := store.WriteFile(cfg.Sitemap.Output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			slog.Info("sitemap written", "path", cfg.Sitemap.Output, "entries", len(entries))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout (\"-\" for stdout)")
	return cmd
}
