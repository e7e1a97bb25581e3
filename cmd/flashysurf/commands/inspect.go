package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"flashysurf/internal/ui/page"
)

type inspectReport struct {
	File           string       `json:"file" yaml:"file"`
	Summary        page.Summary `json:"summary" yaml:"summary"`
	Slides         []string     `json:"slides,omitempty" yaml:"slides,omitempty"`
	ExtensionLinks []string     `json:"extension_links,omitempty" yaml:"extension_links,omitempty"`
}

func inspectCmd() *cobra.Command {
	var (
		format string
		render bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <page.html>",
		Short: "Report which interactive features a page binds",
		Long: `Parses a page and attaches the slideshow, scroll reveal and feature
switcher the way the browser does on load. Components whose markup is
missing are reported as absent, never as errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPage(args[0])
			if err != nil {
				return err
			}
			if render {
				return p.Render(cmd.OutOrStdout())
			}
			rep := inspectReport{
				File:           args[0],
				Summary:        p.Summary(),
				Slides:         p.SlideLabels(),
				ExtensionLinks: p.ExtensionLinks(),
			}
			return renderReport(cmd.OutOrStdout(), format, rep)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", fmt.Sprintf("output format %v", formats))
	cmd.Flags().BoolVar(&render, "render", false, "print the page as it looks once bound")
	return cmd
}

func loadPage(path string) (*page.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := page.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page.Bind(doc, page.Options{
		InitialSlide:  cfg.Carousel.InitialSlide,
		ExtensionHost: cfg.Analytics.ExtensionHost,
	}), nil
}

func renderReport(w io.Writer, format string, rep inspectReport) error {
	return renderValue(w, format, rep, func(w io.Writer) error {
		s := rep.Summary
		fmt.Fprintf(w, "Page: %s\n", rep.File)
		fmt.Fprintf(w, "  %-16s %s\n", "carousel", presence(s.Carousel, fmt.Sprintf("%d slides", s.Slides)))
		fmt.Fprintf(w, "  %-16s %s\n", "scroll reveal", presence(s.RevealItems > 0, fmt.Sprintf("%d items", s.RevealItems)))
		fmt.Fprintf(w, "  %-16s %s\n", "feature switcher", presence(s.FeatureButtons > 0, fmt.Sprintf("%d buttons", s.FeatureButtons)))
		_, err := fmt.Fprintf(w, "  %-16s %d\n", "extension links", s.ExtensionLinks)
		return err
	})
}

func presence(ok bool, detail string) string {
	if !ok {
		return "absent"
	}
	return "bound (" + detail + ")"
}
