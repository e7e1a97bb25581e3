package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"flashysurf/internal/domain"
)

type visitFlags struct {
	remote    string
	userAgent string
	format    string
}

func (f *visitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.remote, "remote", "127.0.0.1", "client address the visitor id is derived from")
	cmd.Flags().StringVar(&f.userAgent, "user-agent", "flashysurf-cli", "client user agent")
	cmd.Flags().StringVarP(&f.format, "format", "f", "table", fmt.Sprintf("output format %v", formats))
}

func (f *visitFlags) visit(pageURL string) domain.Visit {
	return domain.Visit{PageURL: pageURL, RemoteAddr: f.remote, UserAgent: f.userAgent}
}

func trackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Record analytics events",
	}
	cmd.AddCommand(trackVisitCmd(), trackClickCmd())
	return cmd
}

func trackVisitCmd() *cobra.Command {
	var f visitFlags
	cmd := &cobra.Command{
		Use:   "visit <page-url>",
		Short: "Record a page load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWire(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			ev, err := w.Analytics.PageLoad(cmd.Context(), f.visit(args[0]))
			if ev.InsertID == "" {
				return err
			}
			if rerr := printEvent(cmd.OutOrStdout(), f.format, ev); rerr != nil {
				return rerr
			}
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func trackClickCmd() *cobra.Command {
	var f visitFlags
	cmd := &cobra.Command{
		Use:   "click <page-url> <href>",
		Short: "Record a click on a link; only extension-store links are tracked",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWire(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			ev, tracked, err := w.Analytics.LinkClick(cmd.Context(), f.visit(args[0]), args[1])
			if !tracked {
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "not an extension link (%s); nothing tracked\n", w.Analytics.ExtensionHost())
				return nil
			}
			if rerr := printEvent(cmd.OutOrStdout(), f.format, ev); rerr != nil {
				return rerr
			}
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func printEvent(w io.Writer, format string, ev domain.Event) error {
	return renderValue(w, format, ev, func(w io.Writer) error {
		return eventTable(w, []domain.Event{ev})
	})
}

// eventTable prints one row per event.
func eventTable(w io.Writer, events []domain.Event) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No events.")
		return err
	}
	if _, err := fmt.Fprintf(w, "%-20s  %-20s  %-16s  %-16s  %s\n", "TIME", "EVENT", "SOURCE", "CAMPAIGN", "VISITOR"); err != nil {
		return err
	}
	for _, ev := range events {
		_, err := fmt.Fprintf(w, "%-20s  %-20s  %-16s  %-16s  %s\n",
			ev.Time.Format("2006-01-02 15:04:05"),
			ev.Name,
			orNull(ev.Properties.Source),
			orNull(ev.Properties.Campaign),
			ev.DistinctID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func orNull(p *string) string {
	if p == nil {
		return "null"
	}
	if *p == "" {
		return `""`
	}
	return *p
}
