package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"flashysurf/internal/domain"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect tracked events",
	}
	cmd.AddCommand(eventsListCmd())
	return cmd
}

func eventsListCmd() *cobra.Command {
	var (
		format string
		name   string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored events, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWire(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			es, err := w.EventStore()
			if err != nil {
				return err
			}
			events, err := es.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			events = filterEvents(events, domain.EventName(name), limit)
			return renderValue(cmd.OutOrStdout(), format, events, func(w io.Writer) error {
				return eventTable(w, events)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", fmt.Sprintf("output format %v", formats))
	cmd.Flags().StringVar(&name, "event", "", "only events with this name")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "only the most recent n events (0 for all)")
	return cmd
}

func filterEvents(events []domain.Event, name domain.EventName, limit int) []domain.Event {
	out := events[:0:0]
	for _, ev := range events {
		if name == "" || ev.Name == name {
			out = append(out, ev)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
