package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"flashysurf/internal/ui/carousel"
	"flashysurf/internal/ui/preview"
)

func carouselCmd() *cobra.Command {
	var slides int
	cmd := &cobra.Command{
		Use:   "carousel [page.html]",
		Short: "Preview a slideshow in the terminal",
		Long: `Drives the slideshow controller from the keyboard. With a page, the
slides are the children of its .slideshow-track; without one, --slides
placeholder slides are used. carousel.initial_slide applies either way.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var labels []string
			n := slides
			if len(args) == 1 {
				p, err := loadPage(args[0])
				if err != nil {
					return err
				}
				if p.Carousel() == nil {
					return errors.New(args[0] + ": page has no slideshow")
				}
				labels = p.SlideLabels()
				n = len(labels)
			}

			ctrl, err := carousel.New(n, carousel.WithInitialSlide(cfg.Carousel.InitialSlide))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(preview.New(ctrl, labels),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
	cmd.Flags().IntVar(&slides, "slides", 5, "number of placeholder slides when no page is given")
	return cmd
}
