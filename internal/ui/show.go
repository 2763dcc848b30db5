package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) showCmd() *cobra.Command {
	var (
		noColor bool
		list    bool
		spans   bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the engagement timeline",
		Long: `Print the engagement timeline as a text Gantt chart.

Color is disabled automatically when stdout is not a terminal. Use --list
for a plain schedule with calendar dates instead of the chart.

Example:
  weekline show
  weekline show --list -e 2f1c...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor || !isTerminal() {
				DisableColor()
			}

			ctx := context.Background()
			e, err := a.resolveEngagement(ctx)
			if err != nil {
				return err
			}
			items, err := a.repo.ListItems(ctx, e.ID)
			if err != nil {
				return fmt.Errorf("fetching items: %w", err)
			}

			g := NewGantt(e, items)
			out := cmd.OutOrStdout()
			if list {
				fmt.Fprint(out, g.Schedule())
				return nil
			}

			if width <= 0 {
				width = termWidth()
			}
			g.Render(out, GanttOpts{
				Width:      width,
				Today:      time.Now(),
				ShowAmount: a.config.UI.ShowAmount,
				ShowSpan:   spans,
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "Print a plain schedule instead of the chart")
	cmd.Flags().BoolVar(&spans, "spans", false, "Append each item's week range")
	cmd.Flags().IntVar(&width, "width", 0, "Output width (default: terminal width)")
	return cmd
}
