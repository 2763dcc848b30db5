package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekline/internal/plan"
)

func (a *App) addCmd() *cobra.Command {
	var (
		amount string
		weeks  string
	)

	cmd := &cobra.Command{
		Use:   "add <category> <name>",
		Short: "Add a service item",
		Long: fmt.Sprintf(`Add a service item to an engagement.

Categories: %s.
The item is unscheduled unless --weeks is given.

Example:
  weekline add web "Landing Page" --amount="1 page" --weeks=2-4`, strings.Join(plan.CategoryKeys(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := plan.ParseCategory(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			e, err := a.resolveEngagement(ctx)
			if err != nil {
				return err
			}

			item, err := plan.NewItem(e.ID, cat, args[1], amount)
			if err != nil {
				return err
			}
			if weeks != "" {
				span, err := parseWeeks(weeks)
				if err != nil {
					return err
				}
				if err := span.Within(e.WeekCount()); err != nil {
					return err
				}
				item.Span = span
			}

			if err := a.repo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("creating item: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s] %s to %s\n",
				item.Name,
				item.Category,
				spanText(item.Span),
				e.Name,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount and unit, e.g. \"3 pages\"")
	cmd.Flags().StringVar(&weeks, "weeks", "", "Week range, e.g. 2-4 or 3")

	return cmd
}

// parseWeeks parses "3" or "2-4" into a span.
func parseWeeks(s string) (plan.Span, error) {
	from, to, found := strings.Cut(strings.TrimSpace(s), "-")
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return plan.Span{}, fmt.Errorf("%w: %q", plan.ErrInvalidSpan, s)
	}
	end := start
	if found {
		end, err = strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return plan.Span{}, fmt.Errorf("%w: %q", plan.ErrInvalidSpan, s)
		}
	}
	span := plan.Span{Start: start, End: end}
	if !span.IsScheduled() {
		return plan.Span{}, fmt.Errorf("%w: %q", plan.ErrInvalidSpan, s)
	}
	return span, span.Validate()
}
