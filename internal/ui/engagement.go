package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekline/internal/dateutil"
	"github.com/javiermolinar/weekline/internal/plan"
)

func (a *App) engagementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "engagement",
		Aliases: []string{"eng"},
		Short:   "Manage engagements",
	}
	cmd.AddCommand(a.engagementNewCmd())
	cmd.AddCommand(a.engagementListCmd())
	cmd.AddCommand(a.engagementUseCmd())
	return cmd
}

// engagementInput holds the fields of a new engagement.
type engagementInput struct {
	Name   string
	Client string
	Start  string
	End    string
}

func (in engagementInput) complete() bool {
	return in.Name != "" && in.End != ""
}

func (a *App) engagementNewCmd() *cobra.Command {
	var (
		in      engagementInput
		makeDef bool
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create an engagement",
		Long: `Create an engagement. Its start and end dates define the timeline's
week axis.

When the name or end date is missing and stdin is a terminal, a form asks
for them.

Example:
  weekline engagement new "Acme rebrand" --client=Acme --start=2024-01-01 --end=2024-03-25`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				in.Name = args[0]
			}
			if !in.complete() {
				if !a.interactive() {
					return errors.New("name and --end are required")
				}
				if err := runEngagementForm(&in); err != nil {
					return err
				}
			}

			start, err := resolveDate(in.Start)
			if err != nil {
				return err
			}
			end, err := resolveDate(in.End)
			if err != nil {
				return err
			}
			e, err := plan.NewEngagement(in.Name, in.Client, start, end)
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()
			if err := a.repo.CreateEngagement(ctx, e); err != nil {
				return fmt.Errorf("creating engagement: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created engagement %s: %s (%d weeks)\n", e.ID, e.Name, e.WeekCount())
			if makeDef {
				if err := a.setDefaultEngagement(e.ID); err != nil {
					return err
				}
				fmt.Fprintln(out, "Set as default engagement")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Client, "client", "", "Client name")
	cmd.Flags().StringVar(&in.Start, "start", "", "Contract start (YYYY-MM-DD or today, monday..., default: today)")
	cmd.Flags().StringVar(&in.End, "end", "", "Contract end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&makeDef, "default", false, "Make this the default engagement")

	return cmd
}

func runEngagementForm(in *engagementInput) error {
	if in.Start == "" {
		in.Start = time.Now().Format("2006-01-02")
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Engagement name").
				Placeholder("Acme rebrand").
				Value(&in.Name).
				Validate(requireText("name")),
			huh.NewInput().
				Title("Client").
				Value(&in.Client),
			huh.NewInput().
				Title("Contract start").
				Placeholder("YYYY-MM-DD").
				Value(&in.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("Contract end").
				Placeholder("YYYY-MM-DD").
				Value(&in.End).
				Validate(func(s string) error {
					if err := requireText("end date")(s); err != nil {
						return err
					}
					return validateDate(s)
				}),
		),
	).WithShowHelp(false)
	return form.Run()
}

func (a *App) engagementListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List engagements",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			engagements, err := a.repo.ListEngagements(context.Background())
			if err != nil {
				return fmt.Errorf("listing engagements: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(engagements) == 0 {
				fmt.Fprintln(out, "No engagements yet.")
				return nil
			}
			for _, e := range engagements {
				marker := "  "
				if e.ID == a.config.Engagement.Default {
					marker = "* "
				}
				client := ""
				if e.Client != "" {
					client = " · " + e.Client
				}
				fmt.Fprintf(out, "%s%s  %s%s  %s\n",
					marker,
					formatMuted(e.ID),
					formatHeader(e.Name),
					client,
					formatMuted(fmt.Sprintf("%s → %s (%d weeks)",
						e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.WeekCount())),
				)
			}
			return nil
		},
	}
}

func (a *App) engagementUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Set the default engagement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			e, err := a.repo.GetEngagement(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("engagement %s: %w", args[0], err)
			}
			if err := a.setDefaultEngagement(e.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default engagement: %s\n", e.Name)
			return nil
		},
	}
}

func (a *App) setDefaultEngagement(id string) error {
	a.config.Engagement.Default = id
	if err := a.config.SaveTo(a.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	_, err := resolveDate(s)
	return err
}

// resolveDate accepts YYYY-MM-DD or a relative keyword ("today", "monday")
// and returns YYYY-MM-DD.
func resolveDate(s string) (string, error) {
	t, err := dateutil.ParseRelativeDate(s, time.Now())
	if err != nil {
		return "", err
	}
	return t.Format(dateutil.DateLayout), nil
}
