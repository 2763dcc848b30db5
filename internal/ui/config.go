package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekline/internal/config"
	"github.com/javiermolinar/weekline/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  weekline config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.OutOrStdout(), a.configPath, a.interactive())
		},
	}
}

func runConfigInteractive(out io.Writer, configPath string, interactive bool) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)
	if !interactive {
		return nil
	}

	edit := false
	confirm := huh.NewConfirm().
		Title("Edit the configuration?").
		Value(&edit)
	if err := confirm.Run(); err != nil {
		return err
	}
	if !edit {
		return nil
	}

	if !theme.IsAvailable(cfg.UI.Theme) {
		fmt.Fprintf(out, "%s\n", formatMuted(fmt.Sprintf("Unknown theme %q, falling back to %s", cfg.UI.Theme, config.Default().UI.Theme)))
		cfg.UI.Theme = config.Default().UI.Theme
	}
	if err := configForm(cfg).Run(); err != nil {
		return err
	}

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

// configForm binds the editable settings to a form. Numeric fields are
// edited as text and written back once they validate.
func configForm(cfg *config.Config) *huh.Form {
	weekWidth := strconv.Itoa(cfg.UI.WeekWidth)
	doubleClick := strconv.Itoa(cfg.UI.DoubleClickMS)

	themes := make([]huh.Option[string], 0, len(theme.Available()))
	for _, name := range theme.Available() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&cfg.UI.Theme),
			huh.NewInput().
				Title("Week column width").
				Description(fmt.Sprintf("%d to %d cells", config.MinWeekWidth, config.MaxWeekWidth)).
				Value(&weekWidth).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < config.MinWeekWidth || n > config.MaxWeekWidth {
						return fmt.Errorf("must be %d to %d", config.MinWeekWidth, config.MaxWeekWidth)
					}
					cfg.UI.WeekWidth = n
					return nil
				}),
			huh.NewInput().
				Title("Double-click window (ms)").
				Description("50 to 2000").
				Value(&doubleClick).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 50 || n > 2000 {
						return errors.New("must be 50 to 2000")
					}
					cfg.UI.DoubleClickMS = n
					return nil
				}),
			huh.NewConfirm().
				Title("Show amounts next to item names?").
				Value(&cfg.UI.ShowAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Database path").
				Value(&cfg.Storage.DBPath).
				Validate(requireText("database path")),
			huh.NewInput().
				Title("Save timeout").
				Description("Go duration, e.g. 5s").
				Value(&cfg.Storage.SaveTimeout),
		),
	).WithShowHelp(false)
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[storage]")
	fmt.Fprintf(out, "  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(out, "  save_timeout     = %s\n", cfg.Storage.SaveTimeout)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme            = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  week_width       = %d\n", cfg.UI.WeekWidth)
	fmt.Fprintf(out, "  double_click_ms  = %d\n", cfg.UI.DoubleClickMS)
	fmt.Fprintf(out, "  show_amount      = %t\n", cfg.UI.ShowAmount)
	fmt.Fprintln(out, "\n[engagement]")
	def := cfg.Engagement.Default
	if def == "" {
		def = formatMuted("(most recent)")
	}
	fmt.Fprintf(out, "  default          = %s\n", def)
}
