package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekline/internal/config"
	"github.com/javiermolinar/weekline/internal/plan"
	"github.com/javiermolinar/weekline/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// ErrNoEngagement is returned when a command needs an engagement and none exists.
var ErrNoEngagement = errors.New("no engagements yet; create one with 'weekline engagement new'")

// App holds the CLI application state.
type App struct {
	repo       plan.Repository
	ownsRepo   bool
	config     *config.Config
	configPath string
	root       *cobra.Command
	debug      bool   // Enable debug logging
	engagement string // --engagement override

	interactive func() bool // whether forms may prompt
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo plan.Repository, cfg *config.Config) *App {
	a := &App{
		repo:        repo,
		config:      cfg,
		configPath:  config.DefaultConfigPath(),
		interactive: stdinIsTerminal,
	}

	a.root = &cobra.Command{
		Use:   "weekline",
		Short: "A terminal timeline for engagement deliverables",
		Long: `Weekline plans the services of a client engagement on a week-by-week
timeline.

Run without arguments to open the interactive timeline. Drag bars to move
them, drag their edges to resize, click an empty row to schedule it and
double-click a bar to rename it.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			var opts []tui.ModelOption
			if a.engagement != "" {
				opts = append(opts, tui.WithEngagement(a.engagement))
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug, opts...)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")
	a.root.PersistentFlags().StringVarP(&a.engagement, "engagement", "e", "", "Engagement id (defaults to config, then most recent)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.engagementCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weekline %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases a repository the app opened itself.
func (a *App) Close() error {
	if !a.ownsRepo || a.repo == nil {
		return nil
	}
	err := a.repo.Close()
	a.repo = nil
	a.ownsRepo = false
	return err
}

func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := tui.OpenRepo(a.config.Storage.DBPath)
	if err != nil {
		return err
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

// resolveEngagement picks the engagement a command works on: the flag, then
// the configured default, then the most recent one.
func (a *App) resolveEngagement(ctx context.Context) (*plan.Engagement, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	id := a.engagement
	if id == "" {
		id = a.config.Engagement.Default
	}
	if id != "" {
		e, err := a.repo.GetEngagement(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("engagement %s: %w", id, err)
		}
		return e, nil
	}
	all, err := a.repo.ListEngagements(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing engagements: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrNoEngagement
	}
	return all[0], nil
}
