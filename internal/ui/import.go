package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekline/internal/importer"
)

func (a *App) importCmd() *cobra.Command {
	var (
		into    string
		makeDef bool
	)

	cmd := &cobra.Command{
		Use:   "import <plan.yaml>",
		Short: "Import an engagement and its services from a YAML file",
		Long: `Import an engagement and its service items from a YAML plan file.
Use "-" to read the plan from stdin.

With --into the services are appended to an existing engagement and the
file's engagement block is ignored.

Example plan:
  engagement:
    name: Acme rebrand
    client: Acme
    start: 2024-01-01
    end: 2024-03-25
  services:
    - category: web
      name: Landing Page
      amount: 1 page
      weeks: [2, 4]
    - category: identity
      name: Logo Design`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				f   *importer.File
				err error
			)
			source := args[0]
			if source == "-" {
				source = "stdin"
				f, err = importer.Parse(cmd.InOrStdin())
			} else {
				source, err = resolvePath(source)
				if err != nil {
					return err
				}
				f, err = importer.ParseFile(source)
			}
			if err != nil {
				return err
			}

			if err := a.ensureRepo(); err != nil {
				return err
			}
			res, err := importer.Import(context.Background(), a.repo, f, into)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Created {
				fmt.Fprintf(out, "Created engagement %s: %s (%d weeks)\n",
					res.Engagement.ID, res.Engagement.Name, res.Engagement.WeekCount())
			}
			fmt.Fprintf(out, "Imported %d services from %s into %s\n", len(res.Items), source, res.Engagement.Name)
			if makeDef {
				if err := a.setDefaultEngagement(res.Engagement.ID); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "Append services to this engagement id")
	cmd.Flags().BoolVar(&makeDef, "default", false, "Make the engagement the default")
	return cmd
}

// resolvePath expands a leading ~ and makes the path absolute.
func resolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
