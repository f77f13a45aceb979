package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/concordia-labs/concordia/internal/config"
)

// defaultConfigTemplate is the concordia.yaml written by init.
const defaultConfigTemplate = `# Concordia configuration
# See https://github.com/concordia-labs/concordia for documentation.

connection:
  type: postgres          # postgres or duckdb
  host: localhost
  port: 5432
  database: warehouse
  user: concordia
  project_id: my-project
  datasets:
    - analytics

looker:
  project_path: ./looker
  views_path: views
  explores_path: explores/concordia.explore.lkml
  connection: my-connection

model_rules:
  naming_conventions:
    pk_suffixes: [_pk]
    fk_suffixes: [_fk]
    time_suffixes: [_at, _date, _time, _ts, _timestamp]
    bool_prefixes: [is_, has_]
  defaults:
    measures: [count, sum, average, ratio]
    hide_fields_by_suffix: [_pk, _fk]
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Concordia project",
		Long: `Initialize a new Concordia project by writing a concordia.yaml
configuration file with documented defaults.`,
		Example: `  # Initialize in the current directory
  concordia init

  # Initialize in a new directory
  concordia init my-project

  # Overwrite an existing configuration
  concordia init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit connection settings for your warehouse")
	fmt.Fprintln(out, "  2. Adjust naming conventions to match your schema")
	fmt.Fprintln(out, "  3. Run 'concordia generate' to produce LookML")

	return nil
}
