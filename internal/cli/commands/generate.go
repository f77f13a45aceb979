package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/concordia-labs/concordia/internal/config"
	"github.com/concordia-labs/concordia/internal/generator"
	"github.com/concordia-labs/concordia/internal/metadata"
	"github.com/concordia-labs/concordia/internal/render"
	"github.com/concordia-labs/concordia/pkg/core"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var dryRun bool
	var workers int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate LookML views and explores from warehouse metadata",
		Long: `Introspect the configured warehouse datasets and generate one LookML
view per table plus explores with inferred join relationships.

Tables that violate a view invariant are reported and skipped; the rest
of the project is still generated.`,
		Example: `  # Generate using ./concordia.yaml
  concordia generate

  # Show what would be generated without writing files
  concordia generate --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return runGenerate(cmd, cfg, dryRun, workers)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate without writing files")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel table workers (0 = number of CPUs)")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, dryRun bool, workers int) error {
	logger := slog.Default()
	out := cmd.OutOrStdout()
	start := time.Now()

	source, err := metadata.Open(cfg.Connection, logger)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	tables, err := source.Snapshot(cmd.Context(), cfg.Connection.Project, cfg.Connection.Datasets)
	if err != nil {
		return fmt.Errorf("metadata extraction failed: %w", err)
	}
	fmt.Fprintf(out, "Found %d tables in %d dataset(s)\n", len(tables), len(cfg.Connection.Datasets))

	gen := generator.New(generator.Config{
		Rules:   cfg.ModelRules,
		Looker:  cfg.Looker,
		Workers: workers,
		Logger:  logger,
	})

	project, diags, err := gen.Generate(cmd.Context(), tables)
	if err != nil {
		return err
	}

	if !dryRun {
		writer := render.NewWriter(cfg.Looker, logger)
		written, err := writer.WriteProject(project)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d files to %s\n", len(written), cfg.Looker.ProjectPath)
	}

	printSummary(cmd, project, diags)
	fmt.Fprintf(out, "Completed in %s\n", time.Since(start).Round(time.Millisecond))

	if diags.HasErrors() {
		return fmt.Errorf("%d table(s) failed generation", len(diags.TableErrors))
	}
	return nil
}

// printSummary renders the per-view result table plus warnings.
func printSummary(cmd *cobra.Command, project *core.Project, diags *core.Diagnostics) {
	out := cmd.OutOrStdout()

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"View", "Dimensions", "Measures", "Joins"})

	joinCount := make(map[string]int)
	for _, e := range project.Explores {
		joinCount[e.From] += len(e.Joins)
	}
	for _, v := range project.Views {
		t.AppendRow(table.Row{v.Name, len(v.Dimensions), len(v.Measures), joinCount[v.Name]})
	}
	t.AppendFooter(table.Row{"explores", "", "", len(project.Explores)})
	t.Render()

	for _, w := range diags.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning [%s] %s.%s: %s\n", w.Code, w.Table, w.Column, w.Message)
	}
	for _, e := range diags.TableErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", e)
	}
}
