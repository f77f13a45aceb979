package generator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/concordia-labs/concordia/pkg/core"
)

// Generate runs the two-phase pipeline over a metadata snapshot.
//
// Phase 1 builds one view per table; tables have no cross-table
// dependency, so they fan out across a bounded worker pool. A table
// that violates a view invariant is recorded as a TableError and its
// view omitted; sibling tables are unaffected. Phase 2 (relationship
// resolution and explore assembly) needs every view's primary key, so
// it starts only after all Phase-1 work has completed.
//
// The only fatal outcome is a configuration error detected before any
// generation starts; everything else is collected in the returned
// diagnostics alongside the (possibly partial) project.
func (g *Generator) Generate(ctx context.Context, tables []core.TableMetadata) (*core.Project, *core.Diagnostics, error) {
	diags := core.NewDiagnostics()

	if err := g.validateDeclarations(tables); err != nil {
		return nil, diags, err
	}

	g.logger.Info("starting generation", "run_id", diags.RunID, "tables", len(tables))

	// Phase 1: per-table view construction.
	type tableResult struct {
		view  *core.View
		diags *core.Diagnostics
		err   error
	}
	results := make([]tableResult, len(tables))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := range tables {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			// Each table gets its own accumulator; they are merged in
			// input order after the barrier so output is deterministic.
			local := &core.Diagnostics{}
			view, err := g.buildView(&tables[i], local)
			results[i] = tableResult{view: view, diags: local, err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, diags, err
	}

	project := &core.Project{
		Name:       g.looker.ProjectPath,
		Connection: g.looker.Connection,
	}
	for i := range results {
		diags.Merge(results[i].diags)
		if results[i].err != nil {
			diags.AddTableError(tables[i].Name, results[i].err)
			g.logger.Warn("table failed, view omitted",
				"table", tables[i].Name, "error", results[i].err)
			continue
		}
		project.Views = append(project.Views, results[i].view)
	}

	// Phase 2: whole-project resolution. Every surviving view exists
	// at this point.
	project.Relationships = g.resolveRelationships(project.Views, diags)
	project.Explores = g.buildExplores(project.Views, project.Relationships, diags)

	g.logger.Info("generation complete",
		"run_id", diags.RunID,
		"views", len(project.Views),
		"explores", len(project.Explores),
		"warnings", len(diags.Warnings),
		"table_errors", len(diags.TableErrors))

	return project, diags, nil
}

// validateDeclarations checks configuration declarations against the
// metadata snapshot. A declaration referencing a nonexistent table or
// column is a fatal configuration error, raised before Phase 1.
func (g *Generator) validateDeclarations(tables []core.TableMetadata) error {
	byName := make(map[string]*core.TableMetadata, len(tables))
	for i := range tables {
		byName[strings.ToLower(tables[i].Name)] = &tables[i]
	}

	for i, cm := range g.rules.CustomMeasures {
		table, ok := byName[strings.ToLower(cm.Table)]
		if !ok {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.custom_measures[%d].table", i),
				Message: fmt.Sprintf("unknown table %q", cm.Table),
			}
		}
		if cm.Column != "" && table.Column(cm.Column) == nil {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.custom_measures[%d].column", i),
				Message: fmt.Sprintf("table %q has no column %q", cm.Table, cm.Column),
			}
		}
	}

	for i, ce := range g.rules.CustomExplores {
		if _, ok := byName[strings.ToLower(ce.BaseTable)]; !ok {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.custom_explores[%d].base_table", i),
				Message: fmt.Sprintf("unknown table %q", ce.BaseTable),
			}
		}
		for j, cj := range ce.Joins {
			if _, ok := byName[strings.ToLower(cj.Table)]; !ok {
				return &core.ConfigError{
					Field:   fmt.Sprintf("model_rules.custom_explores[%d].joins[%d].table", i, j),
					Message: fmt.Sprintf("unknown table %q", cj.Table),
				}
			}
		}
	}

	for column, target := range g.rules.Relationships {
		if _, ok := byName[strings.ToLower(target)]; !ok {
			return &core.ConfigError{
				Field:   "model_rules.relationships." + column,
				Message: fmt.Sprintf("unknown table %q", target),
			}
		}
	}

	return nil
}
