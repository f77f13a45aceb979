package generator

import (
	"fmt"

	"github.com/concordia-labs/concordia/pkg/core"
)

// buildView assembles the view for one table: dimensions in column
// order, then measures, then the detail drill set. It validates the
// single-primary-key and name-uniqueness invariants before returning;
// a violation fails this table only.
func (g *Generator) buildView(table *core.TableMetadata, diags *core.Diagnostics) (*core.View, error) {
	dims := g.buildDimensions(table, diags)
	measures := g.buildMeasures(table, dims, diags)

	if err := validateFields(dims, measures); err != nil {
		return nil, err
	}

	view := &core.View{
		Name:         g.viewName(table.Name),
		SQLTableName: fmt.Sprintf("`%s`", table.QualifiedName()),
		Description:  table.Description,
		Dimensions:   dims,
		Measures:     measures,
		Table:        table,
	}

	for i := range dims {
		if !dims[i].Hidden && !dims[i].IsGroup() {
			view.DrillSet = append(view.DrillSet, dims[i].Name)
		}
	}

	g.logger.Debug("built view",
		"view", view.Name,
		"dimensions", len(dims),
		"measures", len(measures))

	return view, nil
}

// validateFields enforces the view invariants: at most one primary-key
// dimension, and no duplicate names across dimensions and measures.
func validateFields(dims []core.Dimension, measures []core.Measure) error {
	seen := make(map[string]string, len(dims)+len(measures))
	primaryKeys := 0

	for i := range dims {
		d := &dims[i]
		if d.PrimaryKey {
			primaryKeys++
			if primaryKeys > 1 {
				return fmt.Errorf("multiple primary-key dimensions (second is %q)", d.Name)
			}
		}
		if prev, ok := seen[d.Name]; ok {
			return fmt.Errorf("duplicate field name %q (dimension collides with %s)", d.Name, prev)
		}
		seen[d.Name] = "dimension"
	}

	for i := range measures {
		m := &measures[i]
		if prev, ok := seen[m.Name]; ok {
			return fmt.Errorf("duplicate field name %q (measure collides with %s)", m.Name, prev)
		}
		seen[m.Name] = "measure"
	}

	return nil
}
