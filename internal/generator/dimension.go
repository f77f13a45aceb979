package generator

import (
	"fmt"
	"strings"

	"github.com/concordia-labs/concordia/internal/config"
	"github.com/concordia-labs/concordia/pkg/core"
)

// buildDimensions generates one dimension (or dimension group) per
// column, in column order, followed by any case dimensions declared for
// the table. Warnings go into diags; this never fails.
func (g *Generator) buildDimensions(table *core.TableMetadata, diags *core.Diagnostics) []core.Dimension {
	dims := make([]core.Dimension, 0, len(table.Columns))

	for i := range table.Columns {
		col := &table.Columns[i]
		role := g.classifier.Classify(col.Name)

		entry, known := g.types.Map(col.Type)
		if !known {
			diags.Warnf(core.WarnUnknownType, table.Name, col.Name,
				"no type mapping for %s type %q, falling back to %s", col.Type, col.Type, entry.LookMLType)
			g.logger.Warn("unknown source type",
				"table", table.Name, "column", col.Name, "type", col.Type)
		}

		dims = append(dims, g.buildDimension(col, role, entry))
	}

	for _, rule := range g.rules.CaseDimensions {
		if rule.Table != "" && rule.Table != table.Name {
			continue
		}
		if table.Column(rule.Column) == nil {
			continue
		}
		dims = append(dims, g.buildCaseDimension(rule))
	}

	return dims
}

// buildDimension generates a single dimension for a classified, typed
// column.
func (g *Generator) buildDimension(col *core.ColumnMetadata, role core.Role, entry TypeEntry) core.Dimension {
	d := core.Dimension{
		Name:        strings.ToLower(col.Name),
		Type:        entry.LookMLType,
		SQL:         columnSQL(col.Name),
		Description: col.Description,
		Hidden:      g.shouldHide(col.Name),
		Numeric:     entry.Numeric,
		Role:        role,
		Column:      col.Name,
	}

	// Temporal columns become a dimension group named after the column
	// stem, carrying the fixed timeframe list for their type.
	if len(entry.Timeframes) > 0 {
		d.Name = g.classifier.TimeGroupName(col.Name)
		d.Timeframes = entry.Timeframes
		d.Label = g.labelFor(d.Name)
		return d
	}

	d.Label = g.labelFor(d.Name)

	switch role {
	case core.RolePrimaryKey:
		// Declared constraints and naming convention both mark the
		// primary key; either is sufficient.
		d.PrimaryKey = true
	case core.RoleBooleanFlag:
		// Flags render as yesno or a labeled conditional; numeric
		// sources lose sum/average eligibility.
		d.Numeric = false
		cond := columnSQL(col.Name)
		if entry.LookMLType != "yesno" {
			// Non-boolean source: positive values count as true.
			cond += " > 0"
		}
		defaults := g.rules.Defaults
		customLabels := defaults.TrueLabel != "" && defaults.FalseLabel != "" &&
			(defaults.TrueLabel != config.DefaultTrueLabel || defaults.FalseLabel != config.DefaultFalseLabel)
		if customLabels {
			// Custom display labels need an explicit conditional;
			// LookML's yesno rendering is fixed to Yes/No.
			d.Type = "string"
			d.SQL = fmt.Sprintf("CASE WHEN %s THEN '%s' ELSE '%s' END",
				cond, defaults.TrueLabel, defaults.FalseLabel)
		} else {
			d.Type = "yesno"
			d.SQL = cond
		}
	}
	if col.PrimaryKey {
		d.PrimaryKey = true
	}

	return d
}

// buildCaseDimension generates a conditional string dimension from a
// declared bucket rule.
func (g *Generator) buildCaseDimension(rule config.CaseRule) core.Dimension {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, w := range rule.Whens {
		fmt.Fprintf(&sb, " WHEN %s THEN '%s'", w.Condition, w.Value)
	}
	fmt.Fprintf(&sb, " ELSE '%s' END", rule.Default)

	name := rule.Name
	if name == "" {
		name = rule.Column + "_category"
	}
	desc := rule.Description
	if desc == "" {
		desc = "Categorized " + rule.Column
	}

	return core.Dimension{
		Name:        name,
		Type:        "string",
		SQL:         sb.String(),
		Label:       g.labelFor(name),
		Description: desc,
		Role:        core.RolePlain,
		Column:      rule.Column,
	}
}

// columnSQL renders the ${TABLE}.column expression.
func columnSQL(column string) string {
	return "${TABLE}." + column
}
