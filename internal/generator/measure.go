package generator

import (
	"fmt"
	"strings"

	"github.com/concordia-labs/concordia/pkg/core"
)

// buildMeasures synthesizes the default measures for a view and merges
// user-declared custom measures last. Generated names are derived
// deterministically from column name plus aggregation kind, so
// generated measures cannot collide with each other. A collision with
// a declared measure resolves in favor of the declaration and records
// a warning.
func (g *Generator) buildMeasures(table *core.TableMetadata, dims []core.Dimension, diags *core.Diagnostics) []core.Measure {
	var measures []core.Measure
	defaults := g.rules.Defaults

	if defaults.HasMeasure("count") {
		measures = append(measures, core.Measure{
			Name:        "count",
			Kind:        core.AggregateCount,
			Type:        "count",
			Description: "Count of records",
			DrillFields: []string{"detail*"},
		})
	}

	for i := range dims {
		d := &dims[i]
		if !g.isMeasurable(d) {
			continue
		}
		if defaults.HasMeasure("sum") {
			measures = append(measures, core.Measure{
				Name:  d.Name + "_total",
				Kind:  core.AggregateSum,
				Type:  "sum",
				SQL:   d.SQL,
				Label: g.labelFor(d.Name + "_total"),
			})
		}
		if defaults.HasMeasure("average") {
			measures = append(measures, core.Measure{
				Name:  d.Name + "_average",
				Kind:  core.AggregateAverage,
				Type:  "average",
				SQL:   d.SQL,
				Label: g.labelFor(d.Name + "_average"),
			})
		}
	}

	if defaults.HasMeasure("ratio") {
		measures = append(measures, g.buildRatioMeasures(table)...)
	}

	return g.mergeCustomMeasures(table, measures, diags)
}

// isMeasurable reports whether a dimension should receive sum/average
// measures: numeric per the type mapping, non-key, not excluded by
// configuration.
func (g *Generator) isMeasurable(d *core.Dimension) bool {
	if !d.Numeric || d.IsGroup() {
		return false
	}
	if d.Role == core.RolePrimaryKey || d.Role == core.RoleForeignKey || d.PrimaryKey {
		return false
	}
	for _, name := range g.rules.Defaults.ExcludeMeasuresFor {
		if strings.EqualFold(name, d.Column) || strings.EqualFold(name, d.Name) {
			return false
		}
	}
	return true
}

// buildRatioMeasures pairs columns sharing a stem under the configured
// numerator/denominator convention and emits one ratio measure per
// pair, in column order of the numerator.
func (g *Generator) buildRatioMeasures(table *core.TableMetadata) []core.Measure {
	numSuffix := strings.ToLower(g.rules.Defaults.NumeratorSuffix)
	denSuffix := strings.ToLower(g.rules.Defaults.DenominatorSuffix)
	if numSuffix == "" || denSuffix == "" {
		return nil
	}

	denominators := make(map[string]string) // stem -> column name
	for _, col := range table.Columns {
		lower := strings.ToLower(col.Name)
		if strings.HasSuffix(lower, denSuffix) {
			denominators[strings.TrimSuffix(lower, denSuffix)] = col.Name
		}
	}

	var measures []core.Measure
	for _, col := range table.Columns {
		lower := strings.ToLower(col.Name)
		if !strings.HasSuffix(lower, numSuffix) {
			continue
		}
		stem := strings.TrimSuffix(lower, numSuffix)
		den, ok := denominators[stem]
		if !ok || stem == "" {
			continue
		}
		name := stem + "_ratio"
		measures = append(measures, core.Measure{
			Name:  name,
			Kind:  core.AggregateRatio,
			Type:  "number",
			SQL:   fmt.Sprintf("SUM(%s) / NULLIF(SUM(%s), 0)", columnSQL(col.Name), columnSQL(den)),
			Label: g.labelFor(name),
		})
	}
	return measures
}

// mergeCustomMeasures appends declared measures for the table,
// replacing generated measures on name collision.
func (g *Generator) mergeCustomMeasures(table *core.TableMetadata, measures []core.Measure, diags *core.Diagnostics) []core.Measure {
	for _, cm := range g.rules.CustomMeasures {
		if cm.Table != table.Name {
			continue
		}
		m := core.Measure{
			Name:        cm.Name,
			Kind:        core.AggregateCustom,
			Type:        cm.Type,
			SQL:         cm.SQL,
			Label:       cm.Label,
			Description: cm.Description,
			Hidden:      cm.Hidden,
		}
		if m.SQL == "" && cm.Column != "" {
			m.SQL = columnSQL(cm.Column)
		}
		if m.Label == "" {
			m.Label = g.labelFor(cm.Name)
		}

		replaced := false
		for i := range measures {
			if measures[i].Name == m.Name {
				diags.Warnf(core.WarnMeasureOverride, table.Name, cm.Column,
					"declared measure %q overrides generated %s measure", m.Name, measures[i].Kind)
				measures[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			measures = append(measures, m)
		}
	}
	return measures
}
