package generator

import (
	"fmt"
	"strings"

	"github.com/concordia-labs/concordia/internal/config"
	"github.com/concordia-labs/concordia/pkg/core"
)

// buildExplores assembles one explore per view (or per configured
// subset), attaching joins from resolved relationships, then merges
// user-declared custom explores last.
func (g *Generator) buildExplores(views []*core.View, rels []core.Relationship, diags *core.Diagnostics) []*core.Explore {
	wanted := make(map[string]bool, len(g.looker.Explores))
	for _, t := range g.looker.Explores {
		wanted[strings.ToLower(t)] = true
	}

	var explores []*core.Explore
	for _, view := range views {
		if len(wanted) > 0 && !wanted[strings.ToLower(view.Table.Name)] {
			continue
		}
		explores = append(explores, g.buildBaseExplore(view, views, rels))
	}

	return g.mergeCustomExplores(explores, views, diags)
}

// buildBaseExplore assembles the default explore for one view.
func (g *Generator) buildBaseExplore(view *core.View, views []*core.View, rels []core.Relationship) *core.Explore {
	explore := &core.Explore{
		Name:     g.exploreName(view.Table.Name),
		From:     view.Name,
		ViewName: view.Name,
	}
	if view.Description != "" {
		explore.Description = "Explore " + view.Description
	}

	for _, rel := range rels {
		if !rel.Resolved() || rel.SourceView != view.Name {
			continue
		}
		explore.Joins = append(explore.Joins, core.Join{
			View:         rel.TargetView,
			Type:         g.looker.JoinType,
			Relationship: rel.Cardinality,
			SQLOn:        joinPredicate(rel),
		})
	}

	explore.Fields = g.suggestedFields(view, explore.Joins, views)
	return explore
}

// joinPredicate renders base.fk_column = target.pk_column.
func joinPredicate(rel core.Relationship) string {
	return fmt.Sprintf("${%s.%s} = ${%s.%s}",
		rel.SourceView, rel.SourceColumn, rel.TargetView, rel.TargetColumn)
}

// suggestedFields computes the default field set: every non-hidden
// dimension and measure of the base view, plus the non-hidden
// dimensions of each 1-hop joined view.
func (g *Generator) suggestedFields(view *core.View, joins []core.Join, views []*core.View) []string {
	var fields []string
	for i := range view.Dimensions {
		if d := &view.Dimensions[i]; !d.Hidden {
			fields = append(fields, view.Name+"."+d.Name)
		}
	}
	for i := range view.Measures {
		if m := &view.Measures[i]; !m.Hidden {
			fields = append(fields, view.Name+"."+m.Name)
		}
	}
	for _, join := range joins {
		for _, v := range views {
			if v.Name != join.View {
				continue
			}
			for i := range v.Dimensions {
				if d := &v.Dimensions[i]; !d.Hidden {
					fields = append(fields, v.Name+"."+d.Name)
				}
			}
		}
	}
	return fields
}

// mergeCustomExplores applies declared explores: a declaration naming
// an existing explore overrides its joins and field set; otherwise a
// new explore is appended. Declarations are validated against the view
// set before Phase 1, so lookups here cannot miss.
func (g *Generator) mergeCustomExplores(explores []*core.Explore, views []*core.View, diags *core.Diagnostics) []*core.Explore {
	byTable := make(map[string]*core.View, len(views))
	for _, v := range views {
		byTable[strings.ToLower(v.Table.Name)] = v
	}

	for _, ce := range g.rules.CustomExplores {
		base := byTable[strings.ToLower(ce.BaseTable)]
		if base == nil {
			// Base table's view was dropped by a table error; skip the
			// declaration rather than emit a dangling explore.
			g.logger.Warn("skipping custom explore, base view missing",
				"explore", ce.Name, "table", ce.BaseTable)
			continue
		}

		custom := g.buildCustomExplore(ce, base, byTable)

		replaced := false
		for i, e := range explores {
			if e.Name == custom.Name {
				explores[i] = mergeExplores(e, custom)
				replaced = true
				break
			}
		}
		if !replaced {
			explores = append(explores, custom)
		}
	}
	return explores
}

// buildCustomExplore assembles an explore from a declaration.
func (g *Generator) buildCustomExplore(ce config.CustomExplore, base *core.View, byTable map[string]*core.View) *core.Explore {
	explore := &core.Explore{
		Name:        ce.Name,
		From:        base.Name,
		ViewName:    base.Name,
		Description: ce.Description,
		Hidden:      ce.Hidden,
		Fields:      ce.Fields,
	}

	for _, cj := range ce.Joins {
		join := core.Join{
			Type:         cj.Type,
			Relationship: cj.Relationship,
			SQLOn:        cj.SQLOn,
			Fields:       cj.Fields,
		}
		if v := byTable[strings.ToLower(cj.Table)]; v != nil {
			join.View = v.Name
		} else {
			join.View = strings.ToLower(cj.Table)
		}
		if join.Type == "" {
			join.Type = g.looker.JoinType
		}
		if join.Relationship == "" {
			join.Relationship = "many_to_one"
		}
		explore.Joins = append(explore.Joins, join)
	}

	if ce.Aggregate != nil {
		explore.DerivedTableSQL = aggregateSQL(base.Name, ce.Aggregate)
	}

	return explore
}

// mergeExplores overlays a custom explore onto a generated one:
// declared joins replace generated joins to the same view, declared
// fields replace the suggested set, and scalar attributes win when set.
func mergeExplores(generated, custom *core.Explore) *core.Explore {
	merged := *generated

	for _, cj := range custom.Joins {
		replaced := false
		for i := range merged.Joins {
			if merged.Joins[i].View == cj.View {
				merged.Joins[i] = cj
				replaced = true
				break
			}
		}
		if !replaced {
			merged.Joins = append(merged.Joins, cj)
		}
	}

	if len(custom.Fields) > 0 {
		merged.Fields = custom.Fields
	}
	if custom.Description != "" {
		merged.Description = custom.Description
	}
	merged.Hidden = custom.Hidden
	merged.DerivedTableSQL = custom.DerivedTableSQL
	return &merged
}

// aggregateSQL builds the derived-table SQL for an aggregate explore.
// Only additive (sum-type) measures are safe to compose across joins,
// which is why the rule declares them explicitly.
func aggregateSQL(baseView string, rule *config.AggregateRule) string {
	selects := append(append([]string{}, rule.GroupBy...), rule.Measures...)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(selects, ", "))
	sb.WriteString(" FROM ${" + baseView + ".SQL_TABLE_NAME}")
	if len(rule.GroupBy) > 0 {
		sb.WriteString(" GROUP BY " + strings.Join(rule.GroupBy, ", "))
	}
	return sb.String()
}
