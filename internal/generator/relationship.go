package generator

import (
	"sort"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/concordia-labs/concordia/pkg/core"
)

// resolveRelationships infers a many-to-one relationship for every
// foreign-key dimension across all views. Unresolvable foreign keys
// produce unresolved entries with a reason code; nothing is dropped
// silently. The result is a pure function of the view set and rules:
// views are visited in sorted name order and candidates matched against
// sorted table names, so the output does not depend on processing
// order.
func (g *Generator) resolveRelationships(views []*core.View, diags *core.Diagnostics) []core.Relationship {
	byTable := make(map[string]*core.View, len(views))
	tableNames := make([]string, 0, len(views))
	for _, v := range views {
		name := strings.ToLower(v.Table.Name)
		byTable[name] = v
		tableNames = append(tableNames, name)
	}
	sort.Strings(tableNames)

	sorted := make([]*core.View, len(views))
	copy(sorted, views)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var rels []core.Relationship
	for _, view := range sorted {
		for i := range view.Dimensions {
			dim := &view.Dimensions[i]
			if dim.Role != core.RoleForeignKey {
				continue
			}
			rels = append(rels, g.resolveForeignKey(view, dim, byTable, tableNames, diags))
		}
	}
	return rels
}

// resolveForeignKey resolves a single foreign-key dimension to a target
// view's primary key.
func (g *Generator) resolveForeignKey(view *core.View, dim *core.Dimension,
	byTable map[string]*core.View, tableNames []string, diags *core.Diagnostics) core.Relationship {

	rel := core.Relationship{
		SourceView:   view.Name,
		SourceColumn: dim.Name,
		Cardinality:  "many_to_one",
	}

	target := g.findTargetView(dim.Column, byTable, tableNames)
	if target == nil {
		rel.Status = core.RelationshipUnresolved
		rel.Reason = core.ReasonNoMatchingTable
		diags.Warnf(core.WarnUnresolvedRelationship, view.Table.Name, dim.Column,
			"foreign key %q does not match any known table", dim.Column)
		return rel
	}

	pk := target.PrimaryKey()
	if pk == nil {
		rel.Status = core.RelationshipUnresolved
		rel.Reason = core.ReasonNoPrimaryKey
		rel.TargetView = target.Name
		diags.Warnf(core.WarnUnresolvedRelationship, view.Table.Name, dim.Column,
			"target view %q has no primary key", target.Name)
		return rel
	}

	rel.Status = core.RelationshipResolved
	rel.TargetView = target.Name
	rel.TargetColumn = pk.Name
	return rel
}

// findTargetView derives candidate table names for a foreign-key
// column and returns the first known match. The explicit relationship
// override map is consulted first; inference then strips the
// foreign-key suffix and tries the exact stem, its plural, and a
// trailing _<stem> or _<plural> match against sorted table names.
func (g *Generator) findTargetView(column string, byTable map[string]*core.View, tableNames []string) *core.View {
	if override, ok := g.rules.Relationships[column]; ok {
		return byTable[strings.ToLower(override)]
	}

	stem, ok := g.classifier.ForeignKeyStem(column)
	if !ok {
		return nil
	}
	plural := inflect.Pluralize(stem)

	for _, candidate := range []string{stem, plural} {
		if v, ok := byTable[candidate]; ok {
			return v
		}
	}
	for _, name := range tableNames {
		if strings.HasSuffix(name, "_"+stem) || strings.HasSuffix(name, "_"+plural) {
			return byTable[name]
		}
	}
	return nil
}
