// Package render serializes a generated core.Project into LookML text
// and writes the per-view and combined explore artifacts. It consumes
// the project read-only; all structural guarantees (uniqueness, single
// primary key) are enforced upstream by the generator.
package render

import (
	"fmt"
	"strings"

	"github.com/concordia-labs/concordia/pkg/core"
)

// View renders one view definition as LookML.
func View(v *core.View) string {
	var b block
	b.openf("view: %s", v.Name)
	b.linef("sql_table_name: %s ;;", v.SQLTableName)
	if v.Description != "" {
		b.linef("description: %s", quote(v.Description))
	}

	for i := range v.Dimensions {
		b.blank()
		dimension(&b, &v.Dimensions[i])
	}

	for i := range v.Measures {
		b.blank()
		measure(&b, &v.Measures[i])
	}

	if len(v.DrillSet) > 0 {
		b.blank()
		b.open("set: detail")
		b.linef("fields: [%s]", strings.Join(v.DrillSet, ", "))
		b.close()
	}

	b.close()
	return b.String()
}

// Explores renders every explore of the project as a single LookML
// model document, headed by the connection and view includes.
func Explores(p *core.Project, includeGlob string) string {
	var b block
	b.linef("connection: %s", quote(p.Connection))
	if includeGlob != "" {
		b.linef("include: %s", quote(includeGlob))
	}

	for _, e := range p.Explores {
		b.blank()
		explore(&b, e)
	}

	return b.String()
}

func dimension(b *block, d *core.Dimension) {
	if d.IsGroup() {
		b.openf("dimension_group: %s", d.Name)
	} else {
		b.openf("dimension: %s", d.Name)
	}

	if d.PrimaryKey {
		b.line("primary_key: yes")
	}
	if d.Hidden {
		b.line("hidden: yes")
	}
	if d.Label != "" {
		b.linef("label: %s", quote(d.Label))
	}
	if d.GroupLabel != "" {
		b.linef("group_label: %s", quote(d.GroupLabel))
	}
	b.linef("type: %s", d.Type)
	if d.IsGroup() {
		b.linef("timeframes: [%s]", strings.Join(d.Timeframes, ", "))
	}
	if d.Description != "" {
		b.linef("description: %s", quote(d.Description))
	}
	b.linef("sql: %s ;;", d.SQL)
	b.close()
}

func measure(b *block, m *core.Measure) {
	b.openf("measure: %s", m.Name)
	if m.Hidden {
		b.line("hidden: yes")
	}
	if m.Label != "" {
		b.linef("label: %s", quote(m.Label))
	}
	b.linef("type: %s", m.Type)
	if m.Description != "" {
		b.linef("description: %s", quote(m.Description))
	}
	if m.SQL != "" {
		b.linef("sql: %s ;;", m.SQL)
	}
	if len(m.DrillFields) > 0 {
		b.linef("drill_fields: [%s]", strings.Join(m.DrillFields, ", "))
	}
	b.close()
}

func explore(b *block, e *core.Explore) {
	b.openf("explore: %s", e.Name)
	if e.From != e.Name {
		b.linef("from: %s", e.From)
	}
	b.linef("view_name: %s", e.ViewName)
	if e.Hidden {
		b.line("hidden: yes")
	}
	if e.Description != "" {
		b.linef("description: %s", quote(e.Description))
	}
	if len(e.Fields) > 0 {
		b.linef("fields: [%s]", strings.Join(e.Fields, ", "))
	}

	if e.DerivedTableSQL != "" {
		b.blank()
		b.open("derived_table:")
		b.linef("sql: %s ;;", e.DerivedTableSQL)
		b.close()
	}

	for i := range e.Joins {
		b.blank()
		join(b, &e.Joins[i])
	}

	b.close()
}

func join(b *block, j *core.Join) {
	b.openf("join: %s", j.View)
	b.linef("type: %s", j.Type)
	b.linef("relationship: %s", j.Relationship)
	b.linef("sql_on: %s ;;", j.SQLOn)
	if len(j.Fields) > 0 {
		b.linef("fields: [%s]", strings.Join(j.Fields, ", "))
	}
	b.close()
}

// quote renders a double-quoted LookML string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// block accumulates indented LookML text.
type block struct {
	sb    strings.Builder
	depth int
}

func (b *block) indent() {
	for i := 0; i < b.depth; i++ {
		b.sb.WriteString("  ")
	}
}

func (b *block) line(s string) {
	b.indent()
	b.sb.WriteString(s)
	b.sb.WriteByte('\n')
}

func (b *block) linef(format string, args ...any) {
	b.line(fmt.Sprintf(format, args...))
}

func (b *block) blank() {
	b.sb.WriteByte('\n')
}

// open starts a braced block: `header {`.
func (b *block) open(header string) {
	b.line(header + " {")
	b.depth++
}

func (b *block) openf(format string, args ...any) {
	b.open(fmt.Sprintf(format, args...))
}

func (b *block) close() {
	b.depth--
	b.line("}")
}

func (b *block) String() string {
	return b.sb.String()
}
