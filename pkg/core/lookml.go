// Package core provides the shared domain types for LookML generation:
// warehouse metadata, LookML definitions, and the diagnostics accumulator.
// It has no dependencies on the generator or any I/O concern.
package core

// Role is the semantic role assigned to a column by naming convention.
type Role string

// Recognized semantic roles, in classification precedence order.
const (
	RolePrimaryKey  Role = "primary_key"
	RoleForeignKey  Role = "foreign_key"
	RoleTimestamp   Role = "timestamp"
	RoleBooleanFlag Role = "boolean_flag"
	RolePlain       Role = "plain"
)

// Dimension is a single LookML dimension or dimension group.
// A non-empty Timeframes list marks a dimension group.
type Dimension struct {
	// Name is the field name, unique within the owning view
	Name string
	// Type is the LookML type (string, number, yesno, time, ...)
	Type string
	// SQL is the underlying expression (e.g. ${TABLE}.user_pk)
	SQL string
	// Label is the human-readable label
	Label string
	// Description from column metadata, if any
	Description string
	// Hidden hides the field from the field picker
	Hidden bool
	// PrimaryKey marks this dimension as the view's primary key
	PrimaryKey bool
	// GroupLabel groups related fields in the field picker
	GroupLabel string
	// Timeframes for dimension groups (raw, date, week, ...)
	Timeframes []string
	// Numeric marks the dimension as eligible for sum/average synthesis
	Numeric bool
	// Role the classifier assigned to the source column
	Role Role
	// Column is the source column name this dimension was built from
	Column string
}

// IsGroup reports whether the dimension is a dimension group.
func (d *Dimension) IsGroup() bool {
	return len(d.Timeframes) > 0
}

// AggregateKind identifies how a measure aggregates.
type AggregateKind string

// Supported aggregation kinds.
const (
	AggregateCount   AggregateKind = "count"
	AggregateSum     AggregateKind = "sum"
	AggregateAverage AggregateKind = "average"
	AggregateRatio   AggregateKind = "ratio"
	AggregateCustom  AggregateKind = "custom"
)

// Measure is a LookML measure definition.
type Measure struct {
	// Name is the field name, unique within the owning view and
	// disjoint from dimension names
	Name string
	// Kind is the aggregation kind this measure was synthesized as
	Kind AggregateKind
	// Type is the rendered LookML type (count, sum, average, number, ...)
	Type string
	// SQL is the target expression; empty for plain count measures
	SQL string
	// Label is the human-readable label
	Label string
	// Description of the measure
	Description string
	// Hidden hides the measure from the field picker
	Hidden bool
	// DrillFields lists drill-down fields (e.g. detail*)
	DrillFields []string
}

// View is the generated set of dimensions and measures for one table.
type View struct {
	// Name derived from the table name
	Name string
	// SQLTableName is the rendered sql_table_name value
	SQLTableName string
	// Description from table metadata, if any
	Description string
	// Dimensions in source column order
	Dimensions []Dimension
	// Measures after the dimensions
	Measures []Measure
	// DrillSet lists the non-hidden dimension names of the "detail" set
	DrillSet []string
	// Table is a read-only back-reference to the source metadata
	Table *TableMetadata
}

// PrimaryKey returns the view's primary-key dimension, or nil.
func (v *View) PrimaryKey() *Dimension {
	for i := range v.Dimensions {
		if v.Dimensions[i].PrimaryKey {
			return &v.Dimensions[i]
		}
	}
	return nil
}

// Dimension returns the dimension with the given name, or nil.
func (v *View) Dimension(name string) *Dimension {
	for i := range v.Dimensions {
		if v.Dimensions[i].Name == name {
			return &v.Dimensions[i]
		}
	}
	return nil
}

// RelationshipStatus records whether a relationship resolved to a target.
type RelationshipStatus string

// Relationship resolution statuses.
const (
	RelationshipResolved   RelationshipStatus = "resolved"
	RelationshipUnresolved RelationshipStatus = "unresolved"
)

// Unresolved relationship reason codes.
const (
	ReasonNoMatchingTable = "no_matching_table"
	ReasonNoPrimaryKey    = "no_primary_key"
)

// Relationship is an inferred link from a foreign-key dimension to a
// primary-key dimension in another view. Inference only produces
// many-to-one relationships.
type Relationship struct {
	SourceView   string
	SourceColumn string
	TargetView   string
	TargetColumn string
	// Cardinality is many_to_one by construction
	Cardinality string
	Status      RelationshipStatus
	// Reason carries the reason code for unresolved relationships
	Reason string
}

// Resolved reports whether the relationship found a valid target.
func (r *Relationship) Resolved() bool {
	return r.Status == RelationshipResolved
}

// Join is a rendered join inside an explore.
type Join struct {
	// View is the joined view name
	View string
	// Type is the join kind (left_outer by default)
	Type string
	// Relationship is the declared cardinality (many_to_one)
	Relationship string
	// SQLOn is the join predicate
	SQLOn string
	// Fields restricts the joined view's exposed fields, when set
	Fields []string
}

// Explore is a base view plus its joins, as exposed to BI consumers.
type Explore struct {
	// Name derived from the base table name
	Name string
	// From is the base view
	From string
	// ViewName aliases the base view inside the explore
	ViewName string
	// Description shown in the BI tool
	Description string
	// Hidden hides the explore from the menu
	Hidden bool
	// Joins in deterministic order
	Joins []Join
	// Fields is the suggested default field set
	Fields []string
	// DerivedTableSQL holds the aggregation SQL for aggregate explores
	DerivedTableSQL string
}

// Project is the complete output of one generation run. It exclusively
// owns every view and explore; nothing is shared across runs.
type Project struct {
	// Name of the LookML project
	Name string
	// Connection is the BI tool connection name
	Connection string
	// Views keyed by insertion order (table input order)
	Views []*View
	// Explores after all views
	Explores []*Explore
	// Relationships includes unresolved entries for reporting
	Relationships []Relationship
}

// View returns the view with the given name, or nil.
func (p *Project) View(name string) *View {
	for _, v := range p.Views {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Explore returns the explore with the given name, or nil.
func (p *Project) Explore(name string) *Explore {
	for _, e := range p.Explores {
		if e.Name == name {
			return e
		}
	}
	return nil
}
