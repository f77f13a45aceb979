// Package config provides typed configuration for Concordia projects.
// Configuration is loaded once from concordia.yaml, validated at the load
// boundary, and treated as immutable for the duration of a generation run.
package config

// Config is the root of a concordia.yaml file.
type Config struct {
	Connection ConnectionConfig `koanf:"connection"`
	Looker     LookerConfig     `koanf:"looker"`
	ModelRules ModelRules       `koanf:"model_rules"`
}

// ConnectionConfig holds warehouse connection configuration for the
// metadata source.
type ConnectionConfig struct {
	Type string `koanf:"type"` // postgres, duckdb

	// File-based databases (DuckDB)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Project is the catalog identifier used in qualified table names
	Project string `koanf:"project_id"`

	// Datasets are the schemas to introspect
	Datasets []string `koanf:"datasets"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// LookerConfig holds output project configuration.
type LookerConfig struct {
	// ProjectPath is the root of the LookML project on disk
	ProjectPath string `koanf:"project_path"`
	// ViewsPath is the directory for generated view files,
	// relative to ProjectPath
	ViewsPath string `koanf:"views_path"`
	// ExploresPath is the file for the combined explore output,
	// relative to ProjectPath
	ExploresPath string `koanf:"explores_path"`
	// Connection is the Looker connection name
	Connection string `koanf:"connection"`
	// Explores restricts explore generation to the named tables;
	// empty means every table gets an explore
	Explores []string `koanf:"explores"`
	// JoinType is the default join kind (left_outer)
	JoinType string `koanf:"join_type"`
}

// ModelRules holds the rule tables that drive generation.
type ModelRules struct {
	Naming       NamingRules      `koanf:"naming_conventions"`
	Defaults     DefaultBehaviors `koanf:"defaults"`
	TypeMapping  []TypeMapping    `koanf:"type_mapping"`
	FallbackType string           `koanf:"fallback_type"`

	// Relationships maps a foreign-key column name to its target table,
	// overriding suffix-stripping inference
	Relationships map[string]string `koanf:"relationships"`

	CaseDimensions []CaseRule      `koanf:"case_dimensions"`
	CustomMeasures []CustomMeasure `koanf:"custom_measures"`
	CustomExplores []CustomExplore `koanf:"custom_explores"`
}

// NamingRules maps semantic roles to ordered matching patterns.
// Matching is case-insensitive; within a role, declaration order wins.
type NamingRules struct {
	// PrimaryKeySuffixes mark primary-key columns (default: _pk).
	// The bare column name "id" is always treated as a primary key.
	PrimaryKeySuffixes []string `koanf:"pk_suffixes"`
	// ForeignKeySuffixes mark foreign-key columns (default: _fk)
	ForeignKeySuffixes []string `koanf:"fk_suffixes"`
	// TimestampSuffixes mark temporal columns (default: _at, _date,
	// _time, _ts, _timestamp)
	TimestampSuffixes []string `koanf:"time_suffixes"`
	// BooleanPrefixes mark flag columns (default: is_, has_)
	BooleanPrefixes []string `koanf:"bool_prefixes"`

	// View and explore naming transformations
	ViewPrefix    string `koanf:"view_prefix"`
	ViewSuffix    string `koanf:"view_suffix"`
	ExplorePrefix string `koanf:"explore_prefix"`
	ExploreSuffix string `koanf:"explore_suffix"`
}

// DefaultBehaviors holds policy knobs with declared defaults.
type DefaultBehaviors struct {
	// Measures lists the default measure kinds to synthesize
	// (count, sum, average, ratio)
	Measures []string `koanf:"measures"`
	// HideFieldsBySuffix hides matching fields (default: _pk, _fk)
	HideFieldsBySuffix []string `koanf:"hide_fields_by_suffix"`
	// ExcludeMeasuresFor lists column names excluded from sum/average
	// synthesis
	ExcludeMeasuresFor []string `koanf:"exclude_measures_for"`
	// TrueLabel and FalseLabel are the rendered boolean display values
	TrueLabel  string `koanf:"true_label"`
	FalseLabel string `koanf:"false_label"`
	// NumeratorSuffix and DenominatorSuffix define the ratio-pair
	// naming convention
	NumeratorSuffix   string `koanf:"numerator_suffix"`
	DenominatorSuffix string `koanf:"denominator_suffix"`
}

// HasMeasure reports whether the given default measure kind is enabled.
func (d *DefaultBehaviors) HasMeasure(kind string) bool {
	for _, m := range d.Measures {
		if m == kind {
			return true
		}
	}
	return false
}

// TypeMapping overrides or extends the built-in source-type mapping.
type TypeMapping struct {
	// SourceType is the warehouse type name (matched case-insensitively)
	SourceType string `koanf:"source_type"`
	// LookMLType is the target dimension type
	LookMLType string `koanf:"lookml_type"`
	// Timeframes marks the type as temporal; matching columns become
	// dimension groups with this ordered timeframe list
	Timeframes []string `koanf:"timeframes"`
	// Numeric marks the type as eligible for sum/average synthesis
	Numeric bool `koanf:"numeric"`
}

// CaseRule declares a conditional dimension built from value buckets.
type CaseRule struct {
	// Table restricts the rule to one table; empty applies everywhere
	Table string `koanf:"table"`
	// Column is the source column the rule applies to
	Column string `koanf:"column"`
	// Name is the generated dimension name (default: <column>_category)
	Name string `koanf:"name"`
	// Whens are the ordered CASE branches
	Whens []CaseWhen `koanf:"whens"`
	// Default is the ELSE value (default: Other)
	Default string `koanf:"default"`
	// Description of the generated dimension
	Description string `koanf:"description"`
}

// CaseWhen is one WHEN condition THEN value branch.
type CaseWhen struct {
	Condition string `koanf:"condition"`
	Value     string `koanf:"value"`
}

// CustomMeasure declares a user-defined measure merged into a view.
// It takes precedence over generated measures on name collision.
type CustomMeasure struct {
	// Table is the source table the measure belongs to
	Table string `koanf:"table"`
	Name  string `koanf:"name"`
	// Type is the LookML measure type (sum, average, number, ...)
	Type        string `koanf:"type"`
	SQL         string `koanf:"sql"`
	Label       string `koanf:"label"`
	Description string `koanf:"description"`
	Hidden      bool   `koanf:"hidden"`
	// Column is the referenced column, validated against the table
	Column string `koanf:"column"`
}

// CustomExplore declares a user-defined explore that adds or overrides
// joins, restricts fields, or composes aggregates.
type CustomExplore struct {
	Name        string       `koanf:"name"`
	BaseTable   string       `koanf:"base_table"`
	Description string       `koanf:"description"`
	Hidden      bool         `koanf:"hidden"`
	Fields      []string     `koanf:"fields"`
	Joins       []CustomJoin `koanf:"joins"`
	// Aggregate turns the explore into an aggregate explore
	Aggregate *AggregateRule `koanf:"aggregate"`
}

// CustomJoin is a user-declared join inside a custom explore.
type CustomJoin struct {
	// Table is the joined table
	Table string `koanf:"table"`
	// Type is the join kind (default: the configured join type)
	Type string `koanf:"type"`
	// SQLOn is the join predicate
	SQLOn string `koanf:"sql_on"`
	// Relationship cardinality (default: many_to_one)
	Relationship string   `koanf:"relationship"`
	Fields       []string `koanf:"fields"`
}

// AggregateRule configures an aggregate explore's derived table.
type AggregateRule struct {
	GroupBy  []string `koanf:"group_by"`
	Measures []string `koanf:"measures"`
}
