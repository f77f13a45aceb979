package config

// Default configuration values.
const (
	DefaultViewsPath    = "views"
	DefaultExploresPath = "explores/concordia.explore.lkml"
	DefaultJoinType     = "left_outer"
	DefaultFallbackType = "string"
	DefaultTrueLabel    = "Yes"
	DefaultFalseLabel   = "No"
	DefaultNumerator    = "_numerator"
	DefaultDenominator  = "_denominator"
)

// DefaultMap returns the built-in defaults as a koanf confmap.
// These are loaded first so file, env, and flag values override them.
func DefaultMap() map[string]any {
	return map[string]any{
		"looker.views_path":                            DefaultViewsPath,
		"looker.explores_path":                         DefaultExploresPath,
		"looker.join_type":                             DefaultJoinType,
		"model_rules.fallback_type":                    DefaultFallbackType,
		"model_rules.naming_conventions.pk_suffixes":   []string{"_pk"},
		"model_rules.naming_conventions.fk_suffixes":   []string{"_fk"},
		"model_rules.naming_conventions.time_suffixes": []string{"_at", "_date", "_time", "_ts", "_timestamp"},
		"model_rules.naming_conventions.bool_prefixes": []string{"is_", "has_"},
		"model_rules.defaults.measures":                []string{"count", "sum", "average", "ratio"},
		"model_rules.defaults.hide_fields_by_suffix":   []string{"_pk", "_fk"},
		"model_rules.defaults.true_label":              DefaultTrueLabel,
		"model_rules.defaults.false_label":             DefaultFalseLabel,
		"model_rules.defaults.numerator_suffix":        DefaultNumerator,
		"model_rules.defaults.denominator_suffix":      DefaultDenominator,
	}
}

// ApplyDefaults fills zero values that the confmap provider cannot
// reach, such as nested defaults inside list entries.
func (c *Config) ApplyDefaults() {
	if c.Looker.ViewsPath == "" {
		c.Looker.ViewsPath = DefaultViewsPath
	}
	if c.Looker.ExploresPath == "" {
		c.Looker.ExploresPath = DefaultExploresPath
	}
	if c.Looker.JoinType == "" {
		c.Looker.JoinType = DefaultJoinType
	}
	if c.ModelRules.FallbackType == "" {
		c.ModelRules.FallbackType = DefaultFallbackType
	}

	c.Connection.ApplyDefaults()

	n := &c.ModelRules.Naming
	if len(n.PrimaryKeySuffixes) == 0 {
		n.PrimaryKeySuffixes = []string{"_pk"}
	}
	if len(n.ForeignKeySuffixes) == 0 {
		n.ForeignKeySuffixes = []string{"_fk"}
	}
	if len(n.TimestampSuffixes) == 0 {
		n.TimestampSuffixes = []string{"_at", "_date", "_time", "_ts", "_timestamp"}
	}
	if len(n.BooleanPrefixes) == 0 {
		n.BooleanPrefixes = []string{"is_", "has_"}
	}

	d := &c.ModelRules.Defaults
	if len(d.Measures) == 0 {
		d.Measures = []string{"count", "sum", "average", "ratio"}
	}
	if d.HideFieldsBySuffix == nil {
		d.HideFieldsBySuffix = []string{"_pk", "_fk"}
	}
	if d.TrueLabel == "" {
		d.TrueLabel = DefaultTrueLabel
	}
	if d.FalseLabel == "" {
		d.FalseLabel = DefaultFalseLabel
	}
	if d.NumeratorSuffix == "" {
		d.NumeratorSuffix = DefaultNumerator
	}
	if d.DenominatorSuffix == "" {
		d.DenominatorSuffix = DefaultDenominator
	}

	for i := range c.ModelRules.CaseDimensions {
		cd := &c.ModelRules.CaseDimensions[i]
		if cd.Name == "" && cd.Column != "" {
			cd.Name = cd.Column + "_category"
		}
		if cd.Default == "" {
			cd.Default = "Other"
		}
	}
}

// ApplyDefaults applies type-specific connection defaults.
func (c *ConnectionConfig) ApplyDefaults() {
	if c.Type == "postgres" && c.Port == 0 {
		c.Port = 5432
	}
}
