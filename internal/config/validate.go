package config

import (
	"fmt"

	"github.com/concordia-labs/concordia/pkg/core"
)

// Validate checks structural validity of the configuration.
// Declarations that reference tables or columns are validated later by
// the generator, once the metadata snapshot exists.
func (c *Config) Validate() error {
	if c.Connection.Type == "" {
		return &core.ConfigError{Field: "connection.type", Message: "warehouse type is required"}
	}
	if len(c.Connection.Datasets) == 0 {
		return &core.ConfigError{Field: "connection.datasets", Message: "at least one dataset must be specified"}
	}
	if c.Looker.ProjectPath == "" {
		return &core.ConfigError{Field: "looker.project_path", Message: "project path is required"}
	}
	if c.Looker.Connection == "" {
		return &core.ConfigError{Field: "looker.connection", Message: "Looker connection name is required"}
	}

	for i, m := range c.ModelRules.TypeMapping {
		if m.SourceType == "" || m.LookMLType == "" {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.type_mapping[%d]", i),
				Message: "source_type and lookml_type are both required",
			}
		}
	}

	for i, cd := range c.ModelRules.CaseDimensions {
		if cd.Column == "" {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.case_dimensions[%d].column", i),
				Message: "column is required",
			}
		}
		if len(cd.Whens) == 0 {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.case_dimensions[%d].whens", i),
				Message: "at least one when branch is required",
			}
		}
	}

	for i, m := range c.ModelRules.CustomMeasures {
		if m.Name == "" || m.Table == "" {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.custom_measures[%d]", i),
				Message: "name and table are both required",
			}
		}
		if m.Type == "" {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.custom_measures[%d].type", i),
				Message: "measure type is required",
			}
		}
	}

	for i, e := range c.ModelRules.CustomExplores {
		if e.Name == "" || e.BaseTable == "" {
			return &core.ConfigError{
				Field:   fmt.Sprintf("model_rules.custom_explores[%d]", i),
				Message: "name and base_table are both required",
			}
		}
		for j, jn := range e.Joins {
			if jn.Table == "" || jn.SQLOn == "" {
				return &core.ConfigError{
					Field:   fmt.Sprintf("model_rules.custom_explores[%d].joins[%d]", i, j),
					Message: "table and sql_on are both required",
				}
			}
		}
	}

	return nil
}
