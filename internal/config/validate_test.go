package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concordia-labs/concordia/pkg/core"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Connection.Type = "postgres"
	cfg.Connection.Datasets = []string{"ecommerce"}
	cfg.Looker.ProjectPath = "./looker"
	cfg.Looker.Connection = "warehouse"
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "missing warehouse type",
			mutate:    func(c *Config) { c.Connection.Type = "" },
			wantField: "connection.type",
		},
		{
			name:      "no datasets",
			mutate:    func(c *Config) { c.Connection.Datasets = nil },
			wantField: "connection.datasets",
		},
		{
			name:      "missing project path",
			mutate:    func(c *Config) { c.Looker.ProjectPath = "" },
			wantField: "looker.project_path",
		},
		{
			name:      "missing looker connection",
			mutate:    func(c *Config) { c.Looker.Connection = "" },
			wantField: "looker.connection",
		},
		{
			name: "incomplete type mapping",
			mutate: func(c *Config) {
				c.ModelRules.TypeMapping = []TypeMapping{{SourceType: "GEOGRAPHY"}}
			},
			wantField: "model_rules.type_mapping[0]",
		},
		{
			name: "case rule without column",
			mutate: func(c *Config) {
				c.ModelRules.CaseDimensions = []CaseRule{
					{Whens: []CaseWhen{{Condition: "1 = 1", Value: "All"}}},
				}
			},
			wantField: "model_rules.case_dimensions[0].column",
		},
		{
			name: "case rule without whens",
			mutate: func(c *Config) {
				c.ModelRules.CaseDimensions = []CaseRule{{Column: "status"}}
			},
			wantField: "model_rules.case_dimensions[0].whens",
		},
		{
			name: "custom measure without table",
			mutate: func(c *Config) {
				c.ModelRules.CustomMeasures = []CustomMeasure{{Name: "net_revenue"}}
			},
			wantField: "model_rules.custom_measures[0]",
		},
		{
			name: "custom measure without type",
			mutate: func(c *Config) {
				c.ModelRules.CustomMeasures = []CustomMeasure{{Name: "net_revenue", Table: "orders"}}
			},
			wantField: "model_rules.custom_measures[0].type",
		},
		{
			name: "custom explore without base table",
			mutate: func(c *Config) {
				c.ModelRules.CustomExplores = []CustomExplore{{Name: "revenue"}}
			},
			wantField: "model_rules.custom_explores[0]",
		},
		{
			name: "custom join without sql_on",
			mutate: func(c *Config) {
				c.ModelRules.CustomExplores = []CustomExplore{{
					Name:      "revenue",
					BaseTable: "orders",
					Joins:     []CustomJoin{{Table: "users"}},
				}}
			},
			wantField: "model_rules.custom_explores[0].joins[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *core.ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected *core.ConfigError, got %T", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}
