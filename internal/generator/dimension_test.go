package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concordia-labs/concordia/internal/config"
	"github.com/concordia-labs/concordia/internal/testutil"
	"github.com/concordia-labs/concordia/pkg/core"
)

func TestBuildDimensionsColumnOrder(t *testing.T) {
	g := newTestGenerator(t)
	table := testutil.OrdersTable()
	diags := &core.Diagnostics{}

	dims := g.buildDimensions(&table, diags)
	require.Len(t, dims, 6)
	assert.Empty(t, diags.Warnings)

	pk := dims[0]
	assert.Equal(t, "order_pk", pk.Name)
	assert.Equal(t, "number", pk.Type)
	assert.Equal(t, "${TABLE}.order_pk", pk.SQL)
	assert.True(t, pk.PrimaryKey)
	assert.True(t, pk.Hidden)

	fk := dims[1]
	assert.Equal(t, "user_fk", fk.Name)
	assert.Equal(t, core.RoleForeignKey, fk.Role)
	assert.True(t, fk.Hidden)
	assert.False(t, fk.PrimaryKey)

	status := dims[2]
	assert.Equal(t, "status", status.Name)
	assert.Equal(t, "string", status.Type)
	assert.Equal(t, "Status", status.Label)
	assert.False(t, status.Hidden)
	assert.False(t, status.Numeric)

	amount := dims[3]
	assert.Equal(t, "number", amount.Type)
	assert.True(t, amount.Numeric)

	paid := dims[4]
	assert.Equal(t, "is_paid", paid.Name)
	assert.Equal(t, "yesno", paid.Type)
	assert.Equal(t, "${TABLE}.is_paid", paid.SQL)

	created := dims[5]
	assert.Equal(t, "created", created.Name)
	assert.True(t, created.IsGroup())
	assert.Equal(t, "time", created.Type)
	assert.Equal(t, []string{"raw", "time", "date", "week", "month", "quarter", "year"}, created.Timeframes)
	assert.Equal(t, "${TABLE}.created_at", created.SQL)
}

func TestBuildDimensionDateGroup(t *testing.T) {
	g := newTestGenerator(t)
	table := core.TableMetadata{
		Project: "acme-analytics",
		Dataset: "ecommerce",
		Name:    "snapshots",
		Columns: []core.ColumnMetadata{
			{Name: "snapshot_date", Type: "DATE", Position: 1},
		},
	}

	dims := g.buildDimensions(&table, &core.Diagnostics{})
	require.Len(t, dims, 1)
	assert.Equal(t, "snapshot", dims[0].Name)
	assert.Equal(t, []string{"raw", "date", "week", "month", "quarter", "year"}, dims[0].Timeframes)
}

func TestBuildDimensionBooleanLabels(t *testing.T) {
	table := core.TableMetadata{
		Project: "acme-analytics",
		Dataset: "ecommerce",
		Name:    "users",
		Columns: []core.ColumnMetadata{
			{Name: "is_active", Type: "BOOL", Position: 1},
			{Name: "is_deleted", Type: "INT64", Position: 2},
		},
	}

	t.Run("default labels stay yesno", func(t *testing.T) {
		g := newTestGenerator(t)
		dims := g.buildDimensions(&table, &core.Diagnostics{})
		require.Len(t, dims, 2)
		assert.Equal(t, "yesno", dims[0].Type)
		assert.Equal(t, "${TABLE}.is_active", dims[0].SQL)
		// numeric flags compare against zero
		assert.Equal(t, "yesno", dims[1].Type)
		assert.Equal(t, "${TABLE}.is_deleted > 0", dims[1].SQL)
	})

	t.Run("custom labels become a conditional", func(t *testing.T) {
		g := newTestGenerator(t, func(cfg *Config) {
			cfg.Rules.Defaults.TrueLabel = "Active"
			cfg.Rules.Defaults.FalseLabel = "Inactive"
		})
		dims := g.buildDimensions(&table, &core.Diagnostics{})
		require.Len(t, dims, 2)
		assert.Equal(t, "string", dims[0].Type)
		assert.Equal(t, "CASE WHEN ${TABLE}.is_active THEN 'Active' ELSE 'Inactive' END", dims[0].SQL)
		assert.Equal(t, "CASE WHEN ${TABLE}.is_deleted > 0 THEN 'Active' ELSE 'Inactive' END", dims[1].SQL)
	})
}

func TestBuildDimensionsUnknownType(t *testing.T) {
	g := newTestGenerator(t)
	table := core.TableMetadata{
		Project: "acme-analytics",
		Dataset: "ecommerce",
		Name:    "stores",
		Columns: []core.ColumnMetadata{
			{Name: "location", Type: "GEOGRAPHY", Position: 1},
		},
	}
	diags := &core.Diagnostics{}

	dims := g.buildDimensions(&table, diags)
	require.Len(t, dims, 1)
	assert.Equal(t, "string", dims[0].Type)

	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, core.WarnUnknownType, diags.Warnings[0].Code)
	assert.Equal(t, "stores", diags.Warnings[0].Table)
	assert.Equal(t, "location", diags.Warnings[0].Column)
}

func TestBuildDimensionDeclaredPrimaryKey(t *testing.T) {
	g := newTestGenerator(t)
	table := core.TableMetadata{
		Project: "acme-analytics",
		Dataset: "ecommerce",
		Name:    "accounts",
		Columns: []core.ColumnMetadata{
			// Constraint metadata marks the key even without the naming
			// convention.
			{Name: "account_number", Type: "STRING", Position: 1, PrimaryKey: true},
		},
	}

	dims := g.buildDimensions(&table, &core.Diagnostics{})
	require.Len(t, dims, 1)
	assert.True(t, dims[0].PrimaryKey)
}

func TestBuildCaseDimensions(t *testing.T) {
	rule := config.CaseRule{
		Table:  "orders",
		Column: "status",
		Whens: []config.CaseWhen{
			{Condition: "${TABLE}.status = 'delivered'", Value: "Complete"},
			{Condition: "${TABLE}.status = 'cancelled'", Value: "Lost"},
		},
		Default: "In Flight",
	}
	g := newTestGenerator(t, func(cfg *Config) {
		cfg.Rules.CaseDimensions = []config.CaseRule{rule}
	})

	table := testutil.OrdersTable()
	dims := g.buildDimensions(&table, &core.Diagnostics{})
	require.Len(t, dims, 7)

	cat := dims[6]
	assert.Equal(t, "status_category", cat.Name)
	assert.Equal(t, "string", cat.Type)
	assert.Equal(t,
		"CASE WHEN ${TABLE}.status = 'delivered' THEN 'Complete'"+
			" WHEN ${TABLE}.status = 'cancelled' THEN 'Lost' ELSE 'In Flight' END",
		cat.SQL)
	assert.Equal(t, "Categorized status", cat.Description)

	// The rule names another table, so users is untouched.
	users := testutil.UsersTable()
	dims = g.buildDimensions(&users, &core.Diagnostics{})
	assert.Len(t, dims, 4)
}

func TestBuildCaseDimensionMissingColumn(t *testing.T) {
	g := newTestGenerator(t, func(cfg *Config) {
		cfg.Rules.CaseDimensions = []config.CaseRule{{
			Column: "tier",
			Whens:  []config.CaseWhen{{Condition: "${TABLE}.tier = 1", Value: "Gold"}},
		}}
	})

	table := testutil.OrdersTable()
	dims := g.buildDimensions(&table, &core.Diagnostics{})
	assert.Len(t, dims, 6)
}
