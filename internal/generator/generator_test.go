package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concordia-labs/concordia/internal/config"
	"github.com/concordia-labs/concordia/internal/testutil"
	"github.com/concordia-labs/concordia/pkg/core"
)

// testRules mirrors the documented configuration defaults.
func testRules() config.ModelRules {
	return config.ModelRules{
		Naming: config.NamingRules{
			PrimaryKeySuffixes: []string{"_pk"},
			ForeignKeySuffixes: []string{"_fk"},
			TimestampSuffixes:  []string{"_at", "_date", "_time", "_ts", "_timestamp"},
			BooleanPrefixes:    []string{"is_", "has_"},
		},
		Defaults: config.DefaultBehaviors{
			Measures:           []string{"count", "sum", "average", "ratio"},
			HideFieldsBySuffix: []string{"_pk", "_fk"},
			TrueLabel:          "Yes",
			FalseLabel:         "No",
			NumeratorSuffix:    "_numerator",
			DenominatorSuffix:  "_denominator",
		},
		FallbackType: "string",
	}
}

func testLooker() config.LookerConfig {
	return config.LookerConfig{
		ProjectPath:  "looker",
		ViewsPath:    "views",
		ExploresPath: "explores/concordia.explore.lkml",
		Connection:   "warehouse",
		JoinType:     "left_outer",
	}
}

func newTestGenerator(t *testing.T, mutate ...func(*Config)) *Generator {
	t.Helper()
	cfg := Config{
		Rules:   testRules(),
		Looker:  testLooker(),
		Workers: 2,
		Logger:  testutil.NewTestLogger(t),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return New(cfg)
}

// buildViews assembles views for the given tables, failing the test on
// any table error.
func buildViews(t *testing.T, g *Generator, tables ...core.TableMetadata) []*core.View {
	t.Helper()
	views := make([]*core.View, 0, len(tables))
	for i := range tables {
		view, err := g.buildView(&tables[i], &core.Diagnostics{})
		require.NoError(t, err, "table %s", tables[i].Name)
		views = append(views, view)
	}
	return views
}

func TestViewName(t *testing.T) {
	g := newTestGenerator(t)
	assert.Equal(t, "orders", g.viewName("Orders"))

	g = newTestGenerator(t, func(cfg *Config) {
		cfg.Rules.Naming.ViewPrefix = "stg_"
		cfg.Rules.Naming.ViewSuffix = "_v1"
	})
	assert.Equal(t, "stg_orders_v1", g.viewName("orders"))
}

func TestExploreName(t *testing.T) {
	g := newTestGenerator(t, func(cfg *Config) {
		cfg.Rules.Naming.ExploreSuffix = "_explore"
	})
	assert.Equal(t, "orders_explore", g.exploreName("Orders"))
}

func TestLabelFor(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		name string
		want string
	}{
		{"order_total", "Order Total"},
		{"email", "Email"},
		{"is_paid", "Is Paid"},
		{"created", "Created"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.labelFor(tt.name))
	}
}

func TestShouldHide(t *testing.T) {
	g := newTestGenerator(t)

	assert.True(t, g.shouldHide("user_pk"))
	assert.True(t, g.shouldHide("user_fk"))
	assert.True(t, g.shouldHide("USER_FK"))
	assert.False(t, g.shouldHide("email"))
	assert.False(t, g.shouldHide("amount"))
}
