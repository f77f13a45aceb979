package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionIsGroup(t *testing.T) {
	plain := Dimension{Name: "status"}
	assert.False(t, plain.IsGroup())

	group := Dimension{Name: "created", Timeframes: []string{"raw", "date"}}
	assert.True(t, group.IsGroup())
}

func TestViewPrimaryKey(t *testing.T) {
	v := View{
		Dimensions: []Dimension{
			{Name: "status"},
			{Name: "order_pk", PrimaryKey: true},
		},
	}

	pk := v.PrimaryKey()
	require.NotNil(t, pk)
	assert.Equal(t, "order_pk", pk.Name)

	assert.Nil(t, (&View{}).PrimaryKey())
}

func TestViewDimensionLookup(t *testing.T) {
	v := View{Dimensions: []Dimension{{Name: "status"}}}
	assert.NotNil(t, v.Dimension("status"))
	assert.Nil(t, v.Dimension("missing"))
}

func TestRelationshipResolved(t *testing.T) {
	resolved := Relationship{Status: RelationshipResolved}
	assert.True(t, resolved.Resolved())

	unresolved := Relationship{Status: RelationshipUnresolved, Reason: ReasonNoMatchingTable}
	assert.False(t, unresolved.Resolved())
}

func TestProjectLookups(t *testing.T) {
	p := Project{
		Views:    []*View{{Name: "orders"}},
		Explores: []*Explore{{Name: "orders"}},
	}

	assert.NotNil(t, p.View("orders"))
	assert.Nil(t, p.View("users"))
	assert.NotNil(t, p.Explore("orders"))
	assert.Nil(t, p.Explore("users"))
}

func TestTableMetadata(t *testing.T) {
	table := TableMetadata{
		Project: "acme-analytics",
		Dataset: "ecommerce",
		Name:    "orders",
		Columns: []ColumnMetadata{{Name: "order_pk"}},
	}

	assert.Equal(t, "ecommerce.orders", table.Key())
	assert.Equal(t, "acme-analytics.ecommerce.orders", table.QualifiedName())
	assert.NotNil(t, table.Column("order_pk"))
	assert.Nil(t, table.Column("missing"))
}
