package testutil

import "github.com/concordia-labs/concordia/pkg/core"

// UsersTable returns a metadata fixture for a typical dimension table
// with a conventional primary key.
func UsersTable() core.TableMetadata {
	return core.TableMetadata{
		Project:     "acme-analytics",
		Dataset:     "ecommerce",
		Name:        "users",
		Description: "Registered users",
		Columns: []core.ColumnMetadata{
			{Name: "user_pk", Type: "INT64", Position: 1},
			{Name: "email", Type: "STRING", Position: 2, Description: "Email address"},
			{Name: "is_active", Type: "BOOL", Position: 3},
			{Name: "created_at", Type: "TIMESTAMP", Position: 4},
		},
	}
}

// OrdersTable returns a metadata fixture for a fact table carrying a
// foreign key to users plus a measurable amount column.
func OrdersTable() core.TableMetadata {
	return core.TableMetadata{
		Project: "acme-analytics",
		Dataset: "ecommerce",
		Name:    "orders",
		Columns: []core.ColumnMetadata{
			{Name: "order_pk", Type: "INT64", Position: 1},
			{Name: "user_fk", Type: "INT64", Position: 2},
			{Name: "status", Type: "STRING", Position: 3},
			{Name: "amount", Type: "NUMERIC", Position: 4},
			{Name: "is_paid", Type: "BOOLEAN", Position: 5},
			{Name: "created_at", Type: "TIMESTAMP", Position: 6},
		},
	}
}
