package core

import "fmt"

// ColumnMetadata describes a single column as reported by the warehouse.
// Values are immutable once extracted; generation never mutates them.
type ColumnMetadata struct {
	// Name is the column name, unique within its table
	Name string
	// Type is the source data type (e.g. INT64, TIMESTAMP)
	Type string
	// Nullable reports whether the column accepts NULLs
	Nullable bool
	// Description is the column comment, if the source exposes one
	Description string
	// PrimaryKey is set when the source declares a primary-key constraint
	PrimaryKey bool
	// Position is the ordinal position within the table (1-based)
	Position int
}

// TableMetadata describes one table and its ordered columns.
// Column order determines generated field order.
type TableMetadata struct {
	// Project is the catalog / project identifier
	Project string
	// Dataset is the schema / dataset identifier
	Dataset string
	// Name is the table name, unique within the project
	Name string
	// Description is the table comment, if the source exposes one
	Description string
	// Columns in ordinal order
	Columns []ColumnMetadata
}

// Key returns the dataset-qualified identifier used to address a table.
func (t *TableMetadata) Key() string {
	return t.Dataset + "." + t.Name
}

// QualifiedName returns the fully qualified table identifier.
func (t *TableMetadata) QualifiedName() string {
	return fmt.Sprintf("%s.%s.%s", t.Project, t.Dataset, t.Name)
}

// Column returns the column with the given name, or nil.
func (t *TableMetadata) Column(name string) *ColumnMetadata {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}
