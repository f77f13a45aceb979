package metadata

import (
	"database/sql"
	"fmt"
	"log/slog"

	// Register the DuckDB database/sql driver.
	_ "github.com/marcboeker/go-duckdb"

	"github.com/concordia-labs/concordia/internal/config"
)

func init() {
	Register("duckdb", openDuckDB)
}

// duckdbQueries introspects via the duckdb_tables/duckdb_columns
// catalog functions, which carry comments; constraints come from
// information_schema.
var duckdbQueries = queries{
	tables: `
		SELECT table_name, comment
		FROM duckdb_tables()
		WHERE schema_name = ? AND NOT internal
		ORDER BY table_name`,
	columns: `
		SELECT table_name,
		       column_name,
		       data_type,
		       CASE WHEN is_nullable THEN 'YES' ELSE 'NO' END,
		       column_index,
		       comment
		FROM duckdb_columns()
		WHERE schema_name = ? AND NOT internal
		ORDER BY table_name, column_index`,
	primaryKeys: `
		SELECT tc.table_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.table_schema = ? AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY tc.table_name, kcu.ordinal_position`,
}

func openDuckDB(cfg config.ConnectionConfig, logger *slog.Logger) (Source, error) {
	// Empty database path opens an in-memory instance.
	db, err := sql.Open("duckdb", cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb database: %w", err)
	}

	return newSQLSource(db, duckdbQueries, logger), nil
}
