package metadata

import (
	"database/sql"
	"fmt"
	"log/slog"

	// Register the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/concordia-labs/concordia/internal/config"
)

func init() {
	Register("postgres", openPostgres)
}

// postgresQueries introspects via information_schema, pulling table and
// column comments from the catalog.
var postgresQueries = queries{
	tables: `
		SELECT t.table_name,
		       obj_description(format('%I.%I', t.table_schema, t.table_name)::regclass) AS description
		FROM information_schema.tables t
		WHERE t.table_schema = $1 AND t.table_type = 'BASE TABLE'
		ORDER BY t.table_name`,
	columns: `
		SELECT c.table_name,
		       c.column_name,
		       c.data_type,
		       c.is_nullable,
		       c.ordinal_position,
		       col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position) AS description
		FROM information_schema.columns c
		WHERE c.table_schema = $1
		ORDER BY c.table_name, c.ordinal_position`,
	primaryKeys: `
		SELECT tc.table_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.table_schema = $1 AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY tc.table_name, kcu.ordinal_position`,
}

func openPostgres(cfg config.ConnectionConfig, logger *slog.Logger) (Source, error) {
	dsn := buildPostgresDSN(cfg)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	return newSQLSource(db, postgresQueries, logger), nil
}

// buildPostgresDSN constructs a key=value connection string.
func buildPostgresDSN(cfg config.ConnectionConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, cfg.Database, sslmode)
	if cfg.User != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.User)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return dsn
}
