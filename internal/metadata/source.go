// Package metadata extracts table and column metadata from a warehouse
// using information-schema queries. It is the schema-introspection
// collaborator feeding the generation engine; the engine itself never
// touches the database.
package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/concordia-labs/concordia/pkg/core"
)

// Source extracts a metadata snapshot from a warehouse.
type Source interface {
	// Snapshot returns the metadata for every base table in the given
	// datasets, tables sorted by (dataset, name) and columns in
	// ordinal order.
	Snapshot(ctx context.Context, project string, datasets []string) ([]core.TableMetadata, error)
	// Close releases the underlying connection.
	Close() error
}

// queries holds the driver-specific introspection SQL. Each query
// takes the dataset (schema) as its only parameter.
type queries struct {
	// tables returns (table_name, description) for base tables
	tables string
	// columns returns (table_name, column_name, data_type,
	// is_nullable, ordinal_position, description) ordered by table
	// and position
	columns string
	// primaryKeys returns (table_name, column_name) for primary-key
	// constraint columns; empty when the driver exposes none
	primaryKeys string
}

// sqlSource implements Source over database/sql.
type sqlSource struct {
	db      *sql.DB
	queries queries
	logger  *slog.Logger
}

func newSQLSource(db *sql.DB, q queries, logger *slog.Logger) *sqlSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &sqlSource{db: db, queries: q, logger: logger}
}

// Snapshot runs the introspection queries per dataset and assembles
// ordered TableMetadata records.
func (s *sqlSource) Snapshot(ctx context.Context, project string, datasets []string) ([]core.TableMetadata, error) {
	var tables []core.TableMetadata

	for _, dataset := range datasets {
		s.logger.Debug("introspecting dataset", "dataset", dataset)

		ds, err := s.snapshotDataset(ctx, project, dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to introspect dataset %s: %w", dataset, err)
		}
		tables = append(tables, ds...)
	}

	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Dataset != tables[j].Dataset {
			return tables[i].Dataset < tables[j].Dataset
		}
		return tables[i].Name < tables[j].Name
	})

	s.logger.Info("metadata snapshot complete", "tables", len(tables))
	return tables, nil
}

func (s *sqlSource) snapshotDataset(ctx context.Context, project, dataset string) ([]core.TableMetadata, error) {
	byName := make(map[string]*core.TableMetadata)
	var order []string

	rows, err := s.db.QueryContext(ctx, s.queries.tables, dataset)
	if err != nil {
		return nil, fmt.Errorf("tables query: %w", err)
	}
	for rows.Next() {
		var name string
		var description sql.NullString
		if err := rows.Scan(&name, &description); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("tables scan: %w", err)
		}
		byName[name] = &core.TableMetadata{
			Project:     project,
			Dataset:     dataset,
			Name:        name,
			Description: description.String,
		}
		order = append(order, name)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("tables query: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, s.queries.columns, dataset)
	if err != nil {
		return nil, fmt.Errorf("columns query: %w", err)
	}
	for rows.Next() {
		var table, column, dataType, nullable string
		var position int
		var description sql.NullString
		if err := rows.Scan(&table, &column, &dataType, &nullable, &position, &description); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("columns scan: %w", err)
		}
		t, ok := byName[table]
		if !ok {
			// Column of a view or other non-base relation.
			continue
		}
		t.Columns = append(t.Columns, core.ColumnMetadata{
			Name:        column,
			Type:        dataType,
			Nullable:    nullable == "YES",
			Description: description.String,
			Position:    position,
		})
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("columns query: %w", err)
	}

	if s.queries.primaryKeys != "" {
		rows, err = s.db.QueryContext(ctx, s.queries.primaryKeys, dataset)
		if err != nil {
			return nil, fmt.Errorf("primary keys query: %w", err)
		}
		for rows.Next() {
			var table, column string
			if err := rows.Scan(&table, &column); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("primary keys scan: %w", err)
			}
			if t, ok := byName[table]; ok {
				if c := t.Column(column); c != nil {
					c.PrimaryKey = true
				}
			}
		}
		if err := closeRows(rows); err != nil {
			return nil, fmt.Errorf("primary keys query: %w", err)
		}
	}

	tables := make([]core.TableMetadata, 0, len(order))
	for _, name := range order {
		t := byName[name]
		sort.SliceStable(t.Columns, func(i, j int) bool {
			return t.Columns[i].Position < t.Columns[j].Position
		})
		tables = append(tables, *t)
	}
	return tables, nil
}

// Close closes the underlying database handle.
func (s *sqlSource) Close() error {
	return s.db.Close()
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}
