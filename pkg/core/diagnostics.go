package core

import (
	"fmt"

	"github.com/google/uuid"
)

// WarningCode identifies a class of non-fatal generation condition.
type WarningCode string

// Warning codes.
const (
	WarnUnknownType            WarningCode = "unknown_type"
	WarnUnresolvedRelationship WarningCode = "unresolved_relationship"
	WarnMeasureOverride        WarningCode = "measure_override"
)

// Warning is a non-fatal condition collected during generation.
type Warning struct {
	Code    WarningCode
	Table   string
	Column  string
	Message string
}

// ConfigError is a fatal configuration problem detected before any
// generation starts.
type ConfigError struct {
	// Field is the configuration path that failed validation
	Field string
	// Message describes the problem
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Message
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// TableError is a per-table generation failure. The table's view is
// omitted from the project; sibling tables are unaffected.
type TableError struct {
	Table string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %s: %v", e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// Diagnostics accumulates warnings and per-table errors for one
// generation run. It is threaded through the pipeline explicitly so
// concurrent runs cannot interfere with each other.
type Diagnostics struct {
	// RunID uniquely identifies the generation run
	RunID string
	// Warnings in the order they were recorded
	Warnings []Warning
	// TableErrors for tables whose views were omitted
	TableErrors []*TableError
}

// NewDiagnostics creates an empty accumulator with a fresh run ID.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{RunID: uuid.NewString()}
}

// Warnf records a warning.
func (d *Diagnostics) Warnf(code WarningCode, table, column, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{
		Code:    code,
		Table:   table,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	})
}

// AddTableError records a per-table failure.
func (d *Diagnostics) AddTableError(table string, err error) {
	d.TableErrors = append(d.TableErrors, &TableError{Table: table, Err: err})
}

// Merge appends another accumulator's findings, preserving order.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.TableErrors = append(d.TableErrors, other.TableErrors...)
}

// HasErrors reports whether any table failed.
func (d *Diagnostics) HasErrors() bool {
	return len(d.TableErrors) > 0
}
