package generator

import (
	"strings"

	"github.com/concordia-labs/concordia/internal/config"
)

// TypeEntry is the target of a source-type mapping.
type TypeEntry struct {
	// LookMLType is the target dimension type
	LookMLType string
	// Timeframes is non-empty for temporal types; matching columns
	// become dimension groups with this ordered list
	Timeframes []string
	// Numeric marks the type as eligible for sum/average synthesis
	Numeric bool
}

// Timeframe lists for temporal types. Order is fixed and carried into
// the generated dimension group verbatim.
var (
	timestampTimeframes = []string{"raw", "time", "date", "week", "month", "quarter", "year"}
	dateTimeframes      = []string{"raw", "date", "week", "month", "quarter", "year"}
)

// builtinTypes is the default source-type table, covering the common
// warehouse type systems. Configuration entries overlay it.
var builtinTypes = map[string]TypeEntry{
	// strings and string-ish buckets
	"STRING":  {LookMLType: "string"},
	"TEXT":    {LookMLType: "string"},
	"VARCHAR": {LookMLType: "string"},
	"CHAR":    {LookMLType: "string"},
	"BYTES":   {LookMLType: "string"},
	"JSON":    {LookMLType: "string"},
	"JSONB":   {LookMLType: "string"},
	"ARRAY":   {LookMLType: "string"},
	"STRUCT":  {LookMLType: "string"},
	"RECORD":  {LookMLType: "string"},
	"UUID":    {LookMLType: "string"},

	// numerics
	"INTEGER":          {LookMLType: "number", Numeric: true},
	"INT":              {LookMLType: "number", Numeric: true},
	"INT64":            {LookMLType: "number", Numeric: true},
	"SMALLINT":         {LookMLType: "number", Numeric: true},
	"BIGINT":           {LookMLType: "number", Numeric: true},
	"FLOAT":            {LookMLType: "number", Numeric: true},
	"FLOAT64":          {LookMLType: "number", Numeric: true},
	"REAL":             {LookMLType: "number", Numeric: true},
	"DOUBLE":           {LookMLType: "number", Numeric: true},
	"DOUBLE PRECISION": {LookMLType: "number", Numeric: true},
	"NUMERIC":          {LookMLType: "number", Numeric: true},
	"DECIMAL":          {LookMLType: "number", Numeric: true},
	"BIGNUMERIC":       {LookMLType: "number", Numeric: true},

	// booleans
	"BOOL":    {LookMLType: "yesno"},
	"BOOLEAN": {LookMLType: "yesno"},

	// temporal
	"TIMESTAMP":                   {LookMLType: "time", Timeframes: timestampTimeframes},
	"TIMESTAMPTZ":                 {LookMLType: "time", Timeframes: timestampTimeframes},
	"TIMESTAMP WITH TIME ZONE":    {LookMLType: "time", Timeframes: timestampTimeframes},
	"TIMESTAMP WITHOUT TIME ZONE": {LookMLType: "time", Timeframes: timestampTimeframes},
	"DATETIME":                    {LookMLType: "time", Timeframes: timestampTimeframes},
	"DATE":                        {LookMLType: "time", Timeframes: dateTimeframes},
	"TIME":                        {LookMLType: "string"},
}

// TypeMapper is a total, deterministic function from source type name
// to a TypeEntry. Unknown types map to the configured fallback; the
// mapper never fails.
type TypeMapper struct {
	entries  map[string]TypeEntry
	fallback TypeEntry
}

// NewTypeMapper builds a mapper from the built-in table overlaid with
// configuration entries. The fallback defaults to string.
func NewTypeMapper(rules config.ModelRules) *TypeMapper {
	entries := make(map[string]TypeEntry, len(builtinTypes)+len(rules.TypeMapping))
	for k, v := range builtinTypes {
		entries[k] = v
	}
	for _, m := range rules.TypeMapping {
		entries[strings.ToUpper(m.SourceType)] = TypeEntry{
			LookMLType: m.LookMLType,
			Timeframes: m.Timeframes,
			Numeric:    m.Numeric,
		}
	}

	fallbackType := rules.FallbackType
	if fallbackType == "" {
		fallbackType = config.DefaultFallbackType
	}

	return &TypeMapper{
		entries: entries,
		fallback: TypeEntry{
			LookMLType: fallbackType,
			Numeric:    fallbackType == "number",
		},
	}
}

// Map returns the entry for the source type. known is false when the
// fallback was used; the caller records the warning.
func (m *TypeMapper) Map(sourceType string) (entry TypeEntry, known bool) {
	if e, ok := m.entries[strings.ToUpper(strings.TrimSpace(sourceType))]; ok {
		return e, true
	}
	return m.fallback, false
}

// Fallback returns the configured fallback entry.
func (m *TypeMapper) Fallback() TypeEntry {
	return m.fallback
}
