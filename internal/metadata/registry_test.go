package metadata

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concordia-labs/concordia/internal/config"
)

func TestList(t *testing.T) {
	names := List()
	assert.Contains(t, names, "postgres")
	assert.Contains(t, names, "duckdb")
	assert.IsIncreasing(t, names)
}

func TestOpenUnknownType(t *testing.T) {
	_, err := Open(config.ConnectionConfig{Type: "snowflake"}, nil)
	require.Error(t, err)

	var unknownErr *UnknownSourceError
	require.True(t, errors.As(err, &unknownErr), "expected *UnknownSourceError, got %T", err)
	assert.Equal(t, "snowflake", unknownErr.Type)
	assert.Contains(t, unknownErr.Available, "postgres")
	assert.Contains(t, err.Error(), "connection.type")
}

func TestOpenMissingType(t *testing.T) {
	_, err := Open(config.ConnectionConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not specified")
}

func TestOpenDispatchesToFactory(t *testing.T) {
	var got config.ConnectionConfig
	Register("fake-warehouse", func(cfg config.ConnectionConfig, _ *slog.Logger) (Source, error) {
		got = cfg
		return nil, nil
	})

	cfg := config.ConnectionConfig{Type: "fake-warehouse", Database: "test.db"}
	_, err := Open(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "test.db", got.Database)
}
