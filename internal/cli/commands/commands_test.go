package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concordia-labs/concordia/internal/config"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := NewGenerateCommand()

	assert.NotNil(t, cmd.Flags().Lookup("dry-run"))
	assert.NotNil(t, cmd.Flags().Lookup("workers"))
	assert.NotNil(t, cmd.RunE)
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-project")

	out, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "Next steps:")

	content, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "connection:")
	assert.Contains(t, string(content), "pk_suffixes: [_pk]")

	// The template is itself a loadable, valid configuration.
	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName), nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Connection.Type)
	assert.Equal(t, []string{"analytics"}, cfg.Connection.Datasets)
}

func TestInitCommandExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("# existing\n"), 0644))

	_, err := execute(t, NewInitCommand(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// --force overwrites
	_, err = execute(t, NewInitCommand(), dir, "--force")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "connection:")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, out, "Concordia v1.2.3")
}
