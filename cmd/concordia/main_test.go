// Package main provides tests for the Concordia CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/concordia-labs/concordia/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Concordia") {
		t.Errorf("version output should contain 'Concordia', got: %s", output)
	}
}

func TestHelpListsCommands(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("help error = %v", err)
	}

	output := buf.String()
	for _, name := range []string{"init", "generate", "version"} {
		if !strings.Contains(output, name) {
			t.Errorf("help output should list %q, got: %s", name, output)
		}
	}
}
