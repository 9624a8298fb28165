package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/maestro/internal/shared"
	tu "github.com/desertthunder/maestro/internal/testing"
)

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dbPath := filepath.Join(dir, "maestro.db")

	content := fmt.Sprintf("[database]\npath = %q\nmax_open_conns = 2\nmax_idle_conns = 1\n", dbPath)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Output: output,
		Logger: shared.NewLogger(io.Discard),
	})

	if err := runCommand(t, runner, "setup", "--config", configPath); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tu.AssertFileExists(t, configPath)
	tu.AssertFileExists(t, dbPath)

	if !strings.Contains(output.String(), "Setup complete") {
		t.Errorf("expected setup completion message, got %q", output.String())
	}
}
