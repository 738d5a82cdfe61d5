package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/db"
)

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	database, err := db.Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	database.Close()

	if err := writeDefaultConfig(dir); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dimensional.Tolerance != 0.45 {
		t.Errorf("tolerance = %v, want 0.45", cfg.Dimensional.Tolerance)
	}

	// an existing config is left alone
	if err := config.Update(dir, func(c *config.Config) error { return c.Set("dim.tolerance", "0.3") }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := writeDefaultConfig(dir); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}
	cfg, _ = config.Load(dir)
	if cfg.Dimensional.Tolerance != 0.3 {
		t.Errorf("existing config overwritten: tolerance = %v", cfg.Dimensional.Tolerance)
	}
}

func TestAddToGitignore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")

	// no .gitignore, nothing created
	addToGitignore(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("created .gitignore: %v", err)
	}

	os.WriteFile(path, []byte("bin/"), 0644)
	addToGitignore(path)
	addToGitignore(path)

	data, _ := os.ReadFile(path)
	if got := string(data); got != "bin/\n.qc/\n" {
		t.Errorf(".gitignore = %q", got)
	}
	if strings.Count(string(data), ".qc/") != 1 {
		t.Error(".qc/ added twice")
	}
}
