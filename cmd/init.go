package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a new qc project",
	Long:    `Creates the local .qc directory with the records database and a default config.yaml.`,
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if _, err := os.Stat(filepath.Join(baseDir, config.Dir)); err == nil {
			output.Warning("%s/ already exists", config.Dir)
			return nil
		}

		database, err := db.Initialize(baseDir)
		if err != nil {
			output.Error("failed to initialize database: %v", err)
			return err
		}
		defer database.Close()

		if err := writeDefaultConfig(baseDir); err != nil {
			output.Error("failed to write config: %v", err)
			return err
		}

		fmt.Printf("INITIALIZED %s/\n", config.Dir)
		addToGitignore(filepath.Join(baseDir, ".gitignore"))
		return nil
	},
}

// writeDefaultConfig writes the factory config unless one is already present
func writeDefaultConfig(baseDir string) error {
	path := filepath.Join(baseDir, config.Dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return config.Save(baseDir, config.Default())
}

// addToGitignore appends .qc/ to an existing .gitignore
func addToGitignore(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	entry := config.Dir + "/"
	if strings.Contains(string(content), entry) {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		f.WriteString("\n")
	}
	f.WriteString(entry + "\n")
	fmt.Printf("Added %s to .gitignore\n", entry)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
