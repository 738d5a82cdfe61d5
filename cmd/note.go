package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/input"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:     "note <id> <text...>",
	Short:   "Append a note to a stored record",
	Long: `Appends text to the notes of a record. An argument of - reads the note
from stdin and @path reads it from a file.`,
	Example: `  qc note bt-9f8e7d "bar cracked at the support"
  qc note lo-4d5e6f @observations.txt`,
	GroupID: "records",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(getBaseDir())
		if err != nil {
			return fail(cmd, err)
		}
		defer database.Close()

		id := args[0]
		parts, err := input.ExpandArgs(args[1:], os.Stdin)
		if err != nil {
			return fail(cmd, fmt.Errorf("%w: %v", errInvalidInput, err))
		}
		if err := database.AddNote(id, strings.Join(parts, " ")); err != nil {
			return fail(cmd, err)
		}
		fmt.Printf("NOTED %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
