package cmd

import (
	"fmt"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Soft-delete one or more records",
	GroupID: "records",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachRecord(cmd, args, "DELETED", (*db.DB).DeleteRecord)
	},
}

var restoreCmd = &cobra.Command{
	Use:     "restore <id>...",
	Short:   "Restore soft-deleted records",
	GroupID: "records",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachRecord(cmd, args, "RESTORED", (*db.DB).RestoreRecord)
	},
}

// forEachRecord applies op to every id, reporting each failure and returning
// an error when any id failed.
func forEachRecord(cmd *cobra.Command, ids []string, verb string, op func(*db.DB, string) error) error {
	database, err := db.Open(getBaseDir())
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer database.Close()

	failed := 0
	for _, id := range ids {
		if err := op(database, id); err != nil {
			output.Error("%s: %v", id, err)
			failed++
			continue
		}
		fmt.Printf("%s %s\n", verb, id)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d records failed", failed, len(ids))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd, restoreCmd)
}
