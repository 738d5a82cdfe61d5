package cmd

import (
	"fmt"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/models"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 20

var (
	historyKind   = newEnumValue("", string(models.KindDimensional), string(models.KindBend), string(models.KindLOI))
	historyStatus = newEnumValue("", string(models.StatusPass), string(models.StatusFail))
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls", "list"},
	Short:   "List stored test records, newest first",
	Example: `  qc history
  qc history --kind bend --status fail
  qc history --limit 100 --json`,
	GroupID: "records",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 0 {
			return fail(cmd, fmt.Errorf("%w: --limit must not be negative", errInvalidInput))
		}

		database, err := db.Open(getBaseDir())
		if err != nil {
			return fail(cmd, err)
		}
		defer database.Close()

		records, err := database.ListRecords(db.RecordFilter{
			Kind:   models.Kind(historyKind.String()),
			Status: models.Status(historyStatus.String()),
			Limit:  limit,
		})
		if err != nil {
			return fail(cmd, err)
		}

		if jsonOut {
			return output.JSON(records)
		}
		if len(records) == 0 {
			fmt.Println(output.Subtle("No records"))
			return nil
		}
		width := max(output.TerminalWidth(100)-45, 20)
		for _, r := range records {
			fmt.Println(output.FormatRecordShort(r, width))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Var(historyKind, "kind", "Only show records of this kind")
	historyCmd.Flags().Var(historyStatus, "status", "Only show passing or failing records")
	historyCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Maximum records to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "Output as JSON")
}
