package cmd

import (
	"fmt"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [id]",
	Short: "Show the audit log of record changes",
	Long:  `Lists record creations, deletions, restores and notes, newest first.`,
	Example: `  qc log
  qc log bt-9f8e7d`,
	GroupID: "records",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")

		database, err := db.Open(getBaseDir())
		if err != nil {
			return fail(cmd, err)
		}
		defer database.Close()

		var recordID string
		if len(args) == 1 {
			recordID = args[0]
		}
		actions, err := database.RecentActions(recordID, limit)
		if err != nil {
			return fail(cmd, err)
		}

		if jsonOut {
			return output.JSON(actions)
		}
		if len(actions) == 0 {
			fmt.Println(output.Subtle("No changes recorded"))
			return nil
		}
		for _, a := range actions {
			line := fmt.Sprintf("%s  %-8s %s", a.Timestamp.Format("2006-01-02 15:04:05"), a.Action, a.RecordID)
			if a.Detail != "" {
				line += "  " + output.Subtle(output.Truncate(a.Detail, 60))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().IntP("limit", "n", 50, "Maximum entries to show (0 for all)")
	logCmd.Flags().Bool("json", false, "Output as JSON")
}
