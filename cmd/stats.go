package cmd

import (
	"fmt"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show pass rates per test kind",
	GroupID: "records",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		database, err := db.Open(getBaseDir())
		if err != nil {
			return fail(cmd, err)
		}
		defer database.Close()

		stats, err := database.Stats()
		if err != nil {
			return fail(cmd, err)
		}

		if jsonOut {
			type row struct {
				Kind     string  `json:"kind"`
				Total    int     `json:"total"`
				Passed   int     `json:"passed"`
				Failed   int     `json:"failed"`
				PassRate float64 `json:"pass_rate"`
			}
			rows := make([]row, len(stats))
			for i, s := range stats {
				rows[i] = row{string(s.Kind), s.Total, s.Passed, s.Failed, s.PassRate()}
			}
			return output.JSON(rows)
		}

		fmt.Println(output.Title("RECORD STATISTICS"))
		fmt.Println()
		for _, s := range stats {
			rate := "-"
			if s.Total > 0 {
				rate = fmt.Sprintf("%.0f%%", s.PassRate()*100)
			}
			fmt.Printf("  %-20s %4d total  %4d pass  %4d fail  %6s\n",
				s.Kind.Label(), s.Total, s.Passed, s.Failed, rate)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("json", false, "Output as JSON")
}
