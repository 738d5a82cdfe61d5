package cmd

import (
	"fmt"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/models"
	"github.com/brafe/qc/internal/output"
	"github.com/brafe/qc/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <id>...",
	Short: "Write Excel reports for stored records",
	Long: `Writes a <prefix>_<name>_Report_<timestamp>.xlsx workbook for each record into
the configured report directory. Bend test reports include the raw curve.`,
	Example: `  qc report bt-9f8e7d
  qc report dc-1a2b3c lo-4d5e6f --dir /mnt/share/qc`,
	GroupID: "records",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			cfg.ReportDir = dir
		}

		database, err := db.Open(getBaseDir())
		if err != nil {
			return fail(cmd, err)
		}
		defer database.Close()

		paths := make(map[string]string, len(args))
		for _, id := range args {
			rec, err := loadRecord(database, id)
			if err != nil {
				return fail(cmd, err)
			}
			path, err := saveReport(cfg, reportFor(rec))
			if err != nil {
				return fail(cmd, err)
			}
			paths[id] = path
			if !jsonOut {
				output.Success("%s → %s", id, path)
			}
		}
		if jsonOut {
			return output.JSON(paths)
		}
		return nil
	},
}

// reportFor builds the workbook for a record returned by loadRecord
func reportFor(rec interface{}) *report.Report {
	switch r := rec.(type) {
	case *models.DimensionalCheck:
		return report.Dimensional(r)
	case *models.BendTest:
		return report.Bend(r)
	case *models.LOITest:
		return report.LOI(r)
	}
	panic(fmt.Sprintf("reportFor: unexpected record type %T", rec))
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("dir", "", "Report directory (default from config)")
	reportCmd.Flags().Bool("json", false, "Output report paths as JSON")
}
