package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/models"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show a stored test record",
	Example: `  qc show dc-1a2b3c
  qc show bt-9f8e7d --json`,
	GroupID: "records",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		database, err := db.Open(getBaseDir())
		if err != nil {
			return fail(cmd, err)
		}
		defer database.Close()

		rec, err := loadRecord(database, args[0])
		if err != nil {
			return fail(cmd, err)
		}
		if jsonOut {
			return output.JSON(rec)
		}

		switch r := rec.(type) {
		case *models.DimensionalCheck:
			printDimensionalRecord(r)
		case *models.BendTest:
			printBendRecord(r)
		case *models.LOITest:
			printLOIRecord(r)
		}
		return nil
	},
}

// loadRecord fetches a record of any kind by its prefixed ID
func loadRecord(database *db.DB, id string) (interface{}, error) {
	kind, ok := db.KindOf(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", db.ErrNotFound, id)
	}
	switch kind {
	case models.KindDimensional:
		return database.GetDimensionalCheck(id)
	case models.KindBend:
		return database.GetBendTest(id)
	default:
		return database.GetLOITest(id)
	}
}

func recordHeader(id string, kind models.Kind, status models.Status) {
	fmt.Printf("%s  %s  %s\n", output.Title(id), output.FormatKind(kind), output.StatusBadge(status))
	fmt.Println(output.Subtle(kind.Label()))
	fmt.Println()
}

func recordFooter(operator, notes string, at time.Time) {
	fmt.Println(output.KeyValue("Operator", orDash(operator)))
	fmt.Println(output.KeyValue("Recorded", fmt.Sprintf("%s (%s)", at.Format("2006-01-02 15:04"), output.FormatTimeAgo(at))))
	if notes != "" {
		fmt.Print(output.SectionHeader("Notes"))
		for _, line := range strings.Split(notes, "\n") {
			fmt.Println("  " + line)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printDimensionalRecord(c *models.DimensionalCheck) {
	recordHeader(c.ID, models.KindDimensional, c.Status)
	fmt.Println(output.KeyValue("Part", orDash(c.PartID)))
	fmt.Println(output.KeyValue("Length (X)", fmt.Sprintf("%.2f mm (nominal %.2f, %s)", c.XMeasured, c.XNominal, output.FormatDeviation(c.XMeasured-c.XNominal))))
	fmt.Println(output.KeyValue("Width (Y)", fmt.Sprintf("%.2f mm (nominal %.2f, %s)", c.YMeasured, c.YNominal, output.FormatDeviation(c.YMeasured-c.YNominal))))
	fmt.Println(output.KeyValue("Height (Z)", fmt.Sprintf("%.2f mm (nominal %.2f, %s)", c.ZMeasured, c.ZNominal, output.FormatDeviation(c.ZMeasured-c.ZNominal))))
	fmt.Println(output.KeyValue("Tolerance", fmt.Sprintf("±%.2f mm", c.Tolerance)))
	if len(c.FailedAxes) > 0 {
		fmt.Println(output.KeyValue("Failed axes", strings.Join(c.FailedAxes, ", ")))
	}
	recordFooter(c.Operator, c.Notes, c.CreatedAt)
}

func printBendRecord(t *models.BendTest) {
	recordHeader(t.ID, models.KindBend, t.Status)
	fmt.Println(output.KeyValue("Source file", t.SourceFile))
	fmt.Println(output.KeyValue("Part ID", t.PartID))
	fmt.Println(output.KeyValue("Job No", t.JobNo))
	fmt.Println(output.KeyValue("Format", t.Format))
	fmt.Println(output.KeyValue("Geometry", fmt.Sprintf("L %.1f mm, b %.1f mm, h %.1f mm", t.SupportSpan, t.Width, t.Height)))
	fmt.Println(output.KeyValue("Force unit", t.ForceUnit))
	fmt.Println(output.KeyValue("Samples", t.SampleCount))
	fmt.Println(output.KeyValue("Max force", fmt.Sprintf("%.1f N", t.MaxForceN)))
	fmt.Println(output.KeyValue("Strength", fmt.Sprintf("%.1f N/cm² (min %.1f)", t.StrengthNcm2, t.MinStrength)))
	fmt.Println(output.KeyValue("Initial slope", fmt.Sprintf("%.2f", t.Slope)))
	recordFooter(t.Operator, t.Notes, t.CreatedAt)
}

func printLOIRecord(t *models.LOITest) {
	recordHeader(t.ID, models.KindLOI, t.Status)
	fmt.Println(output.KeyValue("Part", orDash(t.PartID)))
	fmt.Println(output.KeyValue("Method", t.Method))
	fmt.Println(output.KeyValue("T1 / W1 / T2", fmt.Sprintf("%.3f / %.3f / %.3f g", t.T1, t.W1, t.T2)))
	fmt.Println(output.KeyValue("Mass loss (Δm)", fmt.Sprintf("%.3f g", t.MassLoss)))
	fmt.Println(output.KeyValue("Loss on ignition", fmt.Sprintf("%.2f %%", t.LOIPercent)))
	fmt.Println(output.KeyValue("Band", t.Band))
	recordFooter(t.Operator, t.Notes, t.CreatedAt)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("json", false, "Output as JSON")
}
