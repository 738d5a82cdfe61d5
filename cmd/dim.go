package cmd

import (
	"fmt"
	"strings"

	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/dimension"
	"github.com/brafe/qc/internal/models"
	"github.com/brafe/qc/internal/output"
	"github.com/brafe/qc/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dimCmd = &cobra.Command{
	Use:   "dim",
	Short: "Check measured test bar dimensions against tolerance",
	Long: `Compares the measured length (X), width (Y) and height (Z) of a test bar
with the nominal dimensions. Each axis passes when it is within the configured
tolerance. Failed axes print troubleshooting tips.

Without --x/--y/--z on a terminal, an interactive form is shown.`,
	Example: `  qc dim --x 172.1 --y 22.5 --z 22.3
  qc dim --x 172.6 --y 22.4 --z 22.4 --part P-100 --report`,
	GroupID: "checks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := readRecordFlags(cmd)

		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}

		m, part, err := dimInput(cmd, cfg, flags.part)
		if err != nil {
			return fail(cmd, err)
		}

		res, err := dimension.Check(cfg.Dimensional, m)
		if err != nil {
			return fail(cmd, err)
		}
		check := dimensionalRecord(cfg, part, m, res)

		if !flags.noSave {
			database, err := db.Open(getBaseDir())
			if err != nil {
				return fail(cmd, err)
			}
			defer database.Close()
			if err := database.CreateDimensionalCheck(check); err != nil {
				return fail(cmd, err)
			}
			logger.Info("dimensional check stored", zap.String("id", check.ID), zap.String("status", string(check.Status)))
		}

		var reportPath string
		if flags.report {
			if reportPath, err = saveReport(cfg, report.Dimensional(check)); err != nil {
				return fail(cmd, err)
			}
		}

		if flags.json {
			return output.JSON(map[string]interface{}{
				"record": check,
				"result": res,
				"report": reportPath,
			})
		}
		printDimResult(check, res)
		printSaved(check.ID, reportPath)
		return nil
	},
}

func dimInput(cmd *cobra.Command, cfg *config.Config, part string) (dimension.Measurement, string, error) {
	var m dimension.Measurement
	set := 0
	for _, name := range []string{"x", "y", "z"} {
		if cmd.Flags().Changed(name) {
			set++
		}
	}

	switch {
	case set == 3:
		m.X, _ = cmd.Flags().GetFloat64("x")
		m.Y, _ = cmd.Flags().GetFloat64("y")
		m.Z, _ = cmd.Flags().GetFloat64("z")
		return m, part, nil
	case set == 0 && output.IsTerminal():
		state := &dimFormState{Part: part}
		if err := state.form(cfg.Dimensional).Run(); err != nil {
			return m, "", err
		}
		m, err := state.measurement()
		return m, strings.TrimSpace(state.Part), err
	default:
		return m, "", fmt.Errorf("%w: --x, --y and --z are all required", errInvalidInput)
	}
}

func dimensionalRecord(cfg *config.Config, part string, m dimension.Measurement, res dimension.Result) *models.DimensionalCheck {
	c := &models.DimensionalCheck{
		Operator:  cfg.ResolveOperator(),
		PartID:    part,
		XMeasured: m.X,
		YMeasured: m.Y,
		ZMeasured: m.Z,
		XNominal:  cfg.Dimensional.NominalX,
		YNominal:  cfg.Dimensional.NominalY,
		ZNominal:  cfg.Dimensional.NominalZ,
		Tolerance: res.Tolerance,
		Status:    models.StatusFor(res.Pass),
	}
	for _, ar := range res.Failed() {
		c.FailedAxes = append(c.FailedAxes, string(ar.Axis))
	}
	return c
}

func printDimResult(c *models.DimensionalCheck, res dimension.Result) {
	fmt.Printf("%s  %s\n", output.Title("DIMENSIONAL CHECK"), output.StatusBadge(c.Status))
	if c.PartID != "" {
		fmt.Println(output.Subtle("Part: " + c.PartID))
	}
	fmt.Println()
	for _, ar := range res.Axes {
		mark := "✓"
		if !ar.Pass {
			mark = "✗ " + string(ar.Direction)
		}
		fmt.Printf("  %-12s %8.2f mm  nominal %7.2f  %-10s %s\n",
			fmt.Sprintf("%s (%s)", ar.Axis.Label(), ar.Axis),
			ar.Measured, ar.Nominal, output.FormatDeviation(ar.Deviation), mark)
	}
	fmt.Println(output.Subtle(fmt.Sprintf("  tolerance ±%.2f mm", res.Tolerance)))

	if res.Pass {
		fmt.Println()
		output.Success("All dimensions within specification!")
		return
	}
	fmt.Print(output.SectionHeader("Troubleshooting tips"))
	for _, line := range output.BulletList(res.Tips, 2) {
		fmt.Println(line)
	}
}

func printSaved(id, reportPath string) {
	if id != "" || reportPath != "" {
		fmt.Println()
	}
	if id != "" {
		fmt.Println(output.Subtle("Saved " + id))
	}
	if reportPath != "" {
		fmt.Println(output.Subtle("Report: " + reportPath))
	}
}

func init() {
	rootCmd.AddCommand(dimCmd)
	dimCmd.Flags().Float64("x", 0, "Measured length X in mm")
	dimCmd.Flags().Float64("y", 0, "Measured width Y in mm")
	dimCmd.Flags().Float64("z", 0, "Measured height Z in mm")
	addRecordFlags(dimCmd)
}
