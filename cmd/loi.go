package cmd

import (
	"fmt"
	"strings"

	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/loi"
	"github.com/brafe/qc/internal/models"
	"github.com/brafe/qc/internal/output"
	"github.com/brafe/qc/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loiMethod = newEnumValue(string(loi.MethodBunsen), string(loi.MethodBunsen), string(loi.MethodOven))

var loiCmd = &cobra.Command{
	Use:   "loi",
	Short: "Compute binder content by loss on ignition",
	Long: `Computes the mass loss Δm and LOI = Δm / W1 × 100 from three weighings and
classifies the result as insufficient, optimal or excessive binder.

Methods:
  bunsen  Bunsen burner (section 3.5.1); T1 and T2 are the negative readings
          after taring with the empty bowl
  oven    Oven (section 3.5.2); T1 is the empty bowl, T2 the bowl and sample
          after the oven cycle, both as positive gross weights

Without --t1/--w1/--t2 on a terminal, an interactive form is shown.`,
	Example: `  qc loi --t1 -44.904 --w1 30.023 --t2 -74.422
  qc loi --method oven --t1 44.904 --w1 30.023 --t2 74.422 --report`,
	GroupID: "checks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := readRecordFlags(cmd)

		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}

		method, in, part, err := loiInput(cmd, cfg, flags.part)
		if err != nil {
			return fail(cmd, err)
		}

		res, err := loi.Calculate(method, in, cfg.LOI)
		if err != nil {
			return fail(cmd, err)
		}
		test := loiRecord(cfg, part, in, res)

		if !flags.noSave {
			database, err := db.Open(getBaseDir())
			if err != nil {
				return fail(cmd, err)
			}
			defer database.Close()
			if err := database.CreateLOITest(test); err != nil {
				return fail(cmd, err)
			}
			logger.Info("loi test stored", zap.String("id", test.ID), zap.Float64("loi", test.LOIPercent))
		}

		var reportPath string
		if flags.report {
			if reportPath, err = saveReport(cfg, report.LOI(test)); err != nil {
				return fail(cmd, err)
			}
		}

		if flags.json {
			return output.JSON(map[string]interface{}{
				"record": test,
				"result": res,
				"report": reportPath,
			})
		}
		printLOIResult(res, cfg.LOI)
		printSaved(test.ID, reportPath)
		return nil
	},
}

func loiInput(cmd *cobra.Command, cfg *config.Config, part string) (loi.Method, loi.Input, string, error) {
	var in loi.Input
	set := 0
	for _, name := range []string{"t1", "w1", "t2"} {
		if cmd.Flags().Changed(name) {
			set++
		}
	}

	switch {
	case set == 3:
		in.T1, _ = cmd.Flags().GetFloat64("t1")
		in.W1, _ = cmd.Flags().GetFloat64("w1")
		in.T2, _ = cmd.Flags().GetFloat64("t2")
		return loi.Method(loiMethod.String()), in, part, nil
	case set == 0 && output.IsTerminal():
		state := &loiFormState{Method: loiMethod.String(), Part: part}
		if err := state.form(cfg.LOI).Run(); err != nil {
			return "", in, "", err
		}
		m, in, err := state.input()
		return m, in, strings.TrimSpace(state.Part), err
	default:
		return "", in, "", fmt.Errorf("%w: --t1, --w1 and --t2 are all required", errInvalidInput)
	}
}

func loiRecord(cfg *config.Config, part string, in loi.Input, res loi.Result) *models.LOITest {
	return &models.LOITest{
		Operator:   cfg.ResolveOperator(),
		PartID:     part,
		Method:     string(res.Method),
		T1:         in.T1,
		W1:         in.W1,
		T2:         in.T2,
		MassLoss:   res.MassLoss,
		LOIPercent: res.LOI,
		Band:       string(res.Band),
		Status:     models.StatusFor(res.Pass),
	}
}

func printLOIResult(res loi.Result, l loi.Limits) {
	fmt.Printf("%s  %s\n", output.Title("LOSS ON IGNITION"), output.StatusBadge(models.StatusFor(res.Pass)))
	fmt.Println(output.Subtle(res.Method.Label()))
	fmt.Println()
	fmt.Println(output.KeyValue("Mass loss (Δm)", fmt.Sprintf("%.3f g", res.MassLoss)))
	fmt.Println(output.KeyValue("Loss on ignition", fmt.Sprintf("%.2f %%", res.LOI)))
	fmt.Println(output.KeyValue("Band", res.Band))
	fmt.Println()
	if res.Pass {
		output.Success("%s", res.Interpretation)
	} else {
		output.Warning("%s", res.Interpretation)
	}
	fmt.Println(output.Subtle(fmt.Sprintf("Optimal range: %g-%g%%", l.OptimalMin, l.OptimalMax)))
}

func init() {
	rootCmd.AddCommand(loiCmd)
	loiCmd.Flags().Var(loiMethod, "method", "Test method")
	loiCmd.Flags().Float64("t1", 0, "T1 bowl weight in g")
	loiCmd.Flags().Float64("w1", 0, "W1 sample weight in g")
	loiCmd.Flags().Float64("t2", 0, "T2 bowl and ash weight in g")
	addRecordFlags(loiCmd)
}
