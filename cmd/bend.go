package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/brafe/qc/internal/bend"
	"github.com/brafe/qc/internal/chart"
	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/models"
	"github.com/brafe/qc/internal/output"
	"github.com/brafe/qc/internal/report"
	"github.com/brafe/qc/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBendJobs = 4
	sparklineWidth  = 40
)

var bendUnit = newEnumValue(string(bend.UnitKiloNewton), string(bend.UnitNewton), string(bend.UnitKiloNewton))

var bendCmd = &cobra.Command{
	Use:   "bend",
	Short: "Analyze 3-point bend test exports",
	Long: `Analyzes CSV exports of the 3-point bend test machine.

Stress is computed as σ = 3FL / (2bh²) from the force column and the bar
geometry, and the peak is graded against the minimum strength. Part ID and
job number are read from export names like 20240506_101112_PART1234(567).csv.

` + bend.FormatHelp,
	GroupID: "checks",
}

var bendAnalyzeCmd = &cobra.Command{
	Use:   "analyze <csv>...",
	Short: "Analyze one or more bend test CSV files",
	Example: `  qc bend analyze 20240506_101112_PART1234(567).csv
  qc bend analyze exports/*.csv --unit N --report
  qc bend analyze run.csv --chart run.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := readRecordFlags(cmd)

		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}
		params, err := bendParams(cmd, cfg)
		if err != nil {
			return fail(cmd, err)
		}
		delim, err := cfg.Bend.DelimiterRune()
		if err != nil {
			return fail(cmd, err)
		}
		jobs, _ := cmd.Flags().GetInt("jobs")

		analyses, errs := analyzeFiles(cmd.Context(), args, params, delim, jobs)

		var database *db.DB
		if !flags.noSave {
			if database, err = db.Open(getBaseDir()); err != nil {
				return fail(cmd, err)
			}
			defer database.Close()
		}

		chartPath, _ := cmd.Flags().GetString("chart")
		results := make([]map[string]interface{}, 0, len(args))
		failed := 0
		for i, a := range analyses {
			if errs[i] != nil {
				failed++
				results = append(results, map[string]interface{}{"file": args[i], "error": errs[i].Error()})
				if !flags.json {
					output.Error("%s: %v", args[i], errs[i])
				}
				continue
			}

			test := bendRecord(cfg, a, flags.part)
			reportPath, chartOut, err := finishBend(cfg, database, test, a, flags.report, chartTarget(chartPath, a.path, len(args)))
			if err != nil {
				return fail(cmd, err)
			}

			if flags.json {
				results = append(results, map[string]interface{}{
					"file":   a.path,
					"record": test,
					"result": a.result,
					"report": reportPath,
					"chart":  chartOut,
				})
				continue
			}
			if i > 0 {
				fmt.Println()
			}
			printBendResult(test, a)
			printSaved(test.ID, reportPath)
			if chartOut != "" {
				fmt.Println(output.Subtle("Chart: " + chartOut))
			}
		}

		if flags.json {
			if err := output.JSON(results); err != nil {
				return err
			}
		}
		if failed > 0 {
			err := fmt.Errorf("%d of %d files could not be analyzed", failed, len(args))
			if !flags.json {
				output.Error("%v", err)
			}
			return err
		}
		return nil
	},
}

var bendWatchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Analyze new exports as the machine writes them",
	Long: `Watches a directory and analyzes each .csv export once it has stopped
changing. Results are stored like 'qc bend analyze'. Stop with Ctrl+C.`,
	Example: `  qc bend watch /mnt/bendtester/export --report`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := readRecordFlags(cmd)
		dir := args[0]
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fail(cmd, fmt.Errorf("%w: %s is not a directory", errInvalidInput, dir))
		}

		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}
		params, err := bendParams(cmd, cfg)
		if err != nil {
			return fail(cmd, err)
		}
		delim, err := cfg.Bend.DelimiterRune()
		if err != nil {
			return fail(cmd, err)
		}

		var database *db.DB
		if !flags.noSave {
			if database, err = db.Open(getBaseDir()); err != nil {
				return fail(cmd, err)
			}
			defer database.Close()
		}

		handler := func(ctx context.Context, path string) error {
			a := analyzeFile(path, params, delim)
			if a.err != nil {
				output.Error("%s: %v", filepath.Base(path), a.err)
				return a.err
			}
			test := bendRecord(cfg, a, flags.part)
			reportPath, _, err := finishBend(cfg, database, test, a, flags.report, "")
			if err != nil {
				output.Error("%s: %v", filepath.Base(path), err)
				return err
			}
			if flags.json {
				return output.JSON(map[string]interface{}{"file": path, "record": test, "report": reportPath})
			}
			fmt.Println(bendLine(test))
			return nil
		}

		debounce, _ := cmd.Flags().GetDuration("debounce")
		w := watch.New(dir, handler, watch.WithDebounce(debounce), watch.WithLogger(logger))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !flags.json {
			output.Info("Watching %s for bend test exports (Ctrl+C to stop)", dir)
		}
		if err := w.Run(ctx); err != nil {
			return fail(cmd, err)
		}
		if !flags.json {
			st := w.Stats()
			fmt.Println(output.Subtle(fmt.Sprintf("%d files analyzed, %d errors", st.Handled, st.Errors)))
		}
		return nil
	},
}

// bendAnalysis is one parsed and analyzed export
type bendAnalysis struct {
	path   string
	meta   bend.Meta
	params bend.Params
	curve  *bend.Curve
	result bend.Result
	err    error
}

// bendParams applies flag overrides to the configured test parameters
func bendParams(cmd *cobra.Command, cfg *config.Config) (bend.Params, error) {
	p := cfg.Bend.Params
	for name, dst := range map[string]*float64{
		"span":         &p.SupportSpan,
		"width":        &p.Width,
		"height":       &p.Height,
		"min-strength": &p.MinStrength,
	} {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetFloat64(name)
		}
	}
	if cmd.Flags().Changed("unit") {
		p.ForceUnit = bend.Unit(bendUnit.String())
	}
	return p, bend.ValidateParams(p)
}

func analyzeFile(path string, p bend.Params, delim rune) bendAnalysis {
	a := bendAnalysis{path: path, meta: bend.ParseFilename(path), params: p}
	f, err := os.Open(path)
	if err != nil {
		a.err = err
		return a
	}
	defer f.Close()

	if a.curve, a.err = bend.ParseCSV(f, bend.ParseOptions{Delimiter: delim}); a.err != nil {
		return a
	}
	a.result, a.err = bend.Analyze(a.curve, p)
	return a
}

// analyzeFiles analyzes paths concurrently. Results keep argument order and
// one file's failure does not stop the others.
func analyzeFiles(ctx context.Context, paths []string, p bend.Params, delim rune, jobs int) ([]bendAnalysis, []error) {
	if jobs < 1 {
		jobs = 1
	}
	analyses := make([]bendAnalysis, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			analyses[i] = analyzeFile(path, p, delim)
			errs[i] = analyses[i].err
			logger.Debug("bend file analyzed", zap.String("file", path), zap.Error(errs[i]))
			return nil
		})
	}
	_ = g.Wait()
	return analyses, errs
}

func bendRecord(cfg *config.Config, a bendAnalysis, part string) *models.BendTest {
	t := &models.BendTest{
		Operator:     cfg.ResolveOperator(),
		SourceFile:   filepath.Base(a.path),
		PartID:       a.meta.PartID,
		JobNo:        a.meta.JobNo,
		Format:       string(a.result.Format),
		SupportSpan:  a.params.SupportSpan,
		Width:        a.params.Width,
		Height:       a.params.Height,
		MinStrength:  a.params.MinStrength,
		ForceUnit:    string(a.params.ForceUnit),
		SampleCount:  a.result.SampleCount,
		MaxForceN:    a.result.MaxForceN,
		StrengthNcm2: a.result.StrengthNcm2,
		Slope:        a.result.Slope,
		Status:       models.StatusFor(a.result.Pass),
		Samples:      make([]models.BendSample, len(a.result.Points)),
	}
	if part != "" {
		t.PartID = part
	}
	for i, p := range a.result.Points {
		t.Samples[i] = models.BendSample{
			Seq:          i + 1,
			Time:         p.Time,
			Displacement: p.Displacement,
			ForceN:       p.ForceN,
			StressNcm2:   p.StressNcm2,
		}
	}
	return t
}

// chartTarget returns where the chart for file goes: the --chart path for a
// single file, or <dir>/<stem>.png when several files share --chart as a directory.
func chartTarget(flag, file string, files int) string {
	if flag == "" {
		return ""
	}
	if files == 1 && !strings.HasSuffix(flag, string(os.PathSeparator)) {
		return flag
	}
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(flag, stem+".png")
}

// finishBend stores the test and writes the requested report and chart.
// database may be nil when nothing is saved.
func finishBend(cfg *config.Config, database *db.DB, t *models.BendTest, a bendAnalysis, withReport bool, chartPath string) (string, string, error) {
	if database != nil {
		if err := database.CreateBendTest(t); err != nil {
			return "", "", err
		}
		logger.Info("bend test stored", zap.String("id", t.ID), zap.String("file", t.SourceFile),
			zap.Float64("strength", t.StrengthNcm2))
	}

	var reportPath string
	if withReport {
		var err error
		if reportPath, err = saveReport(cfg, report.Bend(t)); err != nil {
			return "", "", err
		}
	}

	if chartPath != "" {
		xs, force, stress := a.result.Series(a.curve)
		if err := os.MkdirAll(filepath.Dir(chartPath), 0755); err != nil {
			return "", "", err
		}
		s := chart.Series{XLabel: a.curve.AbscissaLabel(), X: xs, Force: force, Stress: stress}
		if err := chart.SavePNG(chartPath, s); err != nil {
			return "", "", err
		}
	}
	return reportPath, chartPath, nil
}

func bendLine(t *models.BendTest) string {
	return fmt.Sprintf("%s %s  %-10s %7.1f N/cm²  %s",
		output.StatusBadge(t.Status), output.Subtle(time.Now().Format("15:04:05")),
		t.PartID, t.StrengthNcm2, output.Subtle(t.SourceFile))
}

func printBendResult(t *models.BendTest, a bendAnalysis) {
	fmt.Printf("%s  %s\n", output.Title("3-POINT BEND TEST"), output.StatusBadge(t.Status))
	fmt.Println(output.Subtle(t.SourceFile))
	fmt.Println()
	fmt.Println(output.KeyValue("Part ID", t.PartID))
	fmt.Println(output.KeyValue("Job No", t.JobNo))
	fmt.Println(output.KeyValue("Samples", t.SampleCount))
	fmt.Println(output.KeyValue("Max force", fmt.Sprintf("%.1f N", t.MaxForceN)))
	fmt.Println(output.KeyValue("Strength", fmt.Sprintf("%.1f N/cm² (%.2f MPa)", t.StrengthNcm2, a.result.StrengthMPa)))
	fmt.Println(output.KeyValue("Minimum", fmt.Sprintf("%.1f N/cm²", t.MinStrength)))
	fmt.Println(output.KeyValue("Initial slope", fmt.Sprintf("%.2f %s", t.Slope, a.result.SlopeUnit)))

	_, force, _ := a.result.Series(a.curve)
	fmt.Println()
	fmt.Println("  " + chart.Sparkline(force, sparklineWidth))

	if a.result.Pass {
		fmt.Println()
		output.Success("Strength meets the minimum")
		return
	}
	fmt.Print(output.SectionHeader("Recommendations"))
	for _, line := range output.BulletList(a.result.Recommendations, 2) {
		fmt.Println(line)
	}
}

func addBendParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("span", 0, "Support span L in mm (default from config)")
	cmd.Flags().Float64("width", 0, "Bar width b in mm (default from config)")
	cmd.Flags().Float64("height", 0, "Bar height h in mm (default from config)")
	cmd.Flags().Float64("min-strength", 0, "Minimum strength in N/cm² (default from config)")
	cmd.Flags().Var(bendUnit, "unit", "Force unit of the export (default from config)")
	addRecordFlags(cmd)
}

func init() {
	rootCmd.AddCommand(bendCmd)
	bendCmd.AddCommand(bendAnalyzeCmd, bendWatchCmd)

	addBendParamFlags(bendAnalyzeCmd)
	bendAnalyzeCmd.Flags().IntP("jobs", "j", defaultBendJobs, "Files analyzed in parallel")
	bendAnalyzeCmd.Flags().String("chart", "", "Write a PNG chart (a directory when several files are given)")

	addBendParamFlags(bendWatchCmd)
	bendWatchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before a file is analyzed")
}
