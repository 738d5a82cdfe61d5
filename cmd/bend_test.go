package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brafe/qc/internal/bend"
	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/models"
	"github.com/spf13/cobra"
)

const (
	strongCSV = "Force,Index,Position,Time,X,Y\n" +
		"0,0,0.00,0.0,0.00,0\n" +
		"0,1,0.80,0.5,0.10,0\n" +
		"0,2,1.60,1.0,0.20,0\n" +
		"0,3,2.50,1.5,0.30,0\n" +
		"0,4,0.30,2.0,0.40,0\n"
	weakCSV = "force,displacement\n0.02,0.1\n0.10,0.2\n0.05,0.3\n"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeFilesKeepsOrderAndErrors(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeCSV(t, dir, "20240506_101112_PART1234(567).csv", strongCSV),
		writeCSV(t, dir, "broken.csv", "a,b,c\n1,2,3\n"),
		writeCSV(t, dir, "20240506_101500_PART9(8).csv", weakCSV),
		filepath.Join(dir, "missing.csv"),
	}

	analyses, errs := analyzeFiles(context.Background(), paths, bend.DefaultParams(), ',', 2)

	if errs[0] != nil || errs[2] != nil {
		t.Fatalf("unexpected errors: %v, %v", errs[0], errs[2])
	}
	if !errors.Is(errs[1], bend.ErrBadFormat) {
		t.Errorf("broken.csv: got %v, want ErrBadFormat", errs[1])
	}
	if errs[3] == nil {
		t.Error("missing file should fail")
	}

	if analyses[0].meta.PartID != "PART1234" || analyses[0].meta.JobNo != "567" {
		t.Errorf("meta = %+v", analyses[0].meta)
	}
	if !analyses[0].result.Pass {
		t.Errorf("strong bar failed: %.1f N/cm²", analyses[0].result.StrengthNcm2)
	}
	if analyses[2].result.Pass {
		t.Errorf("weak bar passed: %.1f N/cm²", analyses[2].result.StrengthNcm2)
	}
	if analyses[2].curve.Format != bend.FormatForceDisplacement {
		t.Errorf("format = %s", analyses[2].curve.Format)
	}
}

func TestBendRecord(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "20240506_101112_PART1234(567).csv", strongCSV)
	a := analyzeFile(path, bend.DefaultParams(), ',')
	if a.err != nil {
		t.Fatalf("analyzeFile failed: %v", a.err)
	}

	rec := bendRecord(config.Default(), a, "")
	if rec.SourceFile != filepath.Base(path) || rec.PartID != "PART1234" || rec.JobNo != "567" {
		t.Errorf("record identity = %+v", rec)
	}
	if rec.SampleCount != 5 || len(rec.Samples) != 5 {
		t.Fatalf("samples = %d/%d", rec.SampleCount, len(rec.Samples))
	}
	if rec.Samples[0].Seq != 1 || rec.Samples[3].ForceN != 2500 {
		t.Errorf("sample 4 = %+v", rec.Samples[3])
	}
	if rec.MaxForceN != 2500 || rec.Status != models.StatusPass {
		t.Errorf("max/status = %v/%s", rec.MaxForceN, rec.Status)
	}
	if rec.ForceUnit != "kN" || rec.Format != string(bend.FormatMachine) {
		t.Errorf("unit/format = %s/%s", rec.ForceUnit, rec.Format)
	}

	if got := bendRecord(config.Default(), a, "OVERRIDE"); got.PartID != "OVERRIDE" {
		t.Errorf("--part override ignored: %q", got.PartID)
	}
}

func TestFinishBendStoresAndWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	database, err := db.Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer database.Close()

	oldBase := baseDir
	baseDir = dir
	defer func() { baseDir = oldBase }()

	path := writeCSV(t, dir, "20240506_101112_PART1234(567).csv", strongCSV)
	a := analyzeFile(path, bend.DefaultParams(), ',')
	rec := bendRecord(config.Default(), a, "")

	chartPath := filepath.Join(dir, "charts", "run.png")
	reportPath, gotChart, err := finishBend(config.Default(), database, rec, a, true, chartPath)
	if err != nil {
		t.Fatalf("finishBend failed: %v", err)
	}

	stored, err := database.GetBendTest(rec.ID)
	if err != nil {
		t.Fatalf("GetBendTest failed: %v", err)
	}
	if len(stored.Samples) != 5 {
		t.Errorf("stored samples = %d", len(stored.Samples))
	}
	if !strings.HasPrefix(filepath.Base(reportPath), "Brafe_") {
		t.Errorf("report path = %s", reportPath)
	}
	for _, p := range []string{reportPath, gotChart} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("output missing: %v", err)
		}
	}
}

func TestChartTarget(t *testing.T) {
	tests := []struct {
		flag  string
		file  string
		files int
		want  string
	}{
		{"", "a.csv", 1, ""},
		{"out.png", "in/a.csv", 1, "out.png"},
		{"charts", "in/a.csv", 3, filepath.Join("charts", "a.png")},
		{"charts" + string(os.PathSeparator), "b.CSV", 1, filepath.Join("charts", "b.png")},
	}
	for _, tt := range tests {
		if got := chartTarget(tt.flag, tt.file, tt.files); got != tt.want {
			t.Errorf("chartTarget(%q, %q, %d) = %q, want %q", tt.flag, tt.file, tt.files, got, tt.want)
		}
	}
}

func TestBendParamsOverrides(t *testing.T) {
	c := &cobra.Command{Use: "analyze"}
	addBendParamFlags(c)
	c.Flags().Set("span", "80")
	c.Flags().Set("unit", "n")

	p, err := bendParams(c, config.Default())
	if err != nil {
		t.Fatalf("bendParams failed: %v", err)
	}
	if p.SupportSpan != 80 || p.ForceUnit != bend.UnitNewton {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.Width != bend.DefaultParams().Width {
		t.Errorf("unset flag changed width to %v", p.Width)
	}

	c.Flags().Set("width", "5")
	if _, err := bendParams(c, config.Default()); !errors.Is(err, bend.ErrInvalidInput) {
		t.Errorf("width 5: got %v, want ErrInvalidInput", err)
	}
	bendUnit.Set("kN")
}
