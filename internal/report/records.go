package report

import (
	"strings"

	"github.com/brafe/qc/internal/models"
)

const dateLayout = "2006-01-02"

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Dimensional builds the report of a dimensional check
func Dimensional(c *models.DimensionalCheck) *Report {
	failed := "none"
	if len(c.FailedAxes) > 0 {
		failed = strings.ToUpper(strings.Join(c.FailedAxes, ", "))
	}
	return &Report{
		Name:   "DimCheck",
		Status: c.Status,
		Summary: []Row{
			{"Test Date", c.CreatedAt.Format(dateLayout)},
			{"Operator", c.Operator},
			{"Test ID", c.ID},
			{"Part ID", orNA(c.PartID)},
			{"X Measured (mm)", c.XMeasured},
			{"Y Measured (mm)", c.YMeasured},
			{"Z Measured (mm)", c.ZMeasured},
			{"X Nominal (mm)", c.XNominal},
			{"Y Nominal (mm)", c.YNominal},
			{"Z Nominal (mm)", c.ZNominal},
			{"Tolerance (± mm)", c.Tolerance},
			{"Failed Axes", failed},
			{"Notes", c.Notes},
		},
	}
}

// Bend builds the report of a bend test, with its samples on a second sheet
func Bend(t *models.BendTest) *Report {
	raw := &RawData{
		Header: []string{"Seq", "Time (s)", "Displacement (mm)", "Force (N)", "Stress (N/cm²)"},
		Rows:   make([][]interface{}, 0, len(t.Samples)),
	}
	for _, s := range t.Samples {
		raw.Rows = append(raw.Rows, []interface{}{s.Seq, s.Time, s.Displacement, s.ForceN, s.StressNcm2})
	}
	return &Report{
		Name:   "BendTest",
		Status: t.Status,
		Raw:    raw,
		Summary: []Row{
			{"Test Date", t.CreatedAt.Format(dateLayout)},
			{"Operator", t.Operator},
			{"Test ID", t.ID},
			{"Source File", t.SourceFile},
			{"Part ID", t.PartID},
			{"Job No", t.JobNo},
			{"Support Span (mm)", t.SupportSpan},
			{"Width (mm)", t.Width},
			{"Height (mm)", t.Height},
			{"Force Unit", t.ForceUnit},
			{"Samples", t.SampleCount},
			{"Max Force (N)", t.MaxForceN},
			{"Bending Strength (N/cm²)", t.StrengthNcm2},
			{"Minimum Strength (N/cm²)", t.MinStrength},
			{"Slope", t.Slope},
			{"Notes", t.Notes},
		},
	}
}

// LOI builds the report of a loss-on-ignition test
func LOI(t *models.LOITest) *Report {
	return &Report{
		Name:   "LOI",
		Status: t.Status,
		Summary: []Row{
			{"Test Date", t.CreatedAt.Format(dateLayout)},
			{"Operator", t.Operator},
			{"Test ID", t.ID},
			{"Part ID", orNA(t.PartID)},
			{"Method", t.Method},
			{"T1 (g)", t.T1},
			{"W1 (g)", t.W1},
			{"T2 (g)", t.T2},
			{"Mass Loss (g)", t.MassLoss},
			{"LOI (%)", t.LOIPercent},
			{"Band", t.Band},
			{"Notes", t.Notes},
		},
	}
}
