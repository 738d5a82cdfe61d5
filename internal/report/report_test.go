package report

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/brafe/qc/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var at = time.Date(2024, 5, 6, 10, 11, 12, 0, time.Local)

func TestFileName(t *testing.T) {
	assert.Equal(t, "Brafe_DimCheck_Report_20240506_101112.xlsx", FileName("Brafe", "DimCheck", at))
}

func valueOf(t *testing.T, f *excelize.File, sheet, param string) string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	for _, row := range rows {
		if len(row) >= 2 && row[0] == param {
			return row[1]
		}
	}
	t.Fatalf("parameter %q not in sheet %q", param, sheet)
	return ""
}

func TestDimensionalReportSave(t *testing.T) {
	c := &models.DimensionalCheck{
		ID: "dc-a1b2c3", Operator: "ana", XMeasured: 172.6, YMeasured: 22.4, ZMeasured: 22.4,
		XNominal: 172, YNominal: 22.4, ZNominal: 22.4, Tolerance: 0.45,
		Status: models.StatusFail, FailedAxes: []string{"x"}, CreatedAt: at,
	}

	dir := filepath.Join(t.TempDir(), "reports")
	path, err := Dimensional(c).Save(dir, "Brafe", at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Brafe_DimCheck_Report_20240506_101112.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet}, f.GetSheetList())
	header, err := f.GetCellValue(SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Parameter", header)
	assert.Equal(t, "dc-a1b2c3", valueOf(t, f, SummarySheet, "Test ID"))
	assert.Equal(t, "2024-05-06", valueOf(t, f, SummarySheet, "Test Date"))
	assert.Equal(t, "N/A", valueOf(t, f, SummarySheet, "Part ID"))
	assert.Equal(t, "X", valueOf(t, f, SummarySheet, "Failed Axes"))
	assert.Equal(t, "FAIL", valueOf(t, f, SummarySheet, "Status"))

	width, err := f.GetColWidth(SummarySheet, "A")
	require.NoError(t, err)
	assert.Equal(t, 25.0, width)
}

func TestStatusCellStyled(t *testing.T) {
	lt := &models.LOITest{ID: "lo-000001", Method: "bunsen", W1: 30, Status: models.StatusPass, CreatedAt: at}
	var buf bytes.Buffer
	require.NoError(t, LOI(lt).Write(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	statusCell, err := excelize.CoordinatesToCellName(2, len(rows))
	require.NoError(t, err)

	v, err := f.GetCellValue(SummarySheet, statusCell)
	require.NoError(t, err)
	assert.Equal(t, "PASS", v)

	styleID, err := f.GetCellStyle(SummarySheet, statusCell)
	require.NoError(t, err)
	assert.NotZero(t, styleID)
}

func TestBendReportHasRawData(t *testing.T) {
	bt := &models.BendTest{
		ID: "bt-000001", PartID: "PART1234", JobNo: "56", ForceUnit: "kN",
		Status: models.StatusPass, CreatedAt: at, SampleCount: 2,
		Samples: []models.BendSample{
			{Seq: 1, Time: 0.1, Displacement: 0.01, ForceN: 100, StressNcm2: 130},
			{Seq: 2, Time: 0.2, Displacement: 0.02, ForceN: 900, StressNcm2: 1200},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Bend(bt).Write(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, RawSheet}, f.GetSheetList())
	rows, err := f.GetRows(RawSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Force (N)", rows[0][3])
	assert.Equal(t, "900", rows[2][3])
	assert.Equal(t, "PART1234", valueOf(t, f, SummarySheet, "Part ID"))
}
