// Package report writes Excel reports for stored test records.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brafe/qc/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Test Summary"
	RawSheet     = "Raw Data"
)

// Row is one Parameter/Value line of the summary sheet
type Row struct {
	Parameter string
	Value     interface{}
}

// RawData is an optional second sheet of tabular samples
type RawData struct {
	Header []string
	Rows   [][]interface{}
}

// Report is a workbook ready to be written
type Report struct {
	// Name is the file name infix, e.g. "DimCheck"
	Name    string
	Summary []Row
	Status  models.Status
	Raw     *RawData
}

// FileName returns "<prefix>_<name>_Report_YYYYMMDD_HHMMSS.xlsx"
func FileName(prefix, name string, at time.Time) string {
	return fmt.Sprintf("%s_%s_Report_%s.xlsx", prefix, name, at.Format("20060102_150405"))
}

func statusText(s models.Status) string {
	return strings.ToUpper(string(s))
}

func (r *Report) build() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}

	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create styles: %w", err)
	}

	if err := r.writeSummary(f, styles); err != nil {
		f.Close()
		return nil, fmt.Errorf("write summary: %w", err)
	}
	if r.Raw != nil {
		if err := r.writeRaw(f, styles); err != nil {
			f.Close()
			return nil, fmt.Errorf("write raw data: %w", err)
		}
	}
	return f, nil
}

func (r *Report) writeSummary(f *excelize.File, st styles) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &[]interface{}{"Parameter", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", st.header); err != nil {
		return err
	}

	rows := append(append([]Row{}, r.Summary...), Row{"Status", statusText(r.Status)})
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SummarySheet, cell, &[]interface{}{row.Parameter, row.Value}); err != nil {
			return err
		}
	}

	statusCell, _ := excelize.CoordinatesToCellName(2, len(rows)+1)
	statusStyle := st.fail
	if r.Status == models.StatusPass {
		statusStyle = st.pass
	}
	if err := f.SetCellStyle(SummarySheet, statusCell, statusCell, statusStyle); err != nil {
		return err
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 25); err != nil {
		return err
	}
	return f.SetColWidth(SummarySheet, "B", "B", 20)
}

func (r *Report) writeRaw(f *excelize.File, st styles) error {
	if _, err := f.NewSheet(RawSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(r.Raw.Header))
	for i, h := range r.Raw.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(RawSheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(RawSheet, "A1", last, st.header); err != nil {
		return err
	}

	for i, row := range r.Raw.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(RawSheet, cell, &row); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return f.SetColWidth(RawSheet, "A", lastCol, 15)
}

// Write streams the workbook to w
func (r *Report) Write(w io.Writer) error {
	f, err := r.build()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Save writes the workbook into dir and returns its path
func (r *Report) Save(dir, prefix string, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	f, err := r.build()
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, FileName(prefix, r.Name, at))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}
