// Package bend analyzes 3-point bend test exports: it parses the machine CSV,
// derives bending stress from force and bar geometry, and grades the peak
// strength against a minimum.
package bend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput is wrapped by parameter validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBadFormat is wrapped by every CSV layout or content failure.
	ErrBadFormat = errors.New("unrecognized bend test CSV")
)

// Format identifies the CSV layout a curve was read from
type Format string

const (
	// FormatForceDisplacement is the two-column "force, displacement" layout.
	FormatForceDisplacement Format = "force-displacement"
	// FormatMachine is the six-column export of the bend test machine.
	FormatMachine Format = "machine"
)

const (
	twoColumnWidth     = 2
	machineColumnWidth = 6
)

// FormatHelp describes the accepted layouts for user-facing errors.
const FormatHelp = `Required CSV format, either:
  2 columns: force, displacement (mm)
  6 columns, in order:
    1. Force (unused)
    2. Point index
    3. Position (force, in the configured unit)
    4. Time (s)
    5. X-axis measure (displacement)
    6. Y-axis measure
Filename format: ..._XXXXXXXX(JJJ).csv where XXXXXXXX is the part ID and JJJ the job number`

// Sample is one parsed row. Fields absent from the layout are zero.
type Sample struct {
	Row          int     `json:"row"`
	PointIndex   float64 `json:"point_index"`
	Time         float64 `json:"time"`
	Displacement float64 `json:"displacement"`
	RawForce     float64 `json:"raw_force"`
	Unused       float64 `json:"-"`
	YAxis        float64 `json:"-"`
}

// Curve is a parsed bend test export
type Curve struct {
	Format  Format   `json:"format"`
	Samples []Sample `json:"samples"`
}

// Abscissa returns the x value slope and charts use for a sample:
// displacement for two-column files, time for machine exports.
func (c *Curve) Abscissa(s Sample) float64 {
	if c.Format == FormatForceDisplacement {
		return s.Displacement
	}
	return s.Time
}

// AbscissaLabel names the abscissa with its unit
func (c *Curve) AbscissaLabel() string {
	if c.Format == FormatForceDisplacement {
		return "Displacement (mm)"
	}
	return "Time (s)"
}

// ParseOptions controls CSV decoding
type ParseOptions struct {
	Delimiter rune
}

// ParseCSV reads a bend test export. Leading header rows are skipped; once
// numeric data starts every row must have the same, supported width.
func ParseCSV(r io.Reader, opts ParseOptions) (*Curve, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	curve := &Curve{}
	width := 0
	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadFormat, row, err)
		}

		values, numeric := parseRow(rec)
		if !numeric {
			if width == 0 {
				continue // header
			}
			return nil, fmt.Errorf("%w: row %d: non-numeric value in %q", ErrBadFormat, row, strings.Join(rec, string(cr.Comma)))
		}

		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d: column %d is not a finite number", ErrBadFormat, row, i+1)
			}
		}

		if width == 0 {
			switch len(values) {
			case twoColumnWidth:
				curve.Format = FormatForceDisplacement
			case machineColumnWidth:
				curve.Format = FormatMachine
			default:
				return nil, fmt.Errorf("%w: row %d: expected %d or %d columns, got %d",
					ErrBadFormat, row, twoColumnWidth, machineColumnWidth, len(values))
			}
			width = len(values)
		} else if len(values) != width {
			return nil, fmt.Errorf("%w: row %d: expected %d columns, got %d", ErrBadFormat, row, width, len(values))
		}

		curve.Samples = append(curve.Samples, sampleFrom(curve.Format, row, len(curve.Samples), values))
	}

	if len(curve.Samples) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrBadFormat)
	}
	return curve, nil
}

func parseRow(rec []string) ([]float64, bool) {
	values := make([]float64, len(rec))
	for i, cell := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func sampleFrom(f Format, row, seq int, v []float64) Sample {
	if f == FormatForceDisplacement {
		return Sample{
			Row:          row,
			PointIndex:   float64(seq),
			Time:         float64(seq),
			RawForce:     v[0],
			Displacement: v[1],
		}
	}
	return Sample{
		Row:          row,
		Unused:       v[0],
		PointIndex:   v[1],
		RawForce:     v[2],
		Time:         v[3],
		Displacement: v[4],
		YAxis:        v[5],
	}
}
