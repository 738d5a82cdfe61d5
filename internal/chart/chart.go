// Package chart draws bend-test curves, as PNG files and as terminal
// sparklines.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Title heads every bend chart
const Title = "Force and Stress Progression During Bend Test"

var (
	navy     = color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff}
	blue     = color.RGBA{R: 0x00, G: 0x50, B: 0x9d, A: 0xff}
	red      = color.RGBA{R: 0xcc, G: 0x00, B: 0x00, A: 0xff}
	gridBlue = color.RGBA{R: 0xa3, G: 0xc6, B: 0xf0, A: 0xff}
)

// ErrEmptySeries is returned when there is nothing to draw
var ErrEmptySeries = errors.New("chart: empty series")

// Series is one bend curve
type Series struct {
	XLabel string
	X      []float64
	Force  []float64 // N
	Stress []float64 // N/cm²
}

func (s Series) validate() error {
	if len(s.X) == 0 {
		return ErrEmptySeries
	}
	if len(s.Force) != len(s.X) || len(s.Stress) != len(s.X) {
		return fmt.Errorf("chart: series length mismatch (x=%d force=%d stress=%d)",
			len(s.X), len(s.Force), len(s.Stress))
	}
	return nil
}

func panel(xs, ys []float64, xLabel, yLabel string, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Color = c

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1.5)

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridBlue
	grid.Horizontal.Color = gridBlue

	p.Add(grid, line)
	return p, nil
}

// RenderPNG draws force over stress as two stacked panels sharing the
// abscissa and writes a width x height PNG to w.
func RenderPNG(w io.Writer, s Series, width, height vg.Length) error {
	if err := s.validate(); err != nil {
		return err
	}

	force, err := panel(s.X, s.Force, s.XLabel, "Force (N)", blue)
	if err != nil {
		return fmt.Errorf("force panel: %w", err)
	}
	force.Title.Text = Title
	force.Title.TextStyle.Color = navy

	stress, err := panel(s.X, s.Stress, s.XLabel, "Stress (N/cm²)", red)
	if err != nil {
		return fmt.Errorf("stress panel: %w", err)
	}

	plots := [][]*plot.Plot{{force}, {stress}}
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 4 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the chart to path at the default size. Nothing is left at
// path when rendering fails.
func SavePNG(path string, s Series) error {
	if err := s.validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderPNG(f, s, 20*vg.Centimeter, 15*vg.Centimeter); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
