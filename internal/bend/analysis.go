package bend

import (
	"fmt"
	"math"
	"strings"
)

// Unit is the force unit of the raw force column
type Unit string

const (
	UnitNewton     Unit = "N"
	UnitKiloNewton Unit = "kN"
)

// ParseUnit accepts "N" or "kN" in any case
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n":
		return UnitNewton, nil
	case "kn":
		return UnitKiloNewton, nil
	}
	return "", fmt.Errorf("%w: force unit must be N or kN, got %q", ErrInvalidInput, s)
}

// Factor converts the unit to newtons
func (u Unit) Factor() float64 {
	if u == UnitKiloNewton {
		return 1000
	}
	return 1
}

// Params holds the test geometry and acceptance threshold
type Params struct {
	SupportSpan float64 `json:"support_span" yaml:"support_span"` // L, mm
	Width       float64 `json:"width" yaml:"width"`               // b, mm
	Height      float64 `json:"height" yaml:"height"`             // h, mm
	MinStrength float64 `json:"min_strength" yaml:"min_strength"` // N/cm²
	ForceUnit   Unit    `json:"force_unit" yaml:"force_unit"`
}

// DefaultParams matches the standard test rig and bar
func DefaultParams() Params {
	return Params{
		SupportSpan: 100.0,
		Width:       22.4,
		Height:      22.4,
		MinStrength: 260.0,
		ForceUnit:   UnitKiloNewton,
	}
}

// ValidateParams checks geometry against the rig limits
func ValidateParams(p Params) error {
	if err := inRange("support span (L)", p.SupportSpan, 10, 200); err != nil {
		return err
	}
	if err := inRange("width (b)", p.Width, 10, 50); err != nil {
		return err
	}
	if err := inRange("height (h)", p.Height, 10, 50); err != nil {
		return err
	}
	if !(p.MinStrength > 0) || math.IsInf(p.MinStrength, 0) {
		return fmt.Errorf("%w: minimum strength must be a positive number, got %v", ErrInvalidInput, p.MinStrength)
	}
	if p.ForceUnit != UnitNewton && p.ForceUnit != UnitKiloNewton {
		return fmt.Errorf("%w: force unit must be N or kN, got %q", ErrInvalidInput, p.ForceUnit)
	}
	return nil
}

func inRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %.0f and %.0f mm, got %v", ErrInvalidInput, name, lo, hi, v)
	}
	return nil
}

// Point is a sample with derived force and stress
type Point struct {
	Sample
	ForceN     float64 `json:"force_n"`
	StressMPa  float64 `json:"stress_mpa"`
	StressNcm2 float64 `json:"stress_ncm2"`
}

// Result is the outcome of a bend test analysis
type Result struct {
	Format          Format   `json:"format"`
	SampleCount     int      `json:"sample_count"`
	MaxForceN       float64  `json:"max_force_n"`
	StrengthMPa     float64  `json:"strength_mpa"`
	StrengthNcm2    float64  `json:"strength_ncm2"`
	Slope           float64  `json:"slope"`
	SlopeUnit       string   `json:"slope_unit"`
	PeakIndex       int      `json:"peak_index"`
	MinStrength     float64  `json:"min_strength"`
	Pass            bool     `json:"pass"`
	Recommendations []string `json:"recommendations,omitempty"`
	Points          []Point  `json:"-"`
}

// Recommendations are shown when the bar is below the minimum strength.
var Recommendations = []string{
	"Place parts in oven at 140°C for 3 hours",
	"Increase binder amount",
	"Extend rest period before testing",
}

// Stress returns the flexural stress in MPa for force f (N):
// σ = 3FL / (2bh²).
func Stress(f float64, p Params) float64 {
	return (3 * f * p.SupportSpan) / (2 * p.Width * p.Height * p.Height)
}

// Analyze derives force, stress, peak strength and initial slope.
func Analyze(c *Curve, p Params) (Result, error) {
	if err := ValidateParams(p); err != nil {
		return Result{}, err
	}
	if c == nil || len(c.Samples) == 0 {
		return Result{}, fmt.Errorf("%w: no data rows", ErrBadFormat)
	}

	res := Result{
		Format:      c.Format,
		SampleCount: len(c.Samples),
		MinStrength: p.MinStrength,
		Points:      make([]Point, len(c.Samples)),
		SlopeUnit:   "N/s",
	}
	if c.Format == FormatForceDisplacement {
		res.SlopeUnit = "N/mm"
	}

	factor := p.ForceUnit.Factor()
	for i, s := range c.Samples {
		f := math.Abs(s.RawForce * factor)
		mpa := Stress(f, p)
		res.Points[i] = Point{Sample: s, ForceN: f, StressMPa: mpa, StressNcm2: mpa * 100}

		if f > res.MaxForceN || i == 0 {
			res.MaxForceN = f
			res.PeakIndex = i
		}
	}

	res.StrengthMPa = res.Points[res.PeakIndex].StressMPa
	res.StrengthNcm2 = res.Points[res.PeakIndex].StressNcm2
	res.Slope = slope(c, res.Points[:res.PeakIndex+1])
	res.Pass = res.StrengthNcm2 >= p.MinStrength
	if !res.Pass {
		res.Recommendations = Recommendations
	}
	return res, nil
}

// slope is the least-squares slope of force against the abscissa.
func slope(c *Curve, pts []Point) float64 {
	n := float64(len(pts))
	if n < 2 {
		return 0
	}
	var sx, sy float64
	for _, p := range pts {
		sx += c.Abscissa(p.Sample)
		sy += p.ForceN
	}
	mx, my := sx/n, sy/n

	var num, den float64
	for _, p := range pts {
		dx := c.Abscissa(p.Sample) - mx
		num += dx * (p.ForceN - my)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Series returns abscissa, force and stress columns for charting
func (r Result) Series(c *Curve) (xs, force, stress []float64) {
	xs = make([]float64, len(r.Points))
	force = make([]float64, len(r.Points))
	stress = make([]float64, len(r.Points))
	for i, p := range r.Points {
		xs[i] = c.Abscissa(p.Sample)
		force[i] = p.ForceN
		stress[i] = p.StressNcm2
	}
	return xs, force, stress
}
