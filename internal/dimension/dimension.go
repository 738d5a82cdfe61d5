// Package dimension verifies printed test bar dimensions against nominal
// values and a symmetric tolerance.
package dimension

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// epsilon absorbs float error for values entered at 0.1 mm resolution.
const epsilon = 1e-9

// Axis names one of the three measured directions
type Axis string

const (
	AxisX Axis = "X"
	AxisY Axis = "Y"
	AxisZ Axis = "Z"
)

// Axes lists the axes in measurement order
var Axes = []Axis{AxisX, AxisY, AxisZ}

// Label returns the direction a bar is measured along
func (a Axis) Label() string {
	switch a {
	case AxisX:
		return "Length"
	case AxisY:
		return "Width"
	case AxisZ:
		return "Height"
	}
	return string(a)
}

// Direction says which side of the tolerance band a measurement fell on
type Direction string

const (
	Within Direction = "within"
	Over   Direction = "over"
	Under  Direction = "under"
)

// Spec holds nominal dimensions (mm) and the symmetric tolerance (mm)
type Spec struct {
	NominalX  float64 `json:"nominal_x" yaml:"nominal_x"`
	NominalY  float64 `json:"nominal_y" yaml:"nominal_y"`
	NominalZ  float64 `json:"nominal_z" yaml:"nominal_z"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// DefaultSpec returns the 172 x 22.4 x 22.4 mm test bar with ±0.45 mm
func DefaultSpec() Spec {
	return Spec{
		NominalX:  172.0,
		NominalY:  22.4,
		NominalZ:  22.4,
		Tolerance: 0.45,
	}
}

// Nominal returns the nominal value for an axis
func (s Spec) Nominal(a Axis) float64 {
	switch a {
	case AxisX:
		return s.NominalX
	case AxisY:
		return s.NominalY
	default:
		return s.NominalZ
	}
}

// Validate rejects non-positive nominals and tolerances
func (s Spec) Validate() error {
	for _, a := range Axes {
		n := s.Nominal(a)
		if !(n > 0) || math.IsInf(n, 0) {
			return fmt.Errorf("%w: nominal %s must be a positive number, got %v", ErrInvalidInput, a, n)
		}
		if r := InputRanges[a]; n < r.Min || n > r.Max {
			return fmt.Errorf("%w: nominal %s must be within the %.1f-%.1f mm input range, got %.2f",
				ErrInvalidInput, a, r.Min, r.Max, n)
		}
	}
	if !(s.Tolerance > 0) || math.IsInf(s.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be a positive number, got %v", ErrInvalidInput, s.Tolerance)
	}
	return nil
}

// Measurement holds the three measured lengths in millimeters
type Measurement struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Value returns the measured value for an axis
func (m Measurement) Value(a Axis) float64 {
	switch a {
	case AxisX:
		return m.X
	case AxisY:
		return m.Y
	default:
		return m.Z
	}
}

// Range is the accepted input interval for one axis
type Range struct {
	Min float64
	Max float64
}

// InputRanges are the values the measuring slide form accepts
var InputRanges = map[Axis]Range{
	AxisX: {Min: 150.0, Max: 190.0},
	AxisY: {Min: 15.0, Max: 30.0},
	AxisZ: {Min: 15.0, Max: 30.0},
}

// ValidateAxis checks a single measured value against its input range
func ValidateAxis(a Axis, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s-dimension must be a number", ErrInvalidInput, a)
	}
	r := InputRanges[a]
	if v < r.Min || v > r.Max {
		return fmt.Errorf("%w: %s-dimension (%s) must be between %.1f and %.1f mm, got %.2f",
			ErrInvalidInput, a, a.Label(), r.Min, r.Max, v)
	}
	return nil
}

// Validate checks every axis of a measurement
func Validate(m Measurement) error {
	for _, a := range Axes {
		if err := ValidateAxis(a, m.Value(a)); err != nil {
			return err
		}
	}
	return nil
}

// AxisResult is the verdict for one axis
type AxisResult struct {
	Axis      Axis      `json:"axis"`
	Measured  float64   `json:"measured"`
	Nominal   float64   `json:"nominal"`
	Deviation float64   `json:"deviation"`
	Direction Direction `json:"direction"`
	Pass      bool      `json:"pass"`
}

// Result is the outcome of a dimensional check
type Result struct {
	Axes      []AxisResult `json:"axes"`
	Tolerance float64      `json:"tolerance"`
	Pass      bool         `json:"pass"`
	Tips      []string     `json:"tips,omitempty"`
}

// Failed returns the axes that are out of tolerance
func (r Result) Failed() []AxisResult {
	var failed []AxisResult
	for _, ar := range r.Axes {
		if !ar.Pass {
			failed = append(failed, ar)
		}
	}
	return failed
}

// Check compares a measurement against spec
func Check(spec Spec, m Measurement) (Result, error) {
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}
	if err := Validate(m); err != nil {
		return Result{}, err
	}

	res := Result{Tolerance: spec.Tolerance, Pass: true}
	for _, a := range Axes {
		measured := m.Value(a)
		nominal := spec.Nominal(a)
		dev := measured - nominal

		ar := AxisResult{
			Axis:      a,
			Measured:  measured,
			Nominal:   nominal,
			Deviation: dev,
			Direction: Within,
			Pass:      math.Abs(dev) <= spec.Tolerance+epsilon,
		}
		if !ar.Pass {
			if dev > 0 {
				ar.Direction = Over
			} else {
				ar.Direction = Under
			}
			res.Pass = false
		}
		res.Axes = append(res.Axes, ar)
	}
	res.Tips = Tips(res)
	return res, nil
}
