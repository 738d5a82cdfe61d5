// Package loi computes binder content from loss-on-ignition weighings.
package loi

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Method is the ignition procedure used for the sample
type Method string

const (
	// MethodBunsen burns the sample over a Bunsen burner (section 3.5.1).
	// T1 and T2 are the negative readings the scale shows after taring.
	MethodBunsen Method = "bunsen"
	// MethodOven ignites the sample in an oven (section 3.5.2).
	// T1 and T2 are positive gross weights.
	MethodOven Method = "oven"
)

// Methods lists the supported procedures
var Methods = []Method{MethodBunsen, MethodOven}

// Label returns the procedure name with its manual section
func (m Method) Label() string {
	switch m {
	case MethodBunsen:
		return "Bunsen Burner (Section 3.5.1)"
	case MethodOven:
		return "Oven (Section 3.5.2)"
	}
	return string(m)
}

// ParseMethod accepts the method name in any case
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodBunsen:
		return MethodBunsen, nil
	case MethodOven:
		return MethodOven, nil
	}
	return "", fmt.Errorf("%w: method must be one of bunsen, oven; got %q", ErrInvalidInput, s)
}

// Input holds the three weighings in grams
type Input struct {
	T1 float64 `json:"t1"` // bowl
	W1 float64 `json:"w1"` // sample
	T2 float64 `json:"t2"` // bowl + ash
}

// Limits bounds the accepted sample weight and the optimal LOI band
type Limits struct {
	SampleMin  float64 `json:"sample_min" yaml:"sample_min"`
	SampleMax  float64 `json:"sample_max" yaml:"sample_max"`
	OptimalMin float64 `json:"optimal_min" yaml:"optimal_min"`
	OptimalMax float64 `json:"optimal_max" yaml:"optimal_max"`
}

// DefaultLimits are the 30 g sample procedure values
func DefaultLimits() Limits {
	return Limits{
		SampleMin:  20.0,
		SampleMax:  40.0,
		OptimalMin: 0.5,
		OptimalMax: 2.5,
	}
}

// Validate checks the limits are finite, ordered and positive
func (l Limits) Validate() error {
	for _, v := range []float64{l.SampleMin, l.SampleMax, l.OptimalMin, l.OptimalMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: limits must be finite numbers, got %v", ErrInvalidInput, v)
		}
	}
	if !(l.SampleMin > 0) || l.SampleMax < l.SampleMin {
		return fmt.Errorf("%w: sample range %.3f-%.3f g is not valid", ErrInvalidInput, l.SampleMin, l.SampleMax)
	}
	if l.OptimalMin < 0 || l.OptimalMax < l.OptimalMin {
		return fmt.Errorf("%w: optimal range %.2f-%.2f %% is not valid", ErrInvalidInput, l.OptimalMin, l.OptimalMax)
	}
	return nil
}

// Validate checks the weighings for the chosen method
func Validate(m Method, in Input, l Limits) error {
	if _, err := ParseMethod(string(m)); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"T1", in.T1}, {"W1", in.W1}, {"T2", in.T2}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be a number", ErrInvalidInput, f.name)
		}
		if f.v == 0 {
			return fmt.Errorf("%w: %s must not be zero", ErrInvalidInput, f.name)
		}
	}
	if in.W1 < l.SampleMin || in.W1 > l.SampleMax {
		return fmt.Errorf("%w: W1 (sample weight) must be between %.1f and %.1f g, got %.3f",
			ErrInvalidInput, l.SampleMin, l.SampleMax, in.W1)
	}
	if m == MethodOven && (in.T1 < 0 || in.T2 < 0) {
		return fmt.Errorf("%w: oven method expects positive gross weights for T1 and T2", ErrInvalidInput)
	}
	return nil
}

// MassLoss evaluates the method's expression for Δm in grams
func MassLoss(m Method, in Input) (float64, error) {
	switch m {
	case MethodBunsen:
		return math.Abs((math.Abs(in.T2) - math.Abs(in.T1)) - in.W1), nil
	case MethodOven:
		dm := (in.T1 + in.W1) - in.T2
		if dm < 0 {
			return 0, fmt.Errorf("%w: bowl + ash (T2 %.3f g) is heavier than bowl + sample (%.3f g); reweigh",
				ErrInvalidInput, in.T2, in.T1+in.W1)
		}
		return dm, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidInput, m)
}

// Result is the outcome of an LOI calculation
type Result struct {
	Method         Method  `json:"method"`
	MassLoss       float64 `json:"mass_loss"`
	LOI            float64 `json:"loi_percent"`
	Band           Band    `json:"band"`
	Pass           bool    `json:"pass"`
	Interpretation string  `json:"interpretation"`
}

// Calculate computes Δm and LOI = Δm / W1 × 100, then classifies it
func Calculate(m Method, in Input, l Limits) (Result, error) {
	if err := l.Validate(); err != nil {
		return Result{}, err
	}
	if err := Validate(m, in, l); err != nil {
		return Result{}, err
	}
	dm, err := MassLoss(m, in)
	if err != nil {
		return Result{}, err
	}

	pct := dm / in.W1 * 100
	band := Classify(pct, l)
	return Result{
		Method:         m,
		MassLoss:       dm,
		LOI:            pct,
		Band:           band,
		Pass:           band == BandOptimal,
		Interpretation: band.Interpretation(),
	}, nil
}
