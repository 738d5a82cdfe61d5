package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brafe/qc/internal/dimension"
	"github.com/brafe/qc/internal/loi"
	"github.com/charmbracelet/huh"
)

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errInvalidInput, field)
	}
	return v, nil
}

// dimFormState holds the bound values of the dimensional check form
type dimFormState struct {
	X, Y, Z string
	Part    string
}

func axisValidator(a dimension.Axis) func(string) error {
	return func(s string) error {
		v, err := parseNumber(string(a), s)
		if err != nil {
			return err
		}
		return dimension.ValidateAxis(a, v)
	}
}

func (s *dimFormState) form(spec dimension.Spec) *huh.Form {
	input := func(a dimension.Axis, v *string) *huh.Input {
		r := dimension.InputRanges[a]
		return huh.NewInput().
			Title(fmt.Sprintf("%s-Dimension (%s) in mm", string(a), a.Label())).
			Description(fmt.Sprintf("Nominal %.2f mm, accepted %.0f-%.0f", spec.Nominal(a), r.Min, r.Max)).
			Value(v).
			Validate(axisValidator(a))
	}
	return huh.NewForm(
		huh.NewGroup(
			input(dimension.AxisX, &s.X),
			input(dimension.AxisY, &s.Y),
			input(dimension.AxisZ, &s.Z),
			huh.NewInput().Title("Part ID").Value(&s.Part).Placeholder("optional"),
		).Title("Enter Measured Dimensions (mm)"),
	).WithTheme(huh.ThemeDracula())
}

func (s *dimFormState) measurement() (dimension.Measurement, error) {
	var m dimension.Measurement
	var err error
	if m.X, err = parseNumber("X", s.X); err != nil {
		return m, err
	}
	if m.Y, err = parseNumber("Y", s.Y); err != nil {
		return m, err
	}
	if m.Z, err = parseNumber("Z", s.Z); err != nil {
		return m, err
	}
	return m, nil
}

// loiFormState holds the bound values of the LOI form
type loiFormState struct {
	Method     string
	T1, W1, T2 string
	Part       string
}

func (s *loiFormState) form(l loi.Limits) *huh.Form {
	options := make([]huh.Option[string], 0, len(loi.Methods))
	for _, m := range loi.Methods {
		options = append(options, huh.NewOption(m.Label(), string(m)))
	}
	number := func(field string) func(string) error {
		return func(v string) error {
			_, err := parseNumber(field, v)
			return err
		}
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Test Method").Options(options...).Value(&s.Method),
		),
		huh.NewGroup(
			huh.NewInput().Title("T1 (Bowl Weight) in g").
				Description("Bunsen: negative value shown on scale after taring").
				Value(&s.T1).Validate(number("T1")),
			huh.NewInput().Title("W1 (Sample Weight) in g").
				Description(fmt.Sprintf("Between %g and %g g", l.SampleMin, l.SampleMax)).
				Value(&s.W1).
				Validate(func(v string) error {
					w, err := parseNumber("W1", v)
					if err != nil {
						return err
					}
					if w < l.SampleMin || w > l.SampleMax {
						return fmt.Errorf("W1 must be between %g and %g g", l.SampleMin, l.SampleMax)
					}
					return nil
				}),
			huh.NewInput().Title("T2 (Bowl + Ash) in g").Value(&s.T2).Validate(number("T2")),
			huh.NewInput().Title("Part ID").Value(&s.Part).Placeholder("optional"),
		).Title("Enter Measurement Values"),
	).WithTheme(huh.ThemeDracula())
}

func (s *loiFormState) input() (loi.Method, loi.Input, error) {
	var in loi.Input
	m, err := loi.ParseMethod(s.Method)
	if err != nil {
		return "", in, err
	}
	if in.T1, err = parseNumber("T1", s.T1); err != nil {
		return "", in, err
	}
	if in.W1, err = parseNumber("W1", s.W1); err != nil {
		return "", in, err
	}
	if in.T2, err = parseNumber("T2", s.T2); err != nil {
		return "", in, err
	}
	return m, in, nil
}
