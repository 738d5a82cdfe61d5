package config

import (
	"fmt"
	"strconv"

	"github.com/brafe/qc/internal/bend"
)

// Keys lists the dotted keys accepted by Get and Set, in display order
var Keys = []string{
	"operator",
	"report.prefix",
	"report.dir",
	"dim.nominal_x",
	"dim.nominal_y",
	"dim.nominal_z",
	"dim.tolerance",
	"bend.support_span",
	"bend.width",
	"bend.height",
	"bend.min_strength",
	"bend.force_unit",
	"bend.delimiter",
	"loi.sample_min",
	"loi.sample_max",
	"loi.optimal_min",
	"loi.optimal_max",
}

// IsValidKey reports whether key is a known dotted key
func IsValidKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

func (c *Config) floatField(key string) *float64 {
	switch key {
	case "dim.nominal_x":
		return &c.Dimensional.NominalX
	case "dim.nominal_y":
		return &c.Dimensional.NominalY
	case "dim.nominal_z":
		return &c.Dimensional.NominalZ
	case "dim.tolerance":
		return &c.Dimensional.Tolerance
	case "bend.support_span":
		return &c.Bend.SupportSpan
	case "bend.width":
		return &c.Bend.Width
	case "bend.height":
		return &c.Bend.Height
	case "bend.min_strength":
		return &c.Bend.MinStrength
	case "loi.sample_min":
		return &c.LOI.SampleMin
	case "loi.sample_max":
		return &c.LOI.SampleMax
	case "loi.optimal_min":
		return &c.LOI.OptimalMin
	case "loi.optimal_max":
		return &c.LOI.OptimalMax
	}
	return nil
}

// Get returns the value of a dotted key formatted as a string
func (c *Config) Get(key string) (string, error) {
	if f := c.floatField(key); f != nil {
		return strconv.FormatFloat(*f, 'f', -1, 64), nil
	}
	switch key {
	case "operator":
		return c.Operator, nil
	case "report.prefix":
		return c.ReportPrefix, nil
	case "report.dir":
		return c.ReportDir, nil
	case "bend.force_unit":
		return string(c.Bend.ForceUnit), nil
	case "bend.delimiter":
		return c.Bend.Delimiter, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses val into the field named by a dotted key
func (c *Config) Set(key, val string) error {
	if f := c.floatField(key); f != nil {
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid number %q for %s", ErrInvalidValue, val, key)
		}
		*f = v
		return nil
	}
	switch key {
	case "operator":
		c.Operator = val
	case "report.prefix":
		c.ReportPrefix = val
	case "report.dir":
		c.ReportDir = val
	case "bend.force_unit":
		u, err := bend.ParseUnit(val)
		if err != nil {
			return err
		}
		c.Bend.ForceUnit = u
	case "bend.delimiter":
		c.Bend.Delimiter = val
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}
