// Package guide holds the operator-facing measurement instructions, test
// specifications and support contacts as markdown.
package guide

import (
	"fmt"
	"strings"

	"github.com/brafe/qc/internal/bend"
	"github.com/brafe/qc/internal/dimension"
	"github.com/brafe/qc/internal/loi"
)

// Topic selects one set of instructions
type Topic string

const (
	TopicDimensional Topic = "dim"
	TopicBend        Topic = "bend"
	TopicLOI         Topic = "loi"
)

// Topics lists guide topics in display order
var Topics = []Topic{TopicDimensional, TopicBend, TopicLOI}

// Support contacts
const (
	ManualURL    = "https://www.brafeengineering.com/support/"
	SupportEmail = "support@brafeengineering.com"
	Hotline      = "+44 123 456 7890"
)

// Settings carries the configured values quoted in the instructions
type Settings struct {
	Dimensional dimension.Spec
	Bend        bend.Params
	LOI         loi.Limits
}

// ParseTopic validates a topic name
func ParseTopic(s string) (Topic, error) {
	t := Topic(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Topics {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown guide topic %q (valid: dim, bend, loi)", s)
}

// Markdown returns the instructions for topic
func Markdown(t Topic, s Settings) string {
	switch t {
	case TopicDimensional:
		return dimensional(s.Dimensional)
	case TopicBend:
		return bendTest(s.Bend)
	case TopicLOI:
		return lossOnIgnition(s.LOI)
	}
	return ""
}

// All returns every topic's instructions in order
func All(s Settings) string {
	parts := make([]string, 0, len(Topics))
	for _, t := range Topics {
		parts = append(parts, Markdown(t, s))
	}
	return strings.Join(parts, "\n---\n\n")
}

func dimensional(spec dimension.Spec) string {
	var b strings.Builder
	b.WriteString("# Dimensional Measurement Verification\n\n")
	b.WriteString("Verify test bar dimensions according to section 3.3 of the Quality Control Manual.\n\n")
	b.WriteString("| Axis | Direction | Nominal |\n|---|---|---|\n")
	for _, a := range dimension.Axes {
		fmt.Fprintf(&b, "| %s | %s | %s mm |\n", strings.ToUpper(string(a)), a.Label(), trim(spec.Nominal(a)))
	}
	fmt.Fprintf(&b, `
## Procedure

1. Ensure the test bar has rested in sand for at least 6 hours
2. Clean loose sand from the test bar
3. Measure each dimension with a measuring slide
4. Compare with nominal values (tolerance ±%s mm)

Run `+"`qc dim`"+` to record the measurement.
`, trim(spec.Tolerance))
	return b.String()
}

func bendTest(p bend.Params) string {
	return fmt.Sprintf(`# 3-Point Bend Test Analysis

Calculate bending strength according to section 3.4 of the Quality Control Manual.

## Parameters

- Support span (L): %s mm
- Width (b): %s mm
- Height (h): %s mm
- Force unit in exports: %s
- Minimum bending strength: %s N/cm²

Bending strength is σ = 3·F·L / (2·b·h²), evaluated at the peak force.

## CSV exports

`+"```"+`
%s
`+"```"+`

Run `+"`qc bend analyze <file.csv>`"+` for one or more exports, or
`+"`qc bend watch <dir>`"+` to analyze each new export as the machine writes it.
`, trim(p.SupportSpan), trim(p.Width), trim(p.Height), p.ForceUnit, trim(p.MinStrength), bend.FormatHelp)
}

func lossOnIgnition(l loi.Limits) string {
	return fmt.Sprintf(`# Loss on Ignition (LOI) Analysis

Calculate binder content according to section 3.5 of the Quality Control Manual.

## Methods

- **%s**: tare the scale with the empty bowl, then record T1 (bowl weight, shown negative after taring), W1 (sample weight) and T2 (bowl and ash after burning, negative).
- **%s**: record T1 (empty bowl), W1 (sample weight) and T2 (bowl and sample after the oven cycle) as positive gross weights.

Sample weight W1 must be between %s g and %s g.

## Interpretation

- Optimal range: %s-%s%%
- Below %s%%: insufficient binder
- Above %s%%: excessive binder

Run `+"`qc loi`"+` to record a test.
`, loi.MethodBunsen.Label(), loi.MethodOven.Label(),
		trim(l.SampleMin), trim(l.SampleMax),
		trim(l.OptimalMin), trim(l.OptimalMax), trim(l.OptimalMin), trim(l.OptimalMax))
}

// Specs returns the test specification summary and support contacts
func Specs(s Settings) string {
	d := s.Dimensional
	return fmt.Sprintf(`# Test Specifications

| Specification | Value |
|---|---|
| Nominal bending strength | %s N/cm² |
| Test bar dimensions | %s × %s × %s mm |
| Dimensional tolerance | ±%s mm |
| LOI sample weight | %s-%s g |
| LOI optimal binder | %s-%s %% |

# Brafe Engineering Resources

- Quality Control Manual: %s
- Technical support: %s
- Hotline: %s
`, trim(s.Bend.MinStrength), trim(d.NominalX), trim(d.NominalY), trim(d.NominalZ), trim(d.Tolerance),
		trim(s.LOI.SampleMin), trim(s.LOI.SampleMax), trim(s.LOI.OptimalMin), trim(s.LOI.OptimalMax),
		ManualURL, SupportEmail, Hotline)
}

func trim(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
