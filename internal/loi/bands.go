package loi

// Band is the interpretation bucket of an LOI value
type Band string

const (
	BandInsufficient Band = "insufficient"
	BandOptimal      Band = "optimal"
	BandExcessive    Band = "excessive"
)

var interpretations = map[Band]string{
	BandInsufficient: "Insufficient binder: increase binder dosing and check the binder supply line",
	BandOptimal:      "Optimal binder content",
	BandExcessive:    "Excessive binder: reduce binder dosing; expect higher gas evolution during casting",
}

// Interpretation returns the static guidance for a band
func (b Band) Interpretation() string {
	return interpretations[b]
}

// Classify maps an LOI percentage into a band; both optimal bounds are inclusive
func Classify(pct float64, l Limits) Band {
	switch {
	case pct < l.OptimalMin:
		return BandInsufficient
	case pct > l.OptimalMax:
		return BandExcessive
	default:
		return BandOptimal
	}
}
