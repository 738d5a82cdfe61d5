package models

import (
	"time"
)

// Kind identifies which check produced a record
type Kind string

const (
	KindDimensional Kind = "dim"
	KindBend        Kind = "bend"
	KindLOI         Kind = "loi"
)

// AllKinds lists record kinds in display order
var AllKinds = []Kind{KindDimensional, KindBend, KindLOI}

// Label returns the human-readable name of a kind
func (k Kind) Label() string {
	switch k {
	case KindDimensional:
		return "Dimensional Check"
	case KindBend:
		return "3-Point Bend Test"
	case KindLOI:
		return "Loss on Ignition"
	default:
		return string(k)
	}
}

// IsValidKind reports whether k is a known record kind
func IsValidKind(k Kind) bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Status represents the quality verdict of a record
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// StatusFor maps a boolean verdict to a Status
func StatusFor(pass bool) Status {
	if pass {
		return StatusPass
	}
	return StatusFail
}

// DimensionalCheck is a stored dimensional verification
type DimensionalCheck struct {
	ID         string     `json:"id"`
	Operator   string     `json:"operator"`
	PartID     string     `json:"part_id,omitempty"`
	XMeasured  float64    `json:"x_measured"`
	YMeasured  float64    `json:"y_measured"`
	ZMeasured  float64    `json:"z_measured"`
	XNominal   float64    `json:"x_nominal"`
	YNominal   float64    `json:"y_nominal"`
	ZNominal   float64    `json:"z_nominal"`
	Tolerance  float64    `json:"tolerance"`
	Status     Status     `json:"status"`
	FailedAxes []string   `json:"failed_axes,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// BendSample is one row of a stored bend curve
type BendSample struct {
	Seq          int     `json:"seq"`
	Time         float64 `json:"time"`
	Displacement float64 `json:"displacement"`
	ForceN       float64 `json:"force_n"`
	StressNcm2   float64 `json:"stress_ncm2"`
}

// BendTest is a stored 3-point bend test
type BendTest struct {
	ID           string       `json:"id"`
	Operator     string       `json:"operator"`
	SourceFile   string       `json:"source_file"`
	PartID       string       `json:"part_id"`
	JobNo        string       `json:"job_no"`
	Format       string       `json:"format"`
	SupportSpan  float64      `json:"support_span"`
	Width        float64      `json:"width"`
	Height       float64      `json:"height"`
	MinStrength  float64      `json:"min_strength"`
	ForceUnit    string       `json:"force_unit"`
	SampleCount  int          `json:"sample_count"`
	MaxForceN    float64      `json:"max_force_n"`
	StrengthNcm2 float64      `json:"strength_ncm2"`
	Slope        float64      `json:"slope"`
	Status       Status       `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty"`
	Samples      []BendSample `json:"samples,omitempty"`
}

// LOITest is a stored loss-on-ignition test
type LOITest struct {
	ID         string     `json:"id"`
	Operator   string     `json:"operator"`
	PartID     string     `json:"part_id,omitempty"`
	Method     string     `json:"method"`
	T1         float64    `json:"t1"`
	W1         float64    `json:"w1"`
	T2         float64    `json:"t2"`
	MassLoss   float64    `json:"mass_loss"`
	LOIPercent float64    `json:"loi_percent"`
	Band       string     `json:"band"`
	Status     Status     `json:"status"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Record is a kind-agnostic row used by history listings
type Record struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Summary   string    `json:"summary"`
	Status    Status    `json:"status"`
	Operator  string    `json:"operator"`
	CreatedAt time.Time `json:"created_at"`
}

// KindStats aggregates verdicts for one kind
type KindStats struct {
	Kind   Kind `json:"kind"`
	Total  int  `json:"total"`
	Passed int  `json:"passed"`
	Failed int  `json:"failed"`
}

// PassRate returns the fraction of passing records, or 0 when empty
func (s KindStats) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total)
}

// ActionType is a change recorded in the audit log
type ActionType string

const (
	ActionCreate  ActionType = "create"
	ActionDelete  ActionType = "delete"
	ActionRestore ActionType = "restore"
	ActionNote    ActionType = "note"
)

// ActionLog is one audit log entry
type ActionLog struct {
	ID        int64      `json:"id"`
	Action    ActionType `json:"action"`
	RecordID  string     `json:"record_id"`
	Detail    string     `json:"detail,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
