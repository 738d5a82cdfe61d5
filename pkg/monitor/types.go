package monitor

import (
	"time"

	"github.com/brafe/qc/internal/models"
)

// Tab is one record panel of the monitor
type Tab int

const (
	TabDimensional Tab = iota
	TabBend
	TabLOI
	tabCount
)

// Kind returns the record kind shown on the tab
func (t Tab) Kind() models.Kind {
	return models.AllKinds[t]
}

// Title returns the tab label
func (t Tab) Title() string {
	switch t {
	case TabDimensional:
		return "Dimensional"
	case TabBend:
		return "Bend"
	case TabLOI:
		return "LOI"
	}
	return ""
}

func (t Tab) next() Tab { return (t + 1) % tabCount }
func (t Tab) prev() Tab { return (t + tabCount - 1) % tabCount }

// TickMsg triggers a periodic refresh
type TickMsg time.Time

// RefreshDataMsg carries a fresh snapshot of stored records
type RefreshDataMsg struct {
	Dimensional []models.DimensionalCheck
	Bend        []models.BendTest
	LOI         []models.LOITest
	Stats       []models.KindStats
	Err         error
	FetchedAt   time.Time
}
