package monitor

import (
	"fmt"
	"time"

	"github.com/brafe/qc/internal/db"
	"github.com/brafe/qc/internal/models"
)

// Store is the read side of the record database used by the monitor
type Store interface {
	ListDimensionalChecks(db.ListOptions) ([]models.DimensionalCheck, error)
	ListBendTests(db.ListOptions) ([]models.BendTest, error)
	ListLOITests(db.ListOptions) ([]models.LOITest, error)
	Stats() ([]models.KindStats, error)
}

// FetchData loads the newest limit records of every kind
func FetchData(store Store, limit int) RefreshDataMsg {
	msg := RefreshDataMsg{FetchedAt: time.Now()}
	opts := db.ListOptions{Limit: limit}

	var err error
	if msg.Dimensional, err = store.ListDimensionalChecks(opts); err != nil {
		msg.Err = fmt.Errorf("load dimensional checks: %w", err)
		return msg
	}
	if msg.Bend, err = store.ListBendTests(opts); err != nil {
		msg.Err = fmt.Errorf("load bend tests: %w", err)
		return msg
	}
	if msg.LOI, err = store.ListLOITests(opts); err != nil {
		msg.Err = fmt.Errorf("load loi tests: %w", err)
		return msg
	}
	if msg.Stats, err = store.Stats(); err != nil {
		msg.Err = fmt.Errorf("load stats: %w", err)
	}
	return msg
}
