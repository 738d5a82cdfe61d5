package db

import (
	"fmt"

	"github.com/brafe/qc/internal/models"
)

// Stats returns pass/fail counts for each record kind, in display order
func (db *DB) Stats() ([]models.KindStats, error) {
	stats := make([]models.KindStats, 0, len(models.AllKinds))
	for _, kind := range models.AllKinds {
		s := models.KindStats{Kind: kind}
		err := db.conn.QueryRow(fmt.Sprintf(`
			SELECT COUNT(*),
			       COALESCE(SUM(CASE WHEN status = 'pass' THEN 1 ELSE 0 END), 0),
			       COALESCE(SUM(CASE WHEN status = 'fail' THEN 1 ELSE 0 END), 0)
			FROM %s WHERE deleted_at IS NULL`, kindTables[kind]),
		).Scan(&s.Total, &s.Passed, &s.Failed)
		if err != nil {
			return nil, fmt.Errorf("stats for %s: %w", kind, err)
		}
		stats = append(stats, s)
	}
	return stats, nil
}
