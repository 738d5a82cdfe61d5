package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/brafe/qc/internal/models"
)

const loiColumns = `id, operator, part_id, method, t1, w1, t2, mass_loss, loi_percent, band,
	status, notes, created_at, deleted_at`

// CreateLOITest stores t and sets its ID and CreatedAt
func (db *DB) CreateLOITest(t *models.LOITest) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return db.withWriteLock(func() error {
		id, err := insertWithID(models.KindLOI, func(id string) error {
			_, err := db.conn.Exec(`INSERT INTO loi_tests (`+loiColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
				id, t.Operator, t.PartID, t.Method, t.T1, t.W1, t.T2,
				t.MassLoss, t.LOIPercent, t.Band, string(t.Status), t.Notes,
				formatTime(t.CreatedAt))
			return err
		})
		if err != nil {
			return fmt.Errorf("insert loi test: %w", err)
		}
		t.ID = id
		return logAction(db.conn, models.ActionCreate, id, string(t.Status))
	})
}

func scanLOITest(row rowScanner) (*models.LOITest, error) {
	var t models.LOITest
	var partID, notes, deletedAt sql.NullString
	var status, createdAt string

	err := row.Scan(&t.ID, &t.Operator, &partID, &t.Method, &t.T1, &t.W1, &t.T2,
		&t.MassLoss, &t.LOIPercent, &t.Band, &status, &notes, &createdAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	t.PartID = partID.String
	t.Status = models.Status(status)
	t.Notes = notes.String
	t.CreatedAt = parseTime(createdAt)
	t.DeletedAt = parseNullTime(deletedAt)
	return &t, nil
}

// GetLOITest returns a stored, non-deleted LOI test
func (db *DB) GetLOITest(id string) (*models.LOITest, error) {
	row := db.conn.QueryRow(`SELECT `+loiColumns+` FROM loi_tests
		WHERE id = ? AND deleted_at IS NULL`, id)
	t, err := scanLOITest(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, err
}

// ListLOITests returns LOI tests, newest first
func (db *DB) ListLOITests(opts ListOptions) ([]models.LOITest, error) {
	where, args := whereClause(opts)
	rows, err := db.conn.Query(`SELECT `+loiColumns+` FROM loi_tests`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []models.LOITest
	for rows.Next() {
		t, err := scanLOITest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, *t)
	}
	return tests, rows.Err()
}
