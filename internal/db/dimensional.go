package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/brafe/qc/internal/models"
)

const dimColumns = `id, operator, part_id, x_measured, y_measured, z_measured,
	x_nominal, y_nominal, z_nominal, tolerance, failed_axes, status, notes, created_at, deleted_at`

// CreateDimensionalCheck stores c and sets its ID and CreatedAt
func (db *DB) CreateDimensionalCheck(c *models.DimensionalCheck) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return db.withWriteLock(func() error {
		id, err := insertWithID(models.KindDimensional, func(id string) error {
			_, err := db.conn.Exec(`INSERT INTO dimensional_checks (`+dimColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
				id, c.Operator, c.PartID, c.XMeasured, c.YMeasured, c.ZMeasured,
				c.XNominal, c.YNominal, c.ZNominal, c.Tolerance,
				strings.Join(c.FailedAxes, ","), string(c.Status), c.Notes, formatTime(c.CreatedAt))
			return err
		})
		if err != nil {
			return fmt.Errorf("insert dimensional check: %w", err)
		}
		c.ID = id
		return logAction(db.conn, models.ActionCreate, id, string(c.Status))
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDimensionalCheck(row rowScanner) (*models.DimensionalCheck, error) {
	var c models.DimensionalCheck
	var partID, failedAxes, notes sql.NullString
	var status, createdAt string
	var deletedAt sql.NullString

	err := row.Scan(&c.ID, &c.Operator, &partID, &c.XMeasured, &c.YMeasured, &c.ZMeasured,
		&c.XNominal, &c.YNominal, &c.ZNominal, &c.Tolerance, &failedAxes, &status, &notes,
		&createdAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	c.PartID = partID.String
	if failedAxes.String != "" {
		c.FailedAxes = strings.Split(failedAxes.String, ",")
	}
	c.Status = models.Status(status)
	c.Notes = notes.String
	c.CreatedAt = parseTime(createdAt)
	c.DeletedAt = parseNullTime(deletedAt)
	return &c, nil
}

// GetDimensionalCheck returns a stored, non-deleted dimensional check
func (db *DB) GetDimensionalCheck(id string) (*models.DimensionalCheck, error) {
	row := db.conn.QueryRow(`SELECT `+dimColumns+` FROM dimensional_checks
		WHERE id = ? AND deleted_at IS NULL`, id)
	c, err := scanDimensionalCheck(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, err
}

// ListDimensionalChecks returns dimensional checks, newest first
func (db *DB) ListDimensionalChecks(opts ListOptions) ([]models.DimensionalCheck, error) {
	where, args := whereClause(opts)
	rows, err := db.conn.Query(`SELECT `+dimColumns+` FROM dimensional_checks`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []models.DimensionalCheck
	for rows.Next() {
		c, err := scanDimensionalCheck(rows)
		if err != nil {
			return nil, err
		}
		checks = append(checks, *c)
	}
	return checks, rows.Err()
}
