package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/brafe/qc/internal/models"
)

const bendColumns = `id, operator, source_file, part_id, job_no, format, support_span, width, height,
	min_strength, force_unit, sample_count, max_force_n, strength_ncm2, slope, status, notes,
	created_at, deleted_at`

// CreateBendTest stores t together with its samples in one transaction
func (db *DB) CreateBendTest(t *models.BendTest) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.SampleCount == 0 {
		t.SampleCount = len(t.Samples)
	}
	return db.withWriteLock(func() error {
		tx, err := db.conn.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		id, err := insertWithID(models.KindBend, func(id string) error {
			_, err := tx.Exec(`INSERT INTO bend_tests (`+bendColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
				id, t.Operator, t.SourceFile, t.PartID, t.JobNo, t.Format,
				t.SupportSpan, t.Width, t.Height, t.MinStrength, t.ForceUnit,
				t.SampleCount, t.MaxForceN, t.StrengthNcm2, t.Slope,
				string(t.Status), t.Notes, formatTime(t.CreatedAt))
			return err
		})
		if err != nil {
			return fmt.Errorf("insert bend test: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO bend_samples
			(test_id, seq, time, displacement, force_n, stress_ncm2) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, s := range t.Samples {
			if _, err := stmt.Exec(id, s.Seq, s.Time, s.Displacement, s.ForceN, s.StressNcm2); err != nil {
				return fmt.Errorf("insert bend sample %d: %w", s.Seq, err)
			}
		}

		if err := logAction(tx, models.ActionCreate, id, string(t.Status)); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		t.ID = id
		return nil
	})
}

func scanBendTest(row rowScanner) (*models.BendTest, error) {
	var t models.BendTest
	var partID, jobNo, notes sql.NullString
	var status, createdAt string
	var deletedAt sql.NullString

	err := row.Scan(&t.ID, &t.Operator, &t.SourceFile, &partID, &jobNo, &t.Format,
		&t.SupportSpan, &t.Width, &t.Height, &t.MinStrength, &t.ForceUnit,
		&t.SampleCount, &t.MaxForceN, &t.StrengthNcm2, &t.Slope, &status, &notes,
		&createdAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	t.PartID = partID.String
	t.JobNo = jobNo.String
	t.Status = models.Status(status)
	t.Notes = notes.String
	t.CreatedAt = parseTime(createdAt)
	t.DeletedAt = parseNullTime(deletedAt)
	return &t, nil
}

// GetBendTest returns a stored bend test with its samples
func (db *DB) GetBendTest(id string) (*models.BendTest, error) {
	row := db.conn.QueryRow(`SELECT `+bendColumns+` FROM bend_tests
		WHERE id = ? AND deleted_at IS NULL`, id)
	t, err := scanBendTest(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	t.Samples, err = db.bendSamples(id)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (db *DB) bendSamples(testID string) ([]models.BendSample, error) {
	rows, err := db.conn.Query(`SELECT seq, time, displacement, force_n, stress_ncm2
		FROM bend_samples WHERE test_id = ? ORDER BY seq`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.BendSample
	for rows.Next() {
		var s models.BendSample
		if err := rows.Scan(&s.Seq, &s.Time, &s.Displacement, &s.ForceN, &s.StressNcm2); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// ListBendTests returns bend tests without samples, newest first
func (db *DB) ListBendTests(opts ListOptions) ([]models.BendTest, error) {
	where, args := whereClause(opts)
	rows, err := db.conn.Query(`SELECT `+bendColumns+` FROM bend_tests`+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []models.BendTest
	for rows.Next() {
		t, err := scanBendTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, *t)
	}
	return tests, rows.Err()
}
