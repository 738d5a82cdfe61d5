package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brafe/qc/internal/models"
)

// ListOptions filters per-kind listings
type ListOptions struct {
	Status         models.Status // empty = any
	IncludeDeleted bool
	Limit          int // 0 = no limit
}

// RecordFilter filters the cross-kind history
type RecordFilter struct {
	Kind   models.Kind   // empty = all kinds
	Status models.Status // empty = any
	Limit  int           // 0 = no limit
}

var kindTables = map[models.Kind]string{
	models.KindDimensional: "dimensional_checks",
	models.KindBend:        "bend_tests",
	models.KindLOI:         "loi_tests",
}

// insertWithID generates an ID for kind and retries insert on collision.
// Caller must hold the write lock.
func insertWithID(kind models.Kind, insert func(id string) error) (string, error) {
	const maxRetries = 3
	for attempt := range maxRetries {
		id, err := generateID(kind)
		if err != nil {
			return "", err
		}
		err = insert(id)
		if err == nil {
			return id, nil
		}
		if !strings.Contains(err.Error(), "UNIQUE constraint") {
			return "", err
		}
		if attempt == maxRetries-1 {
			return "", fmt.Errorf("failed to generate unique %s ID after %d attempts", kind, maxRetries)
		}
	}
	return "", nil
}

func whereClause(opts ListOptions) (string, []any) {
	var conds []string
	var args []any
	if !opts.IncludeDeleted {
		conds = append(conds, "deleted_at IS NULL")
	}
	if opts.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(opts.Status))
	}
	clause := ""
	if len(conds) > 0 {
		clause = " WHERE " + strings.Join(conds, " AND ")
	}
	clause += " ORDER BY created_at DESC, id"
	if opts.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	return clause, args
}

// ListRecords returns stored records of every kind, newest first
func (db *DB) ListRecords(f RecordFilter) ([]models.Record, error) {
	parts := []string{}
	if f.Kind == "" || f.Kind == models.KindDimensional {
		parts = append(parts, `SELECT id, 'dim' AS kind,
			printf('%.2f x %.2f x %.2f mm', x_measured, y_measured, z_measured) AS summary,
			status, operator, created_at
			FROM dimensional_checks WHERE deleted_at IS NULL`)
	}
	if f.Kind == "" || f.Kind == models.KindBend {
		parts = append(parts, `SELECT id, 'bend' AS kind,
			printf('%s  %.1f N/cm2', part_id, strength_ncm2) AS summary,
			status, operator, created_at
			FROM bend_tests WHERE deleted_at IS NULL`)
	}
	if f.Kind == "" || f.Kind == models.KindLOI {
		parts = append(parts, `SELECT id, 'loi' AS kind,
			printf('%.2f%% binder (%s)', loi_percent, method) AS summary,
			status, operator, created_at
			FROM loi_tests WHERE deleted_at IS NULL`)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("unknown record kind: %s", f.Kind)
	}

	query := "SELECT * FROM (" + strings.Join(parts, " UNION ALL ") + ")"
	var args []any
	if f.Status != "" {
		query += " WHERE status = ?"
		args = append(args, string(f.Status))
	}
	query += " ORDER BY created_at DESC, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		var kind, status, createdAt string
		if err := rows.Scan(&r.ID, &kind, &r.Summary, &status, &r.Operator, &createdAt); err != nil {
			return nil, err
		}
		r.Kind = models.Kind(kind)
		r.Status = models.Status(status)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// tableFor resolves the table holding id, or ErrNotFound for unknown prefixes
func tableFor(id string) (string, error) {
	kind, ok := KindOf(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return kindTables[kind], nil
}

// DeleteRecord soft-deletes a record of any kind
func (db *DB) DeleteRecord(id string) error {
	table, err := tableFor(id)
	if err != nil {
		return err
	}
	return db.withWriteLock(func() error {
		res, err := db.conn.Exec(
			fmt.Sprintf(`UPDATE %s SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, table),
			formatTime(time.Now()), id)
		if err != nil {
			return err
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}
		return logAction(db.conn, models.ActionDelete, id, "")
	})
}

// RestoreRecord clears the deleted mark of a soft-deleted record
func (db *DB) RestoreRecord(id string) error {
	table, err := tableFor(id)
	if err != nil {
		return err
	}
	return db.withWriteLock(func() error {
		res, err := db.conn.Exec(
			fmt.Sprintf(`UPDATE %s SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, table), id)
		if err != nil {
			return err
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}
		return logAction(db.conn, models.ActionRestore, id, "")
	})
}

// ErrEmptyNote is returned by AddNote for blank text
var ErrEmptyNote = errors.New("note text is empty")

// AddNote appends a line to a record's notes
func (db *DB) AddNote(id, text string) error {
	table, err := tableFor(id)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyNote
	}
	return db.withWriteLock(func() error {
		res, err := db.conn.Exec(fmt.Sprintf(`UPDATE %s
			SET notes = CASE WHEN COALESCE(notes, '') = '' THEN ? ELSE notes || char(10) || ? END
			WHERE id = ? AND deleted_at IS NULL`, table), text, text, id)
		if err != nil {
			return err
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}
		return logAction(db.conn, models.ActionNote, id, text)
	})
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
