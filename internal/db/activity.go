package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/brafe/qc/internal/models"
)

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// logAction appends an audit entry. Caller must hold the write lock.
func logAction(ex execer, action models.ActionType, recordID, detail string) error {
	_, err := ex.Exec(`INSERT INTO action_log (action, record_id, detail, timestamp) VALUES (?, ?, ?, ?)`,
		string(action), recordID, detail, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("log %s %s: %w", action, recordID, err)
	}
	return nil
}

// RecentActions returns the newest audit entries, optionally for one record
func (db *DB) RecentActions(recordID string, limit int) ([]models.ActionLog, error) {
	query := `SELECT id, action, record_id, detail, timestamp FROM action_log`
	var args []any
	if recordID != "" {
		query += ` WHERE record_id = ?`
		args = append(args, recordID)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []models.ActionLog
	for rows.Next() {
		var a models.ActionLog
		var action, ts string
		var detail sql.NullString
		if err := rows.Scan(&a.ID, &action, &a.RecordID, &detail, &ts); err != nil {
			return nil, err
		}
		a.Action = models.ActionType(action)
		a.Detail = detail.String
		a.Timestamp = parseTime(ts)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
