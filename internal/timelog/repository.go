package timelog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if needed) the sqlite history at path.
func NewRepository(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *Repository) init() error {
	timeLogsQuery := `
	CREATE TABLE IF NOT EXISTS time_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL,
		input TEXT NOT NULL DEFAULT '',
		total INTEGER NOT NULL,
		remaining INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		started_at TEXT NOT NULL,
		stopped_at TEXT NOT NULL
	)
	`
	_, err := r.db.Exec(timeLogsQuery)
	return err
}

func (r *Repository) CreateLog(log *TimeLog) error {
	result, err := r.db.Exec(
		`INSERT INTO time_logs (session_id, title, mode, input, total, remaining, outcome, started_at, stopped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.SessionID,
		log.Title,
		log.Mode,
		log.Input,
		int64(log.Total),
		int64(log.Remaining),
		log.Outcome,
		log.StartedAt.UTC().Format(time.RFC3339),
		log.StoppedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = id
	return nil
}

// GetRecentLogs returns up to limit sessions, newest first.
func (r *Repository) GetRecentLogs(limit int) ([]TimeLog, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, title, mode, input, total, remaining, outcome, started_at, stopped_at
		 FROM time_logs
		 ORDER BY stopped_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []TimeLog
	for rows.Next() {
		var l TimeLog
		var startedAt, stoppedAt string
		var total, remaining int64
		if err := rows.Scan(
			&l.ID, &l.SessionID, &l.Title, &l.Mode, &l.Input,
			&total, &remaining, &l.Outcome, &startedAt, &stoppedAt,
		); err != nil {
			return nil, err
		}
		l.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		l.StoppedAt, _ = time.Parse(time.RFC3339, stoppedAt)
		l.Total = time.Duration(total)
		l.Remaining = time.Duration(remaining)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountByOutcome tallies every recorded session by outcome.
func (r *Repository) CountByOutcome() (map[string]int, error) {
	rows, err := r.db.Query("SELECT outcome, COUNT(*) FROM time_logs GROUP BY outcome")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
