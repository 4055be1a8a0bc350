package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/labops/evidence-desk/internal/submission"
	"go.uber.org/zap"
)

// SubmissionLogEntry is one row of the append-only submission log
type SubmissionLogEntry struct {
	ID            int64
	SessionID     string
	Applicant     string
	PaymentMethod string
	Project       string
	Category      string
	HighValue     bool
	Documents     string
	Backend       string
	SubmittedAt   time.Time
	CreatedAt     time.Time
}

// SubmissionLogRepository appends sent submissions to the log. The log is
// append-only; rows are never updated or deleted.
type SubmissionLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionLogRepository creates a new submission log repository
func NewSubmissionLogRepository(db *sql.DB, logger *zap.Logger) *SubmissionLogRepository {
	return &SubmissionLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append records one sent submission
func (r *SubmissionLogRepository) Append(tx *sql.Tx, record *submission.Record, backend string) (int64, error) {
	query := `
		INSERT INTO submission_log (
			session_id, applicant, payment_method, project, category,
			high_value, documents, backend, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	documents := make([]string, 0, len(record.Documents))
	for _, key := range record.Documents {
		documents = append(documents, string(key))
	}

	args := []interface{}{
		record.SessionID,
		record.Applicant,
		string(record.PaymentMethod),
		record.Project,
		string(record.Category),
		record.HighValue,
		strings.Join(documents, ","),
		backend,
		record.SubmittedAt,
	}

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, args...)
	} else {
		result, err = r.db.Exec(query, args...)
	}
	if err != nil {
		r.logger.Error("Failed to append submission log entry", zap.Error(err))
		return 0, fmt.Errorf("failed to append submission log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns the most recent log entries, newest first
func (r *SubmissionLogRepository) ListRecent(limit int) ([]SubmissionLogEntry, error) {
	query := `
		SELECT id, session_id, applicant, payment_method, project, category,
			high_value, documents, backend, submitted_at, created_at
		FROM submission_log
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list submission log: %w", err)
	}
	defer rows.Close()

	var entries []SubmissionLogEntry
	for rows.Next() {
		var entry SubmissionLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&entry.Applicant,
			&entry.PaymentMethod,
			&entry.Project,
			&entry.Category,
			&entry.HighValue,
			&entry.Documents,
			&entry.Backend,
			&entry.SubmittedAt,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission log entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
