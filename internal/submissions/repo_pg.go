package submissions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"veritas-backend/internal/report"
)

// PGRepo implements Repo using Postgres. Content and report are stored as
// JSONB blobs, matching the row shape the history view reads.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new submission.
func (r *PGRepo) Create(ctx context.Context, sub Submission) error {
	const query = `
INSERT INTO submissions (id, user_id, user_name, content, report, storage_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	content, err := json.Marshal(sub.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	var reportJSON any
	if sub.Report != nil {
		raw, err := json.Marshal(sub.Report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		reportJSON = raw
	}

	var storageKey sql.NullString
	if sub.StorageKey != "" {
		storageKey = sql.NullString{String: sub.StorageKey, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		sub.ID,
		sub.UserID,
		sub.UserName,
		content,
		reportJSON,
		storageKey,
		sub.CreatedAt,
	)
	return err
}

// List returns all submissions, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Submission, error) {
	const query = `
SELECT id, user_id, user_name, content, report, storage_key, created_at
FROM submissions
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// GetByID fetches a submission by ID.
func (r *PGRepo) GetByID(ctx context.Context, submissionID string) (Submission, error) {
	const query = `
SELECT id, user_id, user_name, content, report, storage_key, created_at
FROM submissions
WHERE id = $1
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, submissionID)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return sub, nil
}

// AttachReport sets the report on a pending submission. The WHERE clause
// keeps the transition monotonic: an already-attached report is never
// overwritten.
func (r *PGRepo) AttachReport(ctx context.Context, submissionID string, rep report.Report) error {
	const query = `
UPDATE submissions
SET report = $1
WHERE id = $2 AND report IS NULL`

	raw, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, raw, submissionID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, submissionID); err != nil {
			return err
		}
		return ErrReportExists
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var sub Submission
	var content []byte
	var reportRaw []byte
	var storageKey sql.NullString

	if err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.UserName,
		&content,
		&reportRaw,
		&storageKey,
		&sub.CreatedAt,
	); err != nil {
		return Submission{}, err
	}

	if err := json.Unmarshal(content, &sub.Content); err != nil {
		return Submission{}, fmt.Errorf("unmarshal content: %w", err)
	}
	// Stored reports pass through the validator again so rows written by
	// older detector versions still render.
	if rep, ok := report.Normalize(reportRaw); ok {
		sub.Report = &rep
	}
	if storageKey.Valid {
		sub.StorageKey = storageKey.String
	}
	return sub, nil
}

var _ Repo = (*PGRepo)(nil)
