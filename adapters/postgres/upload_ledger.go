package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/merwanroudane/plott/internal/errors"
	"github.com/merwanroudane/plott/ports"
)

const uploadsSchema = `
CREATE TABLE IF NOT EXISTS uploads (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	source TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	column_count INTEGER NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the uploads table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, uploadsSchema); err != nil {
		return errors.DatabaseError("failed to ensure uploads schema", err)
	}
	return nil
}

// uploadLedger implements ports.UploadLedger over PostgreSQL.
type uploadLedger struct {
	db *sqlx.DB
}

// NewUploadLedger creates an upload ledger backed by the given database.
func NewUploadLedger(db *sqlx.DB) ports.UploadLedger {
	return &uploadLedger{db: db}
}

func (l *uploadLedger) Record(ctx context.Context, rec ports.UploadRecord) error {
	query := `INSERT INTO uploads (id, name, source, row_count, column_count, uploaded_at)
		VALUES (:id, :name, :source, :row_count, :column_count, :uploaded_at)`
	if _, err := l.db.NamedExecContext(ctx, query, rec); err != nil {
		return errors.DatabaseError("failed to record upload", err)
	}
	return nil
}

func (l *uploadLedger) List(ctx context.Context, limit int) ([]ports.UploadRecord, error) {
	query := `SELECT id, name, source, row_count, column_count, uploaded_at
		FROM uploads ORDER BY uploaded_at DESC LIMIT $1`
	var records []ports.UploadRecord
	if err := l.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, errors.DatabaseError("failed to list uploads", err)
	}
	return records, nil
}
