package ports

import (
	"context"
	"time"
)

// UploadRecord is one entry in the upload history ledger. Only shape
// metadata is recorded; dataset contents are never persisted.
type UploadRecord struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Source      string    `db:"source" json:"source"` // "upload" or "example"
	RowCount    int       `db:"row_count" json:"row_count"`
	ColumnCount int       `db:"column_count" json:"column_count"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// UploadLedger records and lists dataset uploads. Implementations must be
// safe for concurrent use.
type UploadLedger interface {
	Record(ctx context.Context, rec UploadRecord) error
	List(ctx context.Context, limit int) ([]UploadRecord, error)
}
