package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobPending   = "pending"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// GenerationJob is the audit entry for one PDF generation. It carries no
// résumé content and nothing derived from it, not even the file name; the
// normalized record lives only for the request.
type GenerationJob struct {
	ID         uuid.UUID `json:"id"`
	RequestID  string    `json:"request_id"`
	Status     string    `json:"status"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	HTMLBytes  int       `json:"html_bytes"`
	PDFBytes   int       `json:"pdf_bytes"`
	Attempts   int       `json:"attempts"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
