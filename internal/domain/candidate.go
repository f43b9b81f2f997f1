package domain

import (
	"context"
	"time"
)

// Column length limits enforced by CSV import validation. These mirror the
// candidate table DDL.
const (
	MaxExternalRefLen = 64
	MaxNameLen        = 100
	MaxNationalityLen = 50
	MaxOriginLen      = 100
	MaxNotesLen       = 2000

	MinAge = 0
	MaxAge = 200
)

// Candidate is the persisted registry entry. ExternalRef is the business
// natural key: unique when set, used to match rows on re-import. Optional
// columns are pointers so NULL survives round trips through import/export.
type Candidate struct {
	ID          int64     `json:"id"`
	ExternalRef string    `json:"external_ref"`
	Name        string    `json:"name"`
	Age         *int      `json:"age"`
	Nationality *string   `json:"nationality"`
	Origin      *string   `json:"origin"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchFilter holds listing parameters. Name/Nationality/Origin are
// case-insensitive substring filters; empty means match-all.
type SearchFilter struct {
	Name        string
	Nationality string
	Origin      string
	Page        int    `validate:"min=0"`
	Size        int    `validate:"min=1,max=100"`
	Sort        string `validate:"oneof=external_ref name age nationality origin created_at updated_at"`
	Dir         string `validate:"oneof=asc desc"`
}

// PaginatedResult for list responses
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

// ImportWarning is a non-fatal issue detected during CSV upload, e.g. an
// unrecognized header column.
type ImportWarning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorReportRef points at the downloadable per-row error report of an
// upload, when one was retained.
type ErrorReportRef struct {
	Available   bool    `json:"available"`
	DownloadURL *string `json:"downloadUrl"`
}

// ImportOutcome is the per-file upload result.
// Invariant: SuccessCount + FailureCount == TotalRows.
type ImportOutcome struct {
	TotalRows    int             `json:"totalRows"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Warnings     []ImportWarning `json:"warnings"`
	ErrorReport  ErrorReportRef  `json:"errorReport"`
}

// ImportUnit is the storage unit of work spanning one CSV upload. A failed
// Create or Update rejects that row only: rows already applied through the
// unit still commit. Implementations isolate each write so a constraint
// violation cannot poison the surrounding transaction.
type ImportUnit interface {
	GetByExternalRef(ctx context.Context, externalRef string) (*Candidate, error)
	Create(ctx context.Context, c *Candidate) error
	Update(ctx context.Context, c *Candidate) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type CandidateRepository interface {
	Search(ctx context.Context, filter SearchFilter) ([]Candidate, int64, error)
	SearchAll(ctx context.Context, filter SearchFilter) ([]Candidate, error)
	BeginImport(ctx context.Context) (ImportUnit, error)
}

type CandidateUsecase interface {
	Search(ctx context.Context, filter SearchFilter) (*PaginatedResult[Candidate], error)
	Export(ctx context.Context, filter SearchFilter, format string) ([]byte, string, error)
}

type ImportUsecase interface {
	UploadCSV(ctx context.Context, data []byte, baseURL string) (*ImportOutcome, error)
	ErrorReportPath(filename string) (string, error)
}
