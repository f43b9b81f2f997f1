package usecase

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"go-candidate-registry/config"
	"go-candidate-registry/internal/domain"
	"go-candidate-registry/pkg/apperror"
	"go-candidate-registry/pkg/logger"
)

type importUsecase struct {
	repo domain.CandidateRepository
	cfg  *config.Config
}

func NewImportUsecase(repo domain.CandidateRepository, cfg *config.Config) domain.ImportUsecase {
	return &importUsecase{repo: repo, cfg: cfg}
}

// UploadCSV runs the whole import pipeline for one file: decode, header
// checks, in-file duplicate pre-pass, then per-row validation and upsert.
// Fatal errors (size/row caps, malformed input) abort before any storage
// write. Per-row failures land in the error report and never abort the file;
// rows applied before a later failure stay committed. That per-file
// non-atomicity is intentional.
func (u *importUsecase) UploadCSV(ctx context.Context, data []byte, baseURL string) (*domain.ImportOutcome, error) {
	if int64(len(data)) > u.cfg.UploadMaxSizeBytes {
		return nil, apperror.PayloadTooLarge(apperror.CodeFileLimit, "file too large")
	}

	headers, rows, err := decodeCSV(data)
	if err != nil {
		return nil, err
	}
	if len(rows) > u.cfg.UploadMaxRows {
		return nil, apperror.BadRequest(apperror.CodeFileLimit, "too many rows")
	}

	warnings := headerWarnings(headers)

	// The duplicate pre-pass must see every row before the first row is
	// classified: all occurrences of a repeated key are rejected, not just
	// the later ones.
	dups := duplicateRefs(rows)

	// presentColumns is a file-level fact: it decides which stored columns
	// an update may touch, independent of any single row's cells.
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	report, err := newErrorReportWriter(u.cfg.ErrorReportDir)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer report.discard()

	unit, err := u.repo.BeginImport(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer unit.Rollback(ctx)

	outcome := &domain.ImportOutcome{TotalRows: len(rows), Warnings: warnings}
	for _, row := range rows {
		if ref := normalize(row.fields["external_ref"]); ref != nil && dups[*ref] {
			u.reject(outcome, report, row, codeDupInFile, "duplicate external_ref in file")
			continue
		}

		validated, rowErrs := validateRow(row.fields)
		if len(rowErrs) > 0 {
			u.reject(outcome, report, row, rowErrs[0].code, joinRowErrors(rowErrs))
			continue
		}

		if err := u.upsert(ctx, unit, validated, present); err != nil {
			u.reject(outcome, report, row, codeUnknownError, err.Error())
			continue
		}
		outcome.SuccessCount++
	}

	if err := unit.Commit(ctx); err != nil {
		return nil, apperror.Internal(err)
	}

	kept, filename, err := report.finalize()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if kept {
		downloadURL := baseURL + "/v1/candidates/csv/upload/errors/" + url.PathEscape(filename)
		outcome.ErrorReport = domain.ErrorReportRef{Available: true, DownloadURL: &downloadURL}
	}
	return outcome, nil
}

func (u *importUsecase) reject(outcome *domain.ImportOutcome, report *errorReportWriter, row csvRow, code, message string) {
	outcome.FailureCount++
	if err := report.add(row.num, code, message, row.fields); err != nil {
		logger.Log.Warn("failed to append to error report", "row", row.num, "error", err)
	}
}

// upsert resolves a validated row against storage by external_ref. On update
// only columns whose header appeared in the file are overwritten: a present
// header with an empty cell clears the stored value, an absent header leaves
// it untouched.
func (u *importUsecase) upsert(ctx context.Context, unit domain.ImportUnit, v *validatedRow, present map[string]bool) error {
	existing, err := unit.GetByExternalRef(ctx, v.externalRef)
	if err != nil {
		return err
	}

	if existing == nil {
		return unit.Create(ctx, &domain.Candidate{
			ExternalRef: v.externalRef,
			Name:        v.name,
			Age:         v.age,
			Nationality: v.nationality,
			Origin:      v.origin,
			Notes:       v.notes,
		})
	}

	if present["name"] {
		existing.Name = v.name
	}
	if present["age"] {
		existing.Age = v.age
	}
	if present["nationality"] {
		existing.Nationality = v.nationality
	}
	if present["origin"] {
		existing.Origin = v.origin
	}
	if present["notes"] {
		existing.Notes = v.notes
	}
	return unit.Update(ctx, existing)
}

// ErrorReportPath resolves a previously issued report filename to its path
// under the configured report directory. Anything that is not a plain file
// name is treated as not found.
func (u *importUsecase) ErrorReportPath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", apperror.NotFound("error report not found")
	}
	path := filepath.Join(u.cfg.ErrorReportDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", apperror.NotFound("error report not found")
	}
	return path, nil
}
