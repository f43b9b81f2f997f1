package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"go-candidate-registry/internal/domain"
)

// Per-row error codes. Fatal upload codes live in pkg/apperror; these mark a
// single rejected row and never abort the file.
const (
	codeRequiredMissing = "REQ_MISSING"
	codeLengthOver      = "LEN_OVER"
	codeTypeMismatch    = "TYPE_MISMATCH"
	codeRangeError      = "RANGE_ERROR"
	codeDupInFile       = "DUP_IN_FILE"
	codeUnknownError    = "UNKNOWN_ERROR"
)

type rowError struct {
	code    string
	message string
}

// validatedRow carries the normalized values of a row that passed every
// check. Optional fields stay nil when their cell was empty or absent.
type validatedRow struct {
	externalRef string
	name        string
	age         *int
	nationality *string
	origin      *string
	notes       *string
}

// validateRow runs the field checks in their fixed order. The order decides
// which code a multi-error row is reported under (the first one).
func validateRow(fields map[string]string) (*validatedRow, []rowError) {
	externalRef := normalize(fields["external_ref"])
	name := normalize(fields["name"])
	nationality := normalize(fields["nationality"])
	origin := normalize(fields["origin"])
	notes := normalize(fields["notes"])

	var errs []rowError
	if externalRef == nil {
		errs = append(errs, rowError{codeRequiredMissing, "external_ref is required"})
	}
	if name == nil {
		errs = append(errs, rowError{codeRequiredMissing, "name is required"})
	}
	errs = appendLengthError(errs, externalRef, "external_ref", domain.MaxExternalRefLen)
	errs = appendLengthError(errs, name, "name", domain.MaxNameLen)
	errs = appendLengthError(errs, nationality, "nationality", domain.MaxNationalityLen)
	errs = appendLengthError(errs, origin, "origin", domain.MaxOriginLen)
	errs = appendLengthError(errs, notes, "notes", domain.MaxNotesLen)

	age, ageErrs := validateAge(fields["age"])
	errs = append(errs, ageErrs...)

	if len(errs) > 0 {
		return nil, errs
	}
	return &validatedRow{
		externalRef: *externalRef,
		name:        *name,
		age:         age,
		nationality: nationality,
		origin:      origin,
		notes:       notes,
	}, nil
}

func appendLengthError(errs []rowError, value *string, field string, max int) []rowError {
	if value != nil && len([]rune(*value)) > max {
		errs = append(errs, rowError{codeLengthOver, fmt.Sprintf("%s > %d", field, max)})
	}
	return errs
}

// validateAge parses the raw age cell. An empty cell is a valid absent age.
// Anything that is not a plain in-range integer fails: non-numeric text and
// decimal notation are type mismatches, out-of-range integers range errors.
func validateAge(raw string) (*int, []rowError) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		return nil, []rowError{{codeTypeMismatch, "age must be integer"}}
	}
	if v < domain.MinAge || v > domain.MaxAge {
		return nil, []rowError{{codeRangeError, fmt.Sprintf("age must be %d..%d", domain.MinAge, domain.MaxAge)}}
	}
	return &v, nil
}

// joinRowErrors renders the full error list as one message, e.g.
// "REQ_MISSING: name is required; LEN_OVER: notes > 2000".
func joinRowErrors(errs []rowError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.code + ": " + e.message
	}
	return strings.Join(parts, "; ")
}

// duplicateRefs pre-scans every row's normalized external_ref and returns
// the values that occur more than once in the file. Rows carrying such a
// value are rejected later, every occurrence including the first: which rows
// conflict is only knowable once the whole file has been seen.
func duplicateRefs(rows []csvRow) map[string]bool {
	counts := make(map[string]int)
	for _, row := range rows {
		if ref := normalize(row.fields["external_ref"]); ref != nil {
			counts[*ref]++
		}
	}
	dups := make(map[string]bool)
	for ref, n := range counts {
		if n > 1 {
			dups[ref] = true
		}
	}
	return dups
}
