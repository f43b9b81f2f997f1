package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"go-candidate-registry/internal/domain"
	"go-candidate-registry/pkg/apperror"
)

// csvColumns are the recognized import/export columns, in wire order.
var csvColumns = []string{"external_ref", "name", "age", "nationality", "origin", "notes"}

// csvRow is one decoded data row. num is the 1-based row number counted
// after the header line; fields maps header name to the raw, untrimmed cell.
type csvRow struct {
	num    int
	fields map[string]string
}

func malformed(format string, args ...interface{}) error {
	return apperror.BadRequest(apperror.CodeMalformedCSV, fmt.Sprintf(format, args...))
}

// decodeCSV parses an uploaded CSV payload into the parsed header names and
// the ordered data rows. Values are used verbatim (no trimming) and blank
// lines are not tolerated: encoding/csv would silently drop them, which
// would shift row numbering, so they fail the whole upload instead.
func decodeCSV(data []byte) ([]string, []csvRow, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, malformed("empty file")
	}

	content := string(data)
	if err := validateRawHeader(firstLine(content)); err != nil {
		return nil, nil, err
	}
	if line, ok := blankLine(content); ok {
		return nil, nil, malformed("blank line at line %d", line)
	}

	r := csv.NewReader(strings.NewReader(content))
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, malformed("%v", err)
	}
	if len(records) == 0 {
		return nil, nil, malformed("empty header")
	}

	headers := records[0]
	rows := make([]csvRow, 0, len(records)-1)
	for i, record := range records[1:] {
		fields := make(map[string]string, len(headers))
		for j, h := range headers {
			fields[h] = record[j]
		}
		rows = append(rows, csvRow{num: i + 1, fields: fields})
	}
	return headers, rows, nil
}

// validateRawHeader checks the verbatim first line split on the delimiter.
// The parsed header cannot be used here: a header map silently collapses
// duplicate names, and duplicates must fail the upload.
func validateRawHeader(line string) error {
	seen := make(map[string]bool)
	for _, h := range strings.Split(line, ",") {
		if strings.TrimSpace(h) == "" {
			return malformed("empty header")
		}
		if seen[h] {
			return malformed("duplicate header '%s'", h)
		}
		seen[h] = true
	}
	return nil
}

// headerWarnings reports every accepted-but-unrecognized column. Unknown
// columns are ignored by the import, not rejected.
func headerWarnings(headers []string) []domain.ImportWarning {
	recognized := make(map[string]bool, len(csvColumns))
	for _, c := range csvColumns {
		recognized[c] = true
	}

	warnings := []domain.ImportWarning{}
	for _, h := range headers {
		if !recognized[h] {
			warnings = append(warnings, domain.ImportWarning{
				Type:    "UNKNOWN_HEADER",
				Message: fmt.Sprintf("Header '%s' is ignored.", h),
			})
		}
	}
	return warnings
}

func firstLine(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	return strings.TrimSuffix(content, "\r")
}

// blankLine scans for an empty line outside any quoted field and returns its
// 1-based line number. A trailing newline at EOF is not a blank line.
func blankLine(content string) (int, bool) {
	inQuotes := false
	line := 1
	empty := true
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '"':
			inQuotes = !inQuotes
			empty = false
		case '\n':
			if !inQuotes {
				if empty {
					return line, true
				}
				line++
				empty = true
			}
		case '\r':
			// part of the line terminator, ignore
		default:
			empty = false
		}
	}
	return 0, false
}

// normalize cleans a textual cell: full-width spaces become ordinary spaces,
// surrounding whitespace is trimmed, and an all-whitespace result is absent
// (nil), not an empty string.
func normalize(s string) *string {
	t := strings.TrimSpace(strings.ReplaceAll(s, "　", " "))
	if t == "" {
		return nil
	}
	return &t
}
