package usecase

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var errorReportHeader = []string{
	"row_number", "error_code", "error_message",
	"external_ref", "name", "age", "nationality", "origin", "notes",
}

// errorReportWriter accumulates one CSV row per rejected input row. The file
// is created eagerly and removed again when the upload finishes without
// failures.
type errorReportWriter struct {
	path   string
	file   *os.File
	w      *csv.Writer
	rows   int
	closed bool
}

// newErrorReportWriter creates the report file in dir. The name combines a
// timestamp with a random suffix so concurrent uploads cannot collide.
func newErrorReportWriter(dir string) (*errorReportWriter, error) {
	name := fmt.Sprintf("upload-errors-%s-%s.csv",
		time.Now().Format("20060102-150405"), uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create error report: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(errorReportHeader); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write error report header: %w", err)
	}
	return &errorReportWriter{path: path, file: file, w: w}, nil
}

// add appends one rejected row using the raw (pre-validation) cell values.
func (r *errorReportWriter) add(rowNum int, code, message string, fields map[string]string) error {
	r.rows++
	return r.w.Write([]string{
		strconv.Itoa(rowNum), code, message,
		fields["external_ref"], fields["name"], fields["age"],
		fields["nationality"], fields["origin"], fields["notes"],
	})
}

// finalize flushes and closes the file. An empty report is deleted; a
// non-empty one is retained and its filename returned for download.
func (r *errorReportWriter) finalize() (kept bool, filename string, err error) {
	r.w.Flush()
	flushErr := r.w.Error()
	closeErr := r.file.Close()
	r.closed = true

	if r.rows == 0 {
		os.Remove(r.path)
		return false, "", nil
	}
	if flushErr != nil {
		return false, "", fmt.Errorf("flush error report: %w", flushErr)
	}
	if closeErr != nil {
		return false, "", fmt.Errorf("close error report: %w", closeErr)
	}
	return true, filepath.Base(r.path), nil
}

// discard releases the file handle on abnormal exits. Safe after finalize.
func (r *errorReportWriter) discard() {
	if r.closed {
		return
	}
	r.file.Close()
	r.closed = true
	os.Remove(r.path)
}
