package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-candidate-registry/internal/domain"
	"go-candidate-registry/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

type candidateUsecase struct {
	repo     domain.CandidateRepository
	validate *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *candidateUsecase) Search(ctx context.Context, filter domain.SearchFilter) (*domain.PaginatedResult[domain.Candidate], error) {
	applyFilterDefaults(&filter)
	if err := u.validate.Struct(filter); err != nil {
		return nil, apperror.BadRequest("BAD_REQUEST", err.Error())
	}

	candidates, total, err := u.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}

	totalPages := int(total) / filter.Size
	if int(total)%filter.Size > 0 {
		totalPages++
	}

	return &domain.PaginatedResult[domain.Candidate]{
		Data:       candidates,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages,
	}, nil
}

// Export serializes every record matching the filter, unpaged. format picks
// the container: RFC4180 CSV by default, XLSX on request.
func (u *candidateUsecase) Export(ctx context.Context, filter domain.SearchFilter, format string) ([]byte, string, error) {
	if format != "" && format != "csv" && format != "xlsx" {
		return nil, "", apperror.BadRequest("BAD_REQUEST", "unsupported export format: "+format)
	}
	applyFilterDefaults(&filter)
	if err := u.validate.Struct(filter); err != nil {
		return nil, "", apperror.BadRequest("BAD_REQUEST", err.Error())
	}

	candidates, err := u.repo.SearchAll(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch candidates for export: %w", err)
	}

	if format == "xlsx" {
		return exportExcel(candidates)
	}
	return exportCSV(candidates)
}

func applyFilterDefaults(f *domain.SearchFilter) {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.Size == 0 {
		f.Size = 10
	}
	if f.Sort == "" {
		f.Sort = "external_ref"
	}
	if f.Dir == "" {
		f.Dir = "asc"
	}
	f.Dir = strings.ToLower(f.Dir)
}

func exportCSV(candidates []domain.Candidate) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true // RFC4180 line endings

	if err := w.Write(csvColumns); err != nil {
		return nil, "", err
	}
	for _, c := range candidates {
		if err := w.Write(exportRecord(c)); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("candidate_export_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func exportExcel(candidates []domain.Candidate) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Candidates"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range csvColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(csvColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, c := range candidates {
		for colIdx, value := range exportRecord(c) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}
	for i := range csvColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("candidate_export_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportRecord renders one candidate in csvColumns order. A nil age becomes
// an empty string, as do the other absent optional columns.
func exportRecord(c domain.Candidate) []string {
	age := ""
	if c.Age != nil {
		age = strconv.Itoa(*c.Age)
	}
	return []string{
		c.ExternalRef,
		c.Name,
		age,
		strOrEmpty(c.Nationality),
		strOrEmpty(c.Origin),
		strOrEmpty(c.Notes),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
