package usecase

import (
	"context"
	"strings"
	"testing"

	"go-candidate-registry/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCandidateRepo is a testify mock over the repository interface.
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) SearchAll(ctx context.Context, filter domain.SearchFilter) ([]domain.Candidate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) BeginImport(ctx context.Context) (domain.ImportUnit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ImportUnit), args.Error(1)
}

func sampleCandidates() []domain.Candidate {
	age := 30
	nationality := "JP"
	return []domain.Candidate{
		{ID: 1, ExternalRef: "CND-001", Name: "Alice", Age: &age, Nationality: &nationality},
		{ID: 2, ExternalRef: "CND-002", Name: "Bob"},
	}
}

func TestCandidateSearch(t *testing.T) {
	t.Run("Should apply defaults before querying", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		mockRepo.On("Search", mock.Anything, mock.MatchedBy(func(f domain.SearchFilter) bool {
			return f.Page == 0 && f.Size == 10 && f.Sort == "external_ref" && f.Dir == "asc"
		})).Return(sampleCandidates(), int64(2), nil)

		result, err := uc.Search(context.Background(), domain.SearchFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
		assert.Equal(t, 1, result.TotalPages)
		assert.Len(t, result.Data, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should compute total pages with remainder", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		mockRepo.On("Search", mock.Anything, mock.Anything).Return(sampleCandidates(), int64(21), nil)

		result, err := uc.Search(context.Background(), domain.SearchFilter{Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("Should lowercase the sort direction", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		mockRepo.On("Search", mock.Anything, mock.MatchedBy(func(f domain.SearchFilter) bool {
			return f.Dir == "desc"
		})).Return([]domain.Candidate{}, int64(0), nil)

		_, err := uc.Search(context.Background(), domain.SearchFilter{Dir: "DESC"})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should reject an unknown sort column without hitting the repo", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		_, err := uc.Search(context.Background(), domain.SearchFilter{Sort: "password"})
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Search")
	})
}

func TestCandidateExport(t *testing.T) {
	t.Run("Should render RFC4180 CSV with empty string for absent age", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		mockRepo.On("SearchAll", mock.Anything, mock.Anything).Return(sampleCandidates(), nil)

		data, filename, err := uc.Export(context.Background(), domain.SearchFilter{}, "csv")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(filename, "candidate_export_"))
		assert.True(t, strings.HasSuffix(filename, ".csv"))

		expected := "external_ref,name,age,nationality,origin,notes\r\n" +
			"CND-001,Alice,30,JP,,\r\n" +
			"CND-002,Bob,,,,\r\n"
		assert.Equal(t, expected, string(data))
	})

	t.Run("Should default to CSV when format is empty", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		mockRepo.On("SearchAll", mock.Anything, mock.Anything).Return([]domain.Candidate{}, nil)

		_, filename, err := uc.Export(context.Background(), domain.SearchFilter{}, "")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".csv"))
	})

	t.Run("Should produce an XLSX workbook on request", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		mockRepo.On("SearchAll", mock.Anything, mock.Anything).Return(sampleCandidates(), nil)

		data, filename, err := uc.Export(context.Background(), domain.SearchFilter{}, "xlsx")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))
		assert.NotEmpty(t, data)
	})

	t.Run("Should reject an unsupported format", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := NewCandidateUsecase(mockRepo, validator.New())

		_, _, err := uc.Export(context.Background(), domain.SearchFilter{}, "pdf")
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "SearchAll")
	})
}
