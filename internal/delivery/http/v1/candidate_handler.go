package v1

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go-candidate-registry/internal/delivery/http/response"
	"go-candidate-registry/internal/domain"
	"go-candidate-registry/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	importUC    domain.ImportUsecase
}

// NewCandidateHandler registers candidate registry routes
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, importUC domain.ImportUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC, importUC: importUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.POST("/csv/upload", handler.UploadCSV)
		candidates.GET("/csv/upload/errors/:filename", handler.DownloadErrorReport)
		candidates.GET("/csv/export", handler.Export)
	}
}

// List godoc
// @Summary      List candidates
// @Description  Returns a paginated candidate listing with optional substring filters
// @Tags         candidates
// @Produce      json
// @Param        name         query  string  false  "Substring filter on name (case-insensitive)"
// @Param        nationality  query  string  false  "Substring filter on nationality"
// @Param        origin       query  string  false  "Substring filter on origin"
// @Param        page         query  int     false  "Page number, 0-based (default: 0)"
// @Param        size         query  int     false  "Page size (default: 10, max: 100)"
// @Param        sort         query  string  false  "Sort column (default: external_ref)"
// @Param        dir          query  string  false  "Sort direction asc|desc (default: asc)"
// @Success      200  {object}  response.Response{data=domain.PaginatedResult[domain.Candidate]}
// @Failure      400  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	filter.Size, _ = strconv.Atoi(c.DefaultQuery("size", "10"))

	result, err := h.candidateUC.Search(c, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates retrieved", result)
}

// UploadCSV godoc
// @Summary      Bulk import candidates from CSV
// @Description  Parses and validates the uploaded file, upserting rows by external_ref. Row failures do not abort the upload; a per-row error report is made available for download.
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file with header external_ref,name,age,nationality,origin,notes"
// @Success      200  {object}  response.Response{data=domain.ImportOutcome}
// @Failure      400  {object}  response.Response
// @Failure      413  {object}  response.Response
// @Router       /candidates/csv/upload [post]
func (h *CandidateHandler) UploadCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest(apperror.CodeMalformedCSV, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	outcome, err := h.importUC.UploadCSV(c, data, baseURL(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CSV processed", outcome)
}

// DownloadErrorReport godoc
// @Summary      Download an upload error report
// @Description  Streams the per-row error report of a previous upload as CSV
// @Tags         candidates
// @Produce      text/csv
// @Param        filename  path  string  true  "URL-encoded report filename"
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /candidates/csv/upload/errors/{filename} [get]
func (h *CandidateHandler) DownloadErrorReport(c *gin.Context) {
	filename, err := url.PathUnescape(c.Param("filename"))
	if err != nil {
		c.Error(apperror.NotFound("error report not found"))
		return
	}

	path, err := h.importUC.ErrorReportPath(filename)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.File(path)
}

// Export godoc
// @Summary      Export candidates
// @Description  Serializes all candidates matching the filters, unpaged, as CSV or XLSX
// @Tags         candidates
// @Produce      text/csv
// @Param        name         query  string  false  "Substring filter on name"
// @Param        nationality  query  string  false  "Substring filter on nationality"
// @Param        origin       query  string  false  "Substring filter on origin"
// @Param        format       query  string  false  "Export format (csv, xlsx). Default: csv"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /candidates/csv/export [get]
func (h *CandidateHandler) Export(c *gin.Context) {
	filter := parseFilter(c)
	format := c.DefaultQuery("format", "csv")

	data, filename, err := h.candidateUC.Export(c, filter, format)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func parseFilter(c *gin.Context) domain.SearchFilter {
	return domain.SearchFilter{
		Name:        c.Query("name"),
		Nationality: c.Query("nationality"),
		Origin:      c.Query("origin"),
		Sort:        c.DefaultQuery("sort", "external_ref"),
		Dir:         c.DefaultQuery("dir", "asc"),
	}
}

// baseURL reconstructs the externally visible base URL for download links.
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
