package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/request"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
)

// ReportHandler handles purchase report and supplier statement requests
type ReportHandler struct {
	reportService    *service.ReportService
	statementService *service.StatementService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, statementService *service.StatementService) *ReportHandler {
	return &ReportHandler{
		reportService:    reportService,
		statementService: statementService,
	}
}

func (h *ReportHandler) bindReport(c *gin.Context) (enum.ReportKind, entity.ReportFilter, bool) {
	kind, ok := enum.ParseReportKind(c.Param("kind"))
	if !ok {
		response.NotFound(c, "Unknown report: "+c.Param("kind"))
		return "", entity.ReportFilter{}, false
	}
	var req request.ReportFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return "", entity.ReportFilter{}, false
	}
	return kind, req.ToFilter(), true
}

// Report returns a purchase report as JSON
func (h *ReportHandler) Report(c *gin.Context) {
	kind, filter, ok := h.bindReport(c)
	if !ok {
		return
	}

	report, err := h.reportService.Report(c.Request.Context(), kind, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", report)
}

// Document returns the printable report document
func (h *ReportHandler) Document(c *gin.Context) {
	kind, filter, ok := h.bindReport(c)
	if !ok {
		return
	}

	doc, err := h.reportService.Document(c.Request.Context(), kind, filter, showControls(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Document(c, doc.HTML, doc.Digest)
}

// Print opens the report in a print window
func (h *ReportHandler) Print(c *gin.Context) {
	kind, filter, ok := h.bindReport(c)
	if !ok {
		return
	}

	result, err := h.reportService.Print(c.Request.Context(), kind, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report ready to print", result)
}

func bindStatement(c *gin.Context) (service.StatementInput, bool) {
	var req request.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return service.StatementInput{}, false
	}
	return service.StatementInput{
		SupplierID: c.Param("id"),
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
	}, true
}

// Statement returns a supplier statement with its recomputed ledger
func (h *ReportHandler) Statement(c *gin.Context) {
	input, ok := bindStatement(c)
	if !ok {
		return
	}

	view, err := h.statementService.Statement(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier statement retrieved successfully", view)
}

// StatementDocument returns the printable supplier statement
func (h *ReportHandler) StatementDocument(c *gin.Context) {
	input, ok := bindStatement(c)
	if !ok {
		return
	}

	doc, err := h.statementService.Document(c.Request.Context(), input, showControls(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Document(c, doc.HTML, doc.Digest)
}

// StatementPrint opens the supplier statement in a print window
func (h *ReportHandler) StatementPrint(c *gin.Context) {
	input, ok := bindStatement(c)
	if !ok {
		return
	}

	result, err := h.statementService.Print(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement ready to print", result)
}
