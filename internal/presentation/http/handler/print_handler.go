package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/request"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
)

// PrintHandler serves print windows and the print journal
type PrintHandler struct {
	printService *service.PrintService
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(printService *service.PrintService) *PrintHandler {
	return &PrintHandler{printService: printService}
}

// Window serves the document written to a print window
func (h *PrintHandler) Window(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid window ID format")
		return
	}

	doc, err := h.printService.OpenWindow(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Document(c, doc.HTML, doc.Digest)
}

// CloseWindow discards a print window before it expires
func (h *PrintHandler) CloseWindow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid window ID format")
		return
	}

	if err := h.printService.CloseWindow(id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// OpenWindows reports the number of live print windows
func (h *PrintHandler) OpenWindows() int {
	return h.printService.OpenWindows()
}

// ListJobs returns the print journal newest first
func (h *PrintHandler) ListJobs(c *gin.Context) {
	var req request.PrintJobFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	filter := repository.PrintJobFilter{
		Kind:      req.Kind,
		Reference: req.Reference,
	}
	result, err := h.printService.ListJobs(c.Request.Context(), filter, &req.CursorParams)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print jobs retrieved successfully", result)
}
