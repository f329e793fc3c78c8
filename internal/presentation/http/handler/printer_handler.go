package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/request"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles thermal printer requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	receipt, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		// The receipt is still useful when the printer type is "none"
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"receipt": receipt,
	})
}

// PrintReceipt prints the thermal receipt for a booking.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	receipt, err := h.printerService.PrintBookingReceipt(c.Request.Context(), req.BookingID)
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
