package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/request"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
	"github.com/sangkips/temple-api/pkg/pagination"
)

// BookingHandler handles Buddha Lamp booking requests
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List returns a filtered page of bookings
func (h *BookingHandler) List(c *gin.Context) {
	var req request.BookingFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), &service.ListBookingsInput{
		Filter:     req.ToFilter(),
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bookings retrieved successfully", result)
}

// Create creates a booking
func (h *BookingHandler) Create(c *gin.Context) {
	var req request.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req.ToForm())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

// Get returns one booking
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", response.NewBookingDetail(booking))
}

// Update saves an edited booking
func (h *BookingHandler) Update(c *gin.Context) {
	var req request.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.bookingService.UpdateBooking(c.Request.Context(), c.Param("id"), req.ToForm())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking updated successfully", result)
}

// Cancel cancels a booking
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking cancelled successfully", booking)
}

// Receipt returns the printable receipt document
func (h *BookingHandler) Receipt(c *gin.Context) {
	doc, err := h.bookingService.Receipt(c.Request.Context(), c.Param("id"), showControls(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Document(c, doc.HTML, doc.Digest)
}

// Print opens the receipt in a print window
func (h *BookingHandler) Print(c *gin.Context) {
	result, err := h.bookingService.PrintReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt ready to print", result)
}
