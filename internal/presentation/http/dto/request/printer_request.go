package request

// PrintReceiptRequest is the request body for printing a booking receipt.
type PrintReceiptRequest struct {
	BookingID string `json:"booking_id" binding:"required,max=64"`
}
