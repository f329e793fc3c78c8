package service

import (
	"context"
	"sort"
	"strings"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/pkg/apperror"
	"github.com/sangkips/temple-api/pkg/document"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/pagination"
	"github.com/sangkips/temple-api/pkg/words"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BookingListPath is the admin view a page returns to after a booking
// flow ends or the booking cannot be found.
const BookingListPath = "/bookings/buddha-lamp"

// BookingService handles Buddha Lamp booking flows
type BookingService struct {
	bookingRepo repository.BookingRepository
	branding    *BrandingService
	prints      *PrintService
	settings    PrintSettings
	logger      *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	branding *BrandingService,
	prints *PrintService,
	settings PrintSettings,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		branding:    branding,
		prints:      prints,
		settings:    settings,
		logger:      logger,
	}
}

func bookingNotFound() *apperror.AppError {
	return apperror.NewNotFoundRedirect("Booking", BookingListPath)
}

// ListBookingsInput represents the list bookings input
type ListBookingsInput struct {
	Filter     entity.BookingFilter
	Pagination *pagination.PaginationParams
}

// ListBookings fetches every booking, filters in memory and returns one
// page, newest booking date first.
func (s *BookingService) ListBookings(ctx context.Context, input *ListBookingsInput) (*pagination.PaginatedResult[entity.BookingRecord], error) {
	all, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.BookingRecord, 0, len(all))
	for i := range all {
		if input.Filter.Matches(&all[i]) {
			matched = append(matched, all[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return bookingDay(matched[i]) > bookingDay(matched[j])
	})

	return pagination.Paginate(matched, input.Pagination), nil
}

func bookingDay(b entity.BookingRecord) string {
	t, ok := format.ParseDate(b.BookingDate)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// GetBooking returns one booking
func (s *BookingService) GetBooking(ctx context.Context, id string) (*entity.BookingRecord, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, bookingNotFound()
	}
	return booking, nil
}

// CreateBooking creates a new booking
func (s *BookingService) CreateBooking(ctx context.Context, form entity.BookingForm) (*entity.BookingRecord, error) {
	if form.Status == "" {
		form.Status = enum.BookingStatusPending
	}
	if form.Amount.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount must not be negative"},
		})
	}
	booking, err := s.bookingRepo.Create(ctx, form)
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
	)
	return booking, nil
}

// UpdateBookingResult is a saved edit and the fields it changed
type UpdateBookingResult struct {
	Booking *entity.BookingRecord `json:"booking"`
	Changes []entity.FieldChange  `json:"changes"`
}

// UpdateBooking saves form over the current record. The current record is
// the snapshot the edit is compared against; an edit that changes nothing
// is rejected with ErrNoChanges. Cancelled bookings cannot be edited.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, form entity.BookingForm) (*UpdateBookingResult, error) {
	current, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.IsFinal() {
		return nil, apperror.NewConflictError("Cancelled bookings cannot be modified")
	}
	if form.Amount.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount must not be negative"},
		})
	}

	changes := entity.Changes(current, form)
	if len(changes) == 0 {
		return nil, apperror.ErrNoChanges
	}

	if form.Status == "" {
		form.Status = current.Status
	}
	if form.OfferingTypeID.IsZero() {
		form.OfferingTypeID = current.OfferingTypeID
	}
	updated, err := s.bookingRepo.Update(ctx, id, form)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, bookingNotFound()
	}

	fields := make([]string, len(changes))
	for i, c := range changes {
		fields[i] = c.Field
	}
	s.logger.Info("booking updated",
		zap.String("booking_id", id),
		zap.Strings("fields", fields),
	)
	return &UpdateBookingResult{Booking: updated, Changes: changes}, nil
}

// CancelBooking cancels a booking. Cancelling twice is a conflict.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*entity.BookingRecord, error) {
	current, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.IsFinal() {
		return nil, apperror.NewConflictError("Booking is already cancelled")
	}

	cancelled, err := s.bookingRepo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		return nil, bookingNotFound()
	}
	s.logger.Info("booking cancelled", zap.String("booking_id", id))
	return cancelled, nil
}

// loadForPrint fetches the booking and the branding concurrently
func (s *BookingService) loadForPrint(ctx context.Context, id string) (*entity.BookingRecord, entity.TempleBranding, error) {
	var (
		booking  *entity.BookingRecord
		branding EffectiveBranding
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.GetBooking(gctx, id)
		booking = b
		return err
	})
	g.Go(func() error {
		branding = s.branding.Current(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, entity.TempleBranding{}, err
	}
	return booking, branding.Branding, nil
}

// Receipt renders the printable receipt for a booking
func (s *BookingService) Receipt(ctx context.Context, id string, showControls bool) (*RenderedDocument, error) {
	booking, branding, err := s.loadForPrint(ctx, id)
	if err != nil {
		return nil, err
	}
	return RenderBookingReceipt(booking, branding, s.settings, showControls)
}

// PrintReceipt renders the receipt and opens it in a print window
func (s *BookingService) PrintReceipt(ctx context.Context, id string) (*PrintResult, error) {
	doc, err := s.Receipt(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return s.prints.Launch(ctx, enum.PrintKindBookingReceipt, id, doc, BookingListPath)
}

// RenderBookingReceipt builds the receipt document for booking
func RenderBookingReceipt(booking *entity.BookingRecord, branding entity.TempleBranding, settings PrintSettings, showControls bool) (*RenderedDocument, error) {
	devotee := []document.Field{
		{Label: "Name", Value: dash(booking.CustomerName)},
	}
	if v := strings.TrimSpace(booking.CustomerNameSecondary); v != "" {
		devotee = append(devotee, document.Field{Label: "Name (Chinese)", Value: v})
	}
	devotee = append(devotee,
		document.Field{Label: "IC / Passport", Value: dash(booking.NationalID)},
		document.Field{Label: "Phone", Value: dash(booking.Phone)},
		document.Field{Label: "Email", Value: dash(booking.Email)},
	)

	description := "Buddha Lamp Offering"
	if n := strings.TrimSpace(booking.OfferingTypeName); n != "" {
		description = n
	}

	body := document.Body{
		Meta: []document.Field{
			{Label: "Receipt No", Value: booking.ReceiptNumber()},
			{Label: "Date", Value: format.PrintDate(booking.BookingDate)},
		},
		Sections: []document.Section{
			{Title: "Devotee", Fields: devotee},
			{Title: "Payment", Fields: []document.Field{
				{Label: "Payment Method", Value: dash(paymentLabel(booking.PaymentMethod))},
				{Label: "Status", Value: booking.Status.Label()},
			}},
		},
		Rows: []document.Row{
			{Cells: []string{description, format.Currency(booking.Amount)}},
		},
		AmountInWords: words.AmountInWords(booking.Amount, settings.CurrencyName, settings.Numbering),
	}
	if n := strings.TrimSpace(booking.Notes); n != "" {
		body.Notes = []string{n}
	}

	html, err := document.Build(document.Config{
		Title:          "Buddha Lamp Offering Receipt",
		Columns:        []document.Column{{Label: "Description"}, {Label: "Amount", Align: document.AlignRight}},
		CurrencySymbol: settings.CurrencySymbol,
		ShowControls:   showControls,
	}, Letterhead(branding), body, []document.Total{
		{Label: "Total", Value: format.Currency(booking.Amount), Emphasis: true},
	})
	if err != nil {
		return nil, err
	}
	return newRenderedDocument(html), nil
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return strings.TrimSpace(s)
}

func paymentLabel(method string) string {
	m := strings.TrimSpace(method)
	if m == "" {
		return ""
	}
	return format.Title(strings.ToLower(m))
}
