package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/temple-api/internal/domain/entity"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/money"
	"github.com/sangkips/temple-api/pkg/printer"
	"github.com/sangkips/temple-api/pkg/words"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	bookings    *BookingService
	branding    *BrandingService
	settings    PrintSettings
	printerType string
	charWidth   int
	logger      *zap.Logger
	now         func() time.Time
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	bookings *BookingService,
	branding *BrandingService,
	settings PrintSettings,
	printerType string,
	charWidth int,
	logger *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		bookings:    bookings,
		branding:    branding,
		settings:    settings,
		printerType: printerType,
		charWidth:   charWidth,
		logger:      logger,
		now:         time.Now,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	CharWidth  int    `json:"char_width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		CharWidth:  s.charWidth,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	branding := s.branding.LastKnown(ctx).Branding
	amount := money.FromCents(1000)
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			TempleName: branding.Name,
			Address:    branding.Address.Lines(),
			Phone:      branding.Phone,
		},
		Title:     "PRINTER TEST",
		ReceiptNo: "TEST-001",
		Date:      printedAt(s.now()),
		Lines: []entity.ReceiptLine{
			{Label: "Devotee", Value: "Test Devotee"},
			{Label: "Payment", Value: "Cash"},
		},
		Total:         s.currency(amount),
		AmountInWords: words.AmountInWords(amount, s.settings.CurrencyName, s.settings.Numbering),
	}

	data := FormatReceipt(receipt, s.charWidth)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintBookingReceipt fetches a booking and prints its receipt.
func (s *PrinterService) PrintBookingReceipt(ctx context.Context, bookingID string) (*entity.Receipt, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	branding := s.branding.Current(ctx).Branding

	receipt := BookingThermalReceipt(booking, branding, s.settings)
	receipt.Footer = "Printed " + printedAt(s.now())

	data := FormatReceipt(receipt, s.charWidth)
	if err := s.printer.Print(data); err != nil {
		s.logger.Error("printer error",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// BookingThermalReceipt composes the thermal receipt for a booking.
func BookingThermalReceipt(booking *entity.BookingRecord, branding entity.TempleBranding, settings PrintSettings) *entity.Receipt {
	lines := []entity.ReceiptLine{{Label: "Devotee", Value: dash(booking.CustomerName)}}
	if v := strings.TrimSpace(booking.CustomerNameSecondary); v != "" {
		lines = append(lines, entity.ReceiptLine{Label: "", Value: v})
	}
	if v := strings.TrimSpace(booking.NationalID); v != "" {
		lines = append(lines, entity.ReceiptLine{Label: "IC/Passport", Value: v})
	}
	if v := strings.TrimSpace(booking.OfferingTypeName); v != "" {
		lines = append(lines, entity.ReceiptLine{Label: "Offering", Value: v})
	}
	lines = append(lines, entity.ReceiptLine{Label: "Payment", Value: dash(paymentLabel(booking.PaymentMethod))})

	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			TempleName: branding.Name,
			Address:    branding.Address.Lines(),
			Phone:      branding.Phone,
		},
		Title:         "Buddha Lamp Offering",
		ReceiptNo:     booking.ReceiptNumber(),
		Date:          format.PrintDate(booking.BookingDate),
		Lines:         lines,
		Total:         currencyWith(settings.CurrencySymbol, booking.Amount),
		AmountInWords: words.AmountInWords(booking.Amount, settings.CurrencyName, settings.Numbering),
	}
}

func (s *PrinterService) currency(a money.Amount) string {
	return currencyWith(s.settings.CurrencySymbol, a)
}

func currencyWith(symbol string, a money.Amount) string {
	if symbol == "" {
		return format.Currency(a)
	}
	return symbol + " " + format.Currency(a)
}

func printedAt(t time.Time) string {
	return format.PrintDate(t) + " " + t.Format("15:04")
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.TempleName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	for _, line := range r.Header.Address {
		doc.Text(line)
	}
	if r.Header.Phone != "" {
		doc.TextF("Tel: %s", r.Header.Phone)
	}

	doc.Separator('-').
		SetBold(true).
		Text(r.Title).
		SetBold(false)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.ReceiptNo).
		KeyValue("Date:", r.Date)

	for _, l := range r.Lines {
		if l.Label == "" {
			doc.Text(l.Value)
			continue
		}
		doc.KeyValue(l.Label+":", l.Value)
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL:", r.Total).
		SetBold(false)

	if r.AmountInWords != "" {
		doc.Text(r.AmountInWords)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("May the light bring you peace").
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	}
	doc.SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
