package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

type fakePrinter struct {
	jobs      [][]byte
	err       error
	connected bool
}

func (p *fakePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *fakePrinter) Close() error      { return nil }
func (p *fakePrinter) IsConnected() bool { return p.connected }

func newPrinterService(env *testEnv, p *fakePrinter, printerType string) *PrinterService {
	logger, _ := observedLogger()
	s := NewPrinterService(p, env.booking, env.branding, testPrintSettings, printerType, 32, logger)
	s.now = func() time.Time { return time.Date(2025, 3, 7, 9, 30, 0, 0, time.UTC) }
	return s
}

func TestPrintBookingReceiptThermal(t *testing.T) {
	env := newTestEnv(4, lampBooking())
	p := &fakePrinter{connected: true}
	s := newPrinterService(env, p, "network")

	receipt, err := s.PrintBookingReceipt(context.Background(), "101")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if receipt.Total != "RM 5,000.00" || receipt.ReceiptNo != "BL-2025-0101" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if receipt.Footer != "Printed 07/Mar/2025 09:30" {
		t.Fatalf("footer = %q", receipt.Footer)
	}
	if len(p.jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(p.jobs))
	}
	for _, want := range []string{"Buddha Light Temple", "RM 5,000.00", "Five Thousand Ringgit Only", "May the light bring you peace"} {
		if !bytes.Contains(p.jobs[0], []byte(want)) {
			t.Fatalf("printed data missing %q", want)
		}
	}
}

func TestPrintBookingReceiptPrinterFailure(t *testing.T) {
	env := newTestEnv(4, lampBooking())
	p := &fakePrinter{err: errors.New("paper out")}
	s := newPrinterService(env, p, "usb")

	receipt, err := s.PrintBookingReceipt(context.Background(), "101")
	if err == nil {
		t.Fatal("expected the printer error")
	}
	if receipt == nil || receipt.ReceiptNo != "BL-2025-0101" {
		t.Fatal("the composed receipt should still be returned")
	}
}

func TestPrintBookingReceiptMissingBooking(t *testing.T) {
	env := newTestEnv(4)
	s := newPrinterService(env, &fakePrinter{}, "none")

	if _, err := s.PrintBookingReceipt(context.Background(), "nope"); appCode(err) != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPrinterTestPageUsesLastKnownBranding(t *testing.T) {
	env := newTestEnv(4)
	env.settings.fail(errBackendDown)
	p := &fakePrinter{}
	s := newPrinterService(env, p, "none")

	receipt, err := s.TestPrint(context.Background())
	if err != nil {
		t.Fatalf("test print: %v", err)
	}
	if receipt.Header.TempleName != "Default Temple" || receipt.AmountInWords != "Ten Ringgit Only" {
		t.Fatalf("unexpected test receipt %+v", receipt)
	}
	if env.settings.calls != 0 {
		t.Fatal("a test page should not call the backend")
	}
}

func TestPrinterStatus(t *testing.T) {
	env := newTestEnv(4)

	status := newPrinterService(env, &fakePrinter{connected: true}, "network").GetStatus()
	if !status.Configured || !status.Connected || status.CharWidth != 32 {
		t.Fatalf("unexpected status %+v", status)
	}
	if newPrinterService(env, &fakePrinter{}, "none").GetStatus().Configured {
		t.Fatal("type none is not configured")
	}
}

func TestFormatReceiptSkipsEmptyLabels(t *testing.T) {
	receipt := BookingThermalReceipt(lampBooking(), templeBranding(), testPrintSettings)
	data := FormatReceipt(receipt, 32)

	if !bytes.Contains(data, []byte("陈美玲\n")) {
		t.Fatal("secondary name should print on its own line")
	}
	if !bytes.Contains(data, []byte("Offering:")) {
		t.Fatal("expected the offering line")
	}
}
