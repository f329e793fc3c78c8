package printer

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/sangkips/temple-api/pkg/refscope"
)

// Printer sends raw ESC/POS data to a thermal receipt printer.
type Printer interface {
	// Print sends one job to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected reports whether the printer is reachable.
	IsConnected() bool
}

// --- USB printer (writes to a device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
	mu   sync.Mutex
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network printer (raw TCP, e.g. 192.168.1.100:9100) ---

// Dialer opens a connection to a network printer.
type Dialer func(address string, timeout time.Duration) (net.Conn, error)

type networkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	dial         Dialer
	conn         *refscope.Scope[net.Conn]
	writeMu      sync.Mutex
}

// NewNetworkPrinter creates a TCP printer. Overlapping jobs share one
// connection, which is closed once the last job finishes.
func NewNetworkPrinter(address string) Printer {
	return newNetworkPrinter(address, func(address string, timeout time.Duration) (net.Conn, error) {
		return net.DialTimeout("tcp", address, timeout)
	})
}

func newNetworkPrinter(address string, dial Dialer) *networkPrinter {
	p := &networkPrinter{
		address:      address,
		dialTimeout:  5 * time.Second,
		writeTimeout: 10 * time.Second,
		dial:         dial,
	}
	p.conn = refscope.New(func() (net.Conn, error) {
		return p.dial(p.address, p.dialTimeout)
	})
	return p
}

func (p *networkPrinter) Print(data []byte) error {
	lease, err := p.conn.Acquire()
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer lease.Release()

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	conn := lease.Resource()
	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	if p.conn.Holders() > 0 {
		return true
	}
	conn, err := p.dial(p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null printer (no hardware configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer.
func NewNullPrinter() Printer { return nullPrinter{} }

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Close() error       { return nil }
func (nullPrinter) IsConnected() bool  { return false }

// NewPrinterFromConfig creates the Printer for printerType "usb", "network" or "none".
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}
