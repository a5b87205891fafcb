package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected reports whether the printer is reachable right now.
	IsConnected() bool
}

// Config selects and addresses the receipt printer
type Config struct {
	Type    string // usb, network or none
	USBPath string // e.g. /dev/usb/lp0
	Address string // e.g. 192.168.1.100:9100
	Timeout time.Duration
}

// New creates the Printer described by cfg
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return &networkPrinter{address: cfg.Address, timeout: timeout}, nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Type)
	}
}

// usbPrinter writes to a device file, opening it per job
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error {
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP port (usually 9100) per job
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout/2)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for shops without hardware.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(data []byte) error { return nil }
func (nullPrinter) Close() error            { return nil }
func (nullPrinter) IsConnected() bool       { return false }
