package printer

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"go.bug.st/serial"
)

// ErrNotConnected is returned when printing through a connection that has
// no printer attached.
var ErrNotConnected = errors.New("printer: not connected")

// Printer is the interface for sending raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer connection is active.
	IsConnected() bool
}

// Printer types accepted by NewPrinterFromConfig.
const (
	TypeSerial  = "serial"
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeNone    = "none"
)

// Config selects and addresses a printer.
type Config struct {
	Type       string `json:"type"`
	SerialPort string `json:"serial_port,omitempty"`
	BaudRate   int    `json:"baud_rate,omitempty"`
	USBPath    string `json:"usb_path,omitempty"`
	Address    string `json:"address,omitempty"`
}

// --- Serial Printer (Bluetooth SPP via rfcomm, or USB-serial adapters) ---

type serialPrinter struct {
	port string
	mode *serial.Mode
}

// NewSerialPrinter creates a printer that writes to a serial port, e.g.
// /dev/rfcomm0 for a bound Bluetooth printer or COM5 on Windows.
func NewSerialPrinter(port string, baudRate int) Printer {
	if baudRate <= 0 {
		baudRate = 9600
	}
	return &serialPrinter{
		port: port,
		mode: &serial.Mode{BaudRate: baudRate},
	}
}

func (p *serialPrinter) Print(data []byte) error {
	port, err := serial.Open(p.port, p.mode)
	if err != nil {
		return fmt.Errorf("printer: failed to open serial port %s: %w", p.port, err)
	}
	defer port.Close()

	if _, err := port.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to serial port %s: %w", p.port, err)
	}
	if err := port.Drain(); err != nil {
		return fmt.Errorf("printer: failed to drain serial port %s: %w", p.port, err)
	}
	return nil
}

func (p *serialPrinter) Close() error {
	return nil // port is opened per print job
}

// IsConnected checks the device node first (/dev/rfcomm0), then the ports
// the OS reports, which is the only way to see COM ports on Windows.
func (p *serialPrinter) IsConnected() bool {
	if _, err := os.Stat(p.port); err == nil {
		return true
	}
	ports, err := serialPorts()
	if err != nil {
		return false
	}
	for _, name := range ports {
		if strings.EqualFold(name, p.port) {
			return true
		}
	}
	return false
}

// --- USB Printer (writes to device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	_, err = f.Write(data)
	if err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error {
	return nil // USB printer opens/closes per print job
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network Printer (dials TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		timeout: 5 * time.Second,
	}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	_, err = conn.Write(data)
	if err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // Network printer opens/closes per print job
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null Printer (used when no printer is configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a printer that rejects every job with
// ErrNotConnected.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error {
	return ErrNotConnected
}

func (p *nullPrinter) Close() error {
	return nil
}

func (p *nullPrinter) IsConnected() bool {
	return false
}

// NewPrinterFromConfig creates the appropriate Printer based on cfg.Type:
// "serial", "usb", "network", or "none".
func NewPrinterFromConfig(cfg Config) (Printer, error) {
	switch cfg.Type {
	case TypeSerial:
		if cfg.SerialPort == "" {
			return nil, fmt.Errorf("printer: serial port is required for serial printer type")
		}
		return NewSerialPrinter(cfg.SerialPort, cfg.BaudRate), nil
	case TypeUSB:
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(cfg.USBPath), nil
	case TypeNetwork:
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(cfg.Address), nil
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use serial, usb, network, or none)", cfg.Type)
	}
}

// ListSerialPorts returns the serial ports currently visible to the host.
func ListSerialPorts() ([]string, error) {
	return serialPorts()
}

var serialPorts = serial.GetPortsList
