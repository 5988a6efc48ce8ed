package serial

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// link is the implementation of the Link interface.
type link struct {
	mu sync.Mutex

	portName    string
	baudRate    int
	readTimeout time.Duration

	port   serial.Port
	reader *bufio.Reader
}

// Link is a serial connection to the arm controller. Joint vectors are sent
// as line commands; feedback lines the controller prints are read without
// blocking. Safe for concurrent use.
type Link interface {
	// PortName returns the configured or auto-detected port, or "" before a
	// successful auto-detecting Connect.
	//
	// Returns:
	//   - string: the port name
	PortName() string

	// Connected reports whether the port is open.
	//
	// Returns:
	//   - bool: true if the port is open
	Connected() bool

	// Connect opens the serial port. With no configured port name it
	// auto-detects a USB serial adapter first. Controllers that reset on
	// connect get a settle delay before the input buffer is flushed.
	//
	// Returns:
	//   - error: error if no port is found or the port cannot be opened
	Connect() error

	// Close closes the serial port. Closing an unopened link is a no-op.
	//
	// Returns:
	//   - error: error from the underlying port close
	Close() error

	// SendRadians sends a joint vector in radians.
	//
	// Parameters:
	//   - values: joint angles in radians, base to tip
	//
	// Returns:
	//   - error: error if the link is not connected or the write fails
	SendRadians(values []float64) error

	// SendDegrees sends a joint vector in degrees.
	//
	// Parameters:
	//   - values: joint angles in degrees, base to tip
	//
	// Returns:
	//   - error: error if the link is not connected or the write fails
	SendDegrees(values []float64) error

	// ReadFeedback reads one pending feedback line without blocking beyond
	// the configured read timeout.
	//
	// Returns:
	//   - string: the feedback line, trimmed
	//   - bool: true if a line was available
	//   - error: error if the link is not connected or the read fails
	ReadFeedback() (string, bool, error)
}

var _ Link = &link{}

// NewLink creates a new Link with the provided options applied. The link is
// unconnected until Connect is called.
//
// Parameters:
//   - options: functional options (port name, baud rate, read timeout)
//
// Returns:
//   - Link: the configured link
func NewLink(options ...LinkBuilderOption) Link {
	l := &link{
		baudRate:    115200,
		readTimeout: 50 * time.Millisecond,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// ListPorts enumerates the system's serial ports.
//
// Returns:
//   - []PortInfo: one entry per port
//   - error: error if enumeration fails
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Name:        d.Name,
			Description: d.Product,
			USB:         d.IsUSB,
		})
	}
	return ports, nil
}

// PortInfo describes one enumerated serial port.
type PortInfo struct {
	// Name is the device path (COM3, /dev/ttyUSB0).
	Name string

	// Description is the product string when the OS exposes one.
	Description string

	// USB is true for USB serial adapters.
	USB bool
}

// autodetectPort picks the first port that looks like a hobby arm
// controller: a known USB-serial bridge by product string, or failing that
// any USB serial port.
func autodetectPort() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}

	for _, p := range ports {
		desc := strings.ToLower(p.Description)
		if strings.Contains(desc, "arduino") || strings.Contains(desc, "ch340") {
			return p.Name, nil
		}
	}
	for _, p := range ports {
		if p.USB {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("no usb serial port found among %d ports", len(ports))
}

func (l *link) PortName() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.portName
}

func (l *link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port != nil
}

func (l *link) Connect() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port != nil {
		return fmt.Errorf("already connected to %s", l.portName)
	}

	if l.portName == "" {
		name, err := autodetectPort()
		if err != nil {
			return err
		}
		l.portName = name
		slog.Info("auto-detected arm controller", "port", name)
	}

	port, err := serial.Open(l.portName, &serial.Mode{BaudRate: l.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", l.portName, err)
	}

	// Most hobby controllers reset when the port opens; give the firmware
	// time to boot, then drop its banner output.
	time.Sleep(2 * time.Second)
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return fmt.Errorf("failed to flush %s: %w", l.portName, err)
	}
	if err := port.SetReadTimeout(l.readTimeout); err != nil {
		port.Close()
		return fmt.Errorf("failed to set read timeout on %s: %w", l.portName, err)
	}

	l.port = port
	l.reader = bufio.NewReader(port)
	slog.Info("connected to arm controller", "port", l.portName, "baud", l.baudRate)
	return nil
}

func (l *link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	l.reader = nil
	return err
}

func (l *link) SendRadians(values []float64) error {
	return l.send(EncodeRadians(values))
}

func (l *link) SendDegrees(values []float64) error {
	return l.send(EncodeDegrees(values))
}

func (l *link) send(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port == nil {
		return fmt.Errorf("not connected")
	}
	if _, err := l.port.Write([]byte(line)); err != nil {
		return fmt.Errorf("failed to write to %s: %w", l.portName, err)
	}
	return nil
}

func (l *link) ReadFeedback() (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port == nil {
		return "", false, fmt.Errorf("not connected")
	}

	line, _ := l.reader.ReadString('\n')
	if len(line) == 0 {
		// Timed out with nothing buffered.
		return "", false, nil
	}
	// A partial line at timeout is still reported; the controller only
	// prints newline-terminated messages so this is rare.
	return strings.TrimSpace(line), true, nil
}
