package serial

import "time"

// LinkBuilderOption is a functional option for configuring a Link via NewLink.
type LinkBuilderOption func(*link)

// WithPort is an option builder that sets the serial port name, skipping
// auto-detection.
//
// Parameters:
//   - name: the device path (COM3, /dev/ttyUSB0)
//
// Returns:
//   - LinkBuilderOption: a function that applies the port option to a link
func WithPort(name string) LinkBuilderOption {
	return func(l *link) {
		l.portName = name
	}
}

// WithBaudRate is an option builder that sets the connection speed.
// Defaults to 115200.
//
// Parameters:
//   - baud: the baud rate
//
// Returns:
//   - LinkBuilderOption: a function that applies the baud rate option to a link
func WithBaudRate(baud int) LinkBuilderOption {
	return func(l *link) {
		if baud > 0 {
			l.baudRate = baud
		}
	}
}

// WithReadTimeout is an option builder that sets how long ReadFeedback waits
// for data before reporting none available. Defaults to 50ms.
//
// Parameters:
//   - timeout: the per-read timeout
//
// Returns:
//   - LinkBuilderOption: a function that applies the read timeout option to a link
func WithReadTimeout(timeout time.Duration) LinkBuilderOption {
	return func(l *link) {
		if timeout > 0 {
			l.readTimeout = timeout
		}
	}
}
