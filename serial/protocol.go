// Package serial links the visualizer to an arm controller over a serial
// port. Joint vectors go out as single-line ASCII commands; anything the
// controller prints back is surfaced as feedback lines.
package serial

import (
	"fmt"
	"strconv"
	"strings"
)

// Command prefixes on the wire. A command line is the prefix, one
// comma-separated value per joint, and a trailing newline.
const (
	prefixRadians = "T"
	prefixDegrees = "D"
)

// Command is one decoded joint-vector line.
type Command struct {
	// Degrees is true for a D line, false for a T (radians) line.
	Degrees bool

	// Values are the joint values, base to tip.
	Values []float64
}

// EncodeRadians formats a joint vector as a radians command line.
// Values are printed with six decimal places, matching the controller
// firmware's parser.
//
// Parameters:
//   - values: joint angles in radians, base to tip
//
// Returns:
//   - string: the wire line including the trailing newline
func EncodeRadians(values []float64) string {
	return encode(prefixRadians, values, 6)
}

// EncodeDegrees formats a joint vector as a degrees command line with two
// decimal places.
//
// Parameters:
//   - values: joint angles in degrees, base to tip
//
// Returns:
//   - string: the wire line including the trailing newline
func EncodeDegrees(values []float64) string {
	return encode(prefixDegrees, values, 2)
}

func encode(prefix string, values []float64, precision int) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, v := range values {
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(v, 'f', precision, 64))
	}
	b.WriteByte('\n')
	return b.String()
}

// ParseCommand decodes a command line. The trailing newline and surrounding
// whitespace are ignored.
//
// Parameters:
//   - line: one wire line
//
// Returns:
//   - Command: the decoded unit tag and values
//   - error: error if the prefix is unknown, the line has no values, or a
//     value fails to parse
func ParseCommand(line string) (Command, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")

	var cmd Command
	switch fields[0] {
	case prefixRadians:
	case prefixDegrees:
		cmd.Degrees = true
	default:
		return Command{}, fmt.Errorf("unknown command prefix %q", fields[0])
	}

	if len(fields) < 2 {
		return Command{}, fmt.Errorf("command %q has no joint values", fields[0])
	}

	cmd.Values = make([]float64, len(fields)-1)
	for i, field := range fields[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Command{}, fmt.Errorf("bad joint value %q at position %d: %w", field, i, err)
		}
		cmd.Values[i] = v
	}
	return cmd, nil
}
