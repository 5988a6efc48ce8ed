package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "armviz",
	Short: "armviz visualizes a DH-parameterized robot arm",
	Long: `armviz loads a robot description (YAML DH table plus optional link
meshes) and renders an interactive 3D view of the arm. It can also solve
forward and inverse kinematics from the command line and drive a physical
arm controller over a serial port.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// parseJointVector parses a comma-separated joint vector like "0,0.5,-0.3".
//
// Parameters:
//   - s: the comma-separated values
//
// Returns:
//   - []float64: the parsed vector
//   - error: error if a value fails to parse
func parseJointVector(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("bad joint value %q at position %d: %w", field, i, err)
		}
		values[i] = v
	}
	return values, nil
}
