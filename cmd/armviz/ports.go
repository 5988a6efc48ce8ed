package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robokit/armviz/serial"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List the system's serial ports",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPorts(); err != nil {
			fmt.Printf("ports failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts() error {
	ports, err := serial.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}

	for _, p := range ports {
		tag := ""
		if p.USB {
			tag = " [usb]"
		}
		if p.Description != "" {
			fmt.Printf("%s%s  %s\n", p.Name, tag, p.Description)
		} else {
			fmt.Printf("%s%s\n", p.Name, tag)
		}
	}
	return nil
}
