package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/arthur-debert/dots/cmd/dots"
)

func main() {
	rootCmd := dots.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
}
