package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "opc",
	Short: "OpenPlanCAD - 2D floor plan drafting",
	Long: `OpenPlanCAD (opc) is a drafting tool for architectural floor plans:
walls, doors and windows, rooms, roofs, annotations, and the measuring
and editing tools that keep them consistent.

Examples:
  opc edit house.json                  # Open the plan editor
  opc info house.json                  # Summarize a plan document
  opc export house.json -o house.sexp  # Export to s-expression form
  opc inspect house.sexp               # Structural dump of an export
  opc tablet list                      # Enumerate USB drafting tablets`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
