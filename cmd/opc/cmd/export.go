package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <plan.json>",
	Short: "Export a plan as s-expressions",
	Long: `Write the document in the s-expression interchange form, suitable
for diffing or for inspection with 'opc inspect'.

Examples:
  opc export house.json
  opc export house.json -o house.sexp`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := document.WriteSexp(w, doc); err != nil {
		return err
	}
	if verbose && exportOut != "" {
		fmt.Printf("Wrote %s\n", exportOut)
	}
	return nil
}
