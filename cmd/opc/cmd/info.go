package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/units"
)

var infoCmd = &cobra.Command{
	Use:   "info <plan.json>",
	Short: "Summarize a plan document",
	Long: `Print the floors of a plan with entity counts, total wall run and
enclosed room area.

Examples:
  opc info house.json
  opc info -v house.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Plan:   %s\n", doc.Title)
	fmt.Printf("Sheet:  %s at %s\n", doc.Sheet.Paper, doc.Sheet.Scale)
	fmt.Printf("Floors: %d (active: %d)\n", len(doc.Floors), doc.Active+1)

	for i := range doc.Floors {
		f := &doc.Floors[i]
		fmt.Printf("\nFloor %d: %s\n", i+1, f.Name)
		fmt.Printf("  Walls:      %d\n", len(f.Walls))
		fmt.Printf("  Doors:      %d\n", len(f.Doors))
		fmt.Printf("  Windows:    %d\n", len(f.Windows))
		fmt.Printf("  Rooms:      %d\n", len(f.Rooms))
		fmt.Printf("  Roofs:      %d\n", len(f.Roofs))
		fmt.Printf("  Dimensions: %d\n", len(f.Dimensions))
		if verbose {
			fmt.Printf("  Lines:      %d\n", len(f.Lines))
			fmt.Printf("  Polylines:  %d\n", len(f.Polylines))
			fmt.Printf("  Hatches:    %d\n", len(f.Hatches))
			fmt.Printf("  Texts:      %d\n", len(f.Texts))
			fmt.Printf("  Furniture:  %d\n", len(f.Furniture))
			fmt.Printf("  Fillets:    %d\n", len(f.Fillets))
		}

		var run float64
		for _, w := range f.Walls {
			run += w.Length()
		}
		fmt.Printf("  Wall run:   %s\n", units.Format(run))

		var area float64
		for _, r := range f.Rooms {
			area += r.Area()
		}
		fmt.Printf("  Room area:  %.0f sq ft\n", area/(units.PerFoot*units.PerFoot))

		if !f.IsEmpty() {
			b := f.Bounds()
			fmt.Printf("  Extents:    %s x %s\n", units.Format(b.Width()), units.Format(b.Height()))
		}
	}
	return nil
}
