package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	gioapp "gioui.org/app"
	"github.com/spf13/cobra"

	"github.com/OpenPlanLab/OpenPlanCAD/internal/ui"
	"github.com/OpenPlanLab/OpenPlanCAD/pkg/document"
)

var editAutosave bool

var editCmd = &cobra.Command{
	Use:   "edit [plan.json]",
	Short: "Open the interactive plan editor",
	Long: `Open the Gio plan editor. With a path the document is loaded from
disk; a missing file starts a new plan that Ctrl+S writes there. Without
a path the editor starts on an unsaved scratch plan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editAutosave, "autosave", false,
		"write the document back after every change")
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	doc := document.New("Untitled Plan")
	if path != "" {
		loaded, err := document.Load(path)
		switch {
		case err == nil:
			doc = *loaded
		case errors.Is(err, os.ErrNotExist):
			if verbose {
				fmt.Printf("Starting a new plan at %s\n", path)
			}
		default:
			return err
		}
	}

	store := document.NewStore(doc)
	if editAutosave && path != "" {
		store.SetAutosave(path)
	}

	go func() {
		w := new(gioapp.Window)
		editor := ui.New(w, store, path)
		if err := editor.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	gioapp.Main()
	return nil
}
