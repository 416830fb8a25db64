package cli

import (
	"github.com/avandyck/costline/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Documents service.DocumentService
	Sections  service.SectionService
	Lines     service.LineService
	Lookup    service.LookupService
	Import    service.ImportService

	// IsInteractive reports whether stdin is a terminal; the editor refuses
	// to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "costline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "costline",
		Short: "Hierarchical budget editor for proposal budgets",
	}

	root.AddCommand(
		newDocCmd(app),
		newSectionCmd(app),
		newLineCmd(app),
		newImportCmd(app),
		newSearchCmd(app),
		newEditCmd(app),
	)

	return root
}
