package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID",
		Short: "Open a budget in the interactive editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("the editor requires an interactive terminal")
			}

			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, args[0])
			if err != nil {
				return err
			}

			p := tea.NewProgram(newEditorModel(app, documentID), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
