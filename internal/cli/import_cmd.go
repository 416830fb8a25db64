package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import budget lines from a JSON file",
		Long: "Imports candidate rows from a JSON file into a budget. Rows are\n" +
			"grouped into sections by category; missing sections are created on\n" +
			"demand. The whole import is applied atomically.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}

			res, err := app.Import.ImportFile(ctx, documentID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d lines (%d new sections)\n",
				res.LinesImported, res.SectionsCreated)
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}
