package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSearchCmd(app *App) *cobra.Command {
	var doc, apply string

	cmd := &cobra.Command{
		Use:   "search TEXT...",
		Short: "Search indexed costs from previously saved budgets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			text := strings.Join(args, " ")

			recs, err := app.Lookup.Search(ctx, text)
			if err != nil {
				return err
			}

			if apply == "" {
				fmt.Println(formatter.FormatCostRecords(recs))
				return nil
			}

			// --apply copies the best match onto a line.
			if len(recs) == 0 {
				return fmt.Errorf("no cost record matches %q", text)
			}
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			loaded, err := app.Documents.Load(ctx, documentID)
			if err != nil {
				return err
			}
			lineID, err := resolveLineID(loaded, apply)
			if err != nil {
				return err
			}
			if err := app.Lookup.ApplyToLine(ctx, documentID, lineID, recs[0]); err != nil {
				return err
			}
			fmt.Printf("Applied %q to line [%s]\n", recs[0].Description, lineID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID (required with --apply)")
	cmd.Flags().StringVar(&apply, "apply", "", "Line to copy the best match onto")

	return cmd
}
