package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avandyck/costline/internal/engine"
	"github.com/spf13/cobra"
)

func newLineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Manage budget lines",
	}

	cmd.AddCommand(
		newLineAddCmd(app),
		newLineSetCmd(app),
		newLineRemoveCmd(app),
		newLineDuplicateCmd(app),
		newLineMoveCmd(app),
		newLineReparentCmd(app),
		newLinePasteCmd(app),
	)

	return cmd
}

func newLineAddCmd(app *App) *cobra.Command {
	var doc, section, under string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a line to a section, optionally under a parent",
		Long: "Adds a line. With --section the line is created with defaults;\n" +
			"without it an interactive form collects the section and fields.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}

			if section == "" {
				return addLineWizard(ctx, app, documentID)
			}

			sectionID, err := resolveSectionID(ctx, app, documentID, section)
			if err != nil {
				return err
			}

			var parentID *string
			if under != "" {
				loaded, err := app.Documents.Load(ctx, documentID)
				if err != nil {
					return err
				}
				pid, err := resolveLineID(loaded, under)
				if err != nil {
					return err
				}
				parentID = &pid
			}

			l, err := app.Lines.Add(ctx, documentID, sectionID, parentID)
			if err != nil {
				return err
			}
			fmt.Printf("Added line [%s]\n", l.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	cmd.Flags().StringVar(&section, "section", "", "Section name or ID")
	cmd.Flags().StringVar(&under, "under", "", "Parent line ID or description")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

// addLineWizard collects a new line's fields through a form and applies them.
func addLineWizard(ctx context.Context, app *App, documentID string) error {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return fmt.Errorf("--section is required outside an interactive terminal")
	}

	sections, err := app.Sections.ListByDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		return fmt.Errorf("the budget has no sections yet")
	}

	sectionID := sections[0].ID
	var description, quantity, frequency, unitCost string
	if err := newLineForm(sections, &sectionID, &description, &quantity, &frequency, &unitCost).Run(); err != nil {
		return err
	}

	l, err := app.Lines.Add(ctx, documentID, sectionID, nil)
	if err != nil {
		return err
	}
	for field, value := range map[engine.Field]string{
		engine.FieldDescription: strings.TrimSpace(description),
		engine.FieldQuantity:    strings.TrimSpace(quantity),
		engine.FieldFrequency:   strings.TrimSpace(frequency),
		engine.FieldUnitCost:    strings.TrimSpace(unitCost),
	} {
		if value == "" {
			continue
		}
		if err := app.Lines.SetField(ctx, documentID, l.ID, field, value); err != nil {
			return err
		}
	}

	fmt.Printf("Added line [%s]\n", l.ID[:8])
	return nil
}

func newLineSetCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "set LINE FIELD VALUE",
		Short: "Set a line field; numeric values go through the amount grammar",
		Long: "Set a line field. FIELD is one of description, category, note, unit,\n" +
			"quantity, frequency or unit_cost. Numeric values accept arithmetic\n" +
			"(\"3*4\"), percent (\"10%\") and both decimal conventions (\"1.234,56\").",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			loaded, err := app.Documents.Load(ctx, documentID)
			if err != nil {
				return err
			}
			lineID, err := resolveLineID(loaded, args[0])
			if err != nil {
				return err
			}

			field := engine.Field(strings.ToLower(args[1]))
			if err := app.Lines.SetField(ctx, documentID, lineID, field, args[2]); err != nil {
				return err
			}
			fmt.Printf("Set %s on line [%s]\n", field, lineID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newLineRemoveCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "remove LINE",
		Short: "Delete a line and its sub-lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			loaded, err := app.Documents.Load(ctx, documentID)
			if err != nil {
				return err
			}
			lineID, err := resolveLineID(loaded, args[0])
			if err != nil {
				return err
			}
			if err := app.Lines.Remove(ctx, documentID, lineID); err != nil {
				return err
			}
			fmt.Println("Deleted line")
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newLineDuplicateCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "duplicate LINE",
		Short: "Duplicate a line and its sub-lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			loaded, err := app.Documents.Load(ctx, documentID)
			if err != nil {
				return err
			}
			lineID, err := resolveLineID(loaded, args[0])
			if err != nil {
				return err
			}
			if err := app.Lines.Duplicate(ctx, documentID, lineID); err != nil {
				return err
			}
			fmt.Println("Duplicated line")
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newLineMoveCmd(app *App) *cobra.Command {
	var doc, section string

	cmd := &cobra.Command{
		Use:   "move LINE",
		Short: "Move a line and its sub-lines to another section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			sectionID, err := resolveSectionID(ctx, app, documentID, section)
			if err != nil {
				return err
			}
			loaded, err := app.Documents.Load(ctx, documentID)
			if err != nil {
				return err
			}
			lineID, err := resolveLineID(loaded, args[0])
			if err != nil {
				return err
			}
			if err := app.Lines.MoveToSection(ctx, documentID, lineID, sectionID); err != nil {
				return err
			}
			fmt.Println("Moved line")
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	cmd.Flags().StringVar(&section, "section", "", "Target section name or ID")
	_ = cmd.MarkFlagRequired("doc")
	_ = cmd.MarkFlagRequired("section")

	return cmd
}

func newLineReparentCmd(app *App) *cobra.Command {
	var doc, under string

	cmd := &cobra.Command{
		Use:   "reparent LINE",
		Short: "Move a line under a new parent, or to the top level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			loaded, err := app.Documents.Load(ctx, documentID)
			if err != nil {
				return err
			}
			lineID, err := resolveLineID(loaded, args[0])
			if err != nil {
				return err
			}

			var parentID *string
			if under != "" {
				pid, err := resolveLineID(loaded, under)
				if err != nil {
					return err
				}
				parentID = &pid
			}

			if err := app.Lines.Reparent(ctx, documentID, lineID, parentID); err != nil {
				return err
			}
			fmt.Println("Reparented line")
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	cmd.Flags().StringVar(&under, "under", "", "New parent line; blank for top level")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newLinePasteCmd(app *App) *cobra.Command {
	var doc, field string

	cmd := &cobra.Command{
		Use:   "paste LINE",
		Short: "Paste a column of values from stdin, starting at a line",
		Long: "Reads newline-separated values from stdin and writes them into\n" +
			"consecutive lines starting at LINE. Rows with tabs keep only their\n" +
			"first column. Unparsable numeric values leave the line unchanged.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			loaded, err := app.Documents.Load(ctx, documentID)
			if err != nil {
				return err
			}
			lineID, err := resolveLineID(loaded, args[0])
			if err != nil {
				return err
			}

			text, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			f := engine.Field(strings.ToLower(field))
			if err := app.Lines.Paste(ctx, documentID, lineID, f, string(text)); err != nil {
				return err
			}
			fmt.Println("Pasted column")
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	cmd.Flags().StringVar(&field, "field", string(engine.FieldUnitCost), "Target field")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}
