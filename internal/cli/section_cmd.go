package cli

import (
	"context"
	"fmt"

	"github.com/avandyck/costline/internal/cli/formatter"
	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/spf13/cobra"
)

func newSectionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage budget sections",
	}

	cmd.AddCommand(
		newSectionAddCmd(app),
		newSectionListCmd(app),
		newSectionRenameCmd(app),
		newSectionCapCmd(app),
		newSectionRemoveCmd(app),
	)

	return cmd
}

func newSectionAddCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a section to a budget",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("NAME is required outside an interactive terminal")
				}
				if err := newSectionForm(&name).Run(); err != nil {
					return err
				}
			}

			s, err := app.Sections.Create(ctx, documentID, name)
			if err != nil {
				return err
			}
			fmt.Printf("Added section %s [%s]\n", s.Name, s.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newSectionListCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a budget's sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			sections, err := app.Sections.ListByDocument(ctx, documentID)
			if err != nil {
				return err
			}

			if len(sections) == 0 {
				fmt.Println("No sections found.")
				return nil
			}
			for _, s := range sections {
				capNote := ""
				switch s.CapType {
				case domain.CapFixed:
					capNote = fmt.Sprintf("  cap %s", formatter.FormatMoney(s.CapValue))
				case domain.CapPercent:
					capNote = fmt.Sprintf("  cap %s%% of total", formatter.FormatAmount(s.CapValue))
				}
				fmt.Printf("%s  %s%s\n",
					formatter.Dim(s.ID[:8]), s.Name, formatter.Dim(capNote))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newSectionRenameCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "rename SECTION NAME",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			sectionID, err := resolveSectionID(ctx, app, documentID, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sections.GetByID(ctx, sectionID)
			if err != nil {
				return err
			}
			s.Name = args[1]
			if err := app.Sections.Update(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Renamed section to %s\n", s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newSectionCapCmd(app *App) *cobra.Command {
	var doc, capType, capValue string

	cmd := &cobra.Command{
		Use:   "cap SECTION",
		Short: "Set or clear a section's spending cap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			sectionID, err := resolveSectionID(ctx, app, documentID, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sections.GetByID(ctx, sectionID)
			if err != nil {
				return err
			}

			if !domain.ValidCapTypes[capType] {
				return fmt.Errorf("invalid cap type %q", capType)
			}
			ct := domain.CapType(capType)
			s.CapType = ct
			if ct != domain.CapNone {
				v, err := engine.ParseAmount(capValue)
				if err != nil {
					return fmt.Errorf("invalid cap value %q: %w", capValue, err)
				}
				s.CapValue = engine.Sanitize(v)
			}

			if err := app.Sections.Update(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Updated cap on %s\n", s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	cmd.Flags().StringVar(&capType, "type", string(domain.CapNone),
		"Cap type: none, fixed-amount or percent-of-grand-total")
	cmd.Flags().StringVar(&capValue, "value", "", "Cap amount or percentage")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func newSectionRemoveCmd(app *App) *cobra.Command {
	var doc string

	cmd := &cobra.Command{
		Use:   "remove SECTION",
		Short: "Delete a section and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			documentID, err := resolveDocumentID(ctx, app, doc)
			if err != nil {
				return err
			}
			sectionID, err := resolveSectionID(ctx, app, documentID, args[0])
			if err != nil {
				return err
			}
			if err := app.Sections.Delete(ctx, sectionID); err != nil {
				return err
			}
			fmt.Println("Deleted section")
			return nil
		},
	}

	cmd.Flags().StringVar(&doc, "doc", "", "Budget name or ID")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}
