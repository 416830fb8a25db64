package cli

import (
	"context"
	"fmt"

	"github.com/avandyck/costline/internal/cli/formatter"
	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/spf13/cobra"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage budget documents",
	}

	cmd.AddCommand(
		newDocAddCmd(app),
		newDocListCmd(app),
		newDocShowCmd(app),
		newDocRenameCmd(app),
		newDocMetaCmd(app),
		newDocRemoveCmd(app),
	)

	return cmd
}

func newDocAddCmd(app *App) *cobra.Command {
	var name, currency, donor, sector string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			var meta domain.DocumentMeta
			if name == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--name is required outside an interactive terminal")
				}
				var err error
				name, meta, err = runNewBudgetWizard()
				if err != nil {
					return err
				}
			} else {
				meta = domain.DefaultMeta()
				if currency != "" {
					meta.BaseCurrency = currency
				}
				meta.Donor = donor
				meta.Sector = sector
			}

			d, err := app.Documents.Create(context.Background(), name, meta)
			if err != nil {
				return err
			}

			fmt.Printf("Created budget %s [%s]\n", d.Name, d.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Budget name (omit for an interactive prompt)")
	cmd.Flags().StringVar(&currency, "currency", "", "Base currency code (default USD)")
	cmd.Flags().StringVar(&donor, "donor", "", "Donor name")
	cmd.Flags().StringVar(&sector, "sector", "", "Sector label")

	return cmd
}

func newDocListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := app.Documents.List(context.Background())
			if err != nil {
				return err
			}

			if len(docs) == 0 {
				fmt.Println("No budgets found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatDocumentList(docs))
			return nil
		},
	}
}

func newDocShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a budget's full line tree with totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDocumentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			doc, err := app.Documents.Load(ctx, id)
			if err != nil {
				return err
			}

			sum := engine.Summarize(doc.Lines, doc.Sections)
			fmt.Println(formatter.StyleHeader.Render(doc.Document.Name))
			fmt.Println(formatter.FormatBudgetTree(doc.Sections, doc.Lines, sum, doc.Document.Meta.BaseCurrency))
			return nil
		},
	}
}

func newDocRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDocumentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.Rename(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed budget to %s\n", args[1])
			return nil
		},
	}
}

func newDocMetaCmd(app *App) *cobra.Command {
	var currency, donor, sector, usdRate, eurRate string

	cmd := &cobra.Command{
		Use:   "meta ID",
		Short: "Update a budget's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDocumentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			d, err := app.Documents.Get(ctx, id)
			if err != nil {
				return err
			}

			meta := d.Meta
			if currency != "" {
				meta.BaseCurrency = currency
			}
			if donor != "" {
				meta.Donor = donor
			}
			if sector != "" {
				meta.Sector = sector
			}
			if usdRate != "" {
				rate, err := engine.ParseAmount(usdRate)
				if err != nil {
					return fmt.Errorf("invalid USD rate %q: %w", usdRate, err)
				}
				meta.USDRate = rate
			}
			if eurRate != "" {
				rate, err := engine.ParseAmount(eurRate)
				if err != nil {
					return fmt.Errorf("invalid EUR rate %q: %w", eurRate, err)
				}
				meta.EURRate = rate
			}

			if err := app.Documents.UpdateMeta(ctx, id, meta); err != nil {
				return err
			}
			fmt.Println("Updated budget metadata")
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "Base currency code")
	cmd.Flags().StringVar(&donor, "donor", "", "Donor name")
	cmd.Flags().StringVar(&sector, "sector", "", "Sector label")
	cmd.Flags().StringVar(&usdRate, "usd-rate", "", "Exchange rate to USD")
	cmd.Flags().StringVar(&eurRate, "eur-rate", "", "Exchange rate to EUR")

	return cmd
}

func newDocRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a budget and all its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDocumentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deleted budget")
			return nil
		},
	}
}
