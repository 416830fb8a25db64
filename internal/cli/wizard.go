package cli

import (
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/cli/formatter"
	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// costlineHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func costlineHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// newBudgetForm collects the fields for a new budget interactively.
func newBudgetForm(name, currency, donor, sector *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Budget Name").
				Placeholder("Field Hospital 2026").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Base Currency").
				Options(
					huh.NewOption("USD", "USD"),
					huh.NewOption("EUR", "EUR"),
					huh.NewOption("GBP", "GBP"),
					huh.NewOption("CHF", "CHF"),
				).
				Value(currency),
			huh.NewInput().
				Title("Donor (optional)").
				Value(donor),
			huh.NewInput().
				Title("Sector (optional)").
				Value(sector),
		),
	).WithTheme(costlineHuhTheme()).WithShowHelp(false)
}

// newSectionForm collects a section name interactively.
func newSectionForm(name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Section Name").
				Placeholder("Staff").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	).WithTheme(costlineHuhTheme()).WithShowHelp(false)
}

// newLineForm collects the fields for a new budget line: target section plus
// the directly editable columns. Numeric fields stay strings so the amount
// grammar applies on commit.
func newLineForm(sections []domain.Section, sectionID, description, quantity, frequency, unitCost *string) *huh.Form {
	options := make([]huh.Option[string], 0, len(sections))
	for _, s := range sections {
		options = append(options, huh.NewOption(s.Name, s.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Section").
				Options(options...).
				Value(sectionID),
			huh.NewInput().
				Title("Description").
				Value(description),
			huh.NewInput().
				Title("Quantity").
				Placeholder("1").
				Value(quantity).
				Validate(validateOptionalAmount),
			huh.NewInput().
				Title("Frequency").
				Placeholder("1").
				Value(frequency).
				Validate(validateOptionalAmount),
			huh.NewInput().
				Title("Unit Cost").
				Placeholder("0").
				Value(unitCost).
				Validate(validateOptionalAmount),
		),
	).WithTheme(costlineHuhTheme()).WithShowHelp(false)
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := engine.ParseAmount(s); err != nil {
		return fmt.Errorf("not a number")
	}
	return nil
}

// runNewBudgetWizard prompts for budget fields and returns the filled meta.
func runNewBudgetWizard() (string, domain.DocumentMeta, error) {
	meta := domain.DefaultMeta()
	name := ""
	currency := meta.BaseCurrency
	donor := ""
	sector := ""

	if err := newBudgetForm(&name, &currency, &donor, &sector).Run(); err != nil {
		return "", meta, err
	}

	meta.BaseCurrency = currency
	meta.Donor = strings.TrimSpace(donor)
	meta.Sector = strings.TrimSpace(sector)
	return strings.TrimSpace(name), meta, nil
}
