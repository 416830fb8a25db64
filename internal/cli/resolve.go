package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/service"
)

func resolveDocumentID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("budget ID is required")
	}

	docs, err := app.Documents.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, d := range docs {
		if strings.EqualFold(d.Name, input) {
			return d.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, d := range docs {
		if d.ID == input {
			return d.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, d := range docs {
		if strings.HasPrefix(d.ID, input) {
			matches = append(matches, d.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("budget not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("budget ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func resolveSectionID(ctx context.Context, app *App, documentID, input string) (string, error) {
	sections, err := app.Sections.ListByDocument(ctx, documentID)
	if err != nil {
		return "", err
	}
	for _, s := range sections {
		if strings.EqualFold(s.Name, input) || s.ID == input {
			return s.ID, nil
		}
	}
	var matches []string
	for _, s := range sections {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("section not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("section ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveLineID matches by ID, ID prefix or exact description within the
// loaded document.
func resolveLineID(doc *service.BudgetDocument, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("line ID is required")
	}
	for _, l := range doc.Lines {
		if l.ID == input {
			return l.ID, nil
		}
	}
	var byDescription []string
	for _, l := range doc.Lines {
		if strings.EqualFold(l.Description, input) {
			byDescription = append(byDescription, l.ID)
		}
	}
	if len(byDescription) == 1 {
		return byDescription[0], nil
	}
	var matches []string
	for _, l := range doc.Lines {
		if strings.HasPrefix(l.ID, input) {
			matches = append(matches, l.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("line not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("line ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func lineByID(lines []domain.Line, id string) *domain.Line {
	for i := range lines {
		if lines[i].ID == id {
			return &lines[i]
		}
	}
	return nil
}
