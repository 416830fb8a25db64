package cli

import (
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/cli/formatter"
	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

func (m editorModel) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return formatter.Dim("Loading budget...")
	}
	if m.err != nil {
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(m.doc.Document.Name))
	b.WriteString("\n\n")

	sumBySection := make(map[string]engine.SectionSummary, len(m.summary.Sections))
	for _, ss := range m.summary.Sections {
		sumBySection[ss.SectionID] = ss
	}
	sectionByID := make(map[string]*domain.Section, len(m.doc.Sections))
	for i := range m.doc.Sections {
		sectionByID[m.doc.Sections[i].ID] = &m.doc.Sections[i]
	}

	for i, row := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
		}

		if row.isSection {
			b.WriteString(cursor)
			b.WriteString(m.renderSectionRow(sectionByID[row.sectionID], sumBySection[row.sectionID]))
			b.WriteString("\n")
			continue
		}

		b.WriteString(cursor)
		b.WriteString(m.renderLineRow(row, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		formatter.StyleHeader.Render("GRAND TOTAL"),
		formatter.StyleBold.Render(formatter.FormatMoney(m.summary.GrandTotal)),
		formatter.Dim(m.doc.Document.Meta.BaseCurrency)))

	switch m.mode {
	case modeFilter:
		b.WriteString("\n/" + m.filterInput.View())
	case modeEdit:
		b.WriteString(fmt.Sprintf("\n%s %s",
			formatter.StyleYellow.Render(string(m.editField)+":"), m.editInput.View()))
	default:
		if m.statusMsg != "" {
			b.WriteString("\n" + formatter.StyleRed.Render(m.statusMsg))
		} else {
			b.WriteString("\n" + m.renderHelp())
		}
	}

	return b.String()
}

func (m editorModel) renderSectionRow(sec *domain.Section, ss engine.SectionSummary) string {
	if sec == nil {
		return ""
	}
	marker := "▾"
	if m.collapsed[sec.ID] {
		marker = "▸"
	}
	out := fmt.Sprintf("%s %s  %s %s",
		formatter.Dim(marker),
		formatter.StyleHeader.Render(strings.ToUpper(sec.Name)),
		formatter.StyleBold.Render(formatter.FormatMoney(ss.Subtotal)),
		formatter.Dim(fmt.Sprintf("(%s%%)", ss.Percent.StringFixed(1))))
	if ss.HasCap {
		out += "  " + formatter.CapIndicator(ss.OverCap)
	}
	return out
}

func (m editorModel) renderLineRow(row editorRow, selected bool) string {
	l := lineByID(m.doc.Lines, row.lineID)
	if l == nil {
		return ""
	}

	var prefix string
	if row.depth > 0 {
		prefix = strings.Repeat(treePipe, row.depth-1)
		if row.isLast {
			prefix += treeCorner
		} else {
			prefix += treeBranch
		}
	}

	title := l.Description
	if title == "" {
		title = formatter.Dim("(untitled)")
	} else if selected {
		title = formatter.StyleBold.Render(title)
	}

	detail := fmt.Sprintf("%s × %s × %s = %s",
		formatter.FormatAmount(l.Quantity),
		formatter.FormatAmount(l.Frequency),
		formatter.FormatMoney(l.UnitCost),
		formatter.FormatMoney(l.Total))

	return fmt.Sprintf("  %s%s  %s", prefix, title, formatter.StyleBlue.Render(detail))
}

func (m editorModel) renderHelp() string {
	parts := make([]string, 0, 8)
	for _, kb := range m.shortHelp() {
		parts = append(parts, fmt.Sprintf("%s %s",
			formatter.StyleBold.Render(kb.Help().Key),
			formatter.Dim(kb.Help().Desc)))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}

// currentFieldValue returns the line's current value for an editable field,
// used to prefill the inline editor.
func currentFieldValue(l *domain.Line, field engine.Field) string {
	switch field {
	case engine.FieldDescription:
		return l.Description
	case engine.FieldCategory:
		return l.Category
	case engine.FieldNote:
		return l.Note
	case engine.FieldUnit:
		return l.Unit
	case engine.FieldQuantity:
		return formatter.FormatAmount(l.Quantity)
	case engine.FieldFrequency:
		return formatter.FormatAmount(l.Frequency)
	case engine.FieldUnitCost:
		return formatter.FormatAmount(l.UnitCost)
	default:
		return ""
	}
}
