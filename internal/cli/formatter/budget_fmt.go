package formatter

import (
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// FormatDocumentList renders a table of documents with name, currency and
// last-modified timestamp.
func FormatDocumentList(docs []*domain.Document) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("BUDGETS"))
	b.WriteString("\n")
	for _, d := range docs {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			StyleDim.Render(d.ID[:8]),
			StyleBold.Render(d.Name),
			StyleDim.Render(d.Meta.BaseCurrency+" · "+d.UpdatedAt.Format("2006-01-02")),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatBudgetTree renders a full document: per section, its line tree with
// amounts, then subtotal, percentage and cap state, then the grand total.
func FormatBudgetTree(sections []domain.Section, lines []domain.Line, sum engine.Summary, currency string) string {
	ix := engine.BuildIndex(lines)
	sumBySection := make(map[string]engine.SectionSummary, len(sum.Sections))
	for _, ss := range sum.Sections {
		sumBySection[ss.SectionID] = ss
	}

	var b strings.Builder
	for _, sec := range sections {
		b.WriteString(StyleHeader.Render(strings.ToUpper(sec.Name)))
		b.WriteString("\n")

		roots := sectionRoots(ix, lines, sec.ID)
		for i, id := range roots {
			writeLineTree(&b, ix, lines, id, 0, i == len(roots)-1)
		}

		ss := sumBySection[sec.ID]
		b.WriteString(fmt.Sprintf("%s %s  %s",
			StyleDim.Render("subtotal"),
			StyleBold.Render(FormatMoney(ss.Subtotal)),
			StyleDim.Render(fmt.Sprintf("(%s%%)", ss.Percent.StringFixed(1))),
		))
		if ss.HasCap {
			b.WriteString(fmt.Sprintf("  %s %s", Dim("cap "+FormatMoney(ss.CapLimit)), CapIndicator(ss.OverCap)))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("%s %s %s",
		StyleHeader.Render("GRAND TOTAL"),
		StyleBold.Render(FormatMoney(sum.GrandTotal)),
		StyleDim.Render(currency),
	))
	return b.String()
}

func sectionRoots(ix *engine.Index, lines []domain.Line, sectionID string) []string {
	var out []string
	for _, id := range ix.Roots() {
		if l := lineByID(lines, id); l != nil && l.SectionID == sectionID {
			out = append(out, id)
		}
	}
	return out
}

func writeLineTree(b *strings.Builder, ix *engine.Index, lines []domain.Line, id string, level int, isLast bool) {
	l := lineByID(lines, id)
	if l == nil {
		return
	}

	var prefix string
	if level > 0 {
		prefix = strings.Repeat(treePipe, level-1)
		if isLast {
			prefix += treeCorner
		} else {
			prefix += treeBranch
		}
	}

	title := l.Description
	if title == "" {
		title = Dim("(untitled)")
	}
	detail := fmt.Sprintf("%s × %s × %s = %s",
		FormatAmount(l.Quantity), FormatAmount(l.Frequency),
		FormatMoney(l.UnitCost), FormatMoney(l.Total))
	if ix.HasChildren(id) {
		title = StyleBold.Render(title)
	}

	b.WriteString(fmt.Sprintf("%s%s  %s\n", prefix, title, StyleBlue.Render(detail)))

	children := ix.Children(id)
	for i, cid := range children {
		writeLineTree(b, ix, lines, cid, level+1, i == len(children)-1)
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

// FormatCostRecords renders lookup search results.
func FormatCostRecords(recs []domain.CostRecord) string {
	if len(recs) == 0 {
		return Dim("No matching cost records.")
	}
	var b strings.Builder
	for _, r := range recs {
		unit := r.Unit
		if unit == "" {
			unit = "unit"
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			StyleBold.Render(r.Description),
			StyleDim.Render(r.Category),
			StyleGreen.Render(fmt.Sprintf("%s %s / %s", FormatMoney(r.UnitCost), r.Currency, unit)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}
