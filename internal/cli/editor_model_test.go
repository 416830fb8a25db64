package cli

import (
	"testing"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/service"
	"github.com/avandyck/costline/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editorFixture() *service.BudgetDocument {
	doc := testutil.NewTestDocument("Clinic")
	staff := testutil.NewTestSection(doc.ID, "Staff")
	logistics := testutil.NewTestSection(doc.ID, "Logistics", testutil.WithSectionOrder(1))

	parent := testutil.NewTestLine(doc.ID, staff.ID, "Medical team")
	child := testutil.NewTestLine(doc.ID, staff.ID, "Doctor salary",
		testutil.WithParent(parent.ID), testutil.WithUnitCost("1200"))
	truck := testutil.NewTestLine(doc.ID, logistics.ID, "Water trucking",
		testutil.WithUnitCost("320"))

	return &service.BudgetDocument{
		Document: doc,
		Sections: []domain.Section{*staff, *logistics},
		Lines:    engine.Recalculate([]domain.Line{parent, child, truck}),
	}
}

func loadedEditor(t *testing.T, doc *service.BudgetDocument) editorModel {
	t.Helper()
	m := newEditorModel(&App{}, doc.Document.ID)
	updated, _ := m.Update(budgetLoadedMsg{doc: doc})
	em, ok := updated.(editorModel)
	require.True(t, ok)
	return em
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditorModel_BuildsRowsPerSection(t *testing.T) {
	m := loadedEditor(t, editorFixture())

	// 2 section headers + 3 lines
	require.Len(t, m.rows, 5)
	assert.True(t, m.rows[0].isSection)
	assert.False(t, m.rows[1].isSection)
	assert.Equal(t, 1, m.rows[2].depth)
	assert.True(t, m.rows[3].isSection)
}

func TestEditorModel_CollapseSectionHidesLines(t *testing.T) {
	m := loadedEditor(t, editorFixture())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(editorModel)

	// Staff collapsed: header + Logistics header + its one line
	require.Len(t, m.rows, 3)
	assert.True(t, m.rows[0].isSection)
	assert.True(t, m.rows[1].isSection)
}

func TestEditorModel_FilterNarrowsRows(t *testing.T) {
	m := loadedEditor(t, editorFixture())

	updated, _ := m.Update(keyMsg("/"))
	m = updated.(editorModel)
	require.Equal(t, modeFilter, m.mode)

	updated, _ = m.Update(keyMsg("doctor"))
	m = updated.(editorModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(editorModel)

	// Matching child keeps its parent visible; the other section empties out.
	var lineRows []editorRow
	for _, r := range m.rows {
		if !r.isSection {
			lineRows = append(lineRows, r)
		}
	}
	require.Len(t, lineRows, 2)
}

func TestEditorModel_EditUnitCostOnParentRefused(t *testing.T) {
	m := loadedEditor(t, editorFixture())

	m.cursor = 1 // "Medical team", a parent
	updated, _ := m.Update(keyMsg("u"))
	m = updated.(editorModel)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.statusMsg, "derived")
}

func TestEditorModel_EditPrefillsCurrentValue(t *testing.T) {
	m := loadedEditor(t, editorFixture())

	m.cursor = 2 // "Doctor salary"
	updated, _ := m.Update(keyMsg("u"))
	m = updated.(editorModel)

	require.Equal(t, modeEdit, m.mode)
	assert.Equal(t, "1200", m.editInput.Value())
}

func TestEditorModel_BadNumberKeepsValue(t *testing.T) {
	m := loadedEditor(t, editorFixture())

	m.cursor = 2
	updated, _ := m.Update(keyMsg("u"))
	m = updated.(editorModel)
	m.editInput.SetValue("abc")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(editorModel)

	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.statusMsg, "not a number")
}

func TestEditorModel_ViewShowsGrandTotal(t *testing.T) {
	m := loadedEditor(t, editorFixture())

	out := m.View()
	assert.Contains(t, out, "GRAND TOTAL")
	assert.Contains(t, out, "1,520.00")
	assert.Contains(t, out, "STAFF")
}
