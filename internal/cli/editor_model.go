package cli

import (
	"context"

	"github.com/avandyck/costline/internal/domain"
	"github.com/avandyck/costline/internal/engine"
	"github.com/avandyck/costline/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editorRow represents one flattened row of the editor: a section header or
// a budget line at some depth.
type editorRow struct {
	isSection bool
	sectionID string
	lineID    string
	depth     int
	isLast    bool
}

type editorMode int

const (
	modeBrowse editorMode = iota
	modeFilter
	modeEdit
)

// budgetLoadedMsg signals that the document has been (re)loaded.
type budgetLoadedMsg struct {
	doc *service.BudgetDocument
	err error
}

// opDoneMsg signals that a mutating operation finished.
type opDoneMsg struct{ err error }

// editorModel is the bubbletea model for the interactive budget editor.
type editorModel struct {
	app        *App
	documentID string

	doc     *service.BudgetDocument
	summary engine.Summary
	rows    []editorRow
	visible map[string]bool

	cursor    int
	collapsed map[string]bool // sectionID -> collapsed
	mode      editorMode

	filterInput textinput.Model
	editInput   textinput.Model
	editLineID  string
	editField   engine.Field

	statusMsg string
	loading   bool
	err       error
	quitting  bool
}

func newEditorModel(app *App, documentID string) editorModel {
	fi := textinput.New()
	fi.Placeholder = "filter lines"
	fi.CharLimit = 64

	ei := textinput.New()
	ei.CharLimit = 128

	return editorModel{
		app:         app,
		documentID:  documentID,
		collapsed:   make(map[string]bool),
		filterInput: fi,
		editInput:   ei,
		loading:     true,
	}
}

func (m editorModel) Init() tea.Cmd {
	return m.loadBudget()
}

func (m editorModel) loadBudget() tea.Cmd {
	app, id := m.app, m.documentID
	return func() tea.Msg {
		doc, err := app.Documents.Load(context.Background(), id)
		return budgetLoadedMsg{doc: doc, err: err}
	}
}

func (m *editorModel) rebuildRows() {
	m.summary = engine.Summarize(m.doc.Lines, m.doc.Sections)
	m.visible = engine.VisibleLines(m.doc.Lines, m.filterInput.Value())
	ix := engine.BuildIndex(m.doc.Lines)

	m.rows = m.rows[:0]
	for _, sec := range m.doc.Sections {
		m.rows = append(m.rows, editorRow{isSection: true, sectionID: sec.ID})
		if m.collapsed[sec.ID] {
			continue
		}

		var walk func(id string, depth int, isLast bool)
		walk = func(id string, depth int, isLast bool) {
			if !m.visible[id] {
				return
			}
			m.rows = append(m.rows, editorRow{lineID: id, sectionID: sec.ID, depth: depth, isLast: isLast})
			children := ix.Children(id)
			for i, cid := range children {
				walk(cid, depth+1, i == len(children)-1)
			}
		}

		roots := sectionRootIDs(ix, m.doc, sec.ID)
		for i, id := range roots {
			walk(id, 0, i == len(roots)-1)
		}
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func sectionRootIDs(ix *engine.Index, doc *service.BudgetDocument, sectionID string) []string {
	var out []string
	for _, id := range ix.Roots() {
		if l := lineByID(doc.Lines, id); l != nil && l.SectionID == sectionID {
			out = append(out, id)
		}
	}
	return out
}

func (m editorModel) currentRow() *editorRow {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.doc = msg.doc
		for _, sec := range m.doc.Sections {
			if _, seen := m.collapsed[sec.ID]; !seen {
				m.collapsed[sec.ID] = sec.Collapsed
			}
		}
		m.rebuildRows()
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.loading = true
		return m, m.loadBudget()

	case tea.KeyMsg:
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m editorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		if row := m.currentRow(); row != nil && row.isSection {
			m.collapsed[row.sectionID] = !m.collapsed[row.sectionID]
			m.rebuildRows()
			return m, m.persistCollapse(row.sectionID, m.collapsed[row.sectionID])
		}

	case "/":
		m.mode = modeFilter
		m.filterInput.Focus()
		return m, textinput.Blink

	case "a":
		if row := m.currentRow(); row != nil {
			return m, m.addLine(row.sectionID, nil)
		}
	case "A":
		if row := m.currentRow(); row != nil && !row.isSection {
			parentID := row.lineID
			return m, m.addLine(row.sectionID, &parentID)
		}

	case "x":
		if row := m.currentRow(); row != nil && !row.isSection {
			return m, m.removeLine(row.lineID)
		}
	case "y":
		if row := m.currentRow(); row != nil && !row.isSection {
			return m, m.duplicateLine(row.lineID)
		}

	case "d", "u", "f", "c", "n", "t":
		if row := m.currentRow(); row != nil && !row.isSection {
			return m.startEdit(row.lineID, fieldForKey(msg.String()))
		}

	case "r":
		m.loading = true
		return m, m.loadBudget()
	}
	return m, nil
}

// fieldForKey maps an edit hotkey to its line field.
func fieldForKey(k string) engine.Field {
	switch k {
	case "d":
		return engine.FieldDescription
	case "u":
		return engine.FieldUnitCost
	case "f":
		return engine.FieldFrequency
	case "c":
		return engine.FieldCategory
	case "n":
		return engine.FieldQuantity
	default:
		return engine.FieldUnit
	}
}

func (m editorModel) startEdit(lineID string, field engine.Field) (tea.Model, tea.Cmd) {
	l := lineByID(m.doc.Lines, lineID)
	if l == nil {
		return m, nil
	}

	// Unit cost on a parent is derived; refuse to open the editor on it.
	ix := engine.BuildIndex(m.doc.Lines)
	if field == engine.FieldUnitCost && ix.HasChildren(lineID) {
		m.statusMsg = "unit cost is derived from sub-lines"
		return m, nil
	}

	m.mode = modeEdit
	m.editLineID = lineID
	m.editField = field
	m.editInput.SetValue(currentFieldValue(l, field))
	m.editInput.CursorEnd()
	m.editInput.Focus()
	return m, textinput.Blink
}

func (m editorModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "esc" {
			m.filterInput.SetValue("")
		}
		m.mode = modeBrowse
		m.filterInput.Blur()
		m.rebuildRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.rebuildRows()
	return m, cmd
}

func (m editorModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.editInput.Blur()
		return m, nil

	case "enter":
		value := m.editInput.Value()
		lineID, field := m.editLineID, m.editField
		m.mode = modeBrowse
		m.editInput.Blur()

		// Numeric fields go through the amount grammar up front so a typo
		// keeps the previous value instead of half-applying.
		if engine.NumericFields[field] {
			if _, err := engine.ParseAmount(value); err != nil {
				m.statusMsg = "not a number: " + value
				return m, nil
			}
		}
		return m, m.setField(lineID, field, value)
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// ── service calls ───────────────────────────────────────────────────────────

func (m editorModel) addLine(sectionID string, parentID *string) tea.Cmd {
	app, docID := m.app, m.documentID
	return func() tea.Msg {
		_, err := app.Lines.Add(context.Background(), docID, sectionID, parentID)
		return opDoneMsg{err: err}
	}
}

func (m editorModel) removeLine(lineID string) tea.Cmd {
	app, docID := m.app, m.documentID
	return func() tea.Msg {
		return opDoneMsg{err: app.Lines.Remove(context.Background(), docID, lineID)}
	}
}

func (m editorModel) duplicateLine(lineID string) tea.Cmd {
	app, docID := m.app, m.documentID
	return func() tea.Msg {
		return opDoneMsg{err: app.Lines.Duplicate(context.Background(), docID, lineID)}
	}
}

// persistCollapse stores the collapsed flag so the next session reopens the
// budget in the same shape. No reload: the toggle is already reflected locally.
func (m editorModel) persistCollapse(sectionID string, collapsed bool) tea.Cmd {
	app := m.app
	var sec *domain.Section
	for i := range m.doc.Sections {
		if m.doc.Sections[i].ID == sectionID {
			s := m.doc.Sections[i]
			sec = &s
			break
		}
	}
	if sec == nil {
		return nil
	}
	sec.Collapsed = collapsed
	return func() tea.Msg {
		if err := app.Sections.Update(context.Background(), sec); err != nil {
			return opDoneMsg{err: err}
		}
		return nil
	}
}

func (m editorModel) setField(lineID string, field engine.Field, value string) tea.Cmd {
	app, docID := m.app, m.documentID
	return func() tea.Msg {
		return opDoneMsg{err: app.Lines.SetField(context.Background(), docID, lineID, field, value)}
	}
}

func (m editorModel) shortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "collapse section")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add line")),
		key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add sub-line")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d/n/f/u", "edit field")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "duplicate")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}
