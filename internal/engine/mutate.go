package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avandyck/costline/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDepth is the deepest nesting the add/reparent operations allow:
// top-level line, sub-line, sub-sub-line. Recalculation itself is
// depth-agnostic; the bound only constrains structure-creating operations.
const MaxDepth = 3

var (
	ErrLineNotFound   = errors.New("line not found")
	ErrUnitCostLocked = errors.New("unit cost is derived from children")
	ErrMaxDepth       = errors.New("nesting depth limit reached")
	ErrCycle          = errors.New("target parent is inside the moved subtree")
)

// Field names a directly editable line attribute.
type Field string

const (
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
	FieldNote        Field = "note"
	FieldUnit        Field = "unit"
	FieldQuantity    Field = "quantity"
	FieldFrequency   Field = "frequency"
	FieldUnitCost    Field = "unit_cost"
)

// NumericFields lists the fields committed through the amount parser.
var NumericFields = map[Field]bool{
	FieldQuantity: true, FieldFrequency: true, FieldUnitCost: true,
}

// Every mutation below is pure: the input list is never modified and the
// returned list is a fresh slice. Callers must pass the result through
// Recalculate before treating it as authoritative.

// Add appends a new line with defaults (quantity 1, frequency 1, zero cost)
// to the given section, optionally under a parent. A child always lives in
// its parent's section, so when a parent is given its section overrides the
// requested one. Adding under a parent at the depth bound fails with
// ErrMaxDepth.
func Add(lines []domain.Line, documentID, sectionID string, parentID *string) ([]domain.Line, domain.Line, error) {
	ix := BuildIndex(lines)
	var parent *string
	if parentID != nil && *parentID != "" {
		if !ix.Contains(*parentID) {
			return nil, domain.Line{}, fmt.Errorf("parent %s: %w", *parentID, ErrLineNotFound)
		}
		if ix.Depth(*parentID) >= MaxDepth {
			return nil, domain.Line{}, ErrMaxDepth
		}
		p := *parentID
		parent = &p
		for _, l := range lines {
			if l.ID == p {
				sectionID = l.SectionID
				break
			}
		}
	}

	l := domain.Line{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		SectionID:  sectionID,
		ParentID:   parent,
		Quantity:   decimal.NewFromInt(1),
		Frequency:  decimal.NewFromInt(1),
		UnitCost:   decimal.Zero,
	}
	out := make([]domain.Line, 0, len(lines)+1)
	out = append(out, lines...)
	out = append(out, l)
	return out, l, nil
}

// SetField replaces one field on one line. Numeric fields go through
// ParseAmount; an unparsable value returns ErrNotANumber and the caller keeps
// the previous value. Setting unit cost on a line with children fails with
// ErrUnitCostLocked (recalculation would overwrite it anyway).
func SetField(lines []domain.Line, id string, field Field, value string) ([]domain.Line, error) {
	ix := BuildIndex(lines)
	if !ix.Contains(id) {
		return nil, fmt.Errorf("line %s: %w", id, ErrLineNotFound)
	}
	if field == FieldUnitCost && ix.HasChildren(id) {
		return nil, ErrUnitCostLocked
	}

	var amount decimal.Decimal
	if NumericFields[field] {
		v, err := ParseAmount(value)
		if err != nil {
			return nil, err
		}
		amount = Sanitize(v)
	}

	out := make([]domain.Line, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		switch field {
		case FieldCategory:
			out[i].Category = value
		case FieldDescription:
			out[i].Description = value
		case FieldNote:
			out[i].Note = value
		case FieldUnit:
			out[i].Unit = value
		case FieldQuantity:
			out[i].Quantity = amount
		case FieldFrequency:
			out[i].Frequency = amount
		case FieldUnitCost:
			out[i].UnitCost = amount
		default:
			return nil, fmt.Errorf("unknown field %q", field)
		}
		break
	}
	return out, nil
}

// Delete removes the line and its entire subtree. Deleting an unknown id is
// a no-op on a fresh copy.
func Delete(lines []domain.Line, id string) []domain.Line {
	ix := BuildIndex(lines)
	doomed := make(map[string]bool)
	for _, sid := range ix.Subtree(id) {
		doomed[sid] = true
	}
	out := make([]domain.Line, 0, len(lines))
	for _, l := range lines {
		if !doomed[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// Duplicate clones the subtree rooted at id. Every clone gets a fresh id,
// internal parent references are remapped onto the clone ids, and the clones
// are inserted immediately after the last member of the original subtree,
// preserving relative order.
func Duplicate(lines []domain.Line, id string) ([]domain.Line, error) {
	ix := BuildIndex(lines)
	if !ix.Contains(id) {
		return nil, fmt.Errorf("line %s: %w", id, ErrLineNotFound)
	}

	member := make(map[string]bool)
	for _, sid := range ix.Subtree(id) {
		member[sid] = true
	}
	idMap := make(map[string]string, len(member))
	for sid := range member {
		idMap[sid] = uuid.New().String()
	}

	var clones []domain.Line
	lastIdx := -1
	for i, l := range lines {
		if !member[l.ID] {
			continue
		}
		lastIdx = i
		c := l
		c.ID = idMap[l.ID]
		if l.ID != id && l.HasParent() {
			if mapped, ok := idMap[*l.ParentID]; ok {
				c.ParentID = &mapped
			}
		}
		clones = append(clones, c)
	}

	out := make([]domain.Line, 0, len(lines)+len(clones))
	out = append(out, lines[:lastIdx+1]...)
	out = append(out, clones...)
	out = append(out, lines[lastIdx+1:]...)
	return out, nil
}

// MoveToSection makes the line a top-level member of the target section:
// its parent reference is cleared and the new section id cascades to every
// descendant without touching their parent links.
func MoveToSection(lines []domain.Line, id, sectionID string) ([]domain.Line, error) {
	ix := BuildIndex(lines)
	if !ix.Contains(id) {
		return nil, fmt.Errorf("line %s: %w", id, ErrLineNotFound)
	}
	member := make(map[string]bool)
	for _, sid := range ix.Subtree(id) {
		member[sid] = true
	}

	out := make([]domain.Line, len(lines))
	copy(out, lines)
	for i := range out {
		if !member[out[i].ID] {
			continue
		}
		out[i].SectionID = sectionID
		if out[i].ID == id {
			out[i].ParentID = nil
		}
	}
	return out, nil
}

// Reparent places the line under a new parent, or at the top level when
// parentID is nil. A child always lives in its parent's section, so moving
// under a parent in another section carries the line and its whole subtree
// into that section. Moving a line under itself or one of its own
// descendants fails with ErrCycle; exceeding the depth bound fails with
// ErrMaxDepth.
func Reparent(lines []domain.Line, id string, parentID *string) ([]domain.Line, error) {
	ix := BuildIndex(lines)
	if !ix.Contains(id) {
		return nil, fmt.Errorf("line %s: %w", id, ErrLineNotFound)
	}

	var parent *string
	parentSection := ""
	if parentID != nil && *parentID != "" {
		pid := *parentID
		if !ix.Contains(pid) {
			return nil, fmt.Errorf("parent %s: %w", pid, ErrLineNotFound)
		}
		if pid == id || ix.IsDescendant(pid, id) {
			return nil, ErrCycle
		}
		if ix.Depth(pid)+ix.Height(id) > MaxDepth {
			return nil, ErrMaxDepth
		}
		parent = &pid
		for _, l := range lines {
			if l.ID == pid {
				parentSection = l.SectionID
				break
			}
		}
	}

	member := make(map[string]bool)
	for _, sid := range ix.Subtree(id) {
		member[sid] = true
	}

	out := make([]domain.Line, len(lines))
	copy(out, lines)
	for i := range out {
		if out[i].ID == id {
			out[i].ParentID = parent
		}
		if parentSection != "" && member[out[i].ID] {
			out[i].SectionID = parentSection
		}
	}
	return out, nil
}

// PasteColumn overwrites one field across consecutive lines in list order,
// starting at startID, one text row per line, stopping at whichever runs out
// first. Rows are split on newlines and only the first tab-delimited column
// is used. Rows a numeric field cannot parse leave that line's value
// unchanged.
func PasteColumn(lines []domain.Line, startID string, field Field, text string) ([]domain.Line, error) {
	start := -1
	for i, l := range lines {
		if l.ID == startID {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("line %s: %w", startID, ErrLineNotFound)
	}

	rows := strings.Split(strings.TrimRight(text, "\r\n"), "\n")
	out := make([]domain.Line, len(lines))
	copy(out, lines)

	for i, row := range rows {
		idx := start + i
		if idx >= len(out) {
			break
		}
		cell := strings.TrimRight(row, "\r")
		if tab := strings.IndexByte(cell, '\t'); tab >= 0 {
			cell = cell[:tab]
		}

		if NumericFields[field] {
			v, err := ParseAmount(cell)
			if err != nil {
				continue // keep prior value
			}
			v = Sanitize(v)
			switch field {
			case FieldQuantity:
				out[idx].Quantity = v
			case FieldFrequency:
				out[idx].Frequency = v
			case FieldUnitCost:
				out[idx].UnitCost = v
			}
			continue
		}

		switch field {
		case FieldCategory:
			out[idx].Category = cell
		case FieldDescription:
			out[idx].Description = cell
		case FieldNote:
			out[idx].Note = cell
		case FieldUnit:
			out[idx].Unit = cell
		default:
			return nil, fmt.Errorf("unknown field %q", field)
		}
	}
	return out, nil
}
