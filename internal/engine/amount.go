package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotANumber reports input the amount grammar cannot evaluate. Callers
// must keep the previous value instead of committing anything.
var ErrNotANumber = errors.New("not a number")

// ParseAmount evaluates a restricted arithmetic expression into a decimal.
// Accepted characters: digits, + - * / ( ) . , % space, and an optional
// leading '='. Number literals may use thousands separators or the
// decimal-comma convention ("1,234.56" and "1.234,56" both mean 1234.56).
// A '%' suffix divides by 100. Precedence is conventional: unary sign, then
// * and /, then + and -, with parentheses overriding.
func ParseAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "=")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrNotANumber)
	}

	normalized, err := normalizeLiterals(s)
	if err != nil {
		return decimal.Zero, err
	}

	p := &amountParser{input: normalized}
	result, err := p.parseExpr()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: unexpected character %q", ErrNotANumber, p.input[p.pos])
	}
	return result, nil
}

// normalizeLiterals rewrites every number literal in the expression into
// canonical dot-decimal form and rejects characters outside the grammar.
func normalizeLiterals(s string) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		ch := s[i]
		switch {
		case isDigitByte(ch) || ch == '.' || ch == ',':
			start := i
			for i < len(s) && (isDigitByte(s[i]) || s[i] == '.' || s[i] == ',') {
				i++
			}
			lit, err := normalizeNumber(s[start:i])
			if err != nil {
				return "", err
			}
			out.WriteString(lit)
		case ch == '+' || ch == '-' || ch == '*' || ch == '/' ||
			ch == '(' || ch == ')' || ch == '%' || ch == ' ':
			out.WriteByte(ch)
			i++
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrNotANumber, ch)
		}
	}
	return out.String(), nil
}

// normalizeNumber converts one literal to dot-decimal form. When both
// separators appear, the one occurring last is the decimal point and the
// other marks thousands. A lone comma is a decimal comma unless it groups
// exactly three trailing digits; repeated separators must all group threes.
func normalizeNumber(lit string) (string, error) {
	dots := strings.Count(lit, ".")
	commas := strings.Count(lit, ",")

	switch {
	case dots == 0 && commas == 0:
		return lit, nil

	case dots > 0 && commas > 0:
		var decSep, thouSep byte = '.', ','
		if strings.LastIndexByte(lit, ',') > strings.LastIndexByte(lit, '.') {
			decSep, thouSep = ',', '.'
		}
		if strings.Count(lit, string(decSep)) > 1 {
			return "", fmt.Errorf("%w: malformed number %q", ErrNotANumber, lit)
		}
		cleaned := strings.ReplaceAll(lit, string(thouSep), "")
		return strings.ReplaceAll(cleaned, string(decSep), "."), nil

	default:
		sep := byte('.')
		if commas > 0 {
			sep = ','
		}
		groups := strings.Split(lit, string(sep))
		if len(groups) == 2 && (len(groups[1]) != 3 || groups[0] == "") {
			// single separator not grouping three digits: decimal point
			return groups[0] + "." + groups[1], nil
		}
		if len(groups) == 2 && sep == '.' {
			// "1.234" keeps its dot; only the comma form is a thousands group
			return lit, nil
		}
		for i, g := range groups {
			if i == 0 {
				if g == "" {
					return "", fmt.Errorf("%w: malformed number %q", ErrNotANumber, lit)
				}
				continue
			}
			if len(g) != 3 {
				return "", fmt.Errorf("%w: malformed number %q", ErrNotANumber, lit)
			}
		}
		return strings.ReplaceAll(lit, string(sep), ""), nil
	}
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// amountParser is a recursive-descent parser over the normalized expression.
type amountParser struct {
	input string
	pos   int
}

func (p *amountParser) parseExpr() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			break
		}
		op := p.input[p.pos]
		if op != '+' && op != '-' {
			break
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
	return left, nil
}

func (p *amountParser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseUnary()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) {
			break
		}
		op := p.input[p.pos]
		if op != '*' && op != '/' {
			break
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '*' {
			left = left.Mul(right)
		} else {
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("%w: division by zero", ErrNotANumber)
			}
			left = left.Div(right)
		}
	}
	return left, nil
}

func (p *amountParser) parseUnary() (decimal.Decimal, error) {
	p.skipSpaces()
	if p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '+':
			p.pos++
			return p.parseUnary()
		case '-':
			p.pos++
			v, err := p.parseUnary()
			if err != nil {
				return decimal.Zero, err
			}
			return v.Neg(), nil
		}
	}
	return p.parsePostfix()
}

func (p *amountParser) parsePostfix() (decimal.Decimal, error) {
	v, err := p.parsePrimary()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != '%' {
			break
		}
		p.pos++
		v = v.Div(decimal.NewFromInt(100))
	}
	return v, nil
}

func (p *amountParser) parsePrimary() (decimal.Decimal, error) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: unexpected end of expression", ErrNotANumber)
	}

	if p.input[p.pos] == '(' {
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpaces()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return decimal.Zero, fmt.Errorf("%w: expected ')'", ErrNotANumber)
		}
		p.pos++
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.input) && (isDigitByte(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return decimal.Zero, fmt.Errorf("%w: unexpected character %q", ErrNotANumber, p.input[p.pos])
	}
	v, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNotANumber, p.input[start:p.pos])
	}
	return v, nil
}

func (p *amountParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
