package pluralforms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidExpression is returned for Plural-Forms declarations that do
// not contain a parseable nplurals/plural pair.
var ErrInvalidExpression = errors.New("invalid plural forms expression")

// Rule couples the number of plural forms a catalog declares with the
// compiled expression selecting among them. A Rule is immutable once built.
type Rule struct {
	NPlurals int

	expr Expression
}

// DefaultRule is the Germanic two form rule used when a catalog declares no
// Plural-Forms header, or declares one that does not parse: index 0 for
// n == 1, index 1 otherwise.
func DefaultRule() *Rule {
	return &Rule{
		NPlurals: 2,
		expr:     neExpr{left: varExpr{}, right: numberExpr{value: 1}},
	}
}

// Select evaluates the rule for a count and returns the plural form index,
// clamped into [0, NPlurals-1] so a hostile formula can never address a
// form outside the catalog's declared range.
func (r *Rule) Select(n uint32) int {
	idx := r.expr.Eval(n)
	if idx < 0 {
		return 0
	}
	if idx >= r.NPlurals {
		return r.NPlurals - 1
	}
	return idx
}

// sanitize strips every character outside the allow-list for plural form
// declarations. This runs before any parsing, so injection attempts are
// dropped at the character level regardless of grammar handling.
func sanitize(decl string) string {
	var b strings.Builder
	b.Grow(len(decl))
	for i := 0; i < len(decl); i++ {
		c := decl[i]
		switch {
		case c >= '0' && c <= '9',
			c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z':
			b.WriteByte(c)
		case c == '_', c == ':', c == ';', c == '(', c == ')',
			c == '?', c == '|', c == '&', c == '=', c == '!',
			c == '<', c == '>', c == '+', c == '-',
			c == '*', c == '/', c == '%',
			c == ' ', c == '\t', c == '\n', c == '\r':
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParseHeader compiles a full Plural-Forms declaration of the conventional
// shape "nplurals=INT; plural=EXPRESSION;" into a Rule. Field names are
// matched case-insensitively. On any error callers should fall back to
// DefaultRule.
func ParseHeader(decl string) (*Rule, error) {
	decl = sanitize(decl)
	lower := strings.ToLower(decl)

	nplurals, err := parseNPlurals(lower)
	if err != nil {
		return nil, err
	}

	idx := strings.Index(lower, "plural=")
	if idx < 0 {
		return nil, fmt.Errorf("%w: missing plural= field", ErrInvalidExpression)
	}
	exprText := decl[idx+len("plural="):]
	expr, err := Compile(exprText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return &Rule{NPlurals: nplurals, expr: expr}, nil
}

func parseNPlurals(lower string) (int, error) {
	idx := strings.Index(lower, "nplurals=")
	if idx < 0 {
		return 0, fmt.Errorf("%w: missing nplurals= field", ErrInvalidExpression)
	}
	rest := lower[idx+len("nplurals="):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end += 1
	}
	nplurals, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: bad nplurals value", ErrInvalidExpression)
	}
	if nplurals < 1 {
		return 0, fmt.Errorf("%w: nplurals must be positive", ErrInvalidExpression)
	}
	return nplurals, nil
}
