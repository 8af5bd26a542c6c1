package pluralforms

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokVar
	tokOr
	tokAnd
	tokEq
	tokNe
	tokLt
	tokLte
	tokGt
	tokGte
	tokAdd
	tokSub
	tokMul
	tokDiv
	tokMod
	tokNot
	tokQuestion
	tokColon
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokenKind
	num  int
}

type lexer struct {
	data string
	pos  int
}

func (l *lexer) next() token {
	for l.pos < len(l.data) && (l.data[l.pos] == ' ' || l.data[l.pos] == '\t') {
		l.pos += 1
	}
	if l.pos >= len(l.data) {
		return token{kind: tokEOF}
	}

	pos := l.pos
	c := l.data[pos]
	l.pos += 1
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
			l.pos += 1
		}
		if num, err := strconv.ParseInt(l.data[pos:l.pos], 10, 32); err == nil {
			return token{kind: tokNum, num: int(num)}
		}
		return token{kind: tokInvalid}
	case 'n':
		return token{kind: tokVar}
	case '=':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return token{kind: tokEq}
		}
		return token{kind: tokInvalid}
	case '!':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return token{kind: tokNe}
		}
		return token{kind: tokNot}
	case '&', '|':
		if l.pos < len(l.data) && l.data[l.pos] == c {
			l.pos += 1
			if c == '&' {
				return token{kind: tokAnd}
			}
			return token{kind: tokOr}
		}
		return token{kind: tokInvalid}
	case '<':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return token{kind: tokLte}
		}
		return token{kind: tokLt}
	case '>':
		if l.pos < len(l.data) && l.data[l.pos] == '=' {
			l.pos += 1
			return token{kind: tokGte}
		}
		return token{kind: tokGt}
	case '?':
		return token{kind: tokQuestion}
	case ':':
		return token{kind: tokColon}
	case '(':
		return token{kind: tokLParen}
	case ')':
		return token{kind: tokRParen}
	case '+':
		return token{kind: tokAdd}
	case '-':
		return token{kind: tokSub}
	case '*':
		return token{kind: tokMul}
	case '/':
		return token{kind: tokDiv}
	case '%':
		return token{kind: tokMod}
	case ';', '\n':
		return token{kind: tokEOF}
	default:
		return token{kind: tokInvalid}
	}
}

// parser is a recursive descent parser over the lexer's token stream with
// the C operator precedence plural form expressions use. Recursion depth is
// bounded by the token count, which is bounded by the input length.
type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return fmt.Errorf("unexpected token near offset %d", p.lex.pos)
	}
	p.advance()
	return nil
}

// ternary is the lowest precedence level: OR ['?' ternary ':' ternary].
// The false branch binds right associatively, as in C.
func (p *parser) ternary() (Expression, error) {
	test, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokQuestion {
		return test, nil
	}
	p.advance()
	ifTrue, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokColon); err != nil {
		return nil, err
	}
	ifFalse, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return ternaryExpr{test: test, ifTrue: ifTrue, ifFalse: ifFalse}, nil
}

func (p *parser) or() (Expression, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOr {
		p.advance()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (Expression, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAnd {
		p.advance()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = andExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) equality() (Expression, error) {
	left, err := p.relational()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokEq || p.tok.kind == tokNe {
		op := p.tok.kind
		p.advance()
		right, err := p.relational()
		if err != nil {
			return nil, err
		}
		if op == tokEq {
			left = eqExpr{left: left, right: right}
		} else {
			left = neExpr{left: left, right: right}
		}
	}
	return left, nil
}

func (p *parser) relational() (Expression, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		op := p.tok.kind
		switch op {
		case tokLt, tokLte, tokGt, tokGte:
		default:
			return left, nil
		}
		p.advance()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		switch op {
		case tokLt:
			left = ltExpr{left: left, right: right}
		case tokLte:
			left = lteExpr{left: left, right: right}
		case tokGt:
			left = gtExpr{left: left, right: right}
		case tokGte:
			left = gteExpr{left: left, right: right}
		}
	}
}

func (p *parser) additive() (Expression, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAdd || p.tok.kind == tokSub {
		op := p.tok.kind
		p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		if op == tokAdd {
			left = addExpr{left: left, right: right}
		} else {
			left = subExpr{left: left, right: right}
		}
	}
	return left, nil
}

func (p *parser) multiplicative() (Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.tok.kind
		switch op {
		case tokMul, tokDiv, tokMod:
		default:
			return left, nil
		}
		p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		switch op {
		case tokMul:
			left = mulExpr{left: left, right: right}
		case tokDiv:
			left = divExpr{left: left, right: right}
		case tokMod:
			left = modExpr{left: left, right: right}
		}
	}
}

func (p *parser) unary() (Expression, error) {
	if p.tok.kind == tokNot {
		p.advance()
		sub, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notExpr{sub: sub}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expression, error) {
	switch p.tok.kind {
	case tokNum:
		e := numberExpr{value: p.tok.num}
		p.advance()
		return e, nil
	case tokVar:
		p.advance()
		return varExpr{}, nil
	case tokLParen:
		p.advance()
		e, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unexpected token near offset %d", p.lex.pos)
}

// Compile a string containing a plural form expression to an Expression
// object. A ';' or newline terminates the expression; anything else left
// over after parsing is an error.
func Compile(expr string) (Expression, error) {
	p := parser{lex: lexer{data: expr}}
	p.advance()
	e, err := p.ternary()
	if err != nil {
		return nil, fmt.Errorf("cannot parse expression %q: %v", expr, err)
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("cannot parse expression %q: trailing garbage at offset %d", expr, p.lex.pos)
	}
	return e, nil
}
