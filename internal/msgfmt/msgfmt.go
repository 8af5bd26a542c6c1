// Package msgfmt compiles human-editable PO translation files into the
// binary MO catalog format.
package msgfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Message is one PO entry. Msgstr holds a single element for plain
// messages and one element per plural form for plural messages.
type Message struct {
	Msgctxt     string
	Msgid       string
	MsgidPlural string
	Msgstr      []string
}

// Key returns the raw catalog key for the message: context and message
// joined by EOT (0x04), singular and plural joined by NUL.
func (m *Message) Key() string {
	key := m.Msgid
	if m.Msgctxt != "" {
		key = m.Msgctxt + "\x04" + key
	}
	if m.MsgidPlural != "" {
		key += "\x00" + m.MsgidPlural
	}
	return key
}

// Value returns the raw catalog value: the translated forms joined by NUL.
func (m *Message) Value() string {
	return strings.Join(m.Msgstr, "\x00")
}

// Catalog is an ordered collection of parsed messages.
type Catalog struct {
	Messages []*Message
}

// parse state: which field the next bare string line continues.
type section int

const (
	secNone section = iota
	secCtxt
	secID
	secIDPlural
	secStr
)

type parser struct {
	cat    *Catalog
	cur    *Message
	sec    section
	strIdx int
	lineno int
}

func (p *parser) flush() {
	if p.cur != nil && (p.cur.Msgid != "" || len(p.cur.Msgstr) > 0) {
		p.cat.Messages = append(p.cat.Messages, p.cur)
	}
	p.cur = nil
	p.sec = secNone
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", p.lineno, fmt.Sprintf(format, args...))
}

func (p *parser) appendStr(s string) error {
	switch p.sec {
	case secCtxt:
		p.cur.Msgctxt += s
	case secID:
		p.cur.Msgid += s
	case secIDPlural:
		p.cur.MsgidPlural += s
	case secStr:
		p.cur.Msgstr[p.strIdx] += s
	default:
		return p.errorf("string continuation without a preceding keyword")
	}
	return nil
}

func (p *parser) line(line string) error {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "" || trimmed[0] == '#':
		return nil
	case strings.HasPrefix(trimmed, "msgctxt"):
		p.flush()
		p.cur = &Message{}
		p.sec = secCtxt
		return p.quoted(trimmed[len("msgctxt"):])
	case strings.HasPrefix(trimmed, "msgid_plural"):
		if p.cur == nil || p.sec == secStr {
			return p.errorf("msgid_plural without msgid")
		}
		p.sec = secIDPlural
		return p.quoted(trimmed[len("msgid_plural"):])
	case strings.HasPrefix(trimmed, "msgid"):
		if p.sec != secCtxt {
			p.flush()
			p.cur = &Message{}
		}
		p.sec = secID
		return p.quoted(trimmed[len("msgid"):])
	case strings.HasPrefix(trimmed, "msgstr["):
		if p.cur == nil {
			return p.errorf("msgstr without msgid")
		}
		end := strings.IndexByte(trimmed, ']')
		if end < 0 {
			return p.errorf("malformed msgstr index")
		}
		idx, err := strconv.Atoi(trimmed[len("msgstr["):end])
		if err != nil || idx < 0 || idx > 99 {
			return p.errorf("malformed msgstr index")
		}
		for len(p.cur.Msgstr) <= idx {
			p.cur.Msgstr = append(p.cur.Msgstr, "")
		}
		p.sec = secStr
		p.strIdx = idx
		return p.quoted(trimmed[end+1:])
	case strings.HasPrefix(trimmed, "msgstr"):
		if p.cur == nil {
			return p.errorf("msgstr without msgid")
		}
		p.cur.Msgstr = append(p.cur.Msgstr, "")
		p.sec = secStr
		p.strIdx = len(p.cur.Msgstr) - 1
		return p.quoted(trimmed[len("msgstr"):])
	case trimmed[0] == '"':
		s, err := unquote(trimmed)
		if err != nil {
			return p.errorf("%v", err)
		}
		return p.appendStr(s)
	default:
		return p.errorf("unexpected input %q", trimmed)
	}
}

func (p *parser) quoted(rest string) error {
	s, err := unquote(strings.TrimSpace(rest))
	if err != nil {
		return p.errorf("%v", err)
	}
	return p.appendStr(s)
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expected quoted string, got %q", s)
	}
	unquoted, err := strconv.Unquote(s)
	if err != nil {
		return "", fmt.Errorf("bad string %s: %v", s, err)
	}
	return unquoted, nil
}

// ParsePO reads a PO file: msgid/msgstr pairs, optional msgctxt, optional
// msgid_plural with indexed msgstr[N] forms, '#' comments, and bare quoted
// lines continuing the previous field.
func ParsePO(r io.Reader) (*Catalog, error) {
	p := &parser{cat: &Catalog{}}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.lineno += 1
		if err := p.line(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	p.flush()
	return p.cat, nil
}

// Compile parses a PO file from r and writes the compiled MO catalog to w.
func Compile(r io.Reader, w io.Writer) error {
	cat, err := ParsePO(r)
	if err != nil {
		return err
	}
	return cat.WriteMO(w)
}
