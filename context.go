package gpx

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muktihari/xmltokenizer"
)

type eventKind uint8

const (
	eventStart eventKind = iota // element-open, carries name and attributes
	eventEnd                    // element-close, carries name
	eventText                   // character data, carries text
)

// attr is an element attribute with its value copied out of the
// tokenizer's shared buffer.
type attr struct {
	name  string
	value string
}

// event is one structural XML event. The tokenizer merges character
// data into its start tokens and reports self-closing elements as a
// single token; the parse context re-expands both so that every
// consumer sees a plain open/text/close sequence.
type event struct {
	kind  eventKind
	name  string
	text  string
	attrs []attr
}

// parseContext wraps the tokenizer's token stream as a peekable
// sequence of events and carries the schema version detected by the
// root consumer. The version cell is written exactly once, before any
// version-sensitive descendant runs.
type parseContext struct {
	tok     *xmltokenizer.Tokenizer
	queue   []event // normalized events not yet consumed, front first
	version Version
}

func newParseContext(tok *xmltokenizer.Tokenizer) *parseContext {
	return &parseContext{tok: tok}
}

// fill appends the next batch of normalized events to the queue.
// Returns io.EOF once the underlying stream is exhausted.
func (c *parseContext) fill() error {
	for len(c.queue) == 0 {
		token, err := c.tok.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}
			return &TokenizerError{Err: err}
		}

		// ProcInst, comments and directives have no name. GPX carries
		// no meaningful mixed content, so they are dropped here.
		if len(token.Name.Local) == 0 {
			continue
		}

		name := string(token.Name.Local)
		if token.IsEndElement {
			c.queue = append(c.queue, event{kind: eventEnd, name: name})
			continue
		}

		start := event{kind: eventStart, name: name}
		if len(token.Attrs) > 0 {
			start.attrs = make([]attr, 0, len(token.Attrs))
			for i := range token.Attrs {
				start.attrs = append(start.attrs, attr{
					name:  string(token.Attrs[i].Name.Local),
					value: unescape(string(token.Attrs[i].Value)),
				})
			}
		}
		c.queue = append(c.queue, start)
		if len(token.Data) > 0 {
			c.queue = append(c.queue, event{kind: eventText, text: unescape(string(token.Data))})
		}
		if token.SelfClosing {
			c.queue = append(c.queue, event{kind: eventEnd, name: name})
		}
	}
	return nil
}

// peek returns the next event without consuming it.
func (c *parseContext) peek() (event, error) {
	if err := c.fill(); err != nil {
		return event{}, err
	}
	return c.queue[0], nil
}

// next consumes and returns the next event.
func (c *parseContext) next() (event, error) {
	if err := c.fill(); err != nil {
		return event{}, err
	}
	ev := c.queue[0]
	c.queue = c.queue[1:]
	return ev, nil
}

// verifyStartingTag consumes the next event and requires it to open
// the named element, returning its attributes. Every compound and
// container consumer calls this first, so each can assume on entry
// that its own opening tag has been consumed.
func (c *parseContext) verifyStartingTag(expected string) ([]attr, error) {
	ev, err := c.next()
	if errors.Is(err, io.EOF) {
		return nil, &MissingOpeningTagError{Parent: expected}
	}
	if err != nil {
		return nil, err
	}

	switch ev.kind {
	case eventStart:
		if ev.name != expected {
			return nil, &InvalidChildElementError{Child: ev.name, Parent: expected}
		}
		return ev.attrs, nil
	case eventEnd:
		return nil, &InvalidClosingTagError{Tag: ev.name, Parent: expected}
	default:
		return nil, &InvalidChildElementError{Child: "chardata", Parent: expected}
	}
}

// findAttr returns the value of the named attribute.
func findAttr(attrs []attr, name string) (string, bool) {
	for i := range attrs {
		if attrs[i].name == name {
			return attrs[i].value, true
		}
	}
	return "", false
}

// unescape resolves the predefined XML entities and numeric character
// references the tokenizer leaves in place. Unknown entities are kept
// verbatim rather than rejected.
func unescape(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:amp])
	for i := amp; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		entity := s[i+1 : i+end]
		switch entity {
		case "lt":
			b.WriteByte('<')
		case "gt":
			b.WriteByte('>')
		case "amp":
			b.WriteByte('&')
		case "apos":
			b.WriteByte('\'')
		case "quot":
			b.WriteByte('"')
		default:
			if r, ok := numericEntity(entity); ok {
				b.WriteRune(r)
			} else {
				b.WriteString(s[i : i+end+1])
			}
		}
		i += end + 1
	}
	return b.String()
}

func numericEntity(entity string) (rune, bool) {
	if len(entity) < 2 || entity[0] != '#' {
		return 0, false
	}
	digits, base := entity[1:], 10
	if digits[0] == 'x' || digits[0] == 'X' {
		digits, base = digits[1:], 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0, false
	}
	return rune(v), true
}
