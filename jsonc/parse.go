package jsonc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/lmutools/cfged/debug"
	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/token"
)

// Parse consumes JSON-with-comments text into an ordered Document.
// Depth 1 keys with object values become groups, their immediate
// members fields; deeper structure is captured verbatim inside field
// values. Top-level scalar members land in an implicit unnamed group.
func Parse(d []byte, opts ...ParseOption) (*doc.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	document := doc.New(doc.JSONC, d)
	document.Path = pOpts.path
	p := &parser{
		d:    d,
		pos:  document.PosDoc(),
		doc:  document,
		desc: map[string]string{},
	}
	res, err := p.parse()
	if err != nil {
		return nil, err
	}
	if pOpts.validate {
		if err := Validate(d); err != nil {
			return nil, err
		}
	}
	if debug.Parse() {
		debug.Logf("jsonc: parsed %d groups, %d warnings\n",
			len(res.Groups), len(res.Warnings))
	}
	return res, nil
}

// ParseFile reads and parses path. No existence checks are made beyond
// what the read itself surfaces.
func ParseFile(path string, opts ...ParseOption) (*doc.Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(d, append([]ParseOption{WithPath(path)}, opts...)...)
}

type parser struct {
	d   []byte
	pos *token.PosDoc
	i   int
	doc *doc.Document

	// standalone `"Key#": "..."` descriptions, applied by field name
	// once parsing completes
	desc map[string]string
}

func (p *parser) parse() (*doc.Document, error) {
	p.skipTrivia()
	if p.i >= len(p.d) {
		return nil, &UnterminatedStructureError{}
	}
	if p.d[p.i] != '{' {
		return nil, p.malformed(p.i)
	}
	open := p.i
	p.i++
	closed := false
	for !closed {
		p.skipTrivia()
		if p.i >= len(p.d) {
			return nil, p.unterminated(open)
		}
		switch c := p.d[p.i]; c {
		case '}':
			p.i++
			closed = true
		case ',':
			p.i++
		case '"':
			if err := p.parseEntry(); err != nil {
				return nil, err
			}
		default:
			return nil, p.malformed(p.i)
		}
	}
	p.skipTrivia()
	if p.i < len(p.d) {
		return nil, p.malformed(p.i)
	}
	p.applyDescriptions()
	return p.doc, nil
}

// parseEntry parses one top-level member: a category, a standalone
// description pair, or a scalar field of the implicit unnamed group.
func (p *parser) parseEntry() error {
	keyAt := p.i
	key, err := p.parseString()
	if err != nil {
		return err
	}
	p.skipTrivia()
	if p.i >= len(p.d) || p.d[p.i] != ':' {
		return p.malformed(keyAt)
	}
	p.i++
	p.skipTrivia()
	if p.i >= len(p.d) {
		return p.unterminated(keyAt)
	}
	if done, err := p.tryDescPair(key); done || err != nil {
		return err
	}
	if p.d[p.i] == '{' {
		return p.parseCategory(key)
	}
	return p.parseField(p.groupFor(""), key)
}

func (p *parser) parseCategory(name string) error {
	g := p.doc.Group(name)
	if g == nil {
		g, _ = p.doc.AddGroup(name)
	} else {
		p.doc.Warn(fmt.Errorf("%w: %q", doc.ErrDupGroup, name))
	}
	open := p.i
	if !g.Span.InSource() {
		g.Span.Start = open
	}
	p.i++
	for {
		p.skipTrivia()
		if p.i >= len(p.d) {
			return p.unterminated(open)
		}
		switch c := p.d[p.i]; c {
		case '}':
			if !g.Span.InSource() {
				g.Span.End = p.i
			}
			p.i++
			return nil
		case ',':
			p.i++
		case '"':
			keyAt := p.i
			key, err := p.parseString()
			if err != nil {
				return err
			}
			p.skipTrivia()
			if p.i >= len(p.d) || p.d[p.i] != ':' {
				return p.malformed(keyAt)
			}
			p.i++
			p.skipTrivia()
			if p.i >= len(p.d) {
				return p.unterminated(open)
			}
			if done, err := p.tryDescPair(key); done || err != nil {
				if err != nil {
					return err
				}
				continue
			}
			if err := p.parseField(g, key); err != nil {
				return err
			}
		default:
			return p.malformed(p.i)
		}
	}
}

// tryDescPair handles `"Key#": "description"` lines. They contribute a
// description for field Key and are not modeled as fields.
func (p *parser) tryDescPair(key string) (bool, error) {
	if !strings.HasSuffix(key, "#") || p.d[p.i] != '"' {
		return false, nil
	}
	s, err := p.parseString()
	if err != nil {
		return true, err
	}
	p.desc[strings.TrimSuffix(key, "#")] = s
	return true, nil
}

func (p *parser) parseField(g *doc.Group, key string) error {
	span, err := p.parseValue()
	if err != nil {
		return err
	}
	vTok := &token.Token{
		Type:  token.TValue,
		Pos:   p.pos.Pos(span.Start),
		Bytes: p.d[span.Start:span.End],
	}
	comment, desc := p.trailing(vTok.End())
	f := &doc.Field{
		Key:         key,
		Value:       vTok.Text(),
		Original:    vTok.Text(),
		Shape:       shapeOf(vTok.Bytes[0]),
		Description: desc,
		Comment:     comment,
		Line:        vTok.Pos.Line(),
		Span:        span,
	}
	if err := g.AddField(f); err != nil {
		// first occurrence wins; the duplicate is surfaced, not dropped
		// silently, and its bytes still round-trip
		p.doc.Warn(err)
	}
	return nil
}

// parseValue captures the span of the value starting at p.i: a quoted
// string, a balanced {..}/[..] captured verbatim, or a scalar running
// to the next delimiter or comment.
func (p *parser) parseValue() (doc.Span, error) {
	start := p.i
	switch p.d[p.i] {
	case '"':
		if _, err := p.parseString(); err != nil {
			return doc.Span{}, err
		}
		return doc.Span{Start: start, End: p.i}, nil
	case '{', '[':
		if err := p.skipBalanced(); err != nil {
			return doc.Span{}, err
		}
		return doc.Span{Start: start, End: p.i}, nil
	}
	for p.i < len(p.d) {
		c := p.d[p.i]
		if c == ',' || c == '}' || c == ']' || c == '\n' {
			break
		}
		if c == '/' && p.i+1 < len(p.d) && p.d[p.i+1] == '/' {
			break
		}
		p.i++
	}
	end := p.i
	for end > start && isSpace(p.d[end-1]) {
		end--
	}
	if end == start {
		return doc.Span{}, p.malformed(start)
	}
	return doc.Span{Start: start, End: end}, nil
}

// skipBalanced advances past a {..} or [..] value, honoring strings and
// comments so braces inside either do not count.
func (p *parser) skipBalanced() error {
	open := p.i
	depth := 0
	for p.i < len(p.d) {
		switch c := p.d[p.i]; c {
		case '"':
			if _, err := p.parseString(); err != nil {
				return err
			}
		case '/':
			if p.i+1 < len(p.d) && p.d[p.i+1] == '/' {
				for p.i < len(p.d) && p.d[p.i] != '\n' {
					p.i++
				}
			} else {
				p.i++
			}
		case '{', '[':
			depth++
			p.i++
		case '}', ']':
			depth--
			p.i++
			if depth == 0 {
				return nil
			}
		default:
			p.i++
		}
	}
	return p.unterminated(open)
}

func (p *parser) parseString() (string, error) {
	start := p.i
	p.i++
	var b strings.Builder
	for p.i < len(p.d) {
		switch c := p.d[p.i]; c {
		case '\\':
			if p.i+1 >= len(p.d) {
				return "", p.unterminated(start)
			}
			switch n := p.d[p.i+1]; n {
			case '"', '\\', '/':
				b.WriteByte(n)
			default:
				b.WriteByte('\\')
				b.WriteByte(n)
			}
			p.i += 2
		case '"':
			p.i++
			return b.String(), nil
		case '\n':
			return "", p.malformed(start)
		default:
			b.WriteByte(c)
			p.i++
		}
	}
	return "", p.unterminated(start)
}

// trailing extracts the comment and `#:` description from the rest of
// the line where a value ends. The comment belongs to the last field
// on its line: anything other than separators between the value and
// the marker means another field sits in between.
func (p *parser) trailing(end int) (comment, desc string) {
	ln, _ := p.pos.LineCol(end)
	_, le := p.pos.LineSpan(ln)
	seg := p.d[end:le]
	ci := token.CommentStart(seg)
	if ci < 0 {
		return "", ""
	}
	for _, c := range seg[:ci] {
		switch c {
		case ' ', '\t', '\r', ',':
		default:
			return "", ""
		}
	}
	return token.SplitDescription(seg[ci+2:])
}

func (p *parser) skipTrivia() {
	for p.i < len(p.d) {
		c := p.d[p.i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.i++
		case c == '/' && p.i+1 < len(p.d) && p.d[p.i+1] == '/':
			for p.i < len(p.d) && p.d[p.i] != '\n' {
				p.i++
			}
		default:
			return
		}
	}
}

func (p *parser) groupFor(name string) *doc.Group {
	if g := p.doc.Group(name); g != nil {
		return g
	}
	g, _ := p.doc.AddGroup(name)
	return g
}

func (p *parser) applyDescriptions() {
	if len(p.desc) == 0 {
		return
	}
	for _, g := range p.doc.Groups {
		for _, f := range g.Fields {
			if f.Description == "" {
				if s, ok := p.desc[f.Key]; ok {
					f.Description = s
				}
			}
		}
	}
}

func (p *parser) malformed(at int) error {
	ln, _ := p.pos.LineCol(at)
	return &token.MalformedLineError{
		Line: ln,
		Text: string(bytes.TrimSpace(p.pos.Line(ln))),
	}
}

func (p *parser) unterminated(at int) error {
	return &UnterminatedStructureError{Pos: p.pos.Pos(at)}
}

func shapeOf(b byte) doc.Shape {
	switch b {
	case '[':
		return doc.Array
	case '{':
		return doc.Object
	}
	return doc.Scalar
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}
