package ini

import (
	"bytes"
	"os"
	"strings"

	"github.com/lmutools/cfged/debug"
	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/token"
)

type parseOpts struct {
	path string
}

type ParseOption func(*parseOpts)

// WithPath records the source path on the resulting Document.
func WithPath(p string) ParseOption {
	return func(o *parseOpts) { o.path = p }
}

// Parse consumes INI text into an ordered Document.
func Parse(d []byte, opts ...ParseOption) (*doc.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	document := doc.New(doc.INI, d)
	document.Path = pOpts.path
	pos := document.PosDoc()

	var cur *doc.Group
	var pending []string
	for ln := 1; ln <= pos.NumLines(); ln++ {
		ls, le := pos.LineSpan(ln)
		line := d[ls:le]
		code, body, hasComment := token.SplitComment(line)
		ct := bytes.TrimSpace(code)
		if len(ct) == 0 {
			if hasComment {
				cTok := commentToken(pos, ls, code, body)
				pending = append(pending, string(bytes.TrimSpace(cTok.Bytes)))
			}
			continue
		}
		if ct[0] == '[' {
			end := bytes.IndexByte(ct, ']')
			if end < 0 {
				return nil, malformed(ln, line)
			}
			hTok := &token.Token{Type: token.TDelim, Pos: pos.Pos(ls), Bytes: line}
			name := string(ct[1:end])
			if g := document.Group(name); g != nil {
				document.Warn(&DuplicateSectionError{Name: name, Line: ln})
				cur = g
			} else {
				cur, _ = document.AddGroup(name)
				cur.Span = doc.Span{Start: hTok.Pos.I, End: hTok.End()}
			}
			continue
		}
		eq := bytes.IndexByte(code, '=')
		if eq < 0 {
			return nil, malformed(ln, line)
		}
		ks, ke := trimSpan(code, 0, eq)
		if ks == ke {
			return nil, malformed(ln, line)
		}
		kTok := &token.Token{Type: token.TKey, Pos: pos.Pos(ls + ks), Bytes: code[ks:ke]}
		vs, ve := valueSpan(code, eq+1)
		vTok := &token.Token{Type: token.TValue, Pos: pos.Pos(ls + vs), Bytes: code[vs:ve]}
		comment := strings.Join(pending, "\n")
		pending = nil
		if hasComment {
			cTok := commentToken(pos, ls, code, body)
			trailing := string(bytes.TrimSpace(cTok.Bytes))
			if comment == "" {
				comment = trailing
			} else if trailing != "" {
				comment += "\n" + trailing
			}
		}
		if cur == nil {
			// implicit unnamed leading group
			cur, _ = document.AddGroup("")
		}
		value := vTok.Text()
		f := &doc.Field{
			Key:      kTok.Text(),
			Value:    value,
			Original: value,
			Comment:  comment,
			Line:     kTok.Pos.Line(),
			Span:     doc.Span{Start: vTok.Pos.I, End: vTok.End()},
		}
		if b, ok := Bool(value); ok {
			f.Shape = doc.Bool
			f.Bool = &b
		}
		if err := cur.AddField(f); err != nil {
			// first value wins; the duplicate surfaces as a warning
			document.Warn(err)
		}
		if cur.Span.InSource() {
			cur.Span.End = le
		}
	}
	if debug.Parse() {
		debug.Logf("ini: parsed %d sections, %d warnings\n",
			len(document.Groups), len(document.Warnings))
	}
	return document, nil
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

// Bool reports the normalized interpretation of a boolean-looking
// value. The literal text is never rewritten from it.
func Bool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	}
	return false, false
}

// valueSpan trims the value between '=' and end of code, returning
// offsets relative to code.
func valueSpan(code []byte, from int) (int, int) {
	return trimSpan(code, from, len(code))
}

// trimSpan narrows [from, to) in code past surrounding whitespace.
func trimSpan(code []byte, from, to int) (int, int) {
	for from < to && isSpace(code[from]) {
		from++
	}
	for to > from && isSpace(code[to-1]) {
		to--
	}
	return from, to
}

// commentToken anchors a line's `//` comment body at its offset in the
// source; code is the part of the line before the marker.
func commentToken(pos *token.PosDoc, ls int, code, body []byte) *token.Token {
	return &token.Token{Type: token.TComment, Pos: pos.Pos(ls + len(code) + 2), Bytes: body}
}

func malformed(ln int, line []byte) error {
	return &token.MalformedLineError{
		Line: ln,
		Text: string(bytes.TrimSpace(line)),
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}
