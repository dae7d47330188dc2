package token

import (
	"bytes"
	"strings"
)

// CommentStart returns the byte index in line where a `//` comment
// starts, or -1. Slashes inside double-quoted strings do not count;
// escapes inside strings are honored.
func CommentStart(line []byte) int {
	inString := false
	escape := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if escape {
			escape = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escape = true
		case c == '"':
			inString = !inString
		case c == '/' && !inString && i+1 < len(line) && line[i+1] == '/':
			return i
		}
	}
	return -1
}

// SplitComment splits a raw line at its comment, if any. code is the
// line up to the comment marker and body the comment text after `//`.
func SplitComment(line []byte) (code, body []byte, found bool) {
	i := CommentStart(line)
	if i < 0 {
		return line, nil, false
	}
	return line[:i], line[i+2:], true
}

// SplitDescription separates a comment body into its free text and the
// payload of an embedded `#:` description marker. The payload runs to
// the end of the comment, or, when quote-enclosed, to the closing
// quote; enclosing quotes are stripped and common escapes unfolded.
func SplitDescription(body []byte) (text, desc string) {
	i := bytes.Index(body, []byte("#:"))
	if i < 0 {
		return string(bytes.TrimSpace(body)), ""
	}
	text = string(bytes.TrimSpace(body[:i]))
	payload := bytes.TrimSpace(body[i+2:])
	if len(payload) >= 2 && (payload[0] == '"' || payload[0] == '\'') {
		if inner, ok := unquote(payload); ok {
			return text, inner
		}
		// unterminated quote: keep the rest, minus the dangling opener
		return text, string(payload[1:])
	}
	return text, string(payload)
}

// unquote extracts the content of a quote-enclosed payload, stopping at
// the first unescaped matching quote.
func unquote(payload []byte) (string, bool) {
	q := payload[0]
	var b strings.Builder
	escape := false
	for i := 1; i < len(payload); i++ {
		c := payload[i]
		if escape {
			switch c {
			case '"', '\'', '\\':
				b.WriteByte(c)
			default:
				b.WriteByte('\\')
				b.WriteByte(c)
			}
			escape = false
			continue
		}
		switch c {
		case '\\':
			escape = true
		case q:
			return b.String(), true
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}
