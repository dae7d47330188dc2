package token

import "fmt"

type Type int

const (
	TKey Type = iota
	TValue
	TDelim
	TComment
	TDesc
)

func (t Type) String() string {
	return map[Type]string{
		TKey:     "TKey",
		TValue:   "TValue",
		TDelim:   "TDelim",
		TComment: "TComment",
		TDesc:    "TDesc",
	}[t]
}

// Token is a line-anchored token. Bytes is a slice of the source
// document, so its span is [Pos.I, Pos.I+len(Bytes)).
type Token struct {
	Type  Type
	Pos   *Pos
	Bytes []byte
}

func (t *Token) End() int {
	return t.Pos.I + len(t.Bytes)
}

func (t *Token) Text() string {
	return string(t.Bytes)
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// MalformedLineError reports a line that could not be classified by a
// dialect tokenizer. Line is 1-based. The raw line text is carried so
// corrupt fragments surface to the caller instead of being dropped.
type MalformedLineError struct {
	Line int
	Text string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %d: %q", e.Line, e.Text)
}
