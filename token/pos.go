package token

import (
	"bytes"
	"fmt"
	"sort"
)

// PosDoc maps absolute byte offsets in a document to line/column
// coordinates. Lines and columns are 1-based.
type PosDoc struct {
	d      []byte
	starts []int
}

// NewDoc scans d for line starts and returns a PosDoc over it. The
// document bytes are referenced, not copied.
func NewDoc(d []byte) *PosDoc {
	starts := []int{0}
	for i, b := range d {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &PosDoc{d: d, starts: starts}
}

func (p *PosDoc) Bytes() []byte {
	return p.d
}

func (p *PosDoc) Len() int {
	return len(p.d)
}

// NumLines reports the number of lines, counting a final line only if
// it is non-empty.
func (p *PosDoc) NumLines() int {
	n := len(p.starts)
	if p.starts[n-1] >= len(p.d) {
		return n - 1
	}
	return n
}

// LineSpan returns the [start, end) byte span of the 1-based line ln,
// excluding the line terminator.
func (p *PosDoc) LineSpan(ln int) (int, int) {
	start := p.starts[ln-1]
	end := len(p.d)
	if ln < len(p.starts) {
		end = p.starts[ln] - 1
	}
	return start, end
}

// Line returns the content of the 1-based line ln without its
// terminator. A trailing '\r' is kept; callers trim it as whitespace.
func (p *PosDoc) Line(ln int) []byte {
	start, end := p.LineSpan(ln)
	return p.d[start:end]
}

// LineCol returns the 1-based line and column of the byte offset off.
func (p *PosDoc) LineCol(off int) (int, int) {
	di := sort.Search(len(p.starts), func(i int) bool {
		return p.starts[i] > off
	}) - 1
	if di < 0 {
		di = 0
	}
	return di + 1, off - p.starts[di] + 1
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{I: i, D: p}
}

// Pos is an absolute byte offset into a PosDoc.
type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) Line() int {
	l, _ := p.D.LineCol(p.I)
	return l
}

func (p *Pos) Col() int {
	_, c := p.D.LineCol(p.I)
	return c
}

func (p Pos) String() string {
	sample := "?"
	if p.D != nil && len(p.D.d) > 0 {
		lo := max(0, p.I-8)
		hi := min(p.I+8, len(p.D.d))
		sample = string(bytes.Map(func(r rune) rune {
			if r == '\n' || r == '\r' {
				return ' '
			}
			return r
		}, p.D.d[lo:hi]))
	}
	l, c := 0, 0
	if p.D != nil {
		l, c = p.D.LineCol(p.I)
	}
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, l, c)
}
