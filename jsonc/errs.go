package jsonc

import (
	"errors"
	"fmt"

	"github.com/lmutools/cfged/token"
)

var (
	ErrInvalidJSON = errors.New("invalid json structure")

	// ErrNewGroup: serialization defines no placement for groups added
	// after parse; only new fields in existing groups have one.
	ErrNewGroup = errors.New("cannot serialize group absent from source")
)

// UnterminatedStructureError reports braces or brackets that do not
// balance by end of input.
type UnterminatedStructureError struct {
	Pos *token.Pos
}

func (e *UnterminatedStructureError) Error() string {
	if e.Pos == nil {
		return "unterminated structure at end of input"
	}
	return fmt.Sprintf("unterminated structure, open at %s", e.Pos)
}
