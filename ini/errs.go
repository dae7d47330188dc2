package ini

import (
	"errors"
	"fmt"
)

// ErrNoSection: a field appended to the implicit unnamed group after
// parse has no defined placement.
var ErrNoSection = errors.New("cannot serialize appended field outside any section")

// DuplicateSectionError is a warning-class signal: the parser merges
// the later occurrence into the first and keeps going.
type DuplicateSectionError struct {
	Name string
	Line int
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("duplicate section %q at line %d", e.Name, e.Line)
}
