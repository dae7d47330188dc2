package doc

import "errors"

var (
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrDupGroup       = errors.New("duplicate group")
	ErrDupKey         = errors.New("duplicate key")
	ErrNoGroup        = errors.New("no such group")
	ErrNoField        = errors.New("no such field")
)
