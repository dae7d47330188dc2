package doc

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Dialect int

const (
	JSONC Dialect = iota
	INI
)

func (d Dialect) String() string {
	switch d {
	case JSONC:
		return "jsonc"
	case INI:
		return "ini"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// DialectOf infers the dialect of a config file from its filename
// suffix (settings.json-shaped vs Config_DX11.ini-shaped). It never
// inspects file content and carries no pairing logic; naming policy
// belongs to the pairing collaborator.
func DialectOf(path string) (Dialect, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONC, nil
	case ".ini":
		return INI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDialect, path)
}
