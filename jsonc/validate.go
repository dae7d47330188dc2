package jsonc

import (
	"encoding/json"
	"fmt"

	tjsonc "github.com/tidwall/jsonc"
)

// Validate checks that d, once comments are stripped and trailing
// commas removed, is structurally valid JSON. The engine itself never
// needs this to operate; it mirrors the clean-then-parse check the
// original editor ran so badly corrupted files fail loudly at load.
func Validate(d []byte) error {
	clean := stripTrailingCommas(tjsonc.ToJSON(d))
	if !json.Valid(clean) {
		return fmt.Errorf("%w", ErrInvalidJSON)
	}
	return nil
}

// stripTrailingCommas removes commas directly preceding a closing
// brace or bracket, which the dialect tolerates but strict JSON does
// not.
func stripTrailingCommas(d []byte) []byte {
	out := make([]byte, 0, len(d))
	inStr, esc := false, false
	for i := 0; i < len(d); i++ {
		c := d[i]
		if inStr {
			out = append(out, c)
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		if c == '"' {
			inStr = true
			out = append(out, c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(d) && (d[j] == ' ' || d[j] == '\t' || d[j] == '\n' || d[j] == '\r') {
				j++
			}
			if j < len(d) && (d[j] == '}' || d[j] == ']') {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
