// Package jsonc parses and serializes the JSON-with-comments config
// dialect.
//
// The dialect is a JSON object whose lines may carry `//` comments,
// with two description conventions layered on top:
//
//   - an inline `#:` marker inside a comment:
//     "Setting Name": 5, // Lowers input lag #: "Reduces delay"
//   - a standalone description pair whose key ends in '#':
//     "Setting Name#": "Reduces delay",
//
// Top-level keys with object values are categories (doc.Group); their
// immediate members are fields. Anything nested deeper is captured
// verbatim as an opaque value, so arbitrary nested JSON survives
// without being modeled.
//
// Serialize splices modified values into the original source bytes;
// an unmodified Document round-trips byte-for-byte.
package jsonc
