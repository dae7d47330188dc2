// Package token provides the token shapes shared by the cfged dialect
// parsers.
//
// Both dialects are line oriented: every token is anchored to the line
// and column range it came from. The package owns the position model
// (Pos/PosDoc), the quote-aware `//` comment scan, and the `#:`
// description convention embedded in comments. It deliberately does not
// own any grammar; each dialect package tokenizes its own lines, sharing
// only the token shape and the comment extraction rules.
package token
