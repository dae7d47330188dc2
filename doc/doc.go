// Package doc provides the ordered document tree shared by the cfged
// dialects.
//
// # Overview
//
// A Document is the in-memory model of one loaded configuration file:
// an ordered sequence of Groups (JSON categories or INI sections), each
// an ordered sequence of Fields. Order is the order of first appearance
// in the source and is preserved through serialization. Group names are
// unique within a Document, field keys unique within their Group.
//
// Field values are raw literal text, never coerced: a JSON field holds
// its source representation including quotes or brackets, an INI field
// the text after `=`. A Shape tag (scalar, array, object, bool) is
// inferred for presentation only.
//
// Each parsed Field records the absolute byte span of its value token
// in the source. Serializers reproduce untouched source bytes verbatim
// and splice current values over the spans of modified fields, so a
// round trip of an unmodified Document is byte-identical and an edit
// touches nothing but the edited value token.
//
// The Document exclusively owns its Groups and Fields. It is not
// thread-safe; the editing session that loaded it is its single writer.
//
// # Related Packages
//
//   - github.com/lmutools/cfged/jsonc - JSON-with-comments dialect
//   - github.com/lmutools/cfged/ini - INI dialect
//   - github.com/lmutools/cfged/track - change tracking over a Document
//   - github.com/lmutools/cfged/txn - crash-safe persistence
package doc
