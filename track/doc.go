// Package track implements change tracking over a loaded Document.
//
// A Tracker snapshots every field's value at load time and is the only
// sanctioned mutation path: SetValue marks a field dirty when the new
// value differs from the snapshot and clean again when it toggles
// back; Revert and RevertAll restore snapshots. Values pass through
// verbatim, with no coercion or validation of any kind.
//
// The Tracker holds a non-owning reference to its Document and must
// not outlive it.
package track
