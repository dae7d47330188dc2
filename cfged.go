// Package cfged edits game configuration files without disturbing
// their formatting. It parses the JSON-with-comments and INI dialects
// into ordered documents, tracks value changes against load-time
// snapshots, and writes files back crash-safely, touching only the
// bytes of values that actually changed.
package cfged

import (
	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/ini"
	"github.com/lmutools/cfged/jsonc"
	"github.com/lmutools/cfged/track"
	"github.com/lmutools/cfged/txn"
)

// Load parses path in the dialect its filename suffix implies.
func Load(path string) (*doc.Document, error) {
	dialect, err := doc.DialectOf(path)
	if err != nil {
		return nil, err
	}
	switch dialect {
	case doc.JSONC:
		return jsonc.ParseFile(path)
	default:
		return ini.ParseFile(path)
	}
}

// Open is Load plus a change tracker over the result.
func Open(path string) (*track.Tracker, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	return track.New(d), nil
}

// Save writes d back to its own source path through a crash-safe
// transaction and rebases the tracker's snapshots on success.
func Save(t *track.Tracker) (*txn.Result, error) {
	d := t.Document()
	res, err := txn.Save(d, d.Path)
	if err != nil {
		return res, err
	}
	t.Snapshot()
	return res, nil
}

// SaveAs is Save against an explicit target path.
func SaveAs(t *track.Tracker, target string) (*txn.Result, error) {
	res, err := txn.Save(t.Document(), target)
	if err != nil {
		return res, err
	}
	t.Snapshot()
	return res, nil
}
