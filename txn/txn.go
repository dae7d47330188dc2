// Package txn replaces config files on disk crash-safely.
//
// A save runs a fixed sequence: back up the existing target, write the
// serialized bytes to a temp file in the target's directory, read the
// temp file back and verify it, then rename over the target. Any
// failure after the backup rolls back, leaving both the target and its
// backup holding the pre-save content. The rename is the only step
// that touches the target itself.
package txn

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lmutools/cfged/debug"
	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/ini"
	"github.com/lmutools/cfged/jsonc"
)

type State int

const (
	Idle State = iota
	BackupCreated
	TempWritten
	Verified
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case BackupCreated:
		return "backup-created"
	case TempWritten:
		return "temp-written"
	case Verified:
		return "verified"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled-back"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// BackupSuffix is appended to the target path for the pre-save copy.
const BackupSuffix = ".bak"

type options struct {
	backupSuffix string
	corrupt      func(path string) error
}

type Option func(*options)

func WithBackupSuffix(s string) Option {
	return func(o *options) { o.backupSuffix = s }
}

// withCorrupt runs after the temp write and before verification.
// Test hook only.
func withCorrupt(f func(path string) error) Option {
	return func(o *options) { o.corrupt = f }
}

// Result reports how far a save progressed. On error the State is the
// last one reached, or RolledBack when cleanup ran.
type Result struct {
	State      State
	Target     string
	BackupPath string
	Bytes      int
}

// Save serializes d in its own dialect and replaces target. The
// returned Result is non-nil even on error.
func Save(d *doc.Document, target string, opts ...Option) (*Result, error) {
	o := &options{backupSuffix: BackupSuffix}
	for _, f := range opts {
		f(o)
	}
	res := &Result{State: Idle, Target: target}

	out, err := Serialize(d)
	if err != nil {
		return res, err
	}
	res.Bytes = len(out)

	if _, err := os.Stat(target); err == nil {
		bak := target + o.backupSuffix
		if err := copyFile(target, bak); err != nil {
			return res, &BackupError{Path: bak, Err: err}
		}
		res.BackupPath = bak
		res.State = BackupCreated
	} else if !os.IsNotExist(err) {
		return res, &BackupError{Path: target, Err: err}
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return res, &WriteError{Path: dir, Err: err}
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return rollback(res, tmpPath, &WriteError{Path: tmpPath, Err: err})
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return rollback(res, tmpPath, &WriteError{Path: tmpPath, Err: err})
	}
	if err := tmp.Close(); err != nil {
		return rollback(res, tmpPath, &WriteError{Path: tmpPath, Err: err})
	}
	res.State = TempWritten

	if o.corrupt != nil {
		if err := o.corrupt(tmpPath); err != nil {
			return rollback(res, tmpPath, &WriteError{Path: tmpPath, Err: err})
		}
	}

	if err := verify(tmpPath, out); err != nil {
		return rollback(res, tmpPath, err)
	}
	res.State = Verified

	if err := os.Rename(tmpPath, target); err != nil {
		return rollback(res, tmpPath, &CommitError{Path: target, Err: err})
	}
	res.State = Committed
	if debug.Txn() {
		debug.Logf("txn: committed %s (%d bytes)\n", target, res.Bytes)
	}
	return res, nil
}

// Serialize renders d in its own dialect without touching disk.
func Serialize(d *doc.Document) ([]byte, error) {
	switch d.Dialect {
	case doc.JSONC:
		return jsonc.Serialize(d)
	case doc.INI:
		return ini.Serialize(d)
	}
	return nil, fmt.Errorf("%w: %s", doc.ErrUnknownDialect, d.Dialect)
}

// verify reads the temp file back and checks it byte for byte against
// what was meant to be written.
func verify(path string, want []byte) error {
	got, err := os.ReadFile(path)
	if err != nil {
		return &VerificationError{Path: path, Err: err}
	}
	if len(got) != len(want) {
		return &VerificationError{
			Path: path,
			Err:  fmt.Errorf("%w: %d bytes, want %d", ErrContentMismatch, len(got), len(want)),
		}
	}
	if sha256.Sum256(got) != sha256.Sum256(want) {
		return &VerificationError{Path: path, Err: ErrContentMismatch}
	}
	return nil
}

// rollback removes the temp file and restores the target from its
// backup if the target itself went missing. The original error is
// passed through.
func rollback(res *Result, tmpPath string, cause error) (*Result, error) {
	os.Remove(tmpPath)
	if res.BackupPath != "" {
		if _, err := os.Stat(res.Target); os.IsNotExist(err) {
			copyFile(res.BackupPath, res.Target)
		}
	}
	res.State = RolledBack
	if debug.Txn() {
		debug.Logf("txn: rolled back %s: %v\n", res.Target, cause)
	}
	return res, cause
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
