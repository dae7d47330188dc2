// Package store manages named saved configuration pairs.
//
// A saved configuration is a pair of files in the store root named
// conf_<name>_<activeBasename>, one per dialect. A pair only exists
// once both files do; half-saved pairs are invisible to List and Load.
// Creation times and file names live in metadata.yaml next to the
// pairs.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/lmutools/cfged/debug"
	"github.com/lmutools/cfged/doc"
	"github.com/lmutools/cfged/txn"
)

const (
	DefaultJSONName = "settings.json"
	DefaultININame  = "Config_DX11.ini"

	metadataName = "metadata.yaml"
	// suffix for active-file backups taken right before a Load
	loadBackupSuffix = ".before_load"
)

type Store struct {
	Root      string
	ActiveDir string
	JSONName  string
	ININame   string

	meta *metadata
}

type metadata struct {
	Version        string               `yaml:"version"`
	LastUpdated    time.Time            `yaml:"last_updated"`
	Configurations map[string]*pairMeta `yaml:"configurations"`
}

type pairMeta struct {
	Created  time.Time `yaml:"created"`
	JSONFile string    `yaml:"json_file"`
	INIFile  string    `yaml:"ini_file"`
}

// Info describes one saved pair. Sizes are zero when the file is
// missing.
type Info struct {
	Name     string
	Created  time.Time
	JSONFile string
	JSONSize int64
	INIFile  string
	INISize  int64
}

type Option func(*Store)

// WithFileNames overrides the active pair's basenames.
func WithFileNames(jsonName, iniName string) Option {
	return func(s *Store) {
		s.JSONName = jsonName
		s.ININame = iniName
	}
}

// Open prepares a store rooted at root for the active pair in
// activeDir, creating root if needed and reading any existing
// metadata.
func Open(root, activeDir string, opts ...Option) (*Store, error) {
	s := &Store{
		Root:      root,
		ActiveDir: activeDir,
		JSONName:  DefaultJSONName,
		ININame:   DefaultININame,
	}
	for _, f := range opts {
		f(s)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	s.meta = &metadata{Version: "1.0", Configurations: map[string]*pairMeta{}}
	raw, err := os.ReadFile(filepath.Join(root, metadataName))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(raw, s.meta); err != nil {
		return nil, fmt.Errorf("%s: %w", metadataName, err)
	}
	if s.meta.Configurations == nil {
		s.meta.Configurations = map[string]*pairMeta{}
	}
	return s, nil
}

// Paths returns where name's pair lives in the store.
func (s *Store) Paths(name string) (jsonPath, iniPath string) {
	jsonPath = filepath.Join(s.Root, "conf_"+name+"_"+s.JSONName)
	iniPath = filepath.Join(s.Root, "conf_"+name+"_"+s.ININame)
	return
}

// List returns the names of complete saved pairs, sorted.
func (s *Store) List() ([]string, error) {
	pattern := filepath.Join(s.Root, "conf_*_"+s.JSONName)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range matches {
		base := filepath.Base(m)
		name := strings.TrimSuffix(strings.TrimPrefix(base, "conf_"), "_"+s.JSONName)
		_, iniPath := s.Paths(name)
		if _, err := os.Stat(iniPath); err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Save writes the documents as name's pair, each through a crash-safe
// transaction, then records the pair in metadata. A nil document
// skips its side; the pair stays incomplete until both exist.
func (s *Store) Save(name string, jsonDoc, iniDoc *doc.Document) error {
	if err := checkName(name); err != nil {
		return err
	}
	jsonPath, iniPath := s.Paths(name)
	if jsonDoc != nil {
		if _, err := txn.Save(jsonDoc, jsonPath); err != nil {
			return err
		}
	}
	if iniDoc != nil {
		if _, err := txn.Save(iniDoc, iniPath); err != nil {
			return err
		}
	}
	created := time.Now().UTC()
	if prev, ok := s.meta.Configurations[name]; ok {
		// re-saving a name keeps its original creation time
		created = prev.Created
	}
	s.meta.Configurations[name] = &pairMeta{
		Created:  created,
		JSONFile: filepath.Base(jsonPath),
		INIFile:  filepath.Base(iniPath),
	}
	if err := s.saveMetadata(); err != nil {
		return err
	}
	if debug.Store() {
		debug.Logf("store: saved %q\n", name)
	}
	return nil
}

// Load copies name's saved pair over the active files. The current
// active files are backed up with a .before_load suffix first, so a
// bad load is recoverable by hand.
func (s *Store) Load(name string) error {
	jsonPath, iniPath := s.Paths(name)
	if _, err := os.Stat(jsonPath); err != nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if _, err := os.Stat(iniPath); err != nil {
		return fmt.Errorf("%w: %q", ErrIncomplete, name)
	}
	activeJSON := filepath.Join(s.ActiveDir, s.JSONName)
	activeINI := filepath.Join(s.ActiveDir, s.ININame)
	for _, p := range []string{activeJSON, activeINI} {
		if _, err := os.Stat(p); err == nil {
			if err := copyFile(p, p+loadBackupSuffix); err != nil {
				return fmt.Errorf("backup %s: %w", p, err)
			}
		}
	}
	if err := copyFile(jsonPath, activeJSON); err != nil {
		return err
	}
	if err := copyFile(iniPath, activeINI); err != nil {
		return err
	}
	if debug.Store() {
		debug.Logf("store: loaded %q into %s\n", name, s.ActiveDir)
	}
	return nil
}

// Delete removes name's files and its metadata entry. Missing files
// are not an error.
func (s *Store) Delete(name string) error {
	jsonPath, iniPath := s.Paths(name)
	for _, p := range []string{jsonPath, iniPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if _, ok := s.meta.Configurations[name]; ok {
		delete(s.meta.Configurations, name)
		return s.saveMetadata()
	}
	return nil
}

// Info reports metadata and on-disk sizes for name.
func (s *Store) Info(name string) (*Info, error) {
	m, ok := s.meta.Configurations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	info := &Info{
		Name:     name,
		Created:  m.Created,
		JSONFile: m.JSONFile,
		INIFile:  m.INIFile,
	}
	if fi, err := os.Stat(filepath.Join(s.Root, m.JSONFile)); err == nil {
		info.JSONSize = fi.Size()
	}
	if fi, err := os.Stat(filepath.Join(s.Root, m.INIFile)); err == nil {
		info.INISize = fi.Size()
	}
	return info, nil
}

func (s *Store) saveMetadata() error {
	s.meta.LastUpdated = time.Now().UTC()
	out, err := yaml.Marshal(s.meta)
	if err != nil {
		return err
	}
	path := filepath.Join(s.Root, metadataName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
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
	return out.Close()
}
