package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Store discovers, loads, and saves workspace board files under a base
// directory. Board files are matched with a doublestar glob so boards may be
// organized into subdirectories.
type Store struct {
	baseDir string
	pattern string
}

// NewStore creates a Store over baseDir selecting files with pattern
// (doublestar syntax, relative to baseDir).
func NewStore(baseDir, pattern string) *Store {
	return &Store{baseDir: baseDir, pattern: pattern}
}

// BaseDir returns the store's board directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Discover returns the sorted paths of all board files under the store's
// base directory. A missing base directory yields an empty list, not an
// error, so a fresh checkout works before any board exists.
func (s *Store) Discover() ([]string, error) {
	if _, err := os.Stat(s.baseDir); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(s.baseDir), s.pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %q under %s: %w", s.pattern, s.baseDir, err)
	}

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(s.baseDir, m)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads and decodes a single board file.
func (s *Store) Load(path string) (*Workspace, error) {
	var doc boardFile
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, fmt.Errorf("loading board %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		for _, key := range undecoded {
			logger.Warn("unknown board key", "key", key.String(), "file", path)
		}
	}

	ws := &Workspace{
		ID:      doc.Workspace.ID,
		Name:    doc.Workspace.Name,
		Path:    path,
		Records: doc.Tasks,
	}
	if ws.ID == "" {
		// Boards created by hand may omit the ID; derive a stable one
		// from the file name.
		base := filepath.Base(path)
		ws.ID = base[:len(base)-len(filepath.Ext(base))]
	}
	if ws.Name == "" {
		ws.Name = ws.ID
	}

	logger.Debug("loaded board", "path", path, "workspace", ws.ID, "tasks", len(ws.Records))
	return ws, nil
}

// LoadAll loads every discovered board file concurrently. Order matches
// Discover. One unreadable board fails the whole load; a board set with a
// broken member is surfaced rather than silently narrowed.
func (s *Store) LoadAll() ([]*Workspace, error) {
	paths, err := s.Discover()
	if err != nil {
		return nil, err
	}

	workspaces := make([]*Workspace, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			ws, err := s.Load(path)
			if err != nil {
				return err
			}
			workspaces[i] = ws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Find returns the workspace matching key by ID or name. An empty key
// selects the first workspace. Returns an error when nothing matches or no
// boards exist.
func Find(workspaces []*Workspace, key string) (*Workspace, error) {
	if len(workspaces) == 0 {
		return nil, fmt.Errorf("no boards found")
	}
	if key == "" {
		return workspaces[0], nil
	}
	for _, ws := range workspaces {
		if ws.Matches(key) {
			return ws, nil
		}
	}
	return nil, fmt.Errorf("workspace %q not found", key)
}

// Save writes the workspace back to its board file atomically (temp file
// then rename). Saving is skipped when the encoded content hashes equal to
// what is already on disk, so timer-driven consumers can save defensively
// without churning mtimes.
func (s *Store) Save(ws *Workspace) error {
	if ws.Path == "" {
		return fmt.Errorf("workspace %s has no backing file", ws.ID)
	}

	doc := boardFile{
		Workspace: workspaceMeta{ID: ws.ID, Name: ws.Name},
		Tasks:     ws.Records,
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encoding board %s: %w", ws.ID, err)
	}

	if existing, err := os.ReadFile(ws.Path); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64(buf.Bytes()) {
			logger.Debug("board unchanged, skipping write", "path", ws.Path)
			return nil
		}
	}

	return writeAtomic(ws.Path, buf.Bytes())
}

// writeAtomic writes data to a temporary file in path's directory, then
// renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating board directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp board file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("renaming temp board file to %s: %w", path, err)
	}
	return nil
}
