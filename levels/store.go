// Package levels stores level documents as files, one directory per
// namespace.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/milk9111/pulserun/config"
	"github.com/milk9111/pulserun/level"
)

var (
	ErrNotFound    = errors.New("levels: level not found")
	ErrInvalidName = errors.New("levels: invalid level name")
)

// SaveError reports a level that could not be written.
type SaveError struct {
	Name      string
	Namespace Namespace
	Err       error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("levels: save %s/%s: %v", e.Namespace, e.Name, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

type Store struct {
	dirs map[Namespace]string
	mode config.Mode
	log  *zap.Logger
}

func NewStore(cfg config.Storage, mode config.Mode, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		dirs: map[Namespace]string{
			Builtin: cfg.BuiltinPath(),
			User:    cfg.UserPath(),
		},
		mode: mode,
		log:  log.Named("levels"),
	}
}

// Dir returns the directory holding ns.
func (s *Store) Dir(ns Namespace) string {
	return s.dirs[ns]
}

// Path returns the file a level called name lives in.
func (s *Store) Path(name string, ns Namespace) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	dir, ok := s.dirs[ns]
	if !ok {
		return "", fmt.Errorf("levels: unknown namespace %s", ns)
	}
	return filepath.Join(dir, name+ns.Ext()), nil
}

// ListLevels maps level names to file paths. The directory is scanned on
// every call; a missing directory is an empty namespace.
func (s *Store) ListLevels(ns Namespace) (map[string]string, error) {
	dir, ok := s.dirs[ns]
	if !ok {
		return nil, fmt.Errorf("levels: unknown namespace %s", ns)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("levels: list %s: %w", ns, err)
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ns.Ext() {
			continue
		}
		out[strings.TrimSuffix(e.Name(), ns.Ext())] = filepath.Join(dir, e.Name())
	}
	return out, nil
}

// Names returns the level names of ns sorted.
func (s *Store) Names(ns Namespace) ([]string, error) {
	levels, err := s.ListLevels(ns)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Save writes doc to <dir>/<doc.Name><ext>, replacing any existing file.
// The write goes through a temp file so a crash never leaves half a level.
func (s *Store) Save(doc *level.Document, ns Namespace) error {
	if doc == nil {
		return &SaveError{Namespace: ns, Err: errors.New("nil document")}
	}
	path, err := s.Path(doc.Name, ns)
	if err != nil {
		return &SaveError{Name: doc.Name, Namespace: ns, Err: err}
	}
	data, err := level.Marshal(doc)
	if err != nil {
		return &SaveError{Name: doc.Name, Namespace: ns, Err: err}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &SaveError{Name: doc.Name, Namespace: ns, Err: err}
	}
	s.log.Debug("saved level",
		zap.String("name", doc.Name),
		zap.Stringer("namespace", ns),
		zap.Int("objects", len(doc.Objects)),
	)
	return nil
}

// Load reads and decodes a level. Malformed files are returned as
// *level.DecodeError in development mode and as ErrNotFound in production.
func (s *Store) Load(name string, ns Namespace) (*level.Document, error) {
	path, err := s.Path(name, ns)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, ns, name)
		}
		return nil, fmt.Errorf("levels: load %s/%s: %w", ns, name, err)
	}

	doc, err := level.Unmarshal(data)
	if err != nil {
		var de *level.DecodeError
		if errors.As(err, &de) {
			de.Source = path
		}
		if s.mode.Development() {
			return nil, err
		}
		s.log.Warn("level failed to decode",
			zap.String("name", name),
			zap.Stringer("namespace", ns),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, ns, name)
	}
	return doc, nil
}

// Delete removes a level file. Deleting a missing level is ErrNotFound.
func (s *Store) Delete(name string, ns Namespace) error {
	path, err := s.Path(name, ns)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, ns, name)
		}
		return fmt.Errorf("levels: delete %s/%s: %w", ns, name, err)
	}
	return nil
}

func validateName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := mkdirAll(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
