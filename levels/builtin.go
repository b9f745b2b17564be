package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/milk9111/pulserun/level"
)

//go:embed builtin/*.level
var BuiltinFS embed.FS

// BuiltinNames lists the levels shipped inside the binary.
func BuiltinNames() ([]string, error) {
	files, err := fs.Glob(BuiltinFS, "builtin/*"+Builtin.Ext())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), Builtin.Ext()))
	}
	return names, nil
}

// LoadBuiltin decodes a shipped level without touching the filesystem.
func LoadBuiltin(name string) (*level.Document, error) {
	data, err := BuiltinFS.ReadFile("builtin/" + name + Builtin.Ext())
	if err != nil {
		return nil, fmt.Errorf("%w: builtin %s", ErrNotFound, name)
	}
	return level.Unmarshal(data)
}

// InstallBuiltins copies shipped levels into the builtin directory. Files
// already on disk are left alone so local edits survive. It returns the
// names it wrote.
func (s *Store) InstallBuiltins() ([]string, error) {
	names, err := BuiltinNames()
	if err != nil {
		return nil, fmt.Errorf("levels: install builtins: %w", err)
	}

	var installed []string
	for _, name := range names {
		dst, err := s.Path(name, Builtin)
		if err != nil {
			return installed, err
		}
		if _, err := os.Stat(dst); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return installed, fmt.Errorf("levels: install %s: %w", name, err)
		}

		data, err := BuiltinFS.ReadFile("builtin/" + name + Builtin.Ext())
		if err != nil {
			return installed, fmt.Errorf("levels: install %s: %w", name, err)
		}
		if err := writeFileAtomic(dst, data); err != nil {
			return installed, fmt.Errorf("levels: install %s: %w", name, err)
		}
		installed = append(installed, name)
	}
	if len(installed) > 0 {
		s.log.Info("installed builtin levels", zap.Strings("names", installed))
	}
	return installed, nil
}
