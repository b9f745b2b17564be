package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a template file, preferring dir on disk over the embedded
// copy. An empty dir reads only the embedded files. Only a missing disk
// file falls back; any other read error is returned.
func Load(dir, name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if dir != "" {
		data, err := os.ReadFile(diskPrefabPath(dir, clean))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return PrefabsFS.ReadFile(clean)
}

// Names lists every template file, embedded and on disk, sorted.
func Names(dir string) ([]string, error) {
	seen := make(map[string]bool)
	embedded, err := fs.Glob(PrefabsFS, "*.yaml")
	if err != nil {
		return nil, err
	}
	for _, name := range embedded {
		seen[name] = true
	}
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && isTemplateFile(e.Name()) {
				seen[e.Name()] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(dir, clean string) string {
	return filepath.Join(dir, filepath.FromSlash(clean))
}

func isTemplateFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
