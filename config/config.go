// Package config loads the pulserun tool configuration from TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Build   BuildConfig   `toml:"build"`
	Logging LoggingConfig `toml:"logging"`
	Catalog CatalogConfig `toml:"catalog"`
	Prefabs PrefabsConfig `toml:"prefabs"`
}

// StorageConfig locates the level directories. Relative BuiltinDir and
// UserDir are resolved against Root.
type StorageConfig struct {
	Root       string `toml:"root"`
	BuiltinDir string `toml:"builtin_dir"`
	UserDir    string `toml:"user_dir"`
}

// Storage is the form the level store consumes.
type Storage = StorageConfig

type BuildConfig struct {
	Mode Mode `toml:"mode"` // "development" or "production"
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type CatalogConfig struct {
	Path string `toml:"path"` // sqlite file, ":memory:" for none
}

type PrefabsConfig struct {
	Dir string `toml:"dir"` // template overrides; empty uses only embedded
}

// Mode selects how forgiving loading is. Development surfaces malformed
// level files; production hides them behind "not found".
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

func (m Mode) Development() bool {
	return m != Production
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch Mode(strings.ToLower(string(text))) {
	case Development, "dev":
		*m = Development
	case Production, "prod":
		*m = Production
	default:
		return fmt.Errorf("unknown build mode %q", string(text))
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			Root:       "~/.pulserun",
			BuiltinDir: "levels/builtin",
			UserDir:    "levels/user",
		},
		Build: BuildConfig{
			Mode: Production,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Catalog: CatalogConfig{
			Path: "catalog.db",
		},
	}
}

// RootDir returns Root with a leading ~ expanded.
func (s StorageConfig) RootDir() string {
	return expandHome(s.Root)
}

func (s StorageConfig) BuiltinPath() string {
	return s.resolve(s.BuiltinDir)
}

func (s StorageConfig) UserPath() string {
	return s.resolve(s.UserDir)
}

func (s StorageConfig) resolve(dir string) string {
	dir = expandHome(dir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(s.RootDir(), dir)
}

// CatalogPath resolves the catalog database against the storage root.
func (c *Config) CatalogPath() string {
	p := c.Catalog.Path
	if p == "" || p == ":memory:" {
		return ":memory:"
	}
	return c.Storage.resolve(p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
