// Package catalog indexes level metadata in SQLite for the level select
// screen. The level files stay the source of truth; the index can be
// dropped and rebuilt at any time.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/milk9111/pulserun/level"
	"github.com/milk9111/pulserun/levels"
)

// Source is the part of levels.Store the catalog indexes.
type Source interface {
	Names(ns levels.Namespace) ([]string, error)
	Load(name string, ns levels.Namespace) (*level.Document, error)
	Path(name string, ns levels.Namespace) (string, error)
}

// Entry is one indexed level.
type Entry struct {
	Name        string
	Namespace   levels.Namespace
	Difficulty  level.Difficulty
	Objects     int
	Song        string
	Description string
	Path        string
}

type Catalog struct {
	db  *sql.DB
	log *zap.Logger
}

// Open creates or opens the index at path and migrates its schema. The
// path ":memory:" keeps the index in memory for the lifetime of the
// Catalog.
func Open(path string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	memory := path == ":memory:"
	if !memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("catalog: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot open database: %w", err)
	}
	if memory {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: cannot connect to database: %w", err)
	}

	c := &Catalog{db: db, log: log.Named("catalog")}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: migration failed: %w", err)
	}
	return c, nil
}

func (c *Catalog) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			name TEXT NOT NULL,
			namespace INTEGER NOT NULL,
			difficulty INTEGER NOT NULL,
			objects INTEGER NOT NULL DEFAULT 0,
			song TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL,
			PRIMARY KEY (namespace, name)
		);
		CREATE INDEX IF NOT EXISTS idx_levels_difficulty ON levels(difficulty, name);
	`
	_, err := c.db.Exec(schema)
	return err
}

func (c *Catalog) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Rebuild replaces the index with the current contents of src. Levels that
// fail to load are left out and logged. It returns the number indexed.
func (c *Catalog) Rebuild(ctx context.Context, src Source) (int, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("catalog: rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM levels"); err != nil {
		return 0, fmt.Errorf("catalog: rebuild: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO levels (name, namespace, difficulty, objects, song, description, path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("catalog: rebuild: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, ns := range levels.Namespaces {
		names, err := src.Names(ns)
		if err != nil {
			return 0, fmt.Errorf("catalog: rebuild %s: %w", ns, err)
		}
		for _, name := range names {
			doc, err := src.Load(name, ns)
			if err != nil {
				c.log.Warn("skipping level", zap.String("name", name), zap.Stringer("namespace", ns), zap.Error(err))
				continue
			}
			path, err := src.Path(name, ns)
			if err != nil {
				return 0, fmt.Errorf("catalog: rebuild %s/%s: %w", ns, name, err)
			}
			if _, err := stmt.ExecContext(ctx, name, int(ns), int(doc.Difficulty), len(doc.Objects), doc.Song, doc.Description, path); err != nil {
				return 0, fmt.Errorf("catalog: index %s/%s: %w", ns, name, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("catalog: rebuild: %w", err)
	}
	c.log.Debug("catalog rebuilt", zap.Int("levels", count))
	return count, nil
}

// Filter narrows a query. Nil fields match everything.
type Filter struct {
	Namespace     *levels.Namespace
	MinDifficulty *level.Difficulty
	MaxDifficulty *level.Difficulty
	// Where is a tengo expression evaluated per entry; see Predicate.
	Where string
}

// Query returns matching entries ordered by difficulty, then name.
func (c *Catalog) Query(ctx context.Context, f Filter) ([]Entry, error) {
	var pred *Predicate
	if strings.TrimSpace(f.Where) != "" {
		p, err := CompilePredicate(f.Where)
		if err != nil {
			return nil, err
		}
		pred = p
	}

	var (
		clauses []string
		args    []any
	)
	if f.Namespace != nil {
		clauses = append(clauses, "namespace = ?")
		args = append(args, int(*f.Namespace))
	}
	if f.MinDifficulty != nil {
		clauses = append(clauses, "difficulty >= ?")
		args = append(args, int(*f.MinDifficulty))
	}
	if f.MaxDifficulty != nil {
		clauses = append(clauses, "difficulty <= ?")
		args = append(args, int(*f.MaxDifficulty))
	}
	query := "SELECT name, namespace, difficulty, objects, song, description, path FROM levels"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY difficulty, name, namespace"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			ns, diff int
		)
		if err := rows.Scan(&e.Name, &ns, &diff, &e.Objects, &e.Song, &e.Description, &e.Path); err != nil {
			return nil, fmt.Errorf("catalog: scan: %w", err)
		}
		e.Namespace = levels.Namespace(ns)
		e.Difficulty = level.Difficulty(diff)

		if pred != nil {
			ok, err := pred.Match(ctx, e)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: query: %w", err)
	}
	return entries, nil
}

var ErrNotIndexed = errors.New("catalog: level not indexed")

// Get returns one entry.
func (c *Catalog) Get(ctx context.Context, name string, ns levels.Namespace) (Entry, error) {
	e := Entry{Name: name, Namespace: ns}
	var diff int
	err := c.db.QueryRowContext(ctx,
		"SELECT difficulty, objects, song, description, path FROM levels WHERE namespace = ? AND name = ?",
		int(ns), name,
	).Scan(&diff, &e.Objects, &e.Song, &e.Description, &e.Path)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s/%s", ErrNotIndexed, ns, name)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("catalog: get %s/%s: %w", ns, name, err)
	}
	e.Difficulty = level.Difficulty(diff)
	return e, nil
}
