// Package layouts loads fixed Balloon Pop puzzle boards from YAML.
// A set of layouts is embedded in the binary; more can be loaded from a
// directory and override embedded ones with the same ID.
package layouts

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/balloonpop/internal/games/balloonpop/engine"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// YAMLLayout is the on-disk structure of a layout file.
//
//	id: "01-warmup"
//	name: "Warm-up"
//	rows:
//	  - "^^=="
//	  - "oo++"
type YAMLLayout struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Layout is a parsed puzzle board.
type Layout struct {
	ID       string
	Name     string
	Rows     int
	Cols     int
	Matrix   [][]engine.Token
	Metadata map[string]string
	FilePath string // empty for embedded layouts
}

// NewSession starts a game session on this layout.
func (l Layout) NewSession(limits engine.Limits) (*engine.Session, error) {
	s, err := engine.NewSessionFromMatrix(limits, l.Matrix, l.Rows, l.Cols)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.ID, err)
	}
	return s, nil
}

// Parse parses a single YAML layout document.
func Parse(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Layout{}, fmt.Errorf("layout has no id")
	}

	mtx, rows, cols, err := engine.ParseBoard(yl.Rows)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Layout{
		ID:       yl.ID,
		Name:     name,
		Rows:     rows,
		Cols:     cols,
		Matrix:   mtx,
		Metadata: yl.Metadata,
	}, nil
}

// Builtin returns the embedded layouts sorted by ID.
func Builtin() ([]Layout, error) {
	entries, err := fs.ReadDir(builtinFS, "data")
	if err != nil {
		return nil, fmt.Errorf("reading embedded layouts: %w", err)
	}

	result := make([]Layout, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(filepath.Ext(e.Name())) {
			continue
		}
		data, err := builtinFS.ReadFile("data/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading embedded layout %s: %w", e.Name(), err)
		}
		l, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded layout %s: %w", e.Name(), err)
		}
		result = append(result, l)
	}

	sortByID(result)
	return result, nil
}

// Loader loads layouts from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll walks Root and loads every layout file, sorted by ID.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]Layout, error) {
	var result []Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		layout, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		result = append(result, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(result)
	return result, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	layout, err := Parse(data)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	layout.FilePath = path
	return layout, nil
}

// Load returns the embedded layouts merged with those found under dir.
// A directory layout replaces an embedded one with the same ID.
// A missing directory is not an error.
func Load(dir string) ([]Layout, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return builtin, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return builtin, nil
	}

	extra, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Layout, len(builtin)+len(extra))
	for _, l := range builtin {
		byID[l.ID] = l
	}
	for _, l := range extra {
		byID[l.ID] = l
	}

	result := make([]Layout, 0, len(byID))
	for _, l := range byID {
		result = append(result, l)
	}
	sortByID(result)
	return result, nil
}

// Find returns the layout with the given ID.
func Find(all []Layout, id string) (Layout, bool) {
	for _, l := range all {
		if l.ID == id {
			return l, true
		}
	}
	return Layout{}, false
}

func sortByID(ls []Layout) {
	sort.Slice(ls, func(i, j int) bool {
		return ls[i].ID < ls[j].ID
	})
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
