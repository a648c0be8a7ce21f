package persist

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ytget/popupbar/internal/model"
	"github.com/ytget/popupbar/internal/platform"
)

// Store reads and writes group files of one directory
type Store struct {
	dir string
}

// NewStore creates a store for dir. ~ and $ENV references are expanded.
func NewStore(dir string) (*Store, error) {
	resolved, err := ResolvePath(dir)
	if err != nil {
		return nil, err
	}
	return &Store{dir: resolved}, nil
}

// Dir returns the directory of the store
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the file path of the group called name
func (s *Store) PathFor(name string) string {
	if !strings.HasSuffix(name, FileExt) {
		name += FileExt
	}
	return filepath.Join(s.dir, name)
}

// Scan returns the paths of all group files in the store directory sorted
// by name. Unrelated JSON files are skipped. A missing directory holds no
// groups.
func (s *Store) Scan() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != FileExt {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if IsGroupFile(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// IsGroupFile reports whether path is a readable group file
func IsGroupFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	_, err = Decode(data, path)
	return err == nil
}

// LoadGroup reads the group file at path. A missing file is an empty group
// that is only created on its first save. A malformed file is logged and
// also treated as empty, but marked Damaged so it is never overwritten.
func LoadGroup(path string) (*Group, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewGroup(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load group %s: %w", path, err)
	}

	g, err := Decode(data, path)
	if errors.Is(err, ErrNotGroupFile) {
		return nil, err
	}
	if err != nil {
		log.Printf("Persist: ignoring malformed group file %s: %v", path, err)
		g = NewGroup(path)
		g.Damaged = true
		return g, nil
	}
	return g, nil
}

// SaveGroup writes g to its path atomically
func SaveGroup(g *Group) error {
	data, err := Encode(g)
	if err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(g.Path, data); err != nil {
		return fmt.Errorf("save group %s: %w", g.Path, err)
	}
	return nil
}

// Save stores the slots and settings of a bar as collection name of g and
// writes the group. An existing collection of that name is replaced. Locked
// groups are refused. On any failure g is left unchanged.
func Save(g *Group, name string, specs []model.SlotSpec, settings model.Settings) (*Collection, error) {
	c := &Collection{
		Name:     name,
		Slots:    append([]model.SlotSpec(nil), specs...),
		Settings: settings.Clone(),
	}
	err := commit(g, func() error { return g.Put(c) })
	if err != nil {
		return nil, err
	}
	log.Printf("Persist: saved %q (%d slots) to %s", name, len(specs), g.Path)
	return c, nil
}

// Load returns the ordered slot specs and settings of collection name
func Load(g *Group, name string) ([]model.SlotSpec, model.Settings, error) {
	c, ok := g.Collection(name)
	if !ok {
		return nil, model.Settings{}, fmt.Errorf("load %q from %s: %w", name, g.Path, model.ErrCollectionNotFound)
	}
	return append([]model.SlotSpec(nil), c.Slots...), c.Settings.Clone(), nil
}

// DeleteCollection removes collection name from g and writes the group
func DeleteCollection(g *Group, name string) error {
	return commit(g, func() error { return g.Delete(name) })
}

// RenameCollection renames a collection of g and writes the group
func RenameCollection(g *Group, oldName, newName string) error {
	return commit(g, func() error { return g.Rename(oldName, newName) })
}

// SetLocked sets the read-only flag of g and writes the group
func SetLocked(g *Group, locked bool) error {
	if g.Locked == locked {
		return nil
	}
	return commit(g, func() error {
		g.Locked = locked
		return nil
	})
}

// Duplicate copies g to path. The copy is always unlocked.
func Duplicate(g *Group, path string) (*Group, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("duplicate to %s: file already exists", path)
	}
	dup, err := g.Duplicate(path)
	if err != nil {
		return nil, err
	}
	if err := SaveGroup(dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// DeleteGroup removes the group file at path
func DeleteGroup(g *Group) error {
	if g.Locked {
		return fmt.Errorf("delete group %s: %w", g.Path, model.ErrGroupLocked)
	}
	if err := os.Remove(g.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete group %s: %w", g.Path, err)
	}
	return nil
}

// commit applies change to g and writes it, undoing change if either step
// fails
func commit(g *Group, change func() error) error {
	if g.Damaged {
		return fmt.Errorf("write group %s: %w", g.Path, ErrDamagedGroup)
	}
	snap := g.snapshot()
	if err := change(); err != nil {
		g.restore(snap)
		return err
	}
	if err := SaveGroup(g); err != nil {
		g.restore(snap)
		return err
	}
	return nil
}
