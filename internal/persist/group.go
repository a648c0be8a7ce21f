// Package persist stores named collections of slot specs and bar settings
// in JSON group files.
package persist

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/ytget/popupbar/internal/model"
)

// Reserved top-level keys of a group file
const (
	// SentinelKey marks a JSON file as a collection group file
	SentinelKey = "__popupbar_group__"
	// LockedKey holds the read-only flag of a group
	LockedKey = "__locked__"
)

// FileExt is the extension of group files
const FileExt = ".json"

var (
	// ErrNotGroupFile is returned for JSON files without the sentinel key
	ErrNotGroupFile = errors.New("not a collection group file")
	// ErrInvalidName is returned for empty or reserved collection names
	ErrInvalidName = errors.New("invalid collection name")
	// ErrDamagedGroup is returned when writing a group whose file could not
	// be read completely
	ErrDamagedGroup = errors.New("group file is damaged")
	// ErrNotImage is returned when an overlay image is not an image file
	ErrNotImage = errors.New("not an image file")
)

// Collection is the unit of save and load: ordered slot specs plus settings
type Collection struct {
	Name     string
	Slots    []model.SlotSpec
	Settings model.Settings
}

// Clone returns a deep copy of c
func (c *Collection) Clone() (*Collection, error) {
	out := &Collection{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copy collection %q: %w", c.Name, err)
	}
	return out, nil
}

// SlotNames returns the ordered slot names of c
func (c *Collection) SlotNames() []string {
	names := make([]string, 0, len(c.Slots))
	for _, s := range c.Slots {
		names = append(names, s.Name)
	}
	return names
}

// Group is one group file holding named collections in file order
type Group struct {
	Path   string
	Locked bool
	// Damaged is set when the file was malformed or had unreadable
	// collections. Such a group is never written back to Path.
	Damaged bool

	order       []string
	collections map[string]*Collection
}

// NewGroup creates an empty, unlocked group for path
func NewGroup(path string) *Group {
	return &Group{
		Path:        path,
		collections: make(map[string]*Collection),
	}
}

// Name returns the group name, the file name without extension
func (g *Group) Name() string {
	return strings.TrimSuffix(filepath.Base(g.Path), FileExt)
}

// Names returns the collection names in file order
func (g *Group) Names() []string {
	return append([]string(nil), g.order...)
}

// Len returns the number of collections
func (g *Group) Len() int {
	return len(g.order)
}

// Collection returns the collection with the given name
func (g *Group) Collection(name string) (*Collection, bool) {
	c, ok := g.collections[name]
	return c, ok
}

// Put adds c, replacing a collection of the same name in place
func (g *Group) Put(c *Collection) error {
	if g.Locked {
		return fmt.Errorf("save %q: %w", c.Name, model.ErrGroupLocked)
	}
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if _, exists := g.collections[c.Name]; !exists {
		g.order = append(g.order, c.Name)
	}
	g.collections[c.Name] = c
	return nil
}

// Delete removes the named collection
func (g *Group) Delete(name string) error {
	if g.Locked {
		return fmt.Errorf("delete %q: %w", name, model.ErrGroupLocked)
	}
	if _, ok := g.collections[name]; !ok {
		return fmt.Errorf("delete %q: %w", name, model.ErrCollectionNotFound)
	}
	delete(g.collections, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

// Rename renames a collection keeping its position
func (g *Group) Rename(oldName, newName string) error {
	if g.Locked {
		return fmt.Errorf("rename %q: %w", oldName, model.ErrGroupLocked)
	}
	if err := ValidateName(newName); err != nil {
		return err
	}
	c, ok := g.collections[oldName]
	if !ok {
		return fmt.Errorf("rename %q: %w", oldName, model.ErrCollectionNotFound)
	}
	if oldName == newName {
		return nil
	}
	if _, exists := g.collections[newName]; exists {
		return fmt.Errorf("rename %q to %q: collection already exists", oldName, newName)
	}
	delete(g.collections, oldName)
	c.Name = newName
	g.collections[newName] = c
	for i, n := range g.order {
		if n == oldName {
			g.order[i] = newName
		}
	}
	return nil
}

// Duplicate returns an unlocked deep copy of g stored at path
func (g *Group) Duplicate(path string) (*Group, error) {
	dup := NewGroup(path)
	for _, name := range g.order {
		c, err := g.collections[name].Clone()
		if err != nil {
			return nil, err
		}
		dup.order = append(dup.order, name)
		dup.collections[name] = c
	}
	return dup, nil
}

// snapshot captures the collection set so a failed write can be undone
type snapshot struct {
	locked      bool
	order       []string
	collections map[string]*Collection
	names       map[*Collection]string
}

func (g *Group) snapshot() snapshot {
	s := snapshot{
		locked:      g.Locked,
		order:       append([]string(nil), g.order...),
		collections: make(map[string]*Collection, len(g.collections)),
		names:       make(map[*Collection]string, len(g.collections)),
	}
	for k, v := range g.collections {
		s.collections[k] = v
		s.names[v] = v.Name
	}
	return s
}

func (g *Group) restore(s snapshot) {
	g.Locked = s.locked
	g.order = s.order
	g.collections = s.collections
	for c, name := range s.names {
		c.Name = name
	}
}

// ValidateName rejects names that cannot be stored as a collection key
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if name == SentinelKey || name == LockedKey {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}
	return nil
}
