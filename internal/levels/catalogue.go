package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalogue is the ordered set of levels.
type Catalogue struct {
	levels []*Level
	byID   map[string]*Level
}

// Load reads every *.yaml file in dir of fsys as one level, validates it
// and orders the result by level number. Level numbers must be unique.
func Load(fsys fs.FS, dir string) (*Catalogue, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("levels: glob %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("levels: no level files in %s", dir)
	}

	c := &Catalogue{byID: make(map[string]*Level, len(files))}
	numbers := make(map[int]string, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
		var l Level
		if err := yaml.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("levels: parse %s: %w", name, err)
		}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("levels: %s: %w", name, err)
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q in %s", ErrInvalidLevel, l.ID, name)
		}
		if other, dup := numbers[l.Number]; dup {
			return nil, fmt.Errorf("%w: %q and %q share number %d", ErrInvalidLevel, other, l.ID, l.Number)
		}
		numbers[l.Number] = l.ID
		c.byID[l.ID] = &l
		c.levels = append(c.levels, &l)
	}

	sort.Slice(c.levels, func(i, j int) bool {
		return c.levels[i].Number < c.levels[j].Number
	})
	return c, nil
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalogue
	defaultErr  error
)

// Default returns the built-in catalogue.
func Default() (*Catalogue, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(dataFS, "data")
	})
	return defaultCat, defaultErr
}

// MustDefault is Default for init-time callers; it panics on a broken
// embedded catalogue.
func MustDefault() *Catalogue {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// All returns the levels in climbing order.
func (c *Catalogue) All() []*Level {
	out := make([]*Level, len(c.levels))
	copy(out, c.levels)
	return out
}

// Len returns the number of levels.
func (c *Catalogue) Len() int {
	return len(c.levels)
}

// Get looks up a level by ID.
func (c *Catalogue) Get(id string) (*Level, error) {
	l, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
	}
	return l, nil
}

// Previous returns the level right below l on the climb, if any.
func (c *Catalogue) Previous(l *Level) (*Level, bool) {
	for i, x := range c.levels {
		if x.ID == l.ID && i > 0 {
			return c.levels[i-1], true
		}
	}
	return nil, false
}

// Next returns the level right above l on the climb, if any.
func (c *Catalogue) Next(l *Level) (*Level, bool) {
	for i, x := range c.levels {
		if x.ID == l.ID && i+1 < len(c.levels) {
			return c.levels[i+1], true
		}
	}
	return nil, false
}
