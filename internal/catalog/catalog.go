// Package catalog provides the session templates a workout can be started from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/meltforce/jellyfit/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// file is the on-disk shape of a template file. YAML uses a "templates" list,
// TOML a repeated [[template]] table.
type file struct {
	Templates []models.Template `yaml:"templates" toml:"template"`
}

// Default returns the built-in templates.
func Default() []models.Template {
	var f file
	if err := yaml.Unmarshal(defaultTemplates, &f); err != nil {
		panic(fmt.Sprintf("embedded templates.yaml: %v", err))
	}
	return f.Templates
}

// Load reads templates from a .yaml, .yml or .toml file. Templates without an
// ID are given slug(name); a template without a name, or whose name has no
// letters or digits to slug, is an error.
func Load(path string) ([]models.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported template file extension %q", ext)
	}

	for i := range f.Templates {
		t := &f.Templates[i]
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			return nil, fmt.Errorf("template %d in %s: name is required", i+1, path)
		}
		if t.ID == "" {
			t.ID = Slug(t.Name)
			if t.ID == "" {
				return nil, fmt.Errorf("template %d in %s: name %q yields an empty id, set id explicitly", i+1, path, t.Name)
			}
		}
		if t.Category == "" {
			t.Category = models.CategoryCustom
		}
	}
	return f.Templates, nil
}

// Catalog is a lookup of templates by ID. Later additions replace earlier
// templates with the same ID. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Template
}

// New returns a catalog holding the built-in templates followed by extra.
func New(extra ...models.Template) *Catalog {
	c := &Catalog{byID: make(map[string]models.Template)}
	c.Add(Default()...)
	c.Add(extra...)
	return c
}

// Add inserts or replaces templates.
func (c *Catalog) Add(templates ...models.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range templates {
		if _, ok := c.byID[t.ID]; !ok {
			c.order = append(c.order, t.ID)
		}
		c.byID[t.ID] = t
	}
}

// Get returns the template with the given ID.
func (c *Catalog) Get(id string) (models.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byID[id]
	return t, ok
}

// List returns all templates in insertion order.
func (c *Catalog) List() []models.Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByCategory returns the templates of one category.
func (c *Catalog) ByCategory(cat models.Category) []models.Template {
	return slices.DeleteFunc(c.List(), func(t models.Template) bool {
		return t.Category != cat
	})
}

// Slug lower-cases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}
