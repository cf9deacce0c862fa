// Package knowledge manages the catalog of stored knowledge sources the
// supervisor can bind query components to. Sources are named documents on
// disk, described by a YAML catalog file.
package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source describes one stored knowledge document.
type Source struct {
	// Name is the catalog key referenced by query components.
	Name string `yaml:"name" json:"name"`
	// Description summarizes what the document covers.
	Description string `yaml:"description" json:"description"`
	// File is the document path, relative to the catalog file.
	File string `yaml:"file" json:"file"`
}

// catalogFile is the on-disk YAML shape of the catalog.
type catalogFile struct {
	Sources []Source `yaml:"sources"`
}

// Catalog holds the loaded knowledge sources. Document content is read
// lazily on first lookup and cached. Safe for concurrent use.
type Catalog struct {
	baseDir string

	mu      sync.RWMutex
	sources map[string]Source
	order   []string
	cache   map[string]string
}

// Empty returns a catalog with no sources. Lookups against it fail, which
// keeps the decomposer from ever producing knowledge components.
func Empty() *Catalog {
	return &Catalog{
		sources: make(map[string]Source),
		cache:   make(map[string]string),
	}
}

// Load reads the catalog from a YAML file. Validation is eager: every
// source needs a name and a file, and names must be unique.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge catalog: %w", err)
	}

	c := &Catalog{
		baseDir: filepath.Dir(path),
		sources: make(map[string]Source, len(file.Sources)),
		cache:   make(map[string]string),
	}
	for _, src := range file.Sources {
		if src.Name == "" {
			return nil, fmt.Errorf("knowledge catalog %s: source missing name", path)
		}
		if src.File == "" {
			return nil, fmt.Errorf("knowledge catalog %s: source %q missing file", path, src.Name)
		}
		if _, exists := c.sources[src.Name]; exists {
			return nil, fmt.Errorf("knowledge catalog %s: duplicate source %q", path, src.Name)
		}
		c.sources[src.Name] = src
		c.order = append(c.order, src.Name)
	}
	return c, nil
}

// SourceNames returns the catalog's source names in catalog order.
func (c *Catalog) SourceNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Sources returns the source descriptors in catalog order.
func (c *Catalog) Sources() []Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sources := make([]Source, 0, len(c.order))
	for _, name := range c.order {
		sources = append(sources, c.sources[name])
	}
	return sources
}

// Has reports whether a source name exists in the catalog.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.sources[name]
	return ok
}

// Lookup returns a source's document content, reading it from disk on
// first access.
func (c *Catalog) Lookup(name string) (string, error) {
	c.mu.RLock()
	content, cached := c.cache[name]
	src, ok := c.sources[name]
	c.mu.RUnlock()

	if cached {
		return content, nil
	}
	if !ok {
		return "", fmt.Errorf("unknown knowledge source %q", name)
	}

	data, err := os.ReadFile(filepath.Join(c.baseDir, src.File))
	if err != nil {
		return "", fmt.Errorf("failed to read knowledge source %q: %w", name, err)
	}

	c.mu.Lock()
	c.cache[name] = string(data)
	c.mu.Unlock()
	return string(data), nil
}
