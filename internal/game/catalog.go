package game

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog is a validated, read-only set of card definitions and the keyword
// library they were validated against.
type Catalog struct {
	Library KeywordLibrary
	cards   map[string]*CardDefinition
}

// NewCatalog creates an empty catalog over lib.
func NewCatalog(lib KeywordLibrary) *Catalog {
	return &Catalog{Library: lib, cards: map[string]*CardDefinition{}}
}

// Add validates def and adds it to the catalog.
func (c *Catalog) Add(def *CardDefinition) error {
	if err := ValidateCard(c.Library, def); err != nil {
		return err
	}
	if _, dup := c.cards[def.ID]; dup {
		return &DataIntegrityError{CardID: def.ID, Reason: "duplicate card id"}
	}
	c.cards[def.ID] = def
	return nil
}

// Card looks up a definition by id.
func (c *Catalog) Card(id string) (*CardDefinition, error) {
	def, ok := c.cards[id]
	if !ok {
		return nil, fmt.Errorf("card %q not found in catalog", id)
	}
	return def, nil
}

// Cards returns every definition, sorted by id.
func (c *Catalog) Cards() []*CardDefinition {
	out := make([]*CardDefinition, 0, len(c.cards))
	for _, def := range c.cards {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Playable returns the definitions that may go into a deck, sorted by id.
func (c *Catalog) Playable() []*CardDefinition {
	var out []*CardDefinition
	for _, def := range c.Cards() {
		if def.Type.Playable() {
			out = append(out, def)
		}
	}
	return out
}

// Keywords returns the library entries, sorted by id.
func (c *Catalog) Keywords() []*LibraryEntry {
	out := make([]*LibraryEntry, 0, len(c.Library))
	for _, e := range c.Library {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CatalogFile is the top-level YAML structure of a catalog file. Keywords
// extend or replace built-in library entries with the same id.
type CatalogFile struct {
	Keywords []*LibraryEntry   `yaml:"keywords"`
	Cards    []*CardDefinition `yaml:"cards"`
}

// ParseCatalog parses and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	lib := DefaultLibrary()
	for _, e := range cf.Keywords {
		if e == nil || e.ID == "" {
			return nil, &DataIntegrityError{Reason: "keyword entry without id"}
		}
		lib[e.ID] = e
	}

	c := NewCatalog(lib)
	for _, def := range cf.Cards {
		if err := c.Add(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadCatalog reads a catalog file from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}
