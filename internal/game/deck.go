package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDeck is wrapped by every deck construction failure.
var ErrInvalidDeck = errors.New("invalid deck")

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name      string      `yaml:"name"`
	Hero      string      `yaml:"hero,omitempty"`
	Equipment []string    `yaml:"equipment,omitempty"`
	Cards     []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Deck is a constructed deck ready to be handed to a match.
type Deck struct {
	Name  string
	Hero  *HeroLoadout // nil when the deck names no hero
	Cards []*CardDefinition
}

// BuildDeck resolves a deck entry against the catalog. Only units and powers
// may be in the deck, and a hero caps the deck size at its command limit.
func BuildDeck(cat *Catalog, entry DeckEntry) (*Deck, error) {
	deck := &Deck{Name: entry.Name}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidDeck, entry.Name, fmt.Sprintf(format, args...))
	}

	for _, ce := range entry.Cards {
		if ce.Count <= 0 {
			return nil, fail("card %q has count %d", ce.ID, ce.Count)
		}
		def, err := cat.Card(ce.ID)
		if err != nil {
			return nil, fail("%v", err)
		}
		if !def.Type.Playable() {
			return nil, fail("%s is a %s card", def.ID, def.Type)
		}
		for i := 0; i < ce.Count; i++ {
			deck.Cards = append(deck.Cards, def)
		}
	}

	if entry.Hero == "" {
		if len(entry.Equipment) > 0 {
			return nil, fail("equipment without a hero")
		}
		return deck, nil
	}

	base, err := cat.Card(entry.Hero)
	if err != nil {
		return nil, fail("%v", err)
	}
	if base.Type != CardTypeHeroBase {
		return nil, fail("hero %s is a %s card", base.ID, base.Type)
	}
	lo := &HeroLoadout{Base: base}
	slots := map[EquipmentSlot]string{}
	for _, id := range entry.Equipment {
		eq, err := cat.Card(id)
		if err != nil {
			return nil, fail("%v", err)
		}
		if eq.Type != CardTypeEquipment {
			return nil, fail("%s is a %s card, not equipment", eq.ID, eq.Type)
		}
		if other, taken := slots[eq.EquipmentSlot]; taken {
			return nil, fail("%s and %s both use the %s slot", other, eq.ID, eq.EquipmentSlot)
		}
		slots[eq.EquipmentSlot] = eq.ID
		lo.Equipment = append(lo.Equipment, eq)
	}
	deck.Hero = lo

	limit, err := CommandLimit(cat.Library, lo)
	if err != nil {
		return nil, err
	}
	if len(deck.Cards) > limit {
		return nil, fail("%d cards exceed %s's command limit of %d", len(deck.Cards), base.Name, limit)
	}
	return deck, nil
}

// CommandLimit returns the maximum deck size for a hero loadout.
func CommandLimit(lib KeywordLibrary, lo *HeroLoadout) (int, error) {
	if lo == nil || lo.Base == nil {
		return 0, nil
	}
	limit := lo.Base.BaseCommand
	for _, def := range append([]*CardDefinition{lo.Base}, lo.Equipment...) {
		kws, err := ResolveAll(lib, def.Keywords)
		if err != nil {
			return 0, err
		}
		limit += commandValue(kws)
	}
	return limit, nil
}

// ParseDecks parses YAML deck data and builds every deck in it.
func ParseDecks(data []byte, cat *Catalog) ([]*Deck, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make([]*Deck, 0, len(df.Decks))
	for _, entry := range df.Decks {
		deck, err := BuildDeck(cat, entry)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, nil
}

// ParseDeckFile parses a YAML deck file and returns its decks in file order.
func ParseDeckFile(path string, cat *Catalog) ([]*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDecks(data, cat)
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int, cat *Catalog) (*Deck, error) {
	decks, err := ParseDeckFile(path, cat)
	if err != nil {
		return nil, err
	}
	return SelectDeck(decks, n)
}

// SelectDeck returns the Nth deck (1-indexed) of decks.
func SelectDeck(decks []*Deck, n int) (*Deck, error) {
	if n < 1 || n > len(decks) {
		return nil, fmt.Errorf("%w: deck %d not found (have %d decks)", ErrInvalidDeck, n, len(decks))
	}
	return decks[n-1], nil
}
