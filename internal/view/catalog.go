package view

import (
	"github.com/peterkuimelis/autobattler/internal/game"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	CardType      string        `json:"cardType"`
	Preparation   int           `json:"preparation"`
	FlavorText    string        `json:"flavorText,omitempty"`
	ATK           int           `json:"atk,omitempty"`
	HP            int           `json:"hp,omitempty"`
	EquipmentSlot string        `json:"equipmentSlot,omitempty"`
	BaseCommand   int           `json:"baseCommand,omitempty"`
	Affiliations  []string      `json:"affiliations,omitempty"`
	Keywords      []KeywordInfo `json:"keywords"`
}

// KeywordInfo is a resolved keyword as shown to a reader.
type KeywordInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Trigger     string `json:"trigger"`
	Target      string `json:"target"`
	Effect      string `json:"effect,omitempty"`
}

// DeckInfo is the JSON representation of a deck for the /api/decks endpoint.
type DeckInfo struct {
	Number    int      `json:"number"`
	Name      string   `json:"name"`
	Hero      string   `json:"hero,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
	Size      int      `json:"size"`
	Cards     []string `json:"cards"`
}

// BuildCardInfo resolves def's keywords against lib.
func BuildCardInfo(lib game.KeywordLibrary, def *game.CardDefinition) (CardInfo, error) {
	kws, err := game.ResolveAll(lib, def.Keywords)
	if err != nil {
		return CardInfo{}, err
	}
	ci := CardInfo{
		ID:           def.ID,
		Name:         def.Name,
		CardType:     def.Type.String(),
		Preparation:  def.Preparation,
		FlavorText:   def.FlavorText,
		BaseCommand:  def.BaseCommand,
		Affiliations: def.Affiliations,
		Keywords:     []KeywordInfo{},
	}
	if def.Type == game.CardTypeEquipment {
		ci.EquipmentSlot = def.EquipmentSlot.String()
	}
	if def.Type == game.CardTypeUnit {
		ci.ATK, ci.HP = game.UnitStats(kws)
	}
	for _, k := range kws {
		ci.Keywords = append(ci.Keywords, KeywordInfo{
			ID:          k.KeywordID,
			Name:        k.Name,
			Description: k.Description,
			Trigger:     k.Trigger.String(),
			Target:      k.Target.String(),
			Effect:      k.Effect,
		})
	}
	return ci, nil
}

// BuildCatalogInfo lists every card in the catalog, sorted by id.
func BuildCatalogInfo(cat *game.Catalog) ([]CardInfo, error) {
	cards := []CardInfo{}
	for _, def := range cat.Cards() {
		ci, err := BuildCardInfo(cat.Library, def)
		if err != nil {
			return nil, err
		}
		cards = append(cards, ci)
	}
	return cards, nil
}

// BuildKeywordInfo lists the library entries, sorted by id.
func BuildKeywordInfo(lib game.KeywordLibrary) []KeywordInfo {
	cat := game.NewCatalog(lib)
	out := []KeywordInfo{}
	for _, e := range cat.Keywords() {
		out = append(out, KeywordInfo{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Trigger:     e.Trigger.String(),
			Target:      e.Target.String(),
			Effect:      e.Effect,
		})
	}
	return out
}

// BuildDeckInfo numbers decks from 1 in file order.
func BuildDeckInfo(decks []*game.Deck) []DeckInfo {
	out := []DeckInfo{}
	for i, d := range decks {
		di := DeckInfo{Number: i + 1, Name: d.Name, Size: len(d.Cards)}
		if d.Hero != nil && d.Hero.Base != nil {
			di.Hero = d.Hero.Base.Name
			for _, eq := range d.Hero.Equipment {
				di.Equipment = append(di.Equipment, eq.Name)
			}
		}
		// Unique card names for display
		seen := make(map[string]bool)
		for _, c := range d.Cards {
			if !seen[c.ID] {
				di.Cards = append(di.Cards, c.Name)
				seen[c.ID] = true
			}
		}
		out = append(out, di)
	}
	return out
}
