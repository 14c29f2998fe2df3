package view

import (
	"github.com/peterkuimelis/autobattler/internal/game"
)

// SimulateRequest selects two numbered decks for one match.
type SimulateRequest struct {
	Deck1      int    `json:"deck1"`
	Deck2      int    `json:"deck2"`
	Seed       uint64 `json:"seed,omitempty"`
	StartingHP int    `json:"starting_hp,omitempty"`
}

// MatchConfig resolves the request's deck numbers against decks.
func (r SimulateRequest) MatchConfig(decks []*game.Deck, lib game.KeywordLibrary) (game.MatchConfig, error) {
	d1, err := game.SelectDeck(decks, r.Deck1)
	if err != nil {
		return game.MatchConfig{}, err
	}
	d2, err := game.SelectDeck(decks, r.Deck2)
	if err != nil {
		return game.MatchConfig{}, err
	}
	return game.MatchConfig{
		Deck1:      d1.Cards,
		Deck2:      d2.Cards,
		Hero1:      d1.Hero,
		Hero2:      d2.Hero,
		StartingHP: r.StartingHP,
		Library:    lib,
		Seed:       r.Seed,
	}, nil
}
