package game

import (
	"errors"
	"testing"
)

func TestParseDecksFromRepoFile(t *testing.T) {
	decks, err := ParseDeckFile("../../decks.yaml", DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if len(decks) != 3 {
		t.Fatalf("Expected 3 decks, got %d", len(decks))
	}
	for _, d := range decks {
		if len(d.Cards) == 0 {
			t.Errorf("%s: empty deck", d.Name)
		}
	}
	if decks[0].Hero == nil || decks[0].Hero.Base.ID != "knight_commander" || len(decks[0].Hero.Equipment) != 2 {
		t.Errorf("Expected the first deck to field the equipped knight, got %+v", decks[0].Hero)
	}
	if decks[2].Hero != nil {
		t.Error("Expected the third deck to have no hero")
	}

	d, err := DeckByNumber("../../decks.yaml", 2, DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Horde Rush" {
		t.Errorf("Expected Horde Rush, got %s", d.Name)
	}
	if _, err := DeckByNumber("../../decks.yaml", 9, DefaultCatalog()); err == nil {
		t.Error("Expected an error for a missing deck number")
	}
}

func TestBuildDeckRules(t *testing.T) {
	cat := DefaultCatalog()
	tests := []struct {
		name    string
		entry   DeckEntry
		wantErr bool
	}{
		{
			name:  "within command limit",
			entry: DeckEntry{Name: "ok", Hero: "knight_commander", Cards: []CardEntry{{ID: "city_guard", Count: 30}}},
		},
		{
			name:  "banner raises the limit",
			entry: DeckEntry{Name: "ok", Hero: "knight_commander", Equipment: []string{"war_banner"}, Cards: []CardEntry{{ID: "city_guard", Count: 35}}},
		},
		{
			name:    "over command limit",
			entry:   DeckEntry{Name: "big", Hero: "knight_commander", Cards: []CardEntry{{ID: "city_guard", Count: 31}}},
			wantErr: true,
		},
		{
			name:    "equipment in deck",
			entry:   DeckEntry{Name: "bad", Cards: []CardEntry{{ID: "steel_plate", Count: 1}}},
			wantErr: true,
		},
		{
			name:    "hero is not a hero",
			entry:   DeckEntry{Name: "bad", Hero: "city_guard", Cards: []CardEntry{{ID: "city_guard", Count: 1}}},
			wantErr: true,
		},
		{
			name:    "duplicate slot",
			entry:   DeckEntry{Name: "bad", Hero: "orc_warlord", Equipment: []string{"steel_plate", "steel_plate"}, Cards: []CardEntry{{ID: "goblin_scout", Count: 1}}},
			wantErr: true,
		},
		{
			name:    "equipment without hero",
			entry:   DeckEntry{Name: "bad", Equipment: []string{"war_banner"}, Cards: []CardEntry{{ID: "goblin_scout", Count: 1}}},
			wantErr: true,
		},
		{
			name:    "unknown card",
			entry:   DeckEntry{Name: "bad", Cards: []CardEntry{{ID: "dragon", Count: 1}}},
			wantErr: true,
		},
		{
			name:    "zero count",
			entry:   DeckEntry{Name: "bad", Cards: []CardEntry{{ID: "goblin_scout", Count: 0}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildDeck(cat, tt.entry)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDeck) {
					t.Errorf("Expected ErrInvalidDeck, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

const testCatalog = `
keywords:
  - id: KW_POISON_CLOUD
    name: Poison Cloud
    description: "Deals {VALUE} {DAMAGETYPE} damage to every enemy unit."
    trigger: OnPlay
    target: AllEnemies
    effect: damage
    requires_value: true
    damage_type: Poison
cards:
  - id: swamp_rat
    name: Swamp Rat
    type: Unit
    preparation: 1
    affiliations: [Swamp]
    keywords:
      - id: KW_STARTING_HP
        value: 2
      - id: KW_MELEE_UNIT
        value: 1
  - id: miasma
    name: Miasma
    type: Power
    preparation: 2
    keywords:
      - id: KW_POISON_CLOUD
        value: 1
  - id: bog_witch
    name: Bog Witch
    type: HeroBase
    base_command: 20
    keywords:
      - id: KW_STARTING_HP
        value: 30
  - id: reed_helm
    name: Reed Helm
    type: Equipment
    equipment_slot: Helm
    keywords:
      - id: KW_BONUS_HP
        value: 2
`

func TestParseCatalog(t *testing.T) {
	cat, err := ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(cat.Cards()); n != 4 {
		t.Fatalf("Expected 4 cards, got %d", n)
	}
	if n := len(cat.Playable()); n != 2 {
		t.Errorf("Expected 2 playable cards, got %d", n)
	}

	rat, err := cat.Card("swamp_rat")
	if err != nil {
		t.Fatal(err)
	}
	if rat.Type != CardTypeUnit || !rat.HasAffiliation("Swamp") {
		t.Errorf("Expected a Swamp unit, got %+v", rat)
	}
	helm, _ := cat.Card("reed_helm")
	if helm.EquipmentSlot != SlotHelm {
		t.Errorf("Expected Helm slot, got %s", helm.EquipmentSlot)
	}

	entry, err := cat.Library.Lookup("KW_POISON_CLOUD")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Trigger != TriggerOnPlay || entry.Target != TargetAllEnemies || entry.Effect != BehaviorDamage || *entry.DamageType != "Poison" {
		t.Errorf("Expected an OnPlay/AllEnemies Poison keyword, got %+v", entry)
	}
	if _, err := cat.Library.Lookup(KWMelee); err != nil {
		t.Error("Expected built-in keywords to stay available")
	}
}

func TestParseCatalogRejectsBadContent(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown keyword", "cards:\n  - {id: x, name: X, type: Power, keywords: [{id: KW_NOPE}]}\n"},
		{"duplicate id", "cards:\n  - {id: x, name: X, type: Power}\n  - {id: x, name: Y, type: Power}\n"},
		{"unit without hp", "cards:\n  - {id: x, name: X, type: Unit}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(tt.yaml)); !errors.Is(err, ErrDataIntegrity) {
				t.Errorf("Expected ErrDataIntegrity, got %v", err)
			}
		})
	}

	if _, err := ParseCatalog([]byte("cards:\n  - {id: x, name: X, type: Dragon}\n")); err == nil {
		t.Error("Expected an error for an unknown card type")
	}
}

func TestCatalogDrivesMatch(t *testing.T) {
	cat, err := ParseCatalog([]byte(testCatalog))
	if err != nil {
		t.Fatal(err)
	}
	deck, err := BuildDeck(cat, DeckEntry{
		Name:      "Swamp",
		Hero:      "bog_witch",
		Equipment: []string{"reed_helm"},
		Cards:     []CardEntry{{ID: "swamp_rat", Count: 10}, {ID: "miasma", Count: 5}},
	})
	if err != nil {
		t.Fatal(err)
	}
	m, _ := runMatchToCompletion(t, MatchConfig{
		Deck1: deck.Cards, Hero1: deck.Hero,
		Deck2: deck.Cards, Hero2: deck.Hero,
		Library: cat.Library,
		Seed:    3,
	})
	if m.Player(Player1).Hero.MaxHP != 32 {
		t.Errorf("Expected 32 max HP from base and helm, got %d", m.Player(Player1).Hero.MaxHP)
	}
}
