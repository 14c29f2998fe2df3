package game

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/autobattler/internal/log"
)

// vanillaUnit creates a unit with only hit points and a melee attack.
func vanillaUnit(name string, attack, hp, prep int) *CardDefinition {
	return &CardDefinition{
		ID:          name,
		Name:        name,
		Type:        CardTypeUnit,
		Preparation: prep,
		Keywords:    unit(attack, hp),
	}
}

// unitWith creates a unit with hp and the given extra keywords.
func unitWith(name string, hp int, kws ...AppliedKeyword) *CardDefinition {
	return &CardDefinition{
		ID:       name,
		Name:     name,
		Type:     CardTypeUnit,
		Keywords: append([]AppliedKeyword{{KeywordID: KWStartingHP, Value: intp(hp)}}, kws...),
	}
}

// withPreparation returns a copy of def with a different preparation.
func withPreparation(def *CardDefinition, prep int) *CardDefinition {
	c := *def
	c.Preparation = prep
	return &c
}

// powerCard creates a power carrying a single keyword.
func powerCard(name string, prep int, kw AppliedKeyword) *CardDefinition {
	return &CardDefinition{
		ID:          name,
		Name:        name,
		Type:        CardTypePower,
		Preparation: prep,
		Keywords:    []AppliedKeyword{kw},
	}
}

// makeDeck returns n copies of def.
func makeDeck(def *CardDefinition, n int) []*CardDefinition {
	deck := make([]*CardDefinition, n)
	for i := range deck {
		deck[i] = def
	}
	return deck
}

// makePaddedDeck puts cards on top of the deck and pads it with filler units
// up to size.
func makePaddedDeck(cards []*CardDefinition, size int) []*CardDefinition {
	deck := append([]*CardDefinition(nil), cards...)
	for i := len(deck); i < size; i++ {
		deck = append(deck, vanillaUnit(fmt.Sprintf("Filler %d", i), 1, 1, 5))
	}
	return deck
}

// newTestMatch builds a match for phase-level tests. P1 goes first and decks
// are not shuffled.
func newTestMatch(t *testing.T, cfg MatchConfig) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.NoShuffle = true
	if cfg.FirstPlayer == NoPlayer {
		cfg.FirstPlayer = Player1
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.Deck1 == nil {
		cfg.Deck1 = makePaddedDeck(nil, 10)
	}
	if cfg.Deck2 == nil {
		cfg.Deck2 = makePaddedDeck(nil, 10)
	}
	mt, err := NewMatch(cfg)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	return mt, logger
}

// runMatchToCompletion simulates a match and fails the test on error.
func runMatchToCompletion(t *testing.T, cfg MatchConfig) (*MatchState, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	m, err := Simulate(cfg)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !m.GameOver {
		t.Fatalf("match not over after Simulate (turn %d)", m.Turn)
	}
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
	return m, logger
}

// place puts a fresh unit built from def into the owner's slot.
func place(t *testing.T, mt *Match, owner PlayerID, slot int, def *CardDefinition) *UnitInPlay {
	t.Helper()
	kws, err := ResolveAll(mt.library, def.Keywords)
	if err != nil {
		t.Fatalf("resolve %s: %v", def.Name, err)
	}
	applyBoosts(kws)
	hp := maxHP(kws)
	u := &UnitInPlay{
		InstanceID: mt.State.newInstanceID(),
		Def:        def,
		Owner:      owner,
		Slot:       slot,
		CurrentHP:  hp,
		MaxHP:      hp,
		Attack:     attackValue(kws),
		Keywords:   kws,
	}
	mt.State.Field(owner)[slot] = u
	return u
}

// giveCard adds def to the player's hand with the given remaining preparation.
func giveCard(mt *Match, owner PlayerID, def *CardDefinition, prep int) *CardInHand {
	c := &CardInHand{
		InstanceID:           mt.State.newInstanceID(),
		Def:                  def,
		PreparationRemaining: prep,
	}
	p := mt.State.Player(owner)
	p.Hand = append(p.Hand, c)
	return c
}

// assertLeftPacked fails if any field has an empty slot before an occupied one.
func assertLeftPacked(t *testing.T, m *MatchState) {
	t.Helper()
	for i := range m.Fields {
		seenEmpty := false
		for slot, u := range m.Fields[i] {
			if u == nil {
				seenEmpty = true
				continue
			}
			if seenEmpty {
				t.Fatalf("turn %d: P%d field has a gap before slot %d", m.Turn, i+1, slot)
			}
			if u.Slot != slot {
				t.Fatalf("turn %d: %s stored slot %d but sits in slot %d", m.Turn, u.Def.Name, u.Slot, slot)
			}
		}
	}
}
