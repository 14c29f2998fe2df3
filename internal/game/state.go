package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	DefaultHeroHP = 40
	MaxHandSize   = 7
	FieldSlots    = 7
	MaxTurns      = 100
)

// Field is one player's row of unit slots, left to right.
type Field [FieldSlots]*UnitInPlay

// FirstEmptySlot returns the leftmost empty slot, or -1.
func (f *Field) FirstEmptySlot() int {
	for i, u := range f {
		if u == nil {
			return i
		}
	}
	return -1
}

// Units returns all occupied slots in slot order.
func (f *Field) Units() []*UnitInPlay {
	var result []*UnitInPlay
	for _, u := range f {
		if u != nil {
			result = append(result, u)
		}
	}
	return result
}

// LivingUnits returns all units with HP left, in slot order.
func (f *Field) LivingUnits() []*UnitInPlay {
	var result []*UnitInPlay
	for _, u := range f {
		if u.Alive() {
			result = append(result, u)
		}
	}
	return result
}

// removeAndShift clears slot i and moves every unit to its right one slot left.
// It returns the units that moved, in their new order.
func (f *Field) removeAndShift(i int) []*UnitInPlay {
	var moved []*UnitInPlay
	for j := i; j < FieldSlots-1; j++ {
		f[j] = f[j+1]
		if f[j] != nil {
			f[j].Slot = j
			moved = append(moved, f[j])
		}
	}
	f[FieldSlots-1] = nil
	return moved
}

// PlayerState represents one player's side of a match.
type PlayerState struct {
	ID      PlayerID
	Hero    *HeroInPlay
	Hand    []*CardInHand
	Deck    []*CardDefinition // front of deck is index 0
	Discard []*CardDefinition
	Fatigue int
}

// removeFromHand removes the card at index i from the hand.
func (p *PlayerState) removeFromHand(i int) *CardInHand {
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return c
}

// MatchState holds the complete state of one match.
type MatchState struct {
	ID           string
	Turn         int
	ActivePlayer PlayerID
	Phase        Phase
	Players      [2]*PlayerState
	Fields       [2]Field
	Log          []string

	GameOver         bool
	Winner           PlayerID // NoPlayer on a draw
	Result           string
	TurnLimitReached bool

	nextInstanceID   int
	firstDrawSkipped bool
}

// NewMatchState creates an empty match with no players.
func NewMatchState() *MatchState {
	return &MatchState{
		ID:             uuid.NewString(),
		nextInstanceID: 1,
	}
}

// Player returns the state of the given player.
func (m *MatchState) Player(id PlayerID) *PlayerState {
	return m.Players[id.index()]
}

// Field returns the field of the given player.
func (m *MatchState) Field(id PlayerID) *Field {
	return &m.Fields[id.index()]
}

// Active returns the active player's state.
func (m *MatchState) Active() *PlayerState {
	return m.Player(m.ActivePlayer)
}

// Opponent returns the non-active player's state.
func (m *MatchState) Opponent() *PlayerState {
	return m.Player(m.ActivePlayer.Opponent())
}

func (m *MatchState) newInstanceID() int {
	id := m.nextInstanceID
	m.nextInstanceID++
	return id
}

// Clone returns a structural copy of the match. Card definitions are shared;
// everything the engine mutates is copied.
func (m *MatchState) Clone() *MatchState {
	c := *m
	c.Log = append([]string(nil), m.Log...)
	for i, p := range m.Players {
		if p != nil {
			c.Players[i] = p.clone()
		}
	}
	for i := range m.Fields {
		for j, u := range m.Fields[i] {
			if u != nil {
				c.Fields[i][j] = u.clone()
			}
		}
	}
	return &c
}

func (p *PlayerState) clone() *PlayerState {
	c := *p
	if p.Hero != nil {
		c.Hero = p.Hero.clone()
	}
	c.Hand = make([]*CardInHand, len(p.Hand))
	for i, h := range p.Hand {
		hc := *h
		c.Hand[i] = &hc
	}
	c.Deck = append([]*CardDefinition(nil), p.Deck...)
	c.Discard = append([]*CardDefinition(nil), p.Discard...)
	return &c
}

func (u *UnitInPlay) clone() *UnitInPlay {
	c := *u
	c.Keywords = append([]EffectiveKeyword(nil), u.Keywords...)
	c.Temporary = append([]TemporaryKeyword(nil), u.Temporary...)
	if u.Barrier != nil {
		b := *u.Barrier
		c.Barrier = &b
	}
	return &c
}

func (h *HeroInPlay) clone() *HeroInPlay {
	c := *h
	c.Keywords = append([]EffectiveKeyword(nil), h.Keywords...)
	c.EquipmentKeywords = append([]EffectiveKeyword(nil), h.EquipmentKeywords...)
	c.Affiliations = append([]string(nil), h.Affiliations...)
	if h.Equipment != nil {
		c.Equipment = make(map[EquipmentSlot]*CardDefinition, len(h.Equipment))
		for s, d := range h.Equipment {
			c.Equipment[s] = d
		}
	}
	return &c
}

// shuffle shuffles a deck in place using the match RNG.
func shuffle(rng *rand.Rand, deck []*CardDefinition) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}
