// Package view holds the JSON snapshots of match state served to clients.
package view

import (
	"github.com/peterkuimelis/autobattler/internal/game"
	"github.com/peterkuimelis/autobattler/internal/log"
)

// --- Server → Client messages ---

// Message is the envelope for streamed WebSocket messages.
type Message struct {
	Type string `json:"type"` // "event", "result" or "error"

	// For "event"
	Event *EventView `json:"event,omitempty"`

	// For "result"
	Match *MatchView `json:"match,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified match event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// MatchView is the full final (or current) state of a match.
type MatchView struct {
	ID               string       `json:"id"`
	Turn             int          `json:"turn"`
	Phase            string       `json:"phase"`
	ActivePlayer     int          `json:"active_player"`
	GameOver         bool         `json:"game_over"`
	Winner           *int         `json:"winner"` // null on a draw
	Result           string       `json:"result"`
	TurnLimitReached bool         `json:"turn_limit_reached"`
	Players          []PlayerView `json:"players"`
	Log              []string     `json:"log"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	ID      int                        `json:"id"`
	Hero    *HeroView                  `json:"hero,omitempty"`
	Hand    []HandView                 `json:"hand"`
	Field   [game.FieldSlots]*UnitView `json:"field"`
	Deck    []string                   `json:"deck"`
	Discard []string                   `json:"discard"`
	Fatigue int                        `json:"fatigue"`
}

// HeroView describes a hero.
type HeroView struct {
	Name         string            `json:"name"`
	HP           int               `json:"hp"`
	MaxHP        int               `json:"max_hp"`
	CommandLimit int               `json:"command_limit,omitempty"`
	Equipment    map[string]string `json:"equipment,omitempty"`
	Affiliations []string          `json:"affiliations,omitempty"`
}

// HandView is one card in hand.
type HandView struct {
	InstanceID  int    `json:"instance_id"`
	Name        string `json:"name"`
	Preparation int    `json:"preparation"`
	Blocked     bool   `json:"blocked,omitempty"`
}

// UnitView describes a unit in a field slot. Empty slots are null.
type UnitView struct {
	InstanceID int      `json:"instance_id"`
	Name       string   `json:"name"`
	ATK        int      `json:"atk"`
	HP         int      `json:"hp"`
	MaxHP      int      `json:"max_hp"`
	Statuses   []string `json:"statuses,omitempty"`
}

// BuildEventView converts a logged event.
func BuildEventView(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Player:  e.Player,
		Type:    e.Type.String(),
		Card:    e.Card,
		Details: e.Details,
	}
}

// BuildMatchView creates a snapshot of m.
func BuildMatchView(m *game.MatchState) *MatchView {
	mv := &MatchView{
		ID:               m.ID,
		Turn:             m.Turn,
		Phase:            m.Phase.String(),
		ActivePlayer:     int(m.ActivePlayer),
		GameOver:         m.GameOver,
		Result:           m.Result,
		TurnLimitReached: m.TurnLimitReached,
		Players:          []PlayerView{},
		Log:              append([]string{}, m.Log...),
	}
	if m.Winner != game.NoPlayer {
		w := int(m.Winner)
		mv.Winner = &w
	}
	for i, p := range m.Players {
		if p == nil {
			continue
		}
		mv.Players = append(mv.Players, buildPlayerView(p, &m.Fields[i]))
	}
	return mv
}

func buildPlayerView(p *game.PlayerState, f *game.Field) PlayerView {
	pv := PlayerView{
		ID:      int(p.ID),
		Hand:    []HandView{},
		Deck:    names(p.Deck),
		Discard: names(p.Discard),
		Fatigue: p.Fatigue,
	}
	if h := p.Hero; h != nil {
		hv := &HeroView{
			Name:         h.Name,
			HP:           h.CurrentHP,
			MaxHP:        h.MaxHP,
			CommandLimit: h.CommandLimit,
			Affiliations: h.Affiliations,
		}
		for slot, def := range h.Equipment {
			if hv.Equipment == nil {
				hv.Equipment = map[string]string{}
			}
			hv.Equipment[slot.String()] = def.Name
		}
		pv.Hero = hv
	}
	for _, c := range p.Hand {
		pv.Hand = append(pv.Hand, HandView{
			InstanceID:  c.InstanceID,
			Name:        c.Def.Name,
			Preparation: c.PreparationRemaining,
			Blocked:     c.Blocked,
		})
	}
	for i, u := range f {
		pv.Field[i] = UnitZoneView(u)
	}
	return pv
}

// UnitZoneView creates a UnitView for a field slot, nil when empty.
func UnitZoneView(u *game.UnitInPlay) *UnitView {
	if u == nil {
		return nil
	}
	uv := &UnitView{
		InstanceID: u.InstanceID,
		Name:       u.Def.Name,
		ATK:        u.Attack,
		HP:         u.CurrentHP,
		MaxHP:      u.MaxHP,
	}
	for _, t := range u.Temporary {
		if t.AppliedStatus != "" {
			uv.Statuses = append(uv.Statuses, t.AppliedStatus)
		}
	}
	return uv
}

func names(defs []*game.CardDefinition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Name)
	}
	return out
}
