package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/peterkuimelis/autobattler/internal/log"
)

// endTurn runs the active player's PlayerTurnEnd abilities, enforces the
// hand size limit, clears blocked powers and ticks the active player's
// temporary keywords. A poison deals its value as it ticks.
func (mt *Match) endTurn() error {
	m := mt.State
	mt.enterPhase(PhaseEndTurn)
	p := m.Active()

	if err := mt.turnAbilities(TriggerPlayerTurnEnd); err != nil || m.GameOver {
		return err
	}

	for _, c := range mt.handOverflow(p) {
		p.Discard = append(p.Discard, c.Def)
		mt.log(log.NewHandSizeDiscardEvent(m.Turn, m.Phase.String(), int(p.ID), c.Def.Name))
	}

	for _, c := range p.Hand {
		c.Blocked = false
	}

	for _, u := range m.Field(p.ID).Units() {
		kept := u.Temporary[:0]
		for _, t := range u.Temporary {
			if t.Effect == BehaviorPoison && u.Alive() {
				dealt := mt.hitUnit(u, t.Value, t.DamageType, 0)
				mt.log(log.NewEffectEvent(m.Turn, m.Phase.String(), int(p.ID), u.Def.Name, fmt.Sprintf("takes %d %s damage (HP left %d)", dealt, t.DamageType, u.CurrentHP)))
			}
			t.TurnsLeft--
			if t.TurnsLeft <= 0 {
				mt.log(log.NewStatusExpiredEvent(m.Turn, m.Phase.String(), int(p.ID), u.Def.Name, t.AppliedStatus))
				continue
			}
			kept = append(kept, t)
		}
		u.Temporary = kept
	}

	mt.log(log.NewEndTurnEvent(m.Turn, m.Phase.String(), int(p.ID), len(p.Hand)))
	return nil
}

// handOverflow removes the cards over MaxHandSize from p's hand and returns
// them in discard order: highest remaining preparation first, most recently
// drawn first among ties.
func (mt *Match) handOverflow(p *PlayerState) []*CardInHand {
	excess := len(p.Hand) - MaxHandSize
	if excess <= 0 {
		return nil
	}

	order := make([]int, len(p.Hand))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(p.Hand[b].PreparationRemaining, p.Hand[a].PreparationRemaining); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})

	drop := make(map[int]bool, excess)
	discarded := make([]*CardInHand, 0, excess)
	for _, i := range order[:excess] {
		drop[i] = true
		discarded = append(discarded, p.Hand[i])
	}

	kept := make([]*CardInHand, 0, MaxHandSize)
	for i, c := range p.Hand {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	p.Hand = kept
	return discarded
}
