package game

import (
	"github.com/peterkuimelis/autobattler/internal/log"
)

// playCardsPhase plays every ready card, left to right, re-scanning the same
// position after a removal and repeating full passes until nothing changes.
func (mt *Match) playCardsPhase() error {
	m := mt.State
	mt.enterPhase(PhasePlayCards)
	p := m.Active()
	field := m.Field(p.ID)
	reportedFull := map[int]bool{}

	for {
		changed := false
		for i := 0; i < len(p.Hand); {
			c := p.Hand[i]
			if !c.Playable() {
				i++
				continue
			}

			switch c.Def.Type {
			case CardTypeUnit:
				slot := field.FirstEmptySlot()
				if slot < 0 {
					if !reportedFull[c.InstanceID] {
						reportedFull[c.InstanceID] = true
						mt.log(log.NewFieldFullEvent(m.Turn, m.Phase.String(), int(p.ID), c.Def.Name))
					}
					i++
					continue
				}
				p.removeFromHand(i)
				if err := mt.deploy(p.ID, c, slot); err != nil {
					return err
				}
				changed = true

			case CardTypePower:
				ok, err := mt.canCast(p.ID, c)
				if err != nil {
					return err
				}
				if !ok {
					c.Blocked = true
					mt.log(log.NewPowerBlockedEvent(m.Turn, m.Phase.String(), int(p.ID), c.Def.Name))
					i++
					continue
				}
				p.removeFromHand(i)
				if err := mt.cast(p.ID, c); err != nil {
					return err
				}
				changed = true

			default:
				i++
			}
		}
		if !changed {
			return nil
		}
	}
}

// deploy puts a unit into slot and resolves its OnPlay abilities. An OnPlay
// ability with nothing to act on is skipped; it never holds the unit back.
func (mt *Match) deploy(owner PlayerID, c *CardInHand, slot int) error {
	m := mt.State
	keywords, err := ResolveAll(mt.library, c.Def.Keywords)
	if err != nil {
		return err
	}
	applyBoosts(keywords)
	hp := maxHP(keywords)
	u := &UnitInPlay{
		InstanceID: c.InstanceID,
		Def:        c.Def,
		Owner:      owner,
		Slot:       slot,
		CurrentHP:  hp,
		MaxHP:      hp,
		Attack:     attackValue(keywords),
		Keywords:   keywords,
	}
	m.Field(owner)[slot] = u
	mt.log(log.NewDeployEvent(m.Turn, m.Phase.String(), int(owner), c.Def.Name, u.Attack, u.MaxHP, slot))

	src := Source{Owner: owner, Name: c.Def.Name, Unit: u, Card: c}
	for _, ab := range abilities(keywords, TriggerOnPlay) {
		if _, err := mt.trigger(src, ab); err != nil {
			return err
		}
	}
	return nil
}

// canCast reports whether every OnPlay effect of a power has a target.
func (mt *Match) canCast(owner PlayerID, c *CardInHand) (bool, error) {
	abilities, err := mt.onPlayAbilities(c.Def)
	if err != nil {
		return false, err
	}
	src := Source{Owner: owner, Name: c.Def.Name, Card: c}
	for _, ab := range abilities {
		eff, ok := mt.effectFor(ab)
		if !ok {
			return false, &DataIntegrityError{CardID: c.Def.ID, KeywordID: ab.KeywordID, Reason: "no effect bound"}
		}
		if !mt.canApply(eff, src, ab) {
			return false, nil
		}
	}
	return true, nil
}

// cast resolves a power's OnPlay effects and discards it.
func (mt *Match) cast(owner PlayerID, c *CardInHand) error {
	m := mt.State
	mt.log(log.NewCastPowerEvent(m.Turn, m.Phase.String(), int(owner), c.Def.Name))

	abilities, err := mt.onPlayAbilities(c.Def)
	if err != nil {
		return err
	}
	if len(abilities) == 0 {
		mt.logEffect(Source{Owner: owner, Name: c.Def.Name}, "has no effect")
	}
	src := Source{Owner: owner, Name: c.Def.Name, Card: c}
	for _, ab := range abilities {
		if _, err := mt.trigger(src, ab); err != nil {
			return err
		}
	}

	p := m.Player(owner)
	p.Discard = append(p.Discard, c.Def)
	return nil
}
