package game

import (
	"fmt"

	"github.com/peterkuimelis/autobattler/internal/log"
)

// attackPhase runs the AttackPhase abilities of each of the active player's
// units, slot 0 first, then the hero's. A strike facing no living unit hits
// the enemy hero instead. The scan stops as soon as the enemy hero falls.
func (mt *Match) attackPhase() error {
	m := mt.State
	mt.enterPhase(PhaseAttack)
	own := m.Field(m.ActivePlayer)

	for slot := 0; slot < FieldSlots; slot++ {
		u := own[slot]
		if !u.Alive() {
			continue
		}
		attacks := abilities(u.Keywords, TriggerAttackPhase)
		if len(attacks) == 0 {
			continue
		}
		if u.HasStatus(StatusBlinded) {
			mt.log(log.NewEffectEvent(m.Turn, m.Phase.String(), int(u.Owner), u.Def.Name, fmt.Sprintf("is %s and cannot attack", StatusBlinded)))
			continue
		}

		src := Source{Owner: u.Owner, Name: u.Def.Name, Unit: u}
		for _, ab := range attacks {
			if _, err := mt.trigger(src, ab); err != nil || m.GameOver {
				return err
			}
		}
	}

	hero := m.Active().Hero
	src := Source{Owner: m.ActivePlayer, Name: hero.Name}
	for _, ab := range abilities(hero.AllKeywords(), TriggerAttackPhase) {
		if _, err := mt.trigger(src, ab); err != nil || m.GameOver {
			return err
		}
	}
	return nil
}

// deathAndShiftPhase removes dead units from both fields, compacting each
// field leftward, then evaluates both heroes.
func (mt *Match) deathAndShiftPhase() {
	m := mt.State
	mt.enterPhase(PhaseDeathAndShift)

	for _, id := range []PlayerID{Player1, Player2} {
		field := m.Field(id)
		owner := m.Player(id)
		for i := 0; i < FieldSlots; {
			u := field[i]
			if u == nil || u.CurrentHP > 0 {
				i++
				continue
			}
			owner.Discard = append(owner.Discard, u.Def)
			mt.log(log.NewDeathEvent(m.Turn, m.Phase.String(), int(id), u.Def.Name, i))
			for _, moved := range field.removeAndShift(i) {
				mt.log(log.NewShiftEvent(m.Turn, m.Phase.String(), int(id), moved.Def.Name, moved.Slot+1, moved.Slot))
			}
			i = 0
		}
	}

	mt.checkHeroes()
}
