package game

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/peterkuimelis/autobattler/internal/log"
)

// Source is whoever carries the ability being applied: a unit, a hero, or a
// power card being cast.
type Source struct {
	Owner  PlayerID
	Name   string
	Unit   *UnitInPlay // nil for powers and heroes
	Card   *CardInHand // the card being played
	Struck *UnitInPlay // the unit just hit, for OnDealCombatDamage
}

func (src Source) cardID() string {
	switch {
	case src.Card != nil:
		return src.Card.Def.ID
	case src.Unit != nil:
		return src.Unit.Def.ID
	}
	return ""
}

// Target is one thing an ability can affect. Exactly one field is set.
type Target struct {
	Unit *UnitInPlay
	Hero PlayerID
	Card *CardInHand
}

func (t Target) describe() string {
	switch {
	case t.Unit != nil:
		return t.Unit.Def.Name
	case t.Card != nil:
		return t.Card.Def.Name
	case t.Hero != NoPlayer:
		return fmt.Sprintf("%s's hero", t.Hero)
	}
	return "nothing"
}

// Effect is the behavior bound to a keyword.
type Effect struct {
	Name string

	// Accepts narrows the selector's candidates to the ones the effect can
	// act on. Nil accepts every candidate. The same filtered list decides
	// whether the effect applies and what it picks from.
	Accepts func(mt *Match, src Source, ab EffectiveKeyword, t Target) bool

	// Apply resolves the ability against the chosen targets.
	Apply func(mt *Match, src Source, ab EffectiveKeyword, targets []Target) error

	// Always runs Apply even when no candidate is eligible.
	Always bool
}

// Behaviors returns the built-in effects keyed by behavior name.
func Behaviors() map[string]*Effect {
	return map[string]*Effect{
		BehaviorDamage:  damageEffect(),
		BehaviorHeal:    healEffect(),
		BehaviorStatus:  statusEffect(BehaviorStatus),
		BehaviorPoison:  statusEffect(BehaviorPoison),
		BehaviorWeaken:  statusEffect(BehaviorWeaken),
		BehaviorHasten:  hastenEffect(),
		BehaviorStrike:  strikeEffect(),
		BehaviorBarrier: barrierEffect(),
	}
}

// DefaultEffects returns the built-in effect registry keyed by keyword id.
func DefaultEffects() map[string]*Effect {
	behaviors := Behaviors()
	effects := map[string]*Effect{}
	for id, e := range DefaultLibrary() {
		if eff, ok := behaviors[e.Effect]; ok {
			effects[id] = eff
		}
	}
	return effects
}

// effectFor finds the effect that runs ab: the one registered under its
// keyword id, else the built-in behavior its library entry names.
func (mt *Match) effectFor(ab EffectiveKeyword) (*Effect, bool) {
	if eff, ok := mt.effects[ab.KeywordID]; ok {
		return eff, true
	}
	eff, ok := mt.behaviors[ab.Effect]
	return eff, ok
}

// affiliated applies an ability's target value as an affiliation filter.
func affiliated(mt *Match, _ Source, ab EffectiveKeyword, t Target) bool {
	tag := ab.TargetValue
	switch {
	case tag == "":
		return true
	case t.Unit != nil:
		return t.Unit.Def.HasAffiliation(tag)
	case t.Card != nil:
		return t.Card.Def.HasAffiliation(tag)
	case t.Hero != NoPlayer:
		return slices.Contains(mt.State.Player(t.Hero).Hero.Affiliations, tag)
	}
	return false
}

func onlyUnits(_ *Match, _ Source, _ EffectiveKeyword, t Target) bool {
	return t.Unit != nil
}

func damageEffect() *Effect {
	return &Effect{
		Name:    "Damage",
		Accepts: affiliated,
		Apply: func(mt *Match, src Source, ab EffectiveKeyword, targets []Target) error {
			for _, t := range targets {
				mt.damage(src, t, ab.Value, ab.DamageType)
			}
			return nil
		},
	}
}

func healEffect() *Effect {
	return &Effect{
		Name:    "Healing",
		Accepts: affiliated,
		Apply: func(mt *Match, src Source, ab EffectiveKeyword, targets []Target) error {
			m := mt.State
			for _, t := range targets {
				switch {
				case t.Unit != nil:
					t.Unit.CurrentHP = min(t.Unit.CurrentHP+ab.Value, t.Unit.MaxHP)
					mt.logEffect(src, fmt.Sprintf("heals %s to %d HP", t.Unit.Def.Name, t.Unit.CurrentHP))
				case t.Hero != NoPlayer:
					h := m.Player(t.Hero).Hero
					h.CurrentHP = min(h.CurrentHP+ab.Value, h.MaxHP)
					mt.logEffect(src, fmt.Sprintf("heals %s to %d HP", t.describe(), h.CurrentHP))
				}
			}
			return nil
		},
	}
}

// statusEffect attaches a temporary keyword carrying the applied status.
// Only units can carry statuses. A plain status filters by affiliation; a
// poison or weaken status uses its target value for its own purpose.
func statusEffect(kind string) *Effect {
	accepts := onlyUnits
	if kind == BehaviorStatus {
		accepts = func(mt *Match, src Source, ab EffectiveKeyword, t Target) bool {
			return t.Unit != nil && affiliated(mt, src, ab, t)
		}
	}
	return &Effect{
		Name:    "Apply Status",
		Accepts: accepts,
		Apply: func(mt *Match, src Source, ab EffectiveKeyword, targets []Target) error {
			for _, t := range targets {
				t.Unit.Temporary = append(t.Unit.Temporary, TemporaryKeyword{EffectiveKeyword: ab, TurnsLeft: ab.Duration})
				mt.logEffect(src, fmt.Sprintf("%s is %s for %d turn(s)", t.Unit.Def.Name, ab.AppliedStatus, ab.Duration))
			}
			return nil
		},
	}
}

// hastenEffect only picks from cards still preparing.
func hastenEffect() *Effect {
	return &Effect{
		Name: "Hasten",
		Accepts: func(_ *Match, _ Source, _ EffectiveKeyword, t Target) bool {
			return t.Card != nil && t.Card.PreparationRemaining > 0
		},
		Apply: func(mt *Match, src Source, ab EffectiveKeyword, targets []Target) error {
			for _, t := range targets {
				t.Card.PreparationRemaining = max(t.Card.PreparationRemaining-ab.Value, 0)
				mt.logEffect(src, fmt.Sprintf("hastens %s (prep %d)", t.Card.Def.Name, t.Card.PreparationRemaining))
			}
			return nil
		},
	}
}

func barrierEffect() *Effect {
	return &Effect{
		Name:    "Barrier",
		Accepts: onlyUnits,
		Apply: func(mt *Match, src Source, ab EffectiveKeyword, targets []Target) error {
			for _, t := range targets {
				b := ab
				t.Unit.Barrier = &b
				mt.logEffect(src, fmt.Sprintf("%s gains a %d %s barrier", t.Unit.Def.Name, ab.Value, ab.DamageType))
			}
			return nil
		},
	}
}

// strikeEffect is an attack: it hits the selected enemy unit, or the enemy
// hero when the selector finds no living unit.
func strikeEffect() *Effect {
	return &Effect{
		Name:    "Strike",
		Accepts: onlyUnits,
		Always:  true,
		Apply: func(mt *Match, src Source, ab EffectiveKeyword, targets []Target) error {
			amount := mt.strikeAmount(src, ab)
			if amount <= 0 {
				return nil
			}
			pierce, _ := strconv.Atoi(ab.TargetValue)
			if len(targets) == 0 {
				return mt.strikeHero(src, ab, amount, pierce)
			}
			for _, t := range targets {
				if err := mt.strikeUnit(src, ab, t.Unit, amount, pierce); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// strikeAmount is the strike's value less any weakening aimed at its keyword.
func (mt *Match) strikeAmount(src Source, ab EffectiveKeyword) int {
	amount := ab.Value
	if src.Unit == nil {
		return amount
	}
	for _, t := range src.Unit.Temporary {
		if t.Effect == BehaviorWeaken && t.TargetValue == ab.KeywordID {
			amount -= t.Value
		}
	}
	if amount <= 0 && ab.Value > 0 {
		mt.logEffect(src, fmt.Sprintf("is weakened and cannot use %s", ab.Name))
	}
	return amount
}

// strikeUnit resolves one attack against a unit. A fearsome defender turns
// away attackers whose compared stat is below its value.
func (mt *Match) strikeUnit(src Source, ab EffectiveKeyword, def *UnitInPlay, amount, pierce int) error {
	m := mt.State
	if src.Unit != nil {
		for _, f := range def.Keywords {
			if f.Effect == BehaviorFear && attackerStat(src.Unit, f.TargetValue) < f.Value {
				mt.logEffect(src, fmt.Sprintf("is too afraid to attack %s", def.Def.Name))
				return nil
			}
		}
	}

	dealt := mt.hitUnit(def, amount, ab.DamageType, pierce)
	mt.log(log.NewAttackEvent(m.Turn, m.Phase.String(), int(src.Owner), src.Name, def.Def.Name, dealt, def.CurrentHP))
	if dealt > 0 && src.Unit != nil {
		return mt.combatDamageDealt(src, def)
	}
	return nil
}

// strikeHero attacks the enemy hero. A living protector takes the hit in its
// place. The match ends as soon as the hero falls.
func (mt *Match) strikeHero(src Source, ab EffectiveKeyword, amount, pierce int) error {
	m := mt.State
	enemy := src.Owner.Opponent()
	for _, u := range m.Field(enemy).LivingUnits() {
		if u.HasKeyword(BehaviorProtector) {
			return mt.strikeUnit(src, ab, u, amount, pierce)
		}
	}

	h := m.Player(enemy).Hero
	old := h.CurrentHP
	h.CurrentHP -= amount
	mt.log(log.NewHeroDamageEvent(m.Turn, m.Phase.String(), int(enemy), src.Name, old, h.CurrentHP))
	if h.CurrentHP <= 0 && !m.GameOver {
		mt.win(src.Owner, fmt.Sprintf("%s destroyed %s's hero", src.Name, enemy))
	}
	return nil
}

func attackerStat(u *UnitInPlay, stat string) int {
	if stat == StatAttack {
		return u.Attack
	}
	return u.CurrentHP
}

// combatDamageDealt fires the attacker's OnDealCombatDamage abilities at the
// unit it just hit.
func (mt *Match) combatDamageDealt(src Source, struck *UnitInPlay) error {
	on := Source{Owner: src.Owner, Name: src.Name, Unit: src.Unit, Struck: struck}
	for _, ab := range src.Unit.Keywords {
		if ab.Trigger != TriggerOnDealCombatDamage {
			continue
		}
		if _, err := mt.trigger(on, ab); err != nil {
			return err
		}
	}
	return nil
}

// hitUnit applies armor, then any barrier, to a hit on u and returns the
// damage dealt. Dead units stay on the field until the next DeathAndShift.
func (mt *Match) hitUnit(u *UnitInPlay, amount int, damageType string, pierce int) int {
	m := mt.State
	armor := 0
	for _, k := range u.Keywords {
		if k.Effect == BehaviorArmor && matchesDamage(k.DamageType, damageType) {
			armor += k.Value
		}
	}
	amount = max(amount-max(armor-pierce, 0), 0)

	if b := u.Barrier; b != nil && amount > 0 && matchesDamage(b.DamageType, damageType) {
		absorbed := min(b.Value, amount)
		amount -= absorbed
		u.Barrier = nil
		mt.log(log.NewEffectEvent(m.Turn, m.Phase.String(), int(u.Owner), u.Def.Name, fmt.Sprintf("barrier absorbs %d and dissolves", absorbed)))
	}

	u.CurrentHP -= amount
	return amount
}

func matchesDamage(guard, damageType string) bool {
	return guard == "" || guard == DamageAny || guard == damageType
}

// damage deals amount to a single target.
func (mt *Match) damage(src Source, t Target, amount int, damageType string) {
	m := mt.State
	switch {
	case t.Unit != nil:
		dealt := mt.hitUnit(t.Unit, amount, damageType, 0)
		mt.logEffect(src, fmt.Sprintf("deals %d %s damage to %s (HP left %d)", dealt, damageType, t.Unit.Def.Name, t.Unit.CurrentHP))
	case t.Hero != NoPlayer:
		h := m.Player(t.Hero).Hero
		old := h.CurrentHP
		h.CurrentHP -= amount
		mt.log(log.NewHeroDamageEvent(m.Turn, m.Phase.String(), int(t.Hero), src.Name, old, h.CurrentHP))
	}
}

func (mt *Match) logEffect(src Source, details string) {
	m := mt.State
	mt.log(log.NewEffectEvent(m.Turn, m.Phase.String(), int(src.Owner), src.Name, details))
}

// candidates returns every target the selector could pick, without
// consuming randomness.
func (mt *Match) candidates(src Source, sel TargetSelector) []Target {
	m := mt.State
	own := m.Field(src.Owner)
	enemy := m.Field(src.Owner.Opponent())

	units := func(us []*UnitInPlay) []Target {
		out := make([]Target, 0, len(us))
		for _, u := range us {
			out = append(out, Target{Unit: u})
		}
		return out
	}

	switch sel {
	case TargetSelf:
		if src.Unit != nil {
			return []Target{{Unit: src.Unit}}
		}
		return []Target{{Hero: src.Owner}}
	case TargetOpposingSlotUnit:
		if src.Struck != nil {
			if src.Struck.Alive() {
				return []Target{{Unit: src.Struck}}
			}
			return nil
		}
		if src.Unit != nil {
			if u := enemy[src.Unit.Slot]; u.Alive() {
				return []Target{{Unit: u}}
			}
		}
		return nil
	case TargetEnemyHero:
		return []Target{{Hero: src.Owner.Opponent()}}
	case TargetAllyHero:
		return []Target{{Hero: src.Owner}}
	case TargetRandomAlly, TargetAllAllies, TargetLeftmostAlly, TargetLowestHPAlly:
		return units(own.LivingUnits())
	case TargetRandomEnemy, TargetAllEnemies, TargetLeftmostEnemy, TargetLowestHPEnemy, TargetHighestHPEnemy:
		return units(enemy.LivingUnits())
	case TargetAllUnits:
		return append(units(own.LivingUnits()), units(enemy.LivingUnits())...)
	case TargetRandomHandCard:
		var out []Target
		for _, c := range m.Player(src.Owner).Hand {
			if c != src.Card {
				out = append(out, Target{Card: c})
			}
		}
		return out
	}
	return nil
}

// eligible returns the candidates eff can act on, in candidate order.
func (mt *Match) eligible(eff *Effect, src Source, ab EffectiveKeyword) []Target {
	cands := mt.candidates(src, ab.Target)
	if eff.Accepts == nil {
		return cands
	}
	return slices.DeleteFunc(cands, func(t Target) bool {
		return !eff.Accepts(mt, src, ab, t)
	})
}

// pick narrows eligible targets to the ones the selector acts on. Random
// selectors draw from the match RNG; HP ties go to the leftmost unit.
func (mt *Match) pick(sel TargetSelector, cands []Target) []Target {
	if len(cands) == 0 {
		return nil
	}
	switch sel {
	case TargetRandomAlly, TargetRandomEnemy, TargetRandomHandCard:
		return []Target{cands[mt.rng.IntN(len(cands))]}
	case TargetLeftmostAlly, TargetLeftmostEnemy:
		return cands[:1]
	case TargetLowestHPEnemy, TargetHighestHPEnemy, TargetLowestHPAlly:
		best := cands[0]
		for _, c := range cands[1:] {
			if sel == TargetHighestHPEnemy && c.Unit.CurrentHP > best.Unit.CurrentHP ||
				sel != TargetHighestHPEnemy && c.Unit.CurrentHP < best.Unit.CurrentHP {
				best = c
			}
		}
		return []Target{best}
	}
	return cands
}

// canApply reports whether ab has something to act on.
func (mt *Match) canApply(eff *Effect, src Source, ab EffectiveKeyword) bool {
	return eff.Always || ab.Target == TargetNone || len(mt.eligible(eff, src, ab)) > 0
}

// trigger runs ab from src if its effect has something to act on, and
// reports whether it ran.
func (mt *Match) trigger(src Source, ab EffectiveKeyword) (bool, error) {
	eff, ok := mt.effectFor(ab)
	if !ok {
		return false, &DataIntegrityError{CardID: src.cardID(), KeywordID: ab.KeywordID, Reason: "no effect bound"}
	}
	targets := mt.eligible(eff, src, ab)
	if !eff.Always && ab.Target != TargetNone && len(targets) == 0 {
		return false, nil
	}
	return true, eff.Apply(mt, src, ab, mt.pick(ab.Target, targets))
}

// abilities returns the keywords in kws with trigger tr.
func abilities(kws []EffectiveKeyword, tr Trigger) []EffectiveKeyword {
	var out []EffectiveKeyword
	for _, k := range kws {
		if k.Trigger == tr {
			out = append(out, k)
		}
	}
	return out
}

// onPlayAbilities returns the resolved OnPlay abilities of def.
func (mt *Match) onPlayAbilities(def *CardDefinition) ([]EffectiveKeyword, error) {
	keywords, err := ResolveAll(mt.library, def.Keywords)
	if err != nil {
		return nil, err
	}
	return abilities(keywords, TriggerOnPlay), nil
}

// turnAbilities runs the active player's abilities with trigger tr: the
// hero's first, then each living unit's in slot order.
func (mt *Match) turnAbilities(tr Trigger) error {
	m := mt.State
	p := m.Active()
	hero := Source{Owner: p.ID, Name: p.Hero.Name}
	for _, ab := range abilities(p.Hero.AllKeywords(), tr) {
		if _, err := mt.trigger(hero, ab); err != nil || m.GameOver {
			return err
		}
	}
	for _, u := range m.Field(p.ID).LivingUnits() {
		src := Source{Owner: p.ID, Name: u.Def.Name, Unit: u}
		for _, ab := range abilities(u.Keywords, tr) {
			if !u.Alive() {
				break
			}
			if _, err := mt.trigger(src, ab); err != nil || m.GameOver {
				return err
			}
		}
	}
	return nil
}
