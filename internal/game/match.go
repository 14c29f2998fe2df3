package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/peterkuimelis/autobattler/internal/log"
)

// HeroLoadout is a hero base card plus the equipment it starts with.
type HeroLoadout struct {
	Base      *CardDefinition
	Equipment []*CardDefinition
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Deck1 []*CardDefinition // Player 1's deck (card definitions)
	Deck2 []*CardDefinition // Player 2's deck (card definitions)
	Hero1 *HeroLoadout      // optional
	Hero2 *HeroLoadout      // optional

	StartingHP int // overrides hero HP when positive

	Library KeywordLibrary     // nil for DefaultLibrary
	Effects map[string]*Effect // nil for DefaultEffects
	Logger  log.EventLogger

	Seed        uint64   // RNG seed (0 for random)
	NoShuffle   bool     // skip deck shuffle (for deterministic tests)
	FirstPlayer PlayerID // NoPlayer for a coin flip
	MaxTurns    int      // stop after this many turns (0 = MaxTurns)
}

// Match orchestrates an entire match between two decks.
type Match struct {
	State  *MatchState
	Logger log.EventLogger

	library   KeywordLibrary
	effects   map[string]*Effect
	behaviors map[string]*Effect
	rng       *rand.Rand
	maxTurns  int
}

// Simulate runs a match to completion and returns its final state. Empty
// decks produce a terminal error-state snapshot, not an error; malformed
// content returns a *DataIntegrityError.
func Simulate(cfg MatchConfig) (*MatchState, error) {
	mt, err := NewMatch(cfg)
	if err != nil {
		return nil, err
	}
	if err := mt.Run(); err != nil {
		return nil, err
	}
	return mt.State, nil
}

// NewMatch validates the config and builds the initial match state.
func NewMatch(cfg MatchConfig) (*Match, error) {
	mt := &Match{
		State:     NewMatchState(),
		Logger:    cfg.Logger,
		library:   cfg.Library,
		effects:   cfg.Effects,
		behaviors: Behaviors(),
		maxTurns:  cfg.MaxTurns,
	}
	if mt.Logger == nil {
		mt.Logger = log.NewMemoryLogger()
	}
	if mt.library == nil {
		mt.library = DefaultLibrary()
	}
	if mt.effects == nil {
		mt.effects = DefaultEffects()
	}
	if mt.maxTurns <= 0 {
		mt.maxTurns = MaxTurns
	}
	if cfg.Seed == 0 {
		mt.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		mt.rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	m := mt.State
	for i, id := range []PlayerID{Player1, Player2} {
		hero, _ := mt.buildHero(nil, cfg.StartingHP)
		m.Players[i] = &PlayerState{ID: id, Hero: hero}
	}

	switch {
	case len(cfg.Deck1) == 0 && len(cfg.Deck2) == 0:
		mt.setupError("both decks are empty")
		return mt, nil
	case len(cfg.Deck1) == 0:
		mt.setupError("P1 deck is empty")
		return mt, nil
	case len(cfg.Deck2) == 0:
		mt.setupError("P2 deck is empty")
		return mt, nil
	}

	decks := [2][]*CardDefinition{cfg.Deck1, cfg.Deck2}
	heroes := [2]*HeroLoadout{cfg.Hero1, cfg.Hero2}
	for i, id := range []PlayerID{Player1, Player2} {
		for _, def := range decks[i] {
			if err := mt.validateDeckCard(def); err != nil {
				return nil, err
			}
		}
		hero, err := mt.buildHero(heroes[i], cfg.StartingHP)
		if err != nil {
			return nil, err
		}
		m.Players[i] = &PlayerState{
			ID:   id,
			Hero: hero,
			Deck: append([]*CardDefinition(nil), decks[i]...),
		}
	}

	if !cfg.NoShuffle {
		shuffle(mt.rng, m.Players[0].Deck)
		shuffle(mt.rng, m.Players[1].Deck)
	}

	m.ActivePlayer = cfg.FirstPlayer
	if m.ActivePlayer == NoPlayer {
		m.ActivePlayer = Player1 + PlayerID(mt.rng.IntN(2))
	}
	return mt, nil
}

func (mt *Match) validateDeckCard(def *CardDefinition) error {
	if err := mt.validateCard(def); err != nil {
		return err
	}
	if !def.Type.Playable() {
		return &DataIntegrityError{CardID: def.ID, Reason: fmt.Sprintf("%s cards cannot be played from a deck", def.Type)}
	}
	return nil
}

// validateCard checks def against the library, then checks that the match
// can run every keyword it carries.
func (mt *Match) validateCard(def *CardDefinition) error {
	if err := ValidateCard(mt.library, def); err != nil {
		return err
	}
	kws, err := ResolveAll(mt.library, def.Keywords)
	if err != nil {
		return err
	}
	for _, k := range kws {
		if reason := mt.unrunnable(k); reason != "" {
			return &DataIntegrityError{CardID: def.ID, KeywordID: k.KeywordID, Reason: reason}
		}
	}
	return nil
}

// unrunnable explains why the match cannot run k, or returns "".
func (mt *Match) unrunnable(k EffectiveKeyword) string {
	switch k.Trigger {
	case TriggerAlwaysActive, TriggerOnDefend:
		if !passiveBehaviors[k.Effect] {
			return fmt.Sprintf("%s keyword has no passive behavior (effect %q)", k.Trigger, k.Effect)
		}
	case TriggerOnPlay, TriggerAttackPhase, TriggerPlayerTurnStart, TriggerPlayerTurnEnd, TriggerOnDealCombatDamage:
		if _, ok := mt.effectFor(k); !ok {
			return fmt.Sprintf("no effect bound (effect %q)", k.Effect)
		}
		if k.Effect == BehaviorStrike && k.TargetValue != "" {
			if _, err := strconv.Atoi(k.TargetValue); err != nil {
				return fmt.Sprintf("armor ignored %q is not a number", k.TargetValue)
			}
		}
	default:
		return fmt.Sprintf("trigger %s is not run by the match", k.Trigger)
	}
	return ""
}

// buildHero derives a hero from its loadout. Without a base card the hero is
// a plain one with DefaultHeroHP.
func (mt *Match) buildHero(lo *HeroLoadout, startingHP int) (*HeroInPlay, error) {
	hero := &HeroInPlay{Name: "Hero", Equipment: map[EquipmentSlot]*CardDefinition{}}
	if lo != nil && lo.Base != nil {
		base := lo.Base
		if err := mt.validateCard(base); err != nil {
			return nil, err
		}
		if base.Type != CardTypeHeroBase {
			return nil, &DataIntegrityError{CardID: base.ID, Reason: "hero base must be a HeroBase card"}
		}
		kws, err := ResolveAll(mt.library, base.Keywords)
		if err != nil {
			return nil, err
		}
		hero.DefID = base.ID
		hero.Name = base.Name
		hero.Keywords = kws
		hero.CommandLimit = base.BaseCommand
		hero.Affiliations = append(hero.Affiliations, base.Affiliations...)

		for _, eq := range lo.Equipment {
			if err := mt.validateCard(eq); err != nil {
				return nil, err
			}
			if eq.Type != CardTypeEquipment {
				return nil, &DataIntegrityError{CardID: eq.ID, Reason: "not an equipment card"}
			}
			if _, taken := hero.Equipment[eq.EquipmentSlot]; taken {
				return nil, &DataIntegrityError{CardID: eq.ID, Reason: fmt.Sprintf("slot %s already equipped", eq.EquipmentSlot)}
			}
			ekws, err := ResolveAll(mt.library, eq.Keywords)
			if err != nil {
				return nil, err
			}
			hero.Equipment[eq.EquipmentSlot] = eq
			hero.EquipmentKeywords = append(hero.EquipmentKeywords, ekws...)
			for _, a := range eq.Affiliations {
				if !slices.Contains(hero.Affiliations, a) {
					hero.Affiliations = append(hero.Affiliations, a)
				}
			}
		}
	}

	all := hero.AllKeywords()
	applyBoosts(all)
	hero.Keywords, hero.EquipmentKeywords = all[:len(hero.Keywords)], all[len(hero.Keywords):]
	hero.CommandLimit += commandValue(all)
	switch {
	case startingHP > 0:
		hero.MaxHP = startingHP
	case maxHP(all) > 0:
		hero.MaxHP = maxHP(all)
	default:
		hero.MaxHP = DefaultHeroHP
	}
	hero.CurrentHP = hero.MaxHP
	return hero, nil
}

// setupError puts the match straight into its terminal error state.
func (mt *Match) setupError(reason string) {
	m := mt.State
	m.Phase = PhaseSetupError
	m.GameOver = true
	m.Winner = NoPlayer
	m.Result = "Setup error: " + reason
	mt.log(log.NewSetupErrorEvent(m.Phase.String(), reason))
}

// Run executes the match loop until game over or the turn cap.
func (mt *Match) Run() error {
	m := mt.State
	if m.GameOver {
		return nil
	}

	mt.log(log.NewMatchStartEvent(int(m.ActivePlayer), m.Players[0].Hero.CurrentHP, m.Players[1].Hero.CurrentHP))

	for !m.GameOver && m.Turn < mt.maxTurns {
		if err := mt.runTurn(); err != nil {
			return err
		}
	}

	if !m.GameOver {
		mt.turnLimit()
	}
	m.Phase = PhaseGameOver
	mt.log(log.NewMatchEndEvent(m.Turn, m.Phase.String(), m.Result))
	return nil
}

// runTurn executes a single turn for the active player.
func (mt *Match) runTurn() error {
	m := mt.State

	if err := mt.startTurn(); err != nil {
		return err
	}
	mt.checkHeroes()
	if m.GameOver {
		return nil
	}

	mt.drawPhase()
	if m.GameOver {
		return nil
	}

	mt.preparePhase()

	if err := mt.playCardsPhase(); err != nil {
		return err
	}
	mt.checkHeroes()
	if m.GameOver {
		return nil
	}

	if err := mt.attackPhase(); err != nil {
		return err
	}
	if m.GameOver {
		return nil
	}

	mt.deathAndShiftPhase()
	if m.GameOver {
		return nil
	}

	if err := mt.endTurn(); err != nil {
		return err
	}
	mt.checkHeroes()
	if m.GameOver {
		return nil
	}

	m.ActivePlayer = m.ActivePlayer.Opponent()
	return nil
}

func (mt *Match) enterPhase(p Phase) {
	m := mt.State
	m.Phase = p
	mt.log(log.NewPhaseChangeEvent(m.Turn, p.String()))
}

// startTurn advances the turn counter and runs the active player's
// PlayerTurnStart abilities.
func (mt *Match) startTurn() error {
	m := mt.State
	m.Turn++
	m.Phase = PhaseStartTurn
	mt.log(log.NewTurnEvent(m.Turn, m.Phase.String(), int(m.ActivePlayer)))
	return mt.turnAbilities(TriggerPlayerTurnStart)
}

// drawPhase draws one card, or applies fatigue on an empty deck. Player 1
// skips the draw when opening the match.
func (mt *Match) drawPhase() {
	m := mt.State
	mt.enterPhase(PhaseDraw)
	p := m.Active()

	if m.Turn == 1 && m.ActivePlayer == Player1 && !m.firstDrawSkipped {
		m.firstDrawSkipped = true
		mt.log(log.NewDrawSkippedEvent(m.Turn, m.Phase.String(), int(p.ID)))
		return
	}

	if len(p.Deck) == 0 {
		p.Fatigue++
		old := p.Hero.CurrentHP
		p.Hero.CurrentHP -= p.Fatigue
		mt.log(log.NewFatigueEvent(m.Turn, m.Phase.String(), int(p.ID), p.Fatigue, old, p.Hero.CurrentHP))
		if p.Hero.CurrentHP <= 0 {
			mt.win(p.ID.Opponent(), fmt.Sprintf("%s succumbed to fatigue", p.ID))
		}
		return
	}

	def := p.Deck[0]
	p.Deck = p.Deck[1:]
	card := &CardInHand{
		InstanceID:           m.newInstanceID(),
		Def:                  def,
		PreparationRemaining: def.Preparation,
	}
	p.Hand = append(p.Hand, card)
	mt.log(log.NewDrawEvent(m.Turn, m.Phase.String(), int(p.ID), def.Name, card.PreparationRemaining))
}

// preparePhase ticks every hand card toward playability.
func (mt *Match) preparePhase() {
	m := mt.State
	mt.enterPhase(PhasePrepare)
	p := m.Active()
	for _, c := range p.Hand {
		if c.PreparationRemaining > 0 {
			c.PreparationRemaining--
			mt.log(log.NewPrepareEvent(m.Turn, m.Phase.String(), int(p.ID), c.Def.Name, c.PreparationRemaining))
		}
	}
}

// turnLimit decides a match that ran out of turns by remaining hero HP.
func (mt *Match) turnLimit() {
	m := mt.State
	m.TurnLimitReached = true
	mt.log(log.NewTurnLimitEvent(m.Turn, m.Phase.String(), mt.maxTurns))

	hp1, hp2 := m.Players[0].Hero.CurrentHP, m.Players[1].Hero.CurrentHP
	reason := fmt.Sprintf("turn limit, hero HP %d vs %d", hp1, hp2)
	switch {
	case hp1 > hp2:
		mt.win(Player1, reason)
	case hp2 > hp1:
		mt.win(Player2, reason)
	default:
		mt.draw(reason)
	}
}

func (mt *Match) win(winner PlayerID, reason string) {
	m := mt.State
	m.GameOver = true
	m.Winner = winner
	m.Result = fmt.Sprintf("%s wins (%s)", winner, reason)
	mt.log(log.NewWinEvent(m.Turn, m.Phase.String(), int(winner), reason))
}

func (mt *Match) draw(reason string) {
	m := mt.State
	m.GameOver = true
	m.Winner = NoPlayer
	m.Result = fmt.Sprintf("Draw (%s)", reason)
	mt.log(log.NewTieEvent(m.Turn, m.Phase.String(), reason))
}

// checkHeroes ends the match if either hero is down. Both down is a draw.
func (mt *Match) checkHeroes() {
	m := mt.State
	dead1 := m.Players[0].Hero.CurrentHP <= 0
	dead2 := m.Players[1].Hero.CurrentHP <= 0
	switch {
	case dead1 && dead2:
		mt.draw("both heroes fell")
	case dead1:
		mt.win(Player2, "P1's hero fell")
	case dead2:
		mt.win(Player1, "P2's hero fell")
	}
}

// log appends the event to the match log and forwards it to the logger.
func (mt *Match) log(event log.GameEvent) {
	mt.State.Log = append(mt.State.Log, log.FormatEvent(event))
	mt.Logger.Log(event)
}
