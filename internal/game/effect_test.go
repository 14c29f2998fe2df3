package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/peterkuimelis/autobattler/internal/log"
)

func TestBoltHitsLowestHPEnemy(t *testing.T) {
	mt, _ := newTestMatch(t, MatchConfig{})
	tough := place(t, mt, Player2, 0, vanillaUnit("Tough", 1, 5, 0))
	weakA := place(t, mt, Player2, 1, vanillaUnit("Weak A", 1, 2, 0))
	weakB := place(t, mt, Player2, 2, vanillaUnit("Weak B", 1, 2, 0))
	giveCard(mt, Player1, SuddenLightning(), 0)

	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}

	if weakA.CurrentHP != -1 {
		t.Errorf("Expected the leftmost lowest-HP unit to take 3, got HP %d", weakA.CurrentHP)
	}
	if tough.CurrentHP != 5 || weakB.CurrentHP != 2 {
		t.Errorf("Expected other units untouched, got %d and %d", tough.CurrentHP, weakB.CurrentHP)
	}
	p := mt.State.Player(Player1)
	if len(p.Hand) != 0 || len(p.Discard) != 1 || p.Discard[0].ID != "sudden_lightning" {
		t.Errorf("Expected the power in discard, hand=%v discard=%v", p.Hand, p.Discard)
	}
}

func TestPowerBlockedUntilEndTurn(t *testing.T) {
	mt, logger := newTestMatch(t, MatchConfig{})
	c := giveCard(mt, Player1, SuddenLightning(), 0)

	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if !c.Blocked {
		t.Fatal("Expected the power to be blocked without enemy units")
	}
	if len(logger.EventsOfType(log.EventPowerBlocked)) != 1 {
		t.Error("Expected exactly one blocked event")
	}

	// Still blocked for the rest of this turn, even with a target now.
	place(t, mt, Player2, 0, vanillaUnit("Late", 1, 1, 0))
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if len(mt.State.Player(Player1).Hand) != 1 {
		t.Fatal("Expected a blocked power not to be retried this turn")
	}

	mt.endTurn()
	if c.Blocked {
		t.Fatal("Expected EndTurn to clear the blocked flag")
	}
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if len(mt.State.Player(Player1).Hand) != 0 {
		t.Error("Expected the power to be cast on the next attempt")
	}
}

func TestAreaDamageHitsAllEnemies(t *testing.T) {
	mt, _ := newTestMatch(t, MatchConfig{})
	a := place(t, mt, Player2, 0, vanillaUnit("A", 1, 3, 0))
	b := place(t, mt, Player2, 1, vanillaUnit("B", 1, 1, 0))
	ally := place(t, mt, Player1, 0, vanillaUnit("Ally", 1, 3, 0))
	giveCard(mt, Player1, HolyNova(), 0)

	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if a.CurrentHP != 1 || b.CurrentHP != -1 {
		t.Errorf("Expected enemies at 1 and -1, got %d and %d", a.CurrentHP, b.CurrentHP)
	}
	if ally.CurrentHP != 3 {
		t.Errorf("Expected ally untouched, got %d", ally.CurrentHP)
	}

	mt.deathAndShiftPhase()
	if f := mt.State.Field(Player2); f[0] != a || f[1] != nil {
		t.Errorf("Expected only A left on P2's field, got %s %s", f[0], f[1])
	}
}

func TestHeroStrikeEndsMatchAfterPlayCards(t *testing.T) {
	mt, _ := newTestMatch(t, MatchConfig{})
	m := mt.State
	m.Player(Player2).Hero.CurrentHP = 3
	giveCard(mt, Player1, Fireball(), 0)

	if err := mt.runTurn(); err != nil {
		t.Fatal(err)
	}
	if !m.GameOver || m.Winner != Player1 {
		t.Fatalf("Expected P1 to win from Fireball, got over=%v winner=%s", m.GameOver, m.Winner)
	}
	if m.Phase != PhasePlayCards {
		t.Errorf("Expected the match to end in Play Cards, got %s", m.Phase)
	}
	if m.ActivePlayer != Player1 {
		t.Error("Expected the active player not to switch after game over")
	}
}

func TestBlindedUnitSkipsAttack(t *testing.T) {
	mt, logger := newTestMatch(t, MatchConfig{})
	m := mt.State
	enemy := place(t, mt, Player2, 0, vanillaUnit("Brute", 4, 6, 0))
	giveCard(mt, Player1, BlindingFlash(), 0)

	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if !enemy.HasStatus(StatusBlinded) {
		t.Fatal("Expected the enemy to be blinded")
	}

	// P1 ending its turn does not tick P2's statuses.
	mt.endTurn()
	if !enemy.HasStatus(StatusBlinded) {
		t.Fatal("Expected the status to survive the caster's EndTurn")
	}

	m.ActivePlayer = Player2
	mt.attackPhase()
	if hp := m.Player(Player1).Hero.CurrentHP; hp != DefaultHeroHP {
		t.Errorf("Expected no damage from a blinded unit, got hero HP %d", hp)
	}

	mt.endTurn()
	if enemy.HasStatus(StatusBlinded) {
		t.Error("Expected the status to expire at its owner's EndTurn")
	}
	if len(logger.EventsOfType(log.EventStatusExpired)) != 1 {
		t.Error("Expected one status-expired event")
	}

	mt.attackPhase()
	if hp := m.Player(Player1).Hero.CurrentHP; hp != DefaultHeroHP-4 {
		t.Errorf("Expected the unit to attack again, got hero HP %d", hp)
	}
}

func TestHastenReducesPreparation(t *testing.T) {
	mt, _ := newTestMatch(t, MatchConfig{})
	slow := giveCard(mt, Player1, vanillaUnit("Slow", 1, 1, 5), 3)
	giveCard(mt, Player1, WarDrums(), 0)

	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if slow.PreparationRemaining != 1 {
		t.Errorf("Expected preparation 1 after Hasten 2, got %d", slow.PreparationRemaining)
	}

	slow.PreparationRemaining = 1
	drums := giveCard(mt, Player1, WarDrums(), 0)
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if slow.PreparationRemaining != 0 {
		t.Errorf("Expected preparation floored at 0, got %d", slow.PreparationRemaining)
	}
	if len(mt.State.Player(Player1).Hand) != 0 {
		t.Errorf("Expected Slow to deploy once ready, hand %v", mt.State.Player(Player1).Hand)
	}
	if drums.Blocked {
		t.Error("Expected the second War Drums to be cast")
	}
}

func TestHastenBlockedWithoutPreparingCards(t *testing.T) {
	mt, _ := newTestMatch(t, MatchConfig{})
	c := giveCard(mt, Player1, WarDrums(), 0)
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if !c.Blocked {
		t.Error("Expected War Drums to be blocked with nothing to hasten")
	}
}

func TestHealingCapsAtMaxHP(t *testing.T) {
	mt, _ := newTestMatch(t, MatchConfig{})
	u := place(t, mt, Player1, 0, vanillaUnit("Hurt", 1, 4, 0))
	u.CurrentHP = 2
	giveCard(mt, Player1, MendingLight(), 0)

	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if u.CurrentHP != 4 {
		t.Errorf("Expected healing capped at 4, got %d", u.CurrentHP)
	}
}

func TestUnitOnPlayNeverBlocks(t *testing.T) {
	mt, logger := newTestMatch(t, MatchConfig{})
	giveCard(mt, Player1, ElfArcher(), 0)
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	archer := mt.State.Field(Player1)[0]
	if archer == nil || archer.Def.ID != "elf_archer" {
		t.Fatal("Expected the archer to deploy without targets")
	}
	if archer.Attack != 3 || archer.MaxHP != 3 {
		t.Errorf("Expected a 3/3 archer, got %s", archer)
	}
	if len(logger.EventsOfType(log.EventEffect)) != 0 {
		t.Error("Expected no effect without enemy units")
	}

	target := place(t, mt, Player2, 0, vanillaUnit("Target", 1, 3, 0))
	giveCard(mt, Player1, ElfArcher(), 0)
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if target.CurrentHP != 2 {
		t.Errorf("Expected the second archer to bolt the target for 1, got HP %d", target.CurrentHP)
	}
}

func TestHastenOnlyTargetsPreparingCards(t *testing.T) {
	drums := powerCard("Drums", 0, AppliedKeyword{KeywordID: KWHasten, Value: intp(1)})
	for seed := uint64(1); seed <= 40; seed++ {
		mt, logger := newTestMatch(t, MatchConfig{Seed: seed})
		for slot := 0; slot < FieldSlots; slot++ {
			place(t, mt, Player1, slot, vanillaUnit("Wall", 0, 5, 0))
		}
		giveCard(mt, Player1, drums, 0)
		stuck := giveCard(mt, Player1, vanillaUnit("Stuck", 1, 1, 0), 0)
		slow := giveCard(mt, Player1, vanillaUnit("Slow", 1, 1, 4), 4)

		if err := mt.playCardsPhase(); err != nil {
			t.Fatal(err)
		}
		if slow.PreparationRemaining != 3 {
			t.Fatalf("seed %d: expected Slow hastened to 3, got %d\n%s", seed, slow.PreparationRemaining, log.FormatAll(logger.Events()))
		}
		if stuck.PreparationRemaining != 0 {
			t.Fatalf("seed %d: expected Stuck untouched, got %d", seed, stuck.PreparationRemaining)
		}
	}
}

func TestAffiliationFilter(t *testing.T) {
	lib := DefaultLibrary()
	lib["KW_SMITE"] = &LibraryEntry{
		ID:            "KW_SMITE",
		Name:          "Smite",
		Trigger:       TriggerOnPlay,
		Target:        TargetAllEnemies,
		Effect:        BehaviorDamage,
		RequiresValue: true,
		DamageType:    strp("Holy"),
		TargetValue:   strp("Undead"),
	}
	smite := powerCard("Smite", 0, AppliedKeyword{KeywordID: "KW_SMITE", Value: intp(2)})

	mt, _ := newTestMatch(t, MatchConfig{Library: lib})
	scout := place(t, mt, Player2, 0, GoblinScout())
	c := giveCard(mt, Player1, smite, 0)
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if !c.Blocked {
		t.Fatal("Expected Smite to be blocked without Undead enemies")
	}

	skeleton := place(t, mt, Player2, 1, FragileSkeleton())
	mt.endTurn()
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if skeleton.CurrentHP != -1 || scout.CurrentHP != 3 {
		t.Errorf("Expected only the skeleton hit, got skeleton %d scout %d", skeleton.CurrentHP, scout.CurrentHP)
	}
}

func TestUnboundKeywordAbortsCast(t *testing.T) {
	lib := DefaultLibrary()
	lib["KW_CHEER"] = &LibraryEntry{ID: "KW_CHEER", Name: "Cheer", Trigger: TriggerOnPlay, Target: TargetNone}
	cheer := powerCard("Cheer", 0, AppliedKeyword{KeywordID: "KW_CHEER"})

	mt, _ := newTestMatch(t, MatchConfig{Library: lib})
	giveCard(mt, Player1, cheer, 0)
	err := mt.playCardsPhase()
	var die *DataIntegrityError
	if !errors.As(err, &die) || die.KeywordID != "KW_CHEER" {
		t.Fatalf("Expected a data integrity error for KW_CHEER, got %v", err)
	}
}

func TestPowerWithoutKeywords(t *testing.T) {
	mt, logger := newTestMatch(t, MatchConfig{})
	giveCard(mt, Player1, &CardDefinition{ID: "dud", Name: "Dud", Type: CardTypePower}, 0)
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	effects := logger.EventsOfType(log.EventEffect)
	if len(effects) != 1 || !strings.Contains(effects[0].Details, "no effect") {
		t.Errorf("Expected a no-effect line, got %v", effects)
	}
	if d := mt.State.Player(Player1).Discard; len(d) != 1 {
		t.Errorf("Expected the dud in discard, got %v", d)
	}
}

func TestCustomEffectRegistry(t *testing.T) {
	applied := 0
	effects := DefaultEffects()
	effects[KWBolt] = &Effect{
		Name:   "Counted Bolt",
		Always: true,
		Apply: func(_ *Match, _ Source, ab EffectiveKeyword, _ []Target) error {
			applied += ab.Value
			return nil
		},
	}

	mt, _ := newTestMatch(t, MatchConfig{Effects: effects})
	giveCard(mt, Player1, SuddenLightning(), 0)
	if err := mt.playCardsPhase(); err != nil {
		t.Fatal(err)
	}
	if applied != 3 {
		t.Errorf("Expected the custom effect to run with value 3, got %d", applied)
	}
}

func TestSelectTargets(t *testing.T) {
	mt, _ := newTestMatch(t, MatchConfig{})
	ally := place(t, mt, Player1, 0, vanillaUnit("Ally", 1, 3, 0))
	e0 := place(t, mt, Player2, 0, vanillaUnit("E0", 1, 4, 0))
	e1 := place(t, mt, Player2, 1, vanillaUnit("E1", 1, 6, 0))
	hurt := place(t, mt, Player1, 1, vanillaUnit("Hurt", 1, 3, 0))
	hurt.CurrentHP = 1
	src := Source{Owner: Player1, Name: "Test", Unit: ally}

	tests := []struct {
		sel  TargetSelector
		want []Target
	}{
		{TargetSelf, []Target{{Unit: ally}}},
		{TargetOpposingSlotUnit, []Target{{Unit: e0}}},
		{TargetEnemyHero, []Target{{Hero: Player2}}},
		{TargetAllyHero, []Target{{Hero: Player1}}},
		{TargetAllEnemies, []Target{{Unit: e0}, {Unit: e1}}},
		{TargetAllUnits, []Target{{Unit: ally}, {Unit: hurt}, {Unit: e0}, {Unit: e1}}},
		{TargetLeftmostEnemy, []Target{{Unit: e0}}},
		{TargetHighestHPEnemy, []Target{{Unit: e1}}},
		{TargetLowestHPEnemy, []Target{{Unit: e0}}},
		{TargetLeftmostAlly, []Target{{Unit: ally}}},
		{TargetLowestHPAlly, []Target{{Unit: hurt}}},
		{TargetNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.sel.String(), func(t *testing.T) {
			got := mt.pick(tt.sel, mt.candidates(src, tt.sel))
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d targets, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("target %d: expected %s, got %s", i, tt.want[i].describe(), got[i].describe())
				}
			}
		})
	}

	// A power has no slot to oppose.
	if got := mt.candidates(Source{Owner: Player1}, TargetOpposingSlotUnit); len(got) != 0 {
		t.Errorf("Expected no opposing-slot target for a power, got %d", len(got))
	}
}
