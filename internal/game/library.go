package game

// Keyword ids with built-in engine semantics.
const (
	KWStartingHP    = "KW_STARTING_HP"
	KWBonusHP       = "KW_BONUS_HP"
	KWBaseCommand   = "KW_BASE_COMMAND"
	KWMelee         = "KW_MELEE_UNIT"
	KWHeroMelee     = "KW_HERO_MELEE"
	KWMarksman      = "KW_MARKSMAN"
	KWSniper        = "KW_SNIPER"
	KWPiercingMelee = "KW_PIERCING_MELEE"
	KWLightning     = "KW_LIGHTNING"
	KWFlash         = "KW_FLASH"
	KWBolt          = "KW_BOLT"
	KWAreaDamage    = "KW_AREA_DAMAGE"
	KWHeroStrike    = "KW_HERO_STRIKE"
	KWBombardment   = "KW_BOMBARDMENT"
	KWHealing       = "KW_HEALING"
	KWRegeneration  = "KW_REGENERATION"
	KWApplyStatus   = "KW_APPLY_STATUS"
	KWHasten        = "KW_HASTEN"
	KWArmor         = "KW_ARMOR"
	KWBarrier       = "KW_BARRIER"
	KWCurse         = "KW_CURSE"
	KWKeywordBoost  = "KW_KEYWORD_BOOST"
	KWFear          = "KW_FEAR"
	KWProtector     = "KW_PROTECTOR"
	KWPoison        = "KW_POISON"
)

// Behavior names a library entry can bind through its effect field. The
// active ones are registered in Behaviors; the passive ones are read
// directly by the engine when it derives stats or resolves a hit.
const (
	BehaviorDamage  = "damage"
	BehaviorHeal    = "heal"
	BehaviorStatus  = "status"
	BehaviorHasten  = "hasten"
	BehaviorStrike  = "strike"
	BehaviorBarrier = "barrier"
	BehaviorPoison  = "poison"
	BehaviorWeaken  = "weaken"

	BehaviorHP        = "hp"
	BehaviorCommand   = "command"
	BehaviorArmor     = "armor"
	BehaviorBoost     = "boost"
	BehaviorFear      = "fear"
	BehaviorProtector = "protector"
)

var passiveBehaviors = map[string]bool{
	BehaviorHP:        true,
	BehaviorCommand:   true,
	BehaviorArmor:     true,
	BehaviorBoost:     true,
	BehaviorFear:      true,
	BehaviorProtector: true,
}

// DamageAny matches every damage type in armor and barrier checks.
const DamageAny = "Any"

// Statuses with engine meaning.
const (
	StatusBlinded  = "Blinded"
	StatusPoisoned = "Poisoned"
	StatusCursed   = "Cursed"
)

// Stats a fear keyword can compare the attacker on.
const (
	StatCurrentHP = "CurrentHP"
	StatAttack    = "Attack"
)

func intp(v int) *int { return &v }

func strp(s string) *string { return &s }

// DefaultLibrary returns a fresh copy of the built-in keyword library.
func DefaultLibrary() KeywordLibrary {
	entries := []*LibraryEntry{
		{
			ID:            KWStartingHP,
			Name:          "Starting HP",
			Description:   "Sets the maximum hit points of this entity to {VALUE}.",
			Trigger:       TriggerAlwaysActive,
			Target:        TargetSelf,
			Effect:        BehaviorHP,
			RequiresValue: true,
		},
		{
			ID:            KWBonusHP,
			Name:          "Bonus HP",
			Description:   "Increases maximum hit points by {VALUE}.",
			Trigger:       TriggerAlwaysActive,
			Target:        TargetSelf,
			Effect:        BehaviorHP,
			RequiresValue: true,
		},
		{
			ID:            KWBaseCommand,
			Name:          "Base Command",
			Description:   "Increases the hero's deck size limit by {VALUE}.",
			Trigger:       TriggerAlwaysActive,
			Target:        TargetSelf,
			Effect:        BehaviorCommand,
			RequiresValue: true,
		},
		{
			ID:                 KWMelee,
			Name:               "Melee",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to the unit in the opposing slot. If the slot is empty, attacks the enemy hero.",
			Trigger:            TriggerAttackPhase,
			Target:             TargetOpposingSlotUnit,
			Effect:             BehaviorStrike,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Physical"),
		},
		{
			ID:                 KWHeroMelee,
			Name:               "Hero Melee",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to the leftmost enemy unit, or the enemy hero if there is none.",
			Trigger:            TriggerAttackPhase,
			Target:             TargetLeftmostEnemy,
			Effect:             BehaviorStrike,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Physical"),
		},
		{
			ID:                 KWMarksman,
			Name:               "Marksman",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to the enemy unit with the lowest HP.",
			Trigger:            TriggerAttackPhase,
			Target:             TargetLowestHPEnemy,
			Effect:             BehaviorStrike,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Physical"),
		},
		{
			ID:                 KWSniper,
			Name:               "Sniper",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to the enemy unit with the highest HP.",
			Trigger:            TriggerAttackPhase,
			Target:             TargetHighestHPEnemy,
			Effect:             BehaviorStrike,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Physical"),
		},
		{
			ID:                  KWPiercingMelee,
			Name:                "Piercing Melee",
			Description:         "Deals {VALUE} {DAMAGETYPE} damage to the unit in the opposing slot (or the enemy hero), ignoring {TARGETVALUE} armor.",
			Trigger:             TriggerAttackPhase,
			Target:              TargetOpposingSlotUnit,
			Effect:              BehaviorStrike,
			RequiresValue:       true,
			RequiresDamageType:  true,
			RequiresTargetValue: true,
			DamageType:          strp("Physical"),
		},
		{
			ID:                 KWLightning,
			Name:               "Lightning",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to a random enemy unit.",
			Trigger:            TriggerAttackPhase,
			Target:             TargetRandomEnemy,
			Effect:             BehaviorStrike,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Lightning"),
		},
		{
			ID:                    KWFlash,
			Name:                  "Flash",
			Description:           "Applies {STATUS} to the unit in the opposing slot for {DURATION} turn(s).",
			Trigger:               TriggerAttackPhase,
			Target:                TargetOpposingSlotUnit,
			Effect:                BehaviorStatus,
			RequiresDuration:      true,
			RequiresAppliedStatus: true,
			Duration:              intp(1),
			AppliedStatus:         strp(StatusBlinded),
		},
		{
			ID:                 KWBolt,
			Name:               "Bolt",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to {TARGET}.",
			Trigger:            TriggerOnPlay,
			Target:             TargetLowestHPEnemy,
			Effect:             BehaviorDamage,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Lightning"),
		},
		{
			ID:                 KWAreaDamage,
			Name:               "Area Damage",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to every enemy unit.",
			Trigger:            TriggerOnPlay,
			Target:             TargetAllEnemies,
			Effect:             BehaviorDamage,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Holy"),
		},
		{
			ID:                 KWHeroStrike,
			Name:               "Hero Strike",
			Description:        "Deals {VALUE} {DAMAGETYPE} damage to the enemy hero.",
			Trigger:            TriggerOnPlay,
			Target:             TargetEnemyHero,
			Effect:             BehaviorDamage,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Fire"),
		},
		{
			ID:                 KWBombardment,
			Name:               "Bombardment",
			Description:        "At the end of your turn, deals {VALUE} {DAMAGETYPE} damage to every enemy unit.",
			Trigger:            TriggerPlayerTurnEnd,
			Target:             TargetAllEnemies,
			Effect:             BehaviorDamage,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp("Fire"),
		},
		{
			ID:            KWHealing,
			Name:          "Healing",
			Description:   "Heals {VALUE} hit points on {TARGET}.",
			Trigger:       TriggerOnPlay,
			Target:        TargetRandomAlly,
			Effect:        BehaviorHeal,
			RequiresValue: true,
		},
		{
			ID:            KWRegeneration,
			Name:          "Regeneration",
			Description:   "At the end of your turn, heals {VALUE} hit points on the allied unit with the lowest HP.",
			Trigger:       TriggerPlayerTurnEnd,
			Target:        TargetLowestHPAlly,
			Effect:        BehaviorHeal,
			RequiresValue: true,
		},
		{
			ID:                    KWApplyStatus,
			Name:                  "Apply Status",
			Description:           "Applies {STATUS} to {TARGET} for {DURATION} turn(s).",
			Trigger:               TriggerOnPlay,
			Target:                TargetRandomEnemy,
			Effect:                BehaviorStatus,
			RequiresDuration:      true,
			RequiresAppliedStatus: true,
		},
		{
			ID:            KWHasten,
			Name:          "Hasten",
			Description:   "Reduces the remaining preparation of {TARGET} by {VALUE}.",
			Trigger:       TriggerOnPlay,
			Target:        TargetRandomHandCard,
			Effect:        BehaviorHasten,
			RequiresValue: true,
			Value:         intp(1),
		},
		{
			ID:                 KWArmor,
			Name:               "Armor",
			Description:        "Reduces {DAMAGETYPE} damage taken by {VALUE}.",
			Trigger:            TriggerAlwaysActive,
			Target:             TargetSelf,
			Effect:             BehaviorArmor,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp(DamageAny),
		},
		{
			ID:                 KWBarrier,
			Name:               "Barrier",
			Description:        "When played, gains a barrier that absorbs {VALUE} {DAMAGETYPE} damage from the next hit, then dissolves.",
			Trigger:            TriggerOnPlay,
			Target:             TargetSelf,
			Effect:             BehaviorBarrier,
			RequiresValue:      true,
			RequiresDamageType: true,
			DamageType:         strp(DamageAny),
		},
		{
			ID:                    KWCurse,
			Name:                  "Curse",
			Description:           "At the start of your turn, a random enemy unit's '{TARGETVALUE}' abilities deal {VALUE} less for {DURATION} turn(s).",
			Trigger:               TriggerPlayerTurnStart,
			Target:                TargetRandomEnemy,
			Effect:                BehaviorWeaken,
			RequiresValue:         true,
			RequiresTargetValue:   true,
			RequiresDuration:      true,
			RequiresAppliedStatus: true,
			AppliedStatus:         strp(StatusCursed),
		},
		{
			ID:                  KWKeywordBoost,
			Name:                "Keyword Boost",
			Description:         "Increases the value of the bearer's '{TARGETVALUE}' keyword by {VALUE}.",
			Trigger:             TriggerAlwaysActive,
			Target:              TargetSelf,
			Effect:              BehaviorBoost,
			RequiresValue:       true,
			RequiresTargetValue: true,
		},
		{
			ID:                  KWFear,
			Name:                "Fear",
			Description:         "Enemy units with {TARGETVALUE} below {VALUE} skip their attacks against this unit.",
			Trigger:             TriggerOnDefend,
			Target:              TargetSelf,
			Effect:              BehaviorFear,
			RequiresValue:       true,
			RequiresTargetValue: true,
			TargetValue:         strp(StatCurrentHP),
		},
		{
			ID:          KWProtector,
			Name:        "Protector",
			Description: "Attacks that would hit the allied hero hit this unit instead.",
			Trigger:     TriggerAlwaysActive,
			Target:      TargetAllyHero,
			Effect:      BehaviorProtector,
		},
		{
			ID:                    KWPoison,
			Name:                  "Poison",
			Description:           "When it deals combat damage to a unit, poisons it for {VALUE} damage at the end of each of its owner's turns, for {DURATION} turn(s).",
			Trigger:               TriggerOnDealCombatDamage,
			Target:                TargetOpposingSlotUnit,
			Effect:                BehaviorPoison,
			RequiresValue:         true,
			RequiresDuration:      true,
			RequiresAppliedStatus: true,
			AppliedStatus:         strp(StatusPoisoned),
			DamageType:            strp("Poison"),
		},
	}

	lib := make(KeywordLibrary, len(entries))
	for _, e := range entries {
		lib[e.ID] = e
	}
	return lib
}

// maxHP sums the hit point keywords of a resolved keyword set.
func maxHP(keywords []EffectiveKeyword) int {
	return sumBehavior(keywords, BehaviorHP)
}

// attackValue sums the attack-phase strikes. It is the ATK shown for a unit.
func attackValue(keywords []EffectiveKeyword) int {
	atk := 0
	for _, k := range keywords {
		if k.Trigger == TriggerAttackPhase && k.Effect == BehaviorStrike {
			atk += k.Value
		}
	}
	return atk
}

// commandValue sums the base command keywords.
func commandValue(keywords []EffectiveKeyword) int {
	return sumBehavior(keywords, BehaviorCommand)
}

func sumBehavior(keywords []EffectiveKeyword, behavior string) int {
	n := 0
	for _, k := range keywords {
		if k.Effect == behavior {
			n += k.Value
		}
	}
	return n
}

// UnitStats returns the attack and hit points a unit with these keywords
// deploys with.
func UnitStats(keywords []EffectiveKeyword) (attack, hp int) {
	return attackValue(keywords), maxHP(keywords)
}

// applyBoosts adds every boost keyword's value to the keywords it names,
// in place.
func applyBoosts(keywords []EffectiveKeyword) {
	for _, b := range keywords {
		if b.Effect != BehaviorBoost {
			continue
		}
		for i := range keywords {
			if keywords[i].KeywordID == b.TargetValue {
				keywords[i].Value += b.Value
			}
		}
	}
}
