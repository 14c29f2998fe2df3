package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseStartTurn
	PhaseDraw
	PhasePrepare
	PhasePlayCards
	PhaseAttack
	PhaseDeathAndShift
	PhaseEndTurn
	PhaseGameOver
	PhaseSetupError
)

func (p Phase) String() string {
	switch p {
	case PhaseStartTurn:
		return "Start Turn"
	case PhaseDraw:
		return "Draw"
	case PhasePrepare:
		return "Prepare"
	case PhasePlayCards:
		return "Play Cards"
	case PhaseAttack:
		return "Attack"
	case PhaseDeathAndShift:
		return "Death & Shift"
	case PhaseEndTurn:
		return "End Turn"
	case PhaseGameOver:
		return "Game Over"
	case PhaseSetupError:
		return "Setup Error"
	default:
		return "None"
	}
}

// PlayerID identifies one side of a match. NoPlayer marks a drawn match.
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
	Player2
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "none"
	}
}

// Opponent returns the other player's id.
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) index() int {
	return int(p) - 1
}

type CardType int

const (
	CardTypeUnit CardType = iota
	CardTypePower
	CardTypeEquipment
	CardTypePotion
	CardTypeScenario
	CardTypeHeroBase
)

var cardTypeNames = map[CardType]string{
	CardTypeUnit:      "Unit",
	CardTypePower:     "Power",
	CardTypeEquipment: "Equipment",
	CardTypePotion:    "Potion",
	CardTypeScenario:  "Scenario",
	CardTypeHeroBase:  "HeroBase",
}

func (ct CardType) String() string {
	if s, ok := cardTypeNames[ct]; ok {
		return s
	}
	return "Unknown"
}

// Playable reports whether cards of this type may be put in a deck.
func (ct CardType) Playable() bool {
	return ct == CardTypeUnit || ct == CardTypePower
}

func (ct *CardType) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalEnum(node, cardTypeNames, ct)
}

type EquipmentSlot int

const (
	SlotNone EquipmentSlot = iota
	SlotMainWeapon
	SlotOffhandWeapon
	SlotArmor
	SlotHelm
	SlotAmulet
)

var equipmentSlotNames = map[EquipmentSlot]string{
	SlotNone:          "",
	SlotMainWeapon:    "MainWeapon",
	SlotOffhandWeapon: "OffhandWeapon",
	SlotArmor:         "Armor",
	SlotHelm:          "Helm",
	SlotAmulet:        "Amulet",
}

func (s EquipmentSlot) String() string {
	return equipmentSlotNames[s]
}

func (s *EquipmentSlot) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalEnum(node, equipmentSlotNames, s)
}

// Trigger says when the engine evaluates a keyword.
type Trigger int

const (
	TriggerAlwaysActive Trigger = iota
	TriggerBattleStart
	TriggerPlayerTurnStart
	TriggerPlayerTurnEnd
	TriggerOnPlay
	TriggerAttackPhase
	TriggerOnAttack
	TriggerOnDefend
	TriggerOnDamaged
	TriggerOnDealCombatDamage
	TriggerOnDeath
	TriggerOnAllyDeath
	TriggerOnEnemyDeath
	TriggerOnDrawCard
)

var triggerNames = map[Trigger]string{
	TriggerAlwaysActive:       "AlwaysActive",
	TriggerBattleStart:        "BattleStart",
	TriggerPlayerTurnStart:    "PlayerTurnStart",
	TriggerPlayerTurnEnd:      "PlayerTurnEnd",
	TriggerOnPlay:             "OnPlay",
	TriggerAttackPhase:        "AttackPhase",
	TriggerOnAttack:           "OnAttack",
	TriggerOnDefend:           "OnDefend",
	TriggerOnDamaged:          "OnDamaged",
	TriggerOnDealCombatDamage: "OnDealCombatDamage",
	TriggerOnDeath:            "OnDeath",
	TriggerOnAllyDeath:        "OnAllyDeath",
	TriggerOnEnemyDeath:       "OnEnemyDeath",
	TriggerOnDrawCard:         "OnDrawCard",
}

func (t Trigger) String() string {
	if s, ok := triggerNames[t]; ok {
		return s
	}
	return "Unknown"
}

func (t *Trigger) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalEnum(node, triggerNames, t)
}

// TargetSelector picks who an ability affects.
type TargetSelector int

const (
	TargetNone TargetSelector = iota
	TargetSelf
	TargetOpposingSlotUnit
	TargetEnemyHero
	TargetAllyHero
	TargetRandomAlly
	TargetRandomEnemy
	TargetAllAllies
	TargetAllEnemies
	TargetAllUnits
	TargetLeftmostAlly
	TargetLeftmostEnemy
	TargetLowestHPEnemy
	TargetHighestHPEnemy
	TargetRandomHandCard
	TargetLowestHPAlly
)

var targetNames = map[TargetSelector]string{
	TargetNone:             "None",
	TargetSelf:             "Self",
	TargetOpposingSlotUnit: "OpposingSlotUnit",
	TargetEnemyHero:        "EnemyHero",
	TargetAllyHero:         "AllyHero",
	TargetRandomAlly:       "RandomAlly",
	TargetRandomEnemy:      "RandomEnemy",
	TargetAllAllies:        "AllAllies",
	TargetAllEnemies:       "AllEnemies",
	TargetAllUnits:         "AllUnits",
	TargetLeftmostAlly:     "LeftmostAlly",
	TargetLeftmostEnemy:    "LeftmostEnemy",
	TargetLowestHPEnemy:    "LowestHPEnemy",
	TargetHighestHPEnemy:   "HighestHPEnemy",
	TargetRandomHandCard:   "RandomHandCard",
	TargetLowestHPAlly:     "LowestHPAlly",
}

func (t TargetSelector) String() string {
	if s, ok := targetNames[t]; ok {
		return s
	}
	return "Unknown"
}

func (t *TargetSelector) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalEnum(node, targetNames, t)
}

// unmarshalEnum decodes a scalar YAML node by matching it against names.
func unmarshalEnum[E comparable](node *yaml.Node, names map[E]string, out *E) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	for v, name := range names {
		if name == s {
			*out = v
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown value %q", node.Line, s)
}

// --- Card definition (static, from catalog) ---

// CardDefinition is an immutable card template. Definitions are shared
// between matches and never mutated by the engine.
type CardDefinition struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name"`
	Type          CardType         `yaml:"type"`
	Preparation   int              `yaml:"preparation"`
	FlavorText    string           `yaml:"flavor_text,omitempty"`
	Keywords      []AppliedKeyword `yaml:"keywords,omitempty"`
	Affiliations  []string         `yaml:"affiliations,omitempty"`
	EquipmentSlot EquipmentSlot    `yaml:"equipment_slot,omitempty"`
	BaseCommand   int              `yaml:"base_command,omitempty"`
}

func (c *CardDefinition) String() string {
	return c.Name
}

// HasAffiliation reports whether the card carries the given tag.
func (c *CardDefinition) HasAffiliation(tag string) bool {
	for _, a := range c.Affiliations {
		if a == tag {
			return true
		}
	}
	return false
}

// --- Runtime instances ---

// CardInHand is a drawn card waiting to become playable.
type CardInHand struct {
	InstanceID           int
	Def                  *CardDefinition
	PreparationRemaining int
	Blocked              bool // power failed its target check this turn
}

func (c *CardInHand) String() string {
	if c.Blocked {
		return fmt.Sprintf("%s (prep %d, blocked)", c.Def.Name, c.PreparationRemaining)
	}
	return fmt.Sprintf("%s (prep %d)", c.Def.Name, c.PreparationRemaining)
}

// Playable reports whether the card can be attempted this PlayCards pass.
func (c *CardInHand) Playable() bool {
	return c.PreparationRemaining == 0 && !c.Blocked
}

// TemporaryKeyword is an effective keyword that expires after a number of
// owner turns.
type TemporaryKeyword struct {
	EffectiveKeyword
	TurnsLeft int
}

// UnitInPlay is a deployed unit occupying a field slot.
type UnitInPlay struct {
	InstanceID int
	Def        *CardDefinition
	Owner      PlayerID
	Slot       int
	CurrentHP  int
	MaxHP      int
	Attack     int

	Keywords  []EffectiveKeyword
	Temporary []TemporaryKeyword
	Barrier   *EffectiveKeyword // absorbs part of the next matching hit
}

func (u *UnitInPlay) String() string {
	if u == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s (ATK %d, HP %d/%d)", u.Def.Name, u.Attack, u.CurrentHP, u.MaxHP)
}

// Alive reports whether the unit still has HP left.
func (u *UnitInPlay) Alive() bool {
	return u != nil && u.CurrentHP > 0
}

// HasKeyword reports whether the unit carries a keyword bound to behavior.
func (u *UnitInPlay) HasKeyword(behavior string) bool {
	for _, k := range u.Keywords {
		if k.Effect == behavior {
			return true
		}
	}
	return false
}

// HasStatus reports whether a temporary keyword with the given status is active.
func (u *UnitInPlay) HasStatus(status string) bool {
	for _, t := range u.Temporary {
		if t.AppliedStatus == status {
			return true
		}
	}
	return false
}

// HeroInPlay is one player's hero.
type HeroInPlay struct {
	DefID        string
	Name         string
	CurrentHP    int
	MaxHP        int
	CommandLimit int

	Keywords          []EffectiveKeyword // from the hero base card
	EquipmentKeywords []EffectiveKeyword // from equipped items
	Equipment         map[EquipmentSlot]*CardDefinition
	Affiliations      []string
}

// AllKeywords returns the base keywords followed by the equipment keywords.
func (h *HeroInPlay) AllKeywords() []EffectiveKeyword {
	return append(append([]EffectiveKeyword(nil), h.Keywords...), h.EquipmentKeywords...)
}

func (h *HeroInPlay) String() string {
	return fmt.Sprintf("%s (HP %d/%d)", h.Name, h.CurrentHP, h.MaxHP)
}
