package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDataIntegrity is wrapped by every content error: malformed card or
// keyword data that must abort resolution.
var ErrDataIntegrity = errors.New("data integrity")

// DataIntegrityError describes a content error.
type DataIntegrityError struct {
	CardID    string
	KeywordID string
	Reason    string
}

func (e *DataIntegrityError) Error() string {
	var sb strings.Builder
	sb.WriteString("data integrity: ")
	if e.CardID != "" {
		fmt.Fprintf(&sb, "card %q: ", e.CardID)
	}
	if e.KeywordID != "" {
		fmt.Fprintf(&sb, "keyword %q: ", e.KeywordID)
	}
	sb.WriteString(e.Reason)
	return sb.String()
}

func (e *DataIntegrityError) Unwrap() error {
	return ErrDataIntegrity
}

// LibraryEntry is the catalog definition of a keyword.
type LibraryEntry struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Trigger     Trigger        `yaml:"trigger"`
	Target      TargetSelector `yaml:"target"`

	// Effect names the built-in behavior that runs the keyword when no
	// effect is registered under its id. AttackPhase keywords default to
	// BehaviorStrike.
	Effect string `yaml:"effect,omitempty"`

	RequiresValue         bool `yaml:"requires_value,omitempty"`
	RequiresDamageType    bool `yaml:"requires_damage_type,omitempty"`
	RequiresTargetValue   bool `yaml:"requires_target_value,omitempty"`
	RequiresDuration      bool `yaml:"requires_duration,omitempty"`
	RequiresAppliedStatus bool `yaml:"requires_applied_status,omitempty"`

	// Library defaults, overridden by the applied instance.
	Value         *int    `yaml:"value,omitempty"`
	DamageType    *string `yaml:"damage_type,omitempty"`
	TargetValue   *string `yaml:"target_value,omitempty"`
	Duration      *int    `yaml:"duration,omitempty"`
	AppliedStatus *string `yaml:"applied_status,omitempty"`
}

// AppliedKeyword attaches a library keyword to a specific card.
type AppliedKeyword struct {
	KeywordID     string  `yaml:"id"`
	Value         *int    `yaml:"value,omitempty"`
	DamageType    *string `yaml:"damage_type,omitempty"`
	TargetValue   *string `yaml:"target_value,omitempty"`
	Duration      *int    `yaml:"duration,omitempty"`
	AppliedStatus *string `yaml:"applied_status,omitempty"`
}

// KeywordLibrary maps keyword ids to their entries.
type KeywordLibrary map[string]*LibraryEntry

// Lookup returns the entry for id, or a DataIntegrityError.
func (lib KeywordLibrary) Lookup(id string) (*LibraryEntry, error) {
	entry, ok := lib[id]
	if !ok || entry == nil {
		return nil, &DataIntegrityError{KeywordID: id, Reason: "no library entry"}
	}
	return entry, nil
}

// EffectiveKeyword is a library entry merged with an applied instance. The
// Has* flags distinguish an explicit zero from an absent field.
type EffectiveKeyword struct {
	KeywordID   string
	Name        string
	Description string
	Trigger     Trigger
	Target      TargetSelector
	Effect      string

	Value         int
	HasValue      bool
	DamageType    string
	TargetValue   string
	Duration      int
	HasDuration   bool
	AppliedStatus string
}

func (ek EffectiveKeyword) String() string {
	if ek.HasValue {
		return fmt.Sprintf("%s(%d)", ek.Name, ek.Value)
	}
	return ek.Name
}

// Resolve merges the library entry for ak with the instance's fields.
func Resolve(lib KeywordLibrary, ak AppliedKeyword) (EffectiveKeyword, error) {
	entry, err := lib.Lookup(ak.KeywordID)
	if err != nil {
		return EffectiveKeyword{}, err
	}

	ek := EffectiveKeyword{
		KeywordID: entry.ID,
		Name:      entry.Name,
		Trigger:   entry.Trigger,
		Target:    entry.Target,
		Effect:    entry.Effect,
	}
	if ek.Effect == "" && ek.Trigger == TriggerAttackPhase {
		ek.Effect = BehaviorStrike
	}
	if v := pick(ak.Value, entry.Value); v != nil {
		ek.Value, ek.HasValue = *v, true
	}
	if v := pick(ak.Duration, entry.Duration); v != nil {
		ek.Duration, ek.HasDuration = *v, true
	}
	if v := pick(ak.DamageType, entry.DamageType); v != nil {
		ek.DamageType = *v
	}
	if v := pick(ak.TargetValue, entry.TargetValue); v != nil {
		ek.TargetValue = *v
	}
	if v := pick(ak.AppliedStatus, entry.AppliedStatus); v != nil {
		ek.AppliedStatus = *v
	}
	ek.Description = renderDescription(entry.Description, ek)
	return ek, nil
}

// ResolveAll resolves keywords in order, stopping at the first error.
func ResolveAll(lib KeywordLibrary, keywords []AppliedKeyword) ([]EffectiveKeyword, error) {
	out := make([]EffectiveKeyword, 0, len(keywords))
	for _, ak := range keywords {
		ek, err := Resolve(lib, ak)
		if err != nil {
			return nil, err
		}
		out = append(out, ek)
	}
	return out, nil
}

func pick[T any](instance, library *T) *T {
	if instance != nil {
		return instance
	}
	return library
}

func renderDescription(template string, ek EffectiveKeyword) string {
	value, duration := "", ""
	if ek.HasValue {
		value = strconv.Itoa(ek.Value)
	}
	if ek.HasDuration {
		duration = strconv.Itoa(ek.Duration)
	}
	return strings.NewReplacer(
		"{VALUE}", value,
		"{DAMAGETYPE}", ek.DamageType,
		"{TARGETVALUE}", ek.TargetValue,
		"{DURATION}", duration,
		"{STATUS}", ek.AppliedStatus,
		"{TARGET}", ek.Target.String(),
	).Replace(template)
}

// checkRequired verifies the library's Requires* flags against the merged ability.
func checkRequired(entry *LibraryEntry, ek EffectiveKeyword) string {
	var missing []string
	if entry.RequiresValue && !ek.HasValue {
		missing = append(missing, "value")
	}
	if entry.RequiresDamageType && ek.DamageType == "" {
		missing = append(missing, "damage type")
	}
	if entry.RequiresTargetValue && ek.TargetValue == "" {
		missing = append(missing, "target value")
	}
	if entry.RequiresDuration && !ek.HasDuration {
		missing = append(missing, "duration")
	}
	if entry.RequiresAppliedStatus && ek.AppliedStatus == "" {
		missing = append(missing, "applied status")
	}
	if len(missing) == 0 {
		return ""
	}
	return "missing " + strings.Join(missing, ", ")
}

// ValidateCard checks a definition against the keyword library and the
// fields its type requires.
func ValidateCard(lib KeywordLibrary, def *CardDefinition) error {
	if def == nil {
		return &DataIntegrityError{Reason: "nil card definition"}
	}
	fail := func(kw, reason string) error {
		return &DataIntegrityError{CardID: def.ID, KeywordID: kw, Reason: reason}
	}
	if def.ID == "" {
		return fail("", "empty id")
	}
	if def.Preparation < 0 {
		return fail("", "negative preparation")
	}

	resolved := make([]EffectiveKeyword, 0, len(def.Keywords))
	for _, ak := range def.Keywords {
		entry, err := lib.Lookup(ak.KeywordID)
		if err != nil {
			return fail(ak.KeywordID, "no library entry")
		}
		ek, _ := Resolve(lib, ak)
		if reason := checkRequired(entry, ek); reason != "" {
			return fail(ak.KeywordID, reason)
		}
		if ek.HasDuration && ek.Duration <= 0 {
			return fail(ak.KeywordID, "duration must be positive")
		}
		resolved = append(resolved, ek)
	}

	switch def.Type {
	case CardTypeUnit:
		if maxHP(resolved) <= 0 {
			return fail("", "unit has no hit points")
		}
	case CardTypeEquipment:
		if def.EquipmentSlot == SlotNone {
			return fail("", "equipment has no slot")
		}
	case CardTypeHeroBase:
		if def.BaseCommand <= 0 {
			return fail("", "hero has no base command")
		}
	}
	return nil
}
