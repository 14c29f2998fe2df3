package game

// unit builds the keyword list shared by plain melee units.
func unit(attack, hp int) []AppliedKeyword {
	return []AppliedKeyword{
		{KeywordID: KWStartingHP, Value: intp(hp)},
		{KeywordID: KWMelee, Value: intp(attack)},
	}
}

// --- Units ---

func GoblinScout() *CardDefinition {
	return &CardDefinition{
		ID:           "goblin_scout",
		Name:         "Goblin Scout",
		Type:         CardTypeUnit,
		Preparation:  2,
		FlavorText:   "An annoying little creature.",
		Keywords:     unit(2, 3),
		Affiliations: []string{"Horde"},
	}
}

func FragileSkeleton() *CardDefinition {
	return &CardDefinition{
		ID:           "fragile_skeleton",
		Name:         "Fragile Skeleton",
		Type:         CardTypeUnit,
		Preparation:  1,
		FlavorText:   "Breaks easily.",
		Keywords:     unit(1, 1),
		Affiliations: []string{"Undead"},
	}
}

func CityGuard() *CardDefinition {
	return &CardDefinition{
		ID:           "city_guard",
		Name:         "City Guard",
		Type:         CardTypeUnit,
		Preparation:  3,
		FlavorText:   "A standard defender.",
		Keywords:     unit(3, 5),
		Affiliations: []string{"Kingdom"},
	}
}

func BruteOrc() *CardDefinition {
	return &CardDefinition{
		ID:           "brute_orc",
		Name:         "Brute Orc",
		Type:         CardTypeUnit,
		Preparation:  4,
		FlavorText:   "Big and burly.",
		Keywords:     unit(5, 7),
		Affiliations: []string{"Horde"},
	}
}

func ElfArcher() *CardDefinition {
	kws := unit(3, 3)
	kws = append(kws, AppliedKeyword{KeywordID: KWBolt, Value: intp(1), DamageType: strp("Physical")})
	return &CardDefinition{
		ID:           "elf_archer",
		Name:         "Elf Archer",
		Type:         CardTypeUnit,
		Preparation:  3,
		FlavorText:   "Strikes from a distance.",
		Keywords:     kws,
		Affiliations: []string{"Kingdom"},
	}
}

func FieldMedic() *CardDefinition {
	kws := unit(1, 4)
	kws = append(kws, AppliedKeyword{KeywordID: KWHealing, Value: intp(2)})
	return &CardDefinition{
		ID:           "field_medic",
		Name:         "Field Medic",
		Type:         CardTypeUnit,
		Preparation:  2,
		FlavorText:   "Patches up whoever is closest.",
		Keywords:     kws,
		Affiliations: []string{"Kingdom"},
	}
}

// --- Powers ---

func SuddenLightning() *CardDefinition {
	return &CardDefinition{
		ID:          "sudden_lightning",
		Name:        "Sudden Lightning",
		Type:        CardTypePower,
		Preparation: 2,
		FlavorText:  "Deals 3 damage to the enemy unit with the lowest health.",
		Keywords:    []AppliedKeyword{{KeywordID: KWBolt, Value: intp(3)}},
	}
}

func HolyNova() *CardDefinition {
	return &CardDefinition{
		ID:          "holy_nova",
		Name:        "Holy Nova",
		Type:        CardTypePower,
		Preparation: 3,
		Keywords:    []AppliedKeyword{{KeywordID: KWAreaDamage, Value: intp(2)}},
	}
}

func Fireball() *CardDefinition {
	return &CardDefinition{
		ID:          "fireball",
		Name:        "Fireball",
		Type:        CardTypePower,
		Preparation: 3,
		Keywords:    []AppliedKeyword{{KeywordID: KWHeroStrike, Value: intp(4)}},
	}
}

func MendingLight() *CardDefinition {
	return &CardDefinition{
		ID:          "mending_light",
		Name:        "Mending Light",
		Type:        CardTypePower,
		Preparation: 1,
		Keywords:    []AppliedKeyword{{KeywordID: KWHealing, Value: intp(3)}},
	}
}

func BlindingFlash() *CardDefinition {
	return &CardDefinition{
		ID:          "blinding_flash",
		Name:        "Blinding Flash",
		Type:        CardTypePower,
		Preparation: 1,
		Keywords: []AppliedKeyword{{
			KeywordID:     KWApplyStatus,
			Duration:      intp(1),
			AppliedStatus: strp(StatusBlinded),
		}},
	}
}

func WarDrums() *CardDefinition {
	return &CardDefinition{
		ID:          "war_drums",
		Name:        "War Drums",
		Type:        CardTypePower,
		Preparation: 1,
		Keywords:    []AppliedKeyword{{KeywordID: KWHasten, Value: intp(2)}},
	}
}

// --- Heroes ---

func KnightCommander() *CardDefinition {
	return &CardDefinition{
		ID:           "knight_commander",
		Name:         "Knight Commander",
		Type:         CardTypeHeroBase,
		Keywords:     []AppliedKeyword{{KeywordID: KWStartingHP, Value: intp(DefaultHeroHP)}},
		Affiliations: []string{"Kingdom"},
		BaseCommand:  30,
	}
}

func OrcWarlord() *CardDefinition {
	return &CardDefinition{
		ID:           "orc_warlord",
		Name:         "Orc Warlord",
		Type:         CardTypeHeroBase,
		Keywords:     []AppliedKeyword{{KeywordID: KWStartingHP, Value: intp(35)}},
		Affiliations: []string{"Horde"},
		BaseCommand:  35,
	}
}

// --- Equipment ---

func SteelPlate() *CardDefinition {
	return &CardDefinition{
		ID:            "steel_plate",
		Name:          "Steel Plate",
		Type:          CardTypeEquipment,
		EquipmentSlot: SlotArmor,
		Keywords:      []AppliedKeyword{{KeywordID: KWBonusHP, Value: intp(5)}},
	}
}

func WarBanner() *CardDefinition {
	return &CardDefinition{
		ID:            "war_banner",
		Name:          "War Banner",
		Type:          CardTypeEquipment,
		EquipmentSlot: SlotAmulet,
		Keywords:      []AppliedKeyword{{KeywordID: KWBaseCommand, Value: intp(5)}},
	}
}
