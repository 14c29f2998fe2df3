package game

// CardRegistry maps card ids to their constructor functions.
var CardRegistry = map[string]func() *CardDefinition{
	"goblin_scout":     GoblinScout,
	"fragile_skeleton": FragileSkeleton,
	"city_guard":       CityGuard,
	"brute_orc":        BruteOrc,
	"elf_archer":       ElfArcher,
	"field_medic":      FieldMedic,
	"sudden_lightning": SuddenLightning,
	"holy_nova":        HolyNova,
	"fireball":         Fireball,
	"mending_light":    MendingLight,
	"blinding_flash":   BlindingFlash,
	"war_drums":        WarDrums,
	"knight_commander": KnightCommander,
	"orc_warlord":      OrcWarlord,
	"steel_plate":      SteelPlate,
	"war_banner":       WarBanner,
}

// DefaultCatalog builds a catalog of the built-in cards over the built-in
// keyword library.
func DefaultCatalog() *Catalog {
	c := NewCatalog(DefaultLibrary())
	for _, ctor := range CardRegistry {
		if err := c.Add(ctor()); err != nil {
			panic(err)
		}
	}
	return c
}
