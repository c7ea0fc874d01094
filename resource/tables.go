// Package resource holds the read-only game balance tables supplied at
// startup: grotto levels, plantable herbs, spirit-array enhancements, rarity
// scaling, realm ordering, pet templates and discoverable recipes. Defaults
// are embedded; individual tables can be overridden from JSON files.
package resource

import (
	"time"

	"github.com/qingyunzi/xiuxian/server/game/item"
)

// GrottoLevel is one purchasable grotto tier.
type GrottoLevel struct {
	Level            int     `json:"level"`
	Name             string  `json:"name"`
	Cost             int     `json:"cost"`
	RealmRequirement string  `json:"realmRequirement,omitempty"`
	ExpRateBonus     float64 `json:"expRateBonus"`
	StorageCapacity  int     `json:"storageCapacity"`
	MaxHerbSlots     int     `json:"maxHerbSlots"`
}

// HerbConfig describes a plantable herb.
type HerbConfig struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Rarity      item.Rarity `json:"rarity"`
	// GrowthTimeMs is the wall-clock maturation duration in milliseconds.
	GrowthTimeMs           int64 `json:"growthTimeMs"`
	YieldMin               int   `json:"yieldMin"`
	YieldMax               int   `json:"yieldMax"`
	GrottoLevelRequirement int   `json:"grottoLevelRequirement"`
}

// GrowthDuration returns the maturation time as a Duration.
func (h HerbConfig) GrowthDuration() time.Duration {
	return time.Duration(h.GrowthTimeMs) * time.Millisecond
}

// MaterialCost is one material requirement of a spirit-array enhancement.
type MaterialCost struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Enhancement is one spirit-array upgrade. Enhancements stack additively and
// each may be applied once per purchase; no cap is enforced here.
type Enhancement struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	GrottoLevelRequirement int            `json:"grottoLevelRequirement"`
	ExpRateBonus           float64        `json:"expRateBonus"`
	Materials              []MaterialCost `json:"materials"`
}

// PetStats is a pet's base combat block.
type PetStats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	HP      int `json:"hp"`
	Speed   int `json:"speed"`
}

// PetTemplate is a hatchable companion archetype. Eggs draw a template whose
// rarity is compatible with the consumed egg's rarity.
type PetTemplate struct {
	Species   string      `json:"species"`
	Rarity    item.Rarity `json:"rarity"`
	BaseStats PetStats    `json:"baseStats"`
	Skills    []string    `json:"skills"`
	Names     []string    `json:"names"`
}

// Tables bundles every configuration table the core consults.
type Tables struct {
	GrottoLevels []GrottoLevel               `json:"grottoLevels"`
	Herbs        []HerbConfig                `json:"herbs"`
	Enhancements []Enhancement               `json:"enhancements"`
	PetTemplates []PetTemplate               `json:"petTemplates"`
	Recipes      []string                    `json:"recipes"`
	Realms       []string                    `json:"realms"`
	KnownEffects map[string]item.KnownEffect `json:"knownEffects"`
	Rarities     item.RarityTable            `json:"rarities"`
}

// GrottoLevelByLevel looks up a grotto level config.
func (t *Tables) GrottoLevelByLevel(level int) (GrottoLevel, bool) {
	for _, g := range t.GrottoLevels {
		if g.Level == level {
			return g, true
		}
	}
	return GrottoLevel{}, false
}

// HerbByID looks up a plantable herb config.
func (t *Tables) HerbByID(id string) (HerbConfig, bool) {
	for _, h := range t.Herbs {
		if h.ID == id {
			return h, true
		}
	}
	return HerbConfig{}, false
}

// EnhancementByID looks up a spirit-array enhancement config.
func (t *Tables) EnhancementByID(id string) (Enhancement, bool) {
	for _, e := range t.Enhancements {
		if e.ID == id {
			return e, true
		}
	}
	return Enhancement{}, false
}

// RealmIndex reports the position of realm in the progression order, or -1.
func (t *Tables) RealmIndex(realm string) int {
	for i, r := range t.Realms {
		if r == realm {
			return i
		}
	}
	return -1
}

// RecipeKnown reports whether name is a discoverable recipe.
func (t *Tables) RecipeKnown(name string) bool {
	for _, r := range t.Recipes {
		if r == name {
			return true
		}
	}
	return false
}

// PetTemplatesForEgg filters pet templates by rarity compatibility with the
// consumed egg: each egg tier can hatch its own tier or the next one up,
// except the top tier which only hatches itself.
func (t *Tables) PetTemplatesForEgg(eggRarity item.Rarity) []PetTemplate {
	allowed := map[item.Rarity]bool{}
	switch eggRarity {
	case item.RarityCommon:
		allowed[item.RarityCommon] = true
		allowed[item.RarityRare] = true
	case item.RarityRare:
		allowed[item.RarityRare] = true
		allowed[item.RarityLegendary] = true
	case item.RarityLegendary:
		allowed[item.RarityLegendary] = true
		allowed[item.RarityImmortal] = true
	case item.RarityImmortal:
		allowed[item.RarityImmortal] = true
	default:
		return append([]PetTemplate(nil), t.PetTemplates...)
	}
	var out []PetTemplate
	for _, p := range t.PetTemplates {
		if allowed[p.Rarity] {
			out = append(out, p)
		}
	}
	return out
}
