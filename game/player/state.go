// Package player owns the single-player aggregate: identity, combat stats,
// inventory, equipment mapping, pets, recipes, grotto state. All mutation
// flows through Store as snapshot-in/snapshot-out transitions.
package player

import (
	"time"

	"github.com/qingyunzi/xiuxian/server/game/item"
)

// Pet is a hatched companion.
type Pet struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Species        string      `json:"species"`
	Level          int         `json:"level"`
	Exp            int         `json:"exp"`
	MaxExp         int         `json:"maxExp"`
	Rarity         item.Rarity `json:"rarity"`
	Attack         int         `json:"attack"`
	Defense        int         `json:"defense"`
	HP             int         `json:"hp"`
	Speed          int         `json:"speed"`
	Skills         []string    `json:"skills"`
	EvolutionStage int         `json:"evolutionStage"`
	Affection      int         `json:"affection"`
}

// PlantedHerb is one occupied grotto production slot. Created by plant,
// destroyed by harvest, never otherwise mutated. The yield quantity is fixed
// at plant time.
type PlantedHerb struct {
	HerbID      string    `json:"herbId"`
	HerbName    string    `json:"herbName"`
	PlantTime   time.Time `json:"plantTime"`
	HarvestTime time.Time `json:"harvestTime"`
	Quantity    int       `json:"quantity"`
}

// Mature reports whether the herb can be harvested at now. The boundary is
// inclusive: a harvest at exactly HarvestTime succeeds.
func (p PlantedHerb) Mature(now time.Time) bool {
	return !now.Before(p.HarvestTime)
}

// Grotto is the idle-production habitat state. Level 0 means not owned.
type Grotto struct {
	Level                  int           `json:"level"`
	ExpRateBonus           float64       `json:"expRateBonus"`
	SpiritArrayEnhancement float64       `json:"spiritArrayEnhancement"`
	StorageCapacity        int           `json:"storageCapacity"`
	LastHarvestTime        *time.Time    `json:"lastHarvestTime,omitempty"`
	PlantedHerbs           []PlantedHerb `json:"plantedHerbs"`
}

// Statistics tracks lifetime counters surfaced in the UI.
type Statistics struct {
	KillCount        int `json:"killCount"`
	MeditateCount    int `json:"meditateCount"`
	AdventureCount   int `json:"adventureCount"`
	EquipCount       int `json:"equipCount"`
	PetCount         int `json:"petCount"`
	RecipeCount      int `json:"recipeCount"`
	BreakthroughCount int `json:"breakthroughCount"`
}

// State is the full player aggregate. It is a value: transitions deep-copy
// it, mutate the copy and return it, so a rejected operation never leaves a
// partially applied aggregate behind.
type State struct {
	Name       string `json:"name"`
	Realm      string `json:"realm"`
	RealmLevel int    `json:"realmLevel"`

	HP          int `json:"hp"`
	MaxHP       int `json:"maxHp"`
	Attack      int `json:"attack"`
	Defense     int `json:"defense"`
	Spirit      int `json:"spirit"`
	Physique    int `json:"physique"`
	Speed       int `json:"speed"`
	Exp         int `json:"exp"`
	Lifespan    int `json:"lifespan"`
	MaxLifespan int `json:"maxLifespan"`

	SpiritStones   int                 `json:"spiritStones"`
	SpiritualRoots item.SpiritualRoots `json:"spiritualRoots"`

	Inventory []item.Item `json:"inventory"`
	// Equipped maps slots to item ids. The references are weak: an id that
	// no longer resolves into the inventory is stale and ignored.
	Equipped        map[item.Slot]string `json:"equippedItems"`
	NatalArtifactID string               `json:"natalArtifactId,omitempty"`

	Pets            []Pet      `json:"pets"`
	UnlockedRecipes []string   `json:"unlockedRecipes"`
	Statistics      Statistics `json:"statistics"`
	Grotto          Grotto     `json:"grotto"`
}

// New creates a fresh level-one cultivator.
func New(name string) State {
	return State{
		Name:         name,
		Realm:        "炼气",
		RealmLevel:   1,
		HP:           100,
		MaxHP:        100,
		Attack:       10,
		Defense:      5,
		Spirit:       10,
		Physique:     10,
		Speed:        10,
		Lifespan:     100,
		MaxLifespan:  100,
		SpiritStones: 100,
		Equipped:     make(map[item.Slot]string),
	}
}

// Clone deep-copies the aggregate.
func (s State) Clone() State {
	c := s
	if s.Inventory != nil {
		c.Inventory = make([]item.Item, len(s.Inventory))
		for i, it := range s.Inventory {
			c.Inventory[i] = it.Clone()
		}
	}
	if s.Equipped != nil {
		c.Equipped = make(map[item.Slot]string, len(s.Equipped))
		for k, v := range s.Equipped {
			c.Equipped[k] = v
		}
	}
	if s.Pets != nil {
		c.Pets = make([]Pet, len(s.Pets))
		for i, p := range s.Pets {
			cp := p
			cp.Skills = append([]string(nil), p.Skills...)
			c.Pets[i] = cp
		}
	}
	c.UnlockedRecipes = append([]string(nil), s.UnlockedRecipes...)
	if s.Grotto.PlantedHerbs != nil {
		c.Grotto.PlantedHerbs = append([]PlantedHerb(nil), s.Grotto.PlantedHerbs...)
	}
	if s.Grotto.LastHarvestTime != nil {
		t := *s.Grotto.LastHarvestTime
		c.Grotto.LastHarvestTime = &t
	}
	return c
}

// Normalize synthesizes fields absent from older snapshots instead of
// rejecting them: nil maps, zero lifespans, missing grotto sub-fields.
// Stale equipment references are pruned.
func (s *State) Normalize() {
	if s.Equipped == nil {
		s.Equipped = make(map[item.Slot]string)
	}
	for slot, id := range s.Equipped {
		if _, ok := item.FindByID(s.Inventory, id); !ok {
			delete(s.Equipped, slot)
		}
	}
	if s.NatalArtifactID != "" {
		if _, ok := item.FindByID(s.Inventory, s.NatalArtifactID); !ok {
			s.NatalArtifactID = ""
		}
	}
	if s.MaxLifespan <= 0 {
		s.MaxLifespan = 100
	}
	if s.Lifespan <= 0 {
		s.Lifespan = s.MaxLifespan
	}
	if s.MaxHP <= 0 {
		s.MaxHP = 100
	}
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	if s.Grotto.Level < 0 {
		s.Grotto.Level = 0
	}
	// Older saves predate the spirit array; the zero value is correct, so
	// nothing to do for SpiritArrayEnhancement beyond accepting absence.
	for i := range s.Inventory {
		if s.Inventory[i].ID == "" {
			s.Inventory[i].ID = item.NewID()
		}
		if s.Inventory[i].Quantity < 1 {
			s.Inventory[i].Quantity = 1
		}
	}
}

// IsEquipped reports whether the item id is referenced by any equip slot.
func (s State) IsEquipped(id string) bool {
	for _, v := range s.Equipped {
		if v == id {
			return true
		}
	}
	return false
}

// EquippedTotals sums the resolved stats of every equipped item, applying
// the natal multiplier to the bound artifact. Re-derived on every call.
func (s State) EquippedTotals() item.Stats {
	var total item.Stats
	for _, id := range s.Equipped {
		it, ok := item.FindByID(s.Inventory, id)
		if !ok {
			continue // stale reference
		}
		total.Add(item.EquipStats(it, id == s.NatalArtifactID && id != ""))
	}
	return total
}
