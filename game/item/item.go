// Package item implements the item domain: classification, effect
// normalization, stat resolution, pricing and the inventory mutator.
// Everything here is a pure computation over immutable item values; the
// player aggregate owns the inventory slice itself.
package item

import "github.com/google/uuid"

// Rarity is the ordered quality tier of an item. The values are the
// player-facing Chinese labels, which is also how AI-generated loot payloads
// declare them.
type Rarity string

const (
	RarityCommon    Rarity = "普通"
	RarityRare      Rarity = "稀有"
	RarityLegendary Rarity = "传说"
	RarityImmortal  Rarity = "仙品"
)

var rarityOrder = []Rarity{RarityCommon, RarityRare, RarityLegendary, RarityImmortal}

// Index reports the position of r in the rarity ordering, or 0 for unknown
// rarities (unknown input degrades to the lowest tier).
func (r Rarity) Index() int {
	for i, v := range rarityOrder {
		if v == r {
			return i
		}
	}
	return 0
}

// Valid reports whether r is one of the four known tiers.
func (r Rarity) Valid() bool {
	for _, v := range rarityOrder {
		if v == r {
			return true
		}
	}
	return false
}

// Category is the canonical item kind.
type Category string

const (
	CategoryWeapon    Category = "武器"
	CategoryArmor     Category = "护甲"
	CategoryAccessory Category = "饰品"
	CategoryRing      Category = "戒指"
	CategoryArtifact  Category = "法宝"
	CategoryHerb      Category = "草药"
	CategoryPill      Category = "丹药"
	CategoryMaterial  Category = "材料"
	CategoryRecipe    Category = "丹方"
)

// IsConsumable reports whether c sells at the consumable discount.
func (c Category) IsConsumable() bool {
	return c == CategoryHerb || c == CategoryPill
}

// Slot identifies one physical equipment slot.
type Slot string

const (
	SlotWeapon     Slot = "weapon"
	SlotHead       Slot = "head"
	SlotShoulder   Slot = "shoulder"
	SlotChest      Slot = "chest"
	SlotGloves     Slot = "gloves"
	SlotLegs       Slot = "legs"
	SlotBoots      Slot = "boots"
	SlotRing1      Slot = "ring1"
	SlotRing2      Slot = "ring2"
	SlotRing3      Slot = "ring3"
	SlotRing4      Slot = "ring4"
	SlotAccessory1 Slot = "accessory1"
	SlotAccessory2 Slot = "accessory2"
	SlotArtifact1  Slot = "artifact1"
	SlotArtifact2  Slot = "artifact2"
)

// Slot groups: several physical slots share one filter category in the UI.
var (
	RingSlots      = []Slot{SlotRing1, SlotRing2, SlotRing3, SlotRing4}
	AccessorySlots = []Slot{SlotAccessory1, SlotAccessory2}
	ArtifactSlots  = []Slot{SlotArtifact1, SlotArtifact2}
	AllSlots       = []Slot{
		SlotWeapon, SlotHead, SlotShoulder, SlotChest, SlotGloves, SlotLegs, SlotBoots,
		SlotRing1, SlotRing2, SlotRing3, SlotRing4,
		SlotAccessory1, SlotAccessory2, SlotArtifact1, SlotArtifact2,
	}
)

// Effect is a bag of temporary stat deltas applied when an item is used or
// while it is equipped. Fields are pointers so "unset" stays distinguishable
// from an explicit zero.
type Effect struct {
	Attack   *int `json:"attack,omitempty"`
	Defense  *int `json:"defense,omitempty"`
	HP       *int `json:"hp,omitempty"`
	Spirit   *int `json:"spirit,omitempty"`
	Physique *int `json:"physique,omitempty"`
	Speed    *int `json:"speed,omitempty"`
	Exp      *int `json:"exp,omitempty"`
	Lifespan *int `json:"lifespan,omitempty"`
}

// Clone deep-copies the effect bag.
func (e *Effect) Clone() *Effect {
	if e == nil {
		return nil
	}
	c := &Effect{}
	c.Attack = cloneInt(e.Attack)
	c.Defense = cloneInt(e.Defense)
	c.HP = cloneInt(e.HP)
	c.Spirit = cloneInt(e.Spirit)
	c.Physique = cloneInt(e.Physique)
	c.Speed = cloneInt(e.Speed)
	c.Exp = cloneInt(e.Exp)
	c.Lifespan = cloneInt(e.Lifespan)
	return c
}

// SpiritualRoots holds the five elemental affinity values (0-100 on the
// player, deltas on an item).
type SpiritualRoots struct {
	Metal int `json:"metal"`
	Wood  int `json:"wood"`
	Water int `json:"water"`
	Fire  int `json:"fire"`
	Earth int `json:"earth"`
}

// AllZero reports whether every affinity is zero. An item declaring an
// all-zero bag grants one random root +5 instead of nothing.
func (s SpiritualRoots) AllZero() bool {
	return s.Metal == 0 && s.Wood == 0 && s.Water == 0 && s.Fire == 0 && s.Earth == 0
}

// PermanentEffect is a bag of permanent stat deltas granted once on use.
type PermanentEffect struct {
	Attack         *int            `json:"attack,omitempty"`
	Defense        *int            `json:"defense,omitempty"`
	Spirit         *int            `json:"spirit,omitempty"`
	Physique       *int            `json:"physique,omitempty"`
	Speed          *int            `json:"speed,omitempty"`
	MaxHP          *int            `json:"maxHp,omitempty"`
	MaxLifespan    *int            `json:"maxLifespan,omitempty"`
	SpiritualRoots *SpiritualRoots `json:"spiritualRoots,omitempty"`
}

// Clone deep-copies the permanent effect bag.
func (e *PermanentEffect) Clone() *PermanentEffect {
	if e == nil {
		return nil
	}
	c := &PermanentEffect{}
	c.Attack = cloneInt(e.Attack)
	c.Defense = cloneInt(e.Defense)
	c.Spirit = cloneInt(e.Spirit)
	c.Physique = cloneInt(e.Physique)
	c.Speed = cloneInt(e.Speed)
	c.MaxHP = cloneInt(e.MaxHP)
	c.MaxLifespan = cloneInt(e.MaxLifespan)
	if e.SpiritualRoots != nil {
		roots := *e.SpiritualRoots
		c.SpiritualRoots = &roots
	}
	return c
}

// Item is one inventory instance. Non-equippable items with the same name
// are fungible and merge by quantity; equippable items are always distinct
// instances with quantity 1 and independent enhancement/revive state.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"type"`
	Description string   `json:"description,omitempty"`
	Quantity    int      `json:"quantity"`
	Rarity      Rarity   `json:"rarity"`
	// Level is the enhancement level; only meaningful for equippables.
	Level           int              `json:"level,omitempty"`
	Effect          *Effect          `json:"effect,omitempty"`
	PermanentEffect *PermanentEffect `json:"permanentEffect,omitempty"`
	IsEquippable    bool             `json:"isEquippable"`
	Slot            Slot             `json:"equipmentSlot,omitempty"`
	RecipeName      string           `json:"recipeName,omitempty"`
	ReviveCharges   int              `json:"reviveCharges,omitempty"`
}

// Clone deep-copies the item.
func (it Item) Clone() Item {
	c := it
	c.Effect = it.Effect.Clone()
	c.PermanentEffect = it.PermanentEffect.Clone()
	return c
}

// NewID mints a fresh item instance id.
func NewID() string { return uuid.New().String() }

// KnownEffect pins the effect bags of a curated, pre-balanced item. Curated
// values are never rescaled by rarity.
type KnownEffect struct {
	Effect          *Effect          `json:"effect,omitempty"`
	PermanentEffect *PermanentEffect `json:"permanentEffect,omitempty"`
}

// RarityTable maps rarities to the numeric knobs the economy and normalizer
// read. Supplied as configuration so balance patches do not touch code.
type RarityTable struct {
	// Multipliers scale pill effects and attribute value; the lowest tier is
	// always 1.
	Multipliers map[Rarity]float64 `json:"multipliers"`
	// BasePrices is the per-tier base sell price.
	BasePrices map[Rarity]int `json:"base_prices"`
}

// Multiplier returns the multiplier for r, defaulting to 1.
func (t RarityTable) Multiplier(r Rarity) float64 {
	if m, ok := t.Multipliers[r]; ok && m > 0 {
		return m
	}
	return 1
}

// BasePrice returns the base price for r, defaulting to the Common price.
func (t RarityTable) BasePrice(r Rarity) int {
	if p, ok := t.BasePrices[r]; ok {
		return p
	}
	return t.BasePrices[RarityCommon]
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr is a convenience for building effect bags in tables and tests.
func IntPtr(v int) *int { return &v }

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
