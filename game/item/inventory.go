package item

import (
	"strings"

	"go.uber.org/zap"
)

// Template is the raw item description entering the inventory: loot grants,
// harvests, purchases. It has not been classified or normalized yet.
type Template struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Category        Category         `json:"type"`
	Rarity          Rarity           `json:"rarity"`
	IsEquippable    bool             `json:"isEquippable"`
	Slot            Slot             `json:"equipmentSlot,omitempty"`
	Level           int              `json:"level,omitempty"`
	Effect          *Effect          `json:"effect,omitempty"`
	PermanentEffect *PermanentEffect `json:"permanentEffect,omitempty"`
	RecipeName      string           `json:"recipeName,omitempty"`
	ReviveCharges   int              `json:"reviveCharges,omitempty"`
}

// Service is the inventory mutator. It owns no state; the inventory slice
// lives on the player aggregate and every operation returns a fresh slice.
type Service struct {
	cls      *Classifier
	known    map[string]KnownEffect
	rarities RarityTable
	logger   *zap.Logger
}

// NewService creates the inventory mutator.
func NewService(cls *Classifier, known map[string]KnownEffect, rarities RarityTable, logger *zap.Logger) *Service {
	return &Service{cls: cls, known: known, rarities: rarities, logger: logger}
}

// AddItem classifies and normalizes tmpl, then appends it to inv. Equippable
// items become qty distinct instances with quantity 1; non-equippables merge
// into an existing stack of the same name, overwriting its stored effects
// with the freshly normalized values so balance patches win over old data.
func (s *Service) AddItem(inv []Item, tmpl Template, qty int) []Item {
	if qty < 1 {
		qty = 1
	}
	name := strings.TrimSpace(tmpl.Name)
	if name == "" {
		name = "未知物品"
	}
	rarity := tmpl.Rarity
	if !rarity.Valid() {
		rarity = RarityCommon
	}
	declared := tmpl.Category
	if declared == "" {
		declared = CategoryMaterial
	}

	cl := s.cls.Classify(name, tmpl.Description, declared, tmpl.IsEquippable)
	slot := tmpl.Slot
	if slot == "" {
		slot = cl.Slot
	}
	eff, perm := NormalizeEffect(name, tmpl.Effect, tmpl.PermanentEffect, cl.Category, rarity, s.known, s.rarities)

	out := make([]Item, len(inv), len(inv)+qty)
	copy(out, inv)

	if cl.IsEquippable {
		for i := 0; i < qty; i++ {
			out = append(out, Item{
				ID:              NewID(),
				Name:            name,
				Category:        cl.Category,
				Description:     tmpl.Description,
				Quantity:        1,
				Rarity:          rarity,
				Level:           tmpl.Level,
				Effect:          eff.Clone(),
				PermanentEffect: perm.Clone(),
				IsEquippable:    true,
				Slot:            slot,
				RecipeName:      tmpl.RecipeName,
				ReviveCharges:   tmpl.ReviveCharges,
			})
		}
		if s.logger != nil {
			s.logger.Debug("equippable added",
				zap.String("name", name),
				zap.String("slot", string(slot)),
				zap.Int("count", qty))
		}
		return out
	}

	for i := range out {
		if out[i].Name == name {
			merged := out[i].Clone()
			merged.Quantity += qty
			merged.Effect = eff.Clone()
			merged.PermanentEffect = perm.Clone()
			out[i] = merged
			return out
		}
	}

	out = append(out, Item{
		ID:              NewID(),
		Name:            name,
		Category:        cl.Category,
		Description:     tmpl.Description,
		Quantity:        qty,
		Rarity:          rarity,
		Level:           tmpl.Level,
		Effect:          eff,
		PermanentEffect: perm,
		RecipeName:      tmpl.RecipeName,
	})
	return out
}

// RemoveOrDecrement subtracts amount from the instance with the given id,
// dropping it from the sequence at zero. Returns the new slice and whether
// the id was found; inv itself is never modified.
func RemoveOrDecrement(inv []Item, id string, amount int) ([]Item, bool) {
	if amount < 1 {
		amount = 1
	}
	out := make([]Item, 0, len(inv))
	found := false
	for _, it := range inv {
		if it.ID != id {
			out = append(out, it)
			continue
		}
		found = true
		c := it.Clone()
		c.Quantity -= amount
		if c.Quantity > 0 {
			out = append(out, c)
		}
	}
	return out, found
}

// FindByID returns the item with the given id, if present.
func FindByID(inv []Item, id string) (Item, bool) {
	for _, it := range inv {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// FindByName returns the first item with the given name, if present.
func FindByName(inv []Item, name string) (Item, bool) {
	for _, it := range inv {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// CountByName sums the quantity of every instance sharing name.
func CountByName(inv []Item, name string) int {
	total := 0
	for _, it := range inv {
		if it.Name == name {
			total += it.Quantity
		}
	}
	return total
}
