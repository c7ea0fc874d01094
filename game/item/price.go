package item

import "math"

// Per-point spirit-stone weights for temporary effect fields. Offensive
// stats are worth more than raw hp.
const (
	weightAttack   = 2.0
	weightDefense  = 1.5
	weightHP       = 0.5
	weightSpirit   = 1.5
	weightPhysique = 1.5
	weightSpeed    = 2.0
	weightExp      = 0.1
)

// Permanent power is worth far more than temporary power.
const (
	permWeightAttack   = 10.0
	permWeightDefense  = 8.0
	permWeightMaxHP    = 3.0
	permWeightSpirit   = 8.0
	permWeightPhysique = 8.0
	permWeightSpeed    = 10.0
)

// Equipment-type bonuses, as fractions of the rarity base price.
const (
	equipBonusWeapon    = 1.5
	equipBonusArmor     = 1.2
	equipBonusArtifact  = 2.0
	equipBonusJewelry   = 1.3 // rings and accessories
	enhancePerLevel     = 0.2
	discountConsumable  = 0.5
	discountMaterial    = 0.3
)

// SellPrice computes the integer sell price of an item instance. Never
// returns less than 1.
func SellPrice(it Item, rarities RarityTable) int {
	rarity := it.Rarity
	if !rarity.Valid() {
		rarity = RarityCommon
	}
	basePrice := float64(rarities.BasePrice(rarity))

	attributeValue := 0.0
	if e := it.Effect; e != nil {
		attributeValue += float64(deref(e.Attack)) * weightAttack
		attributeValue += float64(deref(e.Defense)) * weightDefense
		attributeValue += float64(deref(e.HP)) * weightHP
		attributeValue += float64(deref(e.Spirit)) * weightSpirit
		attributeValue += float64(deref(e.Physique)) * weightPhysique
		attributeValue += float64(deref(e.Speed)) * weightSpeed
		attributeValue += float64(deref(e.Exp)) * weightExp
	}
	if p := it.PermanentEffect; p != nil {
		attributeValue += float64(deref(p.Attack)) * permWeightAttack
		attributeValue += float64(deref(p.Defense)) * permWeightDefense
		attributeValue += float64(deref(p.MaxHP)) * permWeightMaxHP
		attributeValue += float64(deref(p.Spirit)) * permWeightSpirit
		attributeValue += float64(deref(p.Physique)) * permWeightPhysique
		attributeValue += float64(deref(p.Speed)) * permWeightSpeed
	}
	attributeValue = math.Floor(attributeValue * rarities.Multiplier(rarity))

	equipmentBonus := 0.0
	if it.IsEquippable {
		switch it.Category {
		case CategoryWeapon:
			equipmentBonus = basePrice * equipBonusWeapon
		case CategoryArmor:
			equipmentBonus = basePrice * equipBonusArmor
		case CategoryArtifact:
			equipmentBonus = basePrice * equipBonusArtifact
		case CategoryRing, CategoryAccessory:
			equipmentBonus = basePrice * equipBonusJewelry
		}
	}

	levelMultiplier := 1 + enhancePerLevel*float64(it.Level)
	total := (basePrice + attributeValue + equipmentBonus) * levelMultiplier

	discount := 1.0
	switch {
	case it.Category.IsConsumable():
		discount = discountConsumable
	case it.Category == CategoryMaterial:
		discount = discountMaterial
	}

	price := int(math.Floor(total * discount))
	if price < 1 {
		return 1
	}
	return price
}
