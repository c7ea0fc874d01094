package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSellPrice_MaterialDiscount(t *testing.T) {
	it := Item{Name: "玄铁", Category: CategoryMaterial, Rarity: RarityCommon, Quantity: 1}
	// floor(10 * 0.3)
	assert.Equal(t, 3, SellPrice(it, testRarities))
}

func TestSellPrice_ConsumableDiscount(t *testing.T) {
	it := Item{Name: "止血草", Category: CategoryHerb, Rarity: RarityCommon, Quantity: 1}
	// floor(10 * 0.5)
	assert.Equal(t, 5, SellPrice(it, testRarities))
}

func TestSellPrice_WeaponWithStats(t *testing.T) {
	it := Item{
		Name:         "精铁剑",
		Category:     CategoryWeapon,
		Rarity:       RarityCommon,
		IsEquippable: true,
		Effect:       &Effect{Attack: IntPtr(10)},
	}
	// base 10 + attr floor(10*2 * 1) + weapon bonus 10*1.5 = 45
	assert.Equal(t, 45, SellPrice(it, testRarities))

	it.Level = 2
	// 45 * (1 + 0.2*2) = 63
	assert.Equal(t, 63, SellPrice(it, testRarities))
}

func TestSellPrice_PermanentEffectsDominate(t *testing.T) {
	temp := Item{Category: CategoryPill, Rarity: RarityCommon, Effect: &Effect{Attack: IntPtr(5)}}
	perm := Item{Category: CategoryPill, Rarity: RarityCommon, PermanentEffect: &PermanentEffect{Attack: IntPtr(5)}}
	assert.Greater(t, SellPrice(perm, testRarities), SellPrice(temp, testRarities))
}

func TestSellPrice_MonotonicInRarity(t *testing.T) {
	prev := 0
	for _, r := range []Rarity{RarityCommon, RarityRare, RarityLegendary, RarityImmortal} {
		it := Item{Category: CategoryPill, Rarity: r, Effect: &Effect{HP: IntPtr(20)}}
		p := SellPrice(it, testRarities)
		assert.Greater(t, p, prev, "rarity=%s", r)
		prev = p
	}
}

func TestSellPrice_NeverBelowOne(t *testing.T) {
	it := Item{
		Category: CategoryMaterial,
		Rarity:   RarityCommon,
		Effect:   &Effect{Attack: IntPtr(-500)},
	}
	assert.Equal(t, 1, SellPrice(it, testRarities))

	unknown := Item{Category: CategoryMaterial, Rarity: Rarity("残次")}
	assert.GreaterOrEqual(t, SellPrice(unknown, testRarities), 1)
}
