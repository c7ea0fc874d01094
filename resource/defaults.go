package resource

import "github.com/qingyunzi/xiuxian/server/game/item"

func ip(v int) *int { return item.IntPtr(v) }

// Default returns the embedded balance tables. Deployments override
// individual tables with JSON files (see Load).
func Default() *Tables {
	return &Tables{
		Realms: []string{"炼气", "筑基", "金丹", "元婴", "化神", "炼虚", "大乘"},

		Rarities: item.RarityTable{
			Multipliers: map[item.Rarity]float64{
				item.RarityCommon:    1,
				item.RarityRare:      1.5,
				item.RarityLegendary: 2.5,
				item.RarityImmortal:  4,
			},
			BasePrices: map[item.Rarity]int{
				item.RarityCommon:    10,
				item.RarityRare:      50,
				item.RarityLegendary: 300,
				item.RarityImmortal:  2000,
			},
		},

		// Curated items are pre-balanced; their effects pin whatever the
		// generator claims.
		KnownEffects: map[string]item.KnownEffect{
			"止血草": {Effect: &item.Effect{HP: ip(20)}},
			"聚灵草": {Effect: &item.Effect{}},
			"回气草": {Effect: &item.Effect{HP: ip(30)}},
			"凝神花": {Effect: &item.Effect{HP: ip(50), Spirit: ip(5)}},
			"血参":  {Effect: &item.Effect{HP: ip(80)}},
			"千年灵芝": {
				Effect:          &item.Effect{HP: ip(1500)},
				PermanentEffect: &item.PermanentEffect{MaxHP: ip(200), Physique: ip(100)},
			},
			"万年仙草": {
				Effect:          &item.Effect{HP: ip(3000)},
				PermanentEffect: &item.PermanentEffect{MaxHP: ip(500), Spirit: ip(50)},
			},
			"回血丹": {Effect: &item.Effect{HP: ip(50)}},
			"聚气丹": {Effect: &item.Effect{Exp: ip(20)}},
			"强体丹": {PermanentEffect: &item.PermanentEffect{Physique: ip(5)}},
			"凝神丹": {PermanentEffect: &item.PermanentEffect{Spirit: ip(5)}},
			"筑基丹": {Effect: &item.Effect{Exp: ip(100)}},
			"破境丹": {Effect: &item.Effect{Exp: ip(200)}},
			"仙灵丹": {
				Effect:          &item.Effect{Exp: ip(500)},
				PermanentEffect: &item.PermanentEffect{MaxHP: ip(100), Physique: ip(70)},
			},
		},

		GrottoLevels: []GrottoLevel{
			{Level: 1, Name: "青岩洞府", Cost: 500, RealmRequirement: "炼气", ExpRateBonus: 0.05, StorageCapacity: 10, MaxHerbSlots: 2},
			{Level: 2, Name: "灵泉洞府", Cost: 2000, RealmRequirement: "筑基", ExpRateBonus: 0.10, StorageCapacity: 20, MaxHerbSlots: 3},
			{Level: 3, Name: "紫竹洞天", Cost: 8000, RealmRequirement: "金丹", ExpRateBonus: 0.18, StorageCapacity: 40, MaxHerbSlots: 4},
			{Level: 4, Name: "玄霄福地", Cost: 30000, RealmRequirement: "元婴", ExpRateBonus: 0.28, StorageCapacity: 80, MaxHerbSlots: 6},
			{Level: 5, Name: "太虚仙府", Cost: 100000, RealmRequirement: "化神", ExpRateBonus: 0.40, StorageCapacity: 150, MaxHerbSlots: 8},
		},

		Herbs: []HerbConfig{
			{ID: "herb_zhixuecao", Name: "止血草", Description: "止血草，可用于炼丹。", Rarity: item.RarityCommon, GrowthTimeMs: 600000, YieldMin: 2, YieldMax: 4, GrottoLevelRequirement: 1},
			{ID: "herb_huiqicao", Name: "回气草", Description: "回气草，可用于炼丹。", Rarity: item.RarityCommon, GrowthTimeMs: 900000, YieldMin: 2, YieldMax: 4, GrottoLevelRequirement: 1},
			{ID: "herb_juling", Name: "聚灵草", Description: "聚灵草，可用于炼丹。", Rarity: item.RarityCommon, GrowthTimeMs: 1800000, YieldMin: 2, YieldMax: 5, GrottoLevelRequirement: 2},
			{ID: "herb_ningshenhua", Name: "凝神花", Description: "凝神花，可用于炼丹。", Rarity: item.RarityRare, GrowthTimeMs: 3600000, YieldMin: 1, YieldMax: 3, GrottoLevelRequirement: 2},
			{ID: "herb_xueshen", Name: "血参", Description: "血参，可用于炼丹。", Rarity: item.RarityRare, GrowthTimeMs: 7200000, YieldMin: 1, YieldMax: 2, GrottoLevelRequirement: 3},
			{ID: "herb_lingzhi", Name: "千年灵芝", Description: "千年灵芝，灵气充沛。", Rarity: item.RarityLegendary, GrowthTimeMs: 21600000, YieldMin: 1, YieldMax: 2, GrottoLevelRequirement: 4},
		},

		Enhancements: []Enhancement{
			{ID: "array_minor", Name: "小聚灵阵", GrottoLevelRequirement: 1, ExpRateBonus: 0.05, Materials: []MaterialCost{{Name: "灵石矿", Quantity: 5}}},
			{ID: "array_middle", Name: "中聚灵阵", GrottoLevelRequirement: 2, ExpRateBonus: 0.08, Materials: []MaterialCost{{Name: "灵石矿", Quantity: 10}, {Name: "聚灵草", Quantity: 5}}},
			{ID: "array_major", Name: "大聚灵阵", GrottoLevelRequirement: 3, ExpRateBonus: 0.12, Materials: []MaterialCost{{Name: "灵石矿", Quantity: 30}, {Name: "晶石", Quantity: 10}}},
			{ID: "array_grand", Name: "周天星辰阵", GrottoLevelRequirement: 5, ExpRateBonus: 0.20, Materials: []MaterialCost{{Name: "晶石", Quantity: 50}, {Name: "千年灵芝", Quantity: 1}}},
		},

		Recipes: []string{"回血丹", "聚气丹", "强体丹", "凝神丹", "筑基丹", "破境丹", "仙灵丹"},

		PetTemplates: []PetTemplate{
			{Species: "火灵鼠", Rarity: item.RarityCommon, BaseStats: PetStats{Attack: 8, Defense: 5, HP: 40, Speed: 12}, Skills: []string{"火花"}, Names: []string{"小焰", "赤尾", "炎炎"}},
			{Species: "青羽雀", Rarity: item.RarityCommon, BaseStats: PetStats{Attack: 6, Defense: 4, HP: 35, Speed: 16}, Skills: []string{"风刃"}, Names: []string{"青青", "羽儿", "灵雀"}},
			{Species: "玄龟", Rarity: item.RarityRare, BaseStats: PetStats{Attack: 10, Defense: 20, HP: 90, Speed: 4}, Skills: []string{"甲盾", "水浪"}, Names: []string{"玄武", "石甲", "镇海"}},
			{Species: "雷狼", Rarity: item.RarityRare, BaseStats: PetStats{Attack: 22, Defense: 10, HP: 70, Speed: 18}, Skills: []string{"雷牙", "疾行"}, Names: []string{"惊雷", "紫电", "风驰"}},
			{Species: "幽冥狐", Rarity: item.RarityLegendary, BaseStats: PetStats{Attack: 35, Defense: 18, HP: 120, Speed: 25}, Skills: []string{"魅影", "冥火"}, Names: []string{"九尾", "幽幽", "冥月"}},
			{Species: "真龙幼崽", Rarity: item.RarityImmortal, BaseStats: PetStats{Attack: 60, Defense: 40, HP: 300, Speed: 30}, Skills: []string{"龙息", "龙威", "腾云"}, Names: []string{"敖小青", "烛影", "云澜"}},
		},
	}
}
