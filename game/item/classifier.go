package item

import (
	"math/rand"
	"strings"
	"time"
)

// Classification is the resolved kind of an item description.
type Classification struct {
	Category     Category
	IsEquippable bool
	Slot         Slot
}

// classifyRule is one entry of the ordered keyword table. Rules are
// evaluated top to bottom and the first match wins; order matters because
// some token sets are subsets of others (a boot named 草鞋 contains the herb
// token 草 and must be caught by the boot rule first, or carved out by the
// herb rule's exclusion list).
type classifyRule struct {
	category     Category
	isEquippable bool
	// slot is the fixed slot for single-slot categories.
	slot Slot
	// slotGroup, when set, is sampled uniformly at random. Intentional
	// variety for multi-slot categories, not an error.
	slotGroup []Slot
	tokens    []string
	exclude   []string
}

// classifyRules is the precedence-ordered rule table: weapon first, then the
// specific armor pieces, consumables and materials, chest armor as the
// default armor, and finally the multi-slot jewelry/artifact categories.
var classifyRules = []classifyRule{
	{
		category: CategoryWeapon, isEquippable: true, slot: SlotWeapon,
		tokens: []string{
			"剑", "刀", "枪", "戟", "斧", "锤", "鞭", "棍", "棒", "矛", "弓", "弩", "匕首",
			"短剑", "长剑", "重剑", "飞剑", "灵剑", "仙剑", "裂空剑", "青莲剑", "紫霄剑",
			"玄天剑", "青云剑", "精铁剑", "玄冰剑", "宝剑",
		},
	},
	{
		category: CategoryArmor, isEquippable: true, slot: SlotHead,
		tokens: []string{
			"头盔", "头冠", "道冠", "法冠", "仙冠", "龙冠", "凤冠", "冠", "帽",
			"发簪", "发带", "头饰", "面罩", "头", "首",
		},
	},
	{
		category: CategoryArmor, isEquippable: true, slot: SlotShoulder,
		tokens: []string{
			"肩", "裘", "披风", "斗篷", "肩甲", "护肩", "肩饰", "肩胛", "云肩", "法肩", "仙肩",
		},
	},
	{
		category: CategoryArmor, isEquippable: true, slot: SlotGloves,
		tokens: []string{"手套", "护手", "手甲", "拳套", "法手", "仙手", "龙爪套", "手"},
	},
	{
		category: CategoryArmor, isEquippable: true, slot: SlotBoots,
		tokens: []string{"靴", "鞋", "足", "步", "履", "仙履", "云履", "龙鳞靴", "战靴", "法靴"},
	},
	{
		category: CategoryArmor, isEquippable: true, slot: SlotLegs,
		tokens: []string{"裤", "腿甲", "护腿", "下装", "法裤", "仙裤", "龙鳞裤", "腿"},
	},
	{
		category: CategoryHerb,
		tokens: []string{
			"草药", "药草", "灵草", "仙草", "草", "花", "果", "叶", "根", "茎", "枝",
			"胆草", "解毒", "疗伤", "恢复", "治疗", "回血", "回蓝", "回灵", "回气",
		},
		// Equipment whose name merely contains the herb character.
		exclude: []string{"草甲", "草衣", "草帽", "草鞋"},
	},
	{
		category: CategoryPill,
		tokens:   []string{"丹药", "丹", "丸", "散", "液", "膏", "剂", "药", "灵丹", "仙丹"},
	},
	{
		category: CategoryMaterial,
		tokens: []string{
			"材料", "矿物", "矿石", "晶石", "灵石", "铁", "铜", "银", "金", "木", "石",
			"骨", "皮", "角", "鳞", "羽", "毛", "丝", "线", "布", "纸",
		},
	},
	{
		// Chest is the fallback armor category, so it comes after the
		// consumable rules to keep herb-flavored names out of it.
		category: CategoryArmor, isEquippable: true, slot: SlotChest,
		tokens: []string{
			"道袍", "法衣", "胸甲", "护胸", "铠甲", "战甲", "法袍", "长袍", "外衣",
			"护甲", "重甲", "轻甲", "板甲", "锁甲", "软甲", "硬甲", "袍", "衣",
		},
		exclude: []string{"胆草", "草药", "药草", "灵草", "仙草"},
	},
	{
		category: CategoryRing, isEquippable: true, slotGroup: RingSlots,
		tokens: []string{"戒指", "指环", "戒"},
	},
	{
		category: CategoryAccessory, isEquippable: true, slotGroup: AccessorySlots,
		tokens: []string{"项链", "玉佩", "手镯", "手链", "吊坠", "护符", "符", "佩", "饰"},
	},
	{
		category: CategoryArtifact, isEquippable: true, slotGroup: ArtifactSlots,
		tokens: []string{
			"法宝", "法器", "仙器", "神器", "鼎", "钟", "镜", "塔", "扇", "珠",
			"印", "盘", "笔", "袋", "旗", "炉", "图",
		},
		// Anything with a weapon token was already caught by the weapon rule
		// via the name; this guards against weapon tokens in the description.
		exclude: []string{"剑", "刀", "枪", "戟", "鞭", "棍", "棒", "矛", "弓", "弩", "匕首"},
	},
}

// Classifier infers an item's category and equip slot from its name and
// description. Deterministic except for the documented random pick among a
// multi-slot category's physical slots.
type Classifier struct {
	rng *rand.Rand
}

// NewClassifier creates a Classifier. A nil rng falls back to a time-seeded
// source; tests inject a fixed seed.
func NewClassifier(rng *rand.Rand) *Classifier {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Classifier{rng: rng}
}

// Classify resolves the category, equippable flag and slot for an item. The
// declared category/equippable flag are caller-supplied fallbacks used only
// when no keyword rule matches.
func (c *Classifier) Classify(name, description string, declared Category, declaredEquippable bool) Classification {
	combined := strings.ToLower(name) + strings.ToLower(description)

	for _, r := range classifyRules {
		if !containsAny(combined, r.tokens) {
			continue
		}
		if containsAny(combined, r.exclude) {
			continue
		}
		cl := Classification{Category: r.category, IsEquippable: r.isEquippable}
		if len(r.slotGroup) > 0 {
			cl.Slot = r.slotGroup[c.rng.Intn(len(r.slotGroup))]
		} else {
			cl.Slot = r.slot
		}
		return cl
	}

	// Legacy payloads declare a non-canonical "防具" kind; treat as chest armor.
	if string(declared) == "防具" {
		return Classification{Category: CategoryArmor, IsEquippable: true, Slot: SlotChest}
	}

	if declaredEquippable {
		switch declared {
		case CategoryArmor:
			return Classification{Category: CategoryArmor, IsEquippable: true, Slot: SlotChest}
		case CategoryWeapon:
			return Classification{Category: CategoryWeapon, IsEquippable: true, Slot: SlotWeapon}
		}
	}

	return Classification{Category: declared, IsEquippable: declaredEquippable}
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
