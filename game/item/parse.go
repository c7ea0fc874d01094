package item

import "encoding/json"

// LootPayload is the unstructured item grant produced by the narrative
// generator. It is untrusted: fields may be missing, mistyped or garbage.
// Effect bags arrive as loose maps so a single malformed field is ignored
// instead of failing the whole grant.
type LootPayload struct {
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Type            string                 `json:"type"`
	Rarity          string                 `json:"rarity"`
	IsEquippable    bool                   `json:"isEquippable"`
	Quantity        int                    `json:"quantity"`
	Level           int                    `json:"level"`
	Effect          map[string]interface{} `json:"effect"`
	PermanentEffect map[string]interface{} `json:"permanentEffect"`
	RecipeName      string                 `json:"recipeName"`
	ReviveCharges   int                    `json:"reviveCharges"`
}

// Template converts the payload into a Template, applying the untrusted-input
// defaults: missing type becomes 材料, missing rarity becomes 普通, malformed
// numeric fields are dropped.
func (p LootPayload) Template() Template {
	cat := Category(p.Type)
	if cat == "" {
		cat = CategoryMaterial
	}
	rarity := Rarity(p.Rarity)
	if !rarity.Valid() {
		rarity = RarityCommon
	}
	return Template{
		Name:            p.Name,
		Description:     p.Description,
		Category:        cat,
		Rarity:          rarity,
		IsEquippable:    p.IsEquippable,
		Level:           p.Level,
		Effect:          effectFromMap(p.Effect),
		PermanentEffect: permanentFromMap(p.PermanentEffect),
		RecipeName:      p.RecipeName,
		ReviveCharges:   p.ReviveCharges,
	}
}

// numField coerces a loose JSON value to an int, rejecting anything that is
// not a number. json.Unmarshal into interface{} yields float64; a decoder
// with UseNumber yields json.Number.
func numField(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

func effectFromMap(m map[string]interface{}) *Effect {
	if len(m) == 0 {
		return nil
	}
	e := &Effect{}
	set := false
	assign := func(key string, dst **int) {
		if v, ok := m[key]; ok {
			if n, ok := numField(v); ok {
				*dst = &n
				set = true
			}
		}
	}
	assign("attack", &e.Attack)
	assign("defense", &e.Defense)
	assign("hp", &e.HP)
	assign("spirit", &e.Spirit)
	assign("physique", &e.Physique)
	assign("speed", &e.Speed)
	assign("exp", &e.Exp)
	assign("lifespan", &e.Lifespan)
	if !set {
		return nil
	}
	return e
}

func permanentFromMap(m map[string]interface{}) *PermanentEffect {
	if len(m) == 0 {
		return nil
	}
	e := &PermanentEffect{}
	set := false
	assign := func(key string, dst **int) {
		if v, ok := m[key]; ok {
			if n, ok := numField(v); ok {
				*dst = &n
				set = true
			}
		}
	}
	assign("attack", &e.Attack)
	assign("defense", &e.Defense)
	assign("spirit", &e.Spirit)
	assign("physique", &e.Physique)
	assign("speed", &e.Speed)
	assign("maxHp", &e.MaxHP)
	assign("maxLifespan", &e.MaxLifespan)

	if roots, ok := m["spiritualRoots"].(map[string]interface{}); ok {
		r := &SpiritualRoots{}
		rootSet := false
		assignRoot := func(key string, dst *int) {
			if v, ok := roots[key]; ok {
				if n, ok := numField(v); ok {
					*dst = n
					rootSet = true
				}
			}
		}
		assignRoot("metal", &r.Metal)
		assignRoot("wood", &r.Wood)
		assignRoot("water", &r.Water)
		assignRoot("fire", &r.Fire)
		assignRoot("earth", &r.Earth)
		if rootSet {
			e.SpiritualRoots = r
			set = true
		}
	}
	if !set {
		return nil
	}
	return e
}
