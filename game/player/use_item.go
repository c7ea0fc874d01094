package player

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/qingyunzi/xiuxian/server/gameerr"
	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/qingyunzi/xiuxian/server/resource"
	"go.uber.org/zap"
)

// UseResult reports what a use did, for the UI log.
type UseResult struct {
	Logs          []string `json:"logs"`
	HatchedPet    *Pet     `json:"hatchedPet,omitempty"`
	RecipeLearned string   `json:"recipeLearned,omitempty"`
}

// BatchResult summarizes a batch use.
type BatchResult struct {
	Used    int         `json:"used"`
	Results []UseResult `json:"results"`
}

// Handler applies item-use effects to the aggregate.
type Handler struct {
	tables *resource.Tables
	rng    *rand.Rand
	logger *zap.Logger
}

// NewHandler creates a use-item Handler. A nil rng falls back to a
// time-seeded source.
func NewHandler(tables *resource.Tables, rng *rand.Rand, logger *zap.Logger) *Handler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Handler{tables: tables, rng: rng, logger: logger}
}

// isPetEgg applies the name/description heuristics that classify an item as
// a hatching item. Kept as a fallback for externally-generated loot that
// carries no explicit tag.
func isPetEgg(it item.Item) bool {
	name := it.Name
	if strings.Contains(name, "蛋") || strings.Contains(strings.ToLower(name), "egg") {
		return true
	}
	desc := it.Description
	return strings.Contains(desc, "孵化") ||
		strings.Contains(desc, "灵宠") ||
		strings.Contains(desc, "灵兽") ||
		strings.Contains(desc, "宠物")
}

// Use consumes one unit of the item, applying its effects in a fixed order:
// pet hatching, temporary effects, permanent effects, recipe unlocking.
// Quantity is decremented by exactly 1 regardless of whether any effect
// fired.
func (h *Handler) Use(st State, itemID string) (State, *UseResult, error) {
	it, ok := item.FindByID(st.Inventory, itemID)
	if !ok {
		return st, nil, gameerr.New(gameerr.InvalidTarget, "背包中没有该物品！")
	}

	next := st.Clone()
	next.Inventory, _ = item.RemoveOrDecrement(next.Inventory, itemID, 1)
	res := &UseResult{}

	if isPetEgg(it) {
		h.hatch(&next, it, res)
	}

	h.applyTemporary(&next, it, res)
	h.applyPermanent(&next, it, res)

	if it.Category == item.CategoryRecipe {
		h.unlockRecipe(&next, it, res)
	}

	if h.logger != nil {
		h.logger.Debug("item used",
			zap.String("name", it.Name),
			zap.Strings("effects", res.Logs))
	}
	return next, res, nil
}

// BatchUse applies Use sequentially, each step seeing the previous step's
// aggregate. Missing ids (e.g. a stack exhausted earlier in the same batch)
// are skipped. Per-item narration is collected into one summary.
func (h *Handler) BatchUse(st State, itemIDs []string) (State, *BatchResult, error) {
	if len(itemIDs) == 0 {
		return st, nil, gameerr.New(gameerr.InvalidTarget, "没有选择物品。")
	}
	cur := st
	batch := &BatchResult{}
	for _, id := range itemIDs {
		next, res, err := h.Use(cur, id)
		if err != nil {
			continue
		}
		cur = next
		batch.Used++
		batch.Results = append(batch.Results, *res)
	}
	return cur, batch, nil
}

func (h *Handler) hatch(st *State, egg item.Item, res *UseResult) {
	candidates := h.tables.PetTemplatesForEgg(egg.Rarity)
	if len(candidates) == 0 {
		res.Logs = append(res.Logs, "但似乎什么都没有孵化出来...")
		return
	}
	tpl := candidates[h.rng.Intn(len(candidates))]
	name := tpl.Species
	if len(tpl.Names) > 0 {
		name = tpl.Names[h.rng.Intn(len(tpl.Names))]
	}
	pet := Pet{
		ID:        item.NewID(),
		Name:      name,
		Species:   tpl.Species,
		Level:     1,
		MaxExp:    60,
		Rarity:    tpl.Rarity,
		Attack:    tpl.BaseStats.Attack,
		Defense:   tpl.BaseStats.Defense,
		HP:        tpl.BaseStats.HP,
		Speed:     tpl.BaseStats.Speed,
		Skills:    append([]string(nil), tpl.Skills...),
		Affection: 50,
	}
	st.Pets = append(st.Pets, pet)
	st.Statistics.PetCount = len(st.Pets)
	res.HatchedPet = &pet
	res.Logs = append(res.Logs, fmt.Sprintf("孵化出了灵宠【%s】！", pet.Name))
}

func (h *Handler) applyTemporary(st *State, it item.Item, res *UseResult) {
	e := it.Effect
	if e == nil {
		return
	}
	if e.HP != nil && *e.HP != 0 {
		st.HP += *e.HP
		if st.HP > st.MaxHP {
			st.HP = st.MaxHP
		}
		res.Logs = append(res.Logs, fmt.Sprintf("恢复了 %d 点气血。", *e.HP))
	}
	if e.Exp != nil && *e.Exp != 0 {
		st.Exp += *e.Exp
		res.Logs = append(res.Logs, fmt.Sprintf("增长了 %d 点修为。", *e.Exp))
	}
	if e.Lifespan != nil && *e.Lifespan != 0 {
		next := st.Lifespan + *e.Lifespan
		if next > st.MaxLifespan {
			st.MaxLifespan = next
		}
		st.Lifespan = next
		res.Logs = append(res.Logs, fmt.Sprintf("寿命增加了 %d 年。", *e.Lifespan))
	}
}

func (h *Handler) applyPermanent(st *State, it item.Item, res *UseResult) {
	pe := it.PermanentEffect
	if pe == nil {
		return
	}
	add := func(dst *int, v *int, label string) {
		if v != nil && *v != 0 {
			*dst += *v
			res.Logs = append(res.Logs, fmt.Sprintf("%s永久 +%d", label, *v))
		}
	}
	add(&st.Attack, pe.Attack, "攻击力")
	add(&st.Defense, pe.Defense, "防御力")
	add(&st.Spirit, pe.Spirit, "神识")
	add(&st.Physique, pe.Physique, "体魄")
	add(&st.Speed, pe.Speed, "速度")
	if pe.MaxHP != nil && *pe.MaxHP != 0 {
		st.MaxHP += *pe.MaxHP
		st.HP += *pe.MaxHP
		res.Logs = append(res.Logs, fmt.Sprintf("气血上限永久 +%d", *pe.MaxHP))
	}
	if pe.MaxLifespan != nil && *pe.MaxLifespan != 0 {
		st.MaxLifespan += *pe.MaxLifespan
		if st.Lifespan+*pe.MaxLifespan < st.MaxLifespan {
			st.Lifespan += *pe.MaxLifespan
		} else {
			st.Lifespan = st.MaxLifespan
		}
		res.Logs = append(res.Logs, fmt.Sprintf("最大寿命永久 +%d 年", *pe.MaxLifespan))
	}
	if pe.SpiritualRoots != nil {
		h.applyRoots(st, *pe.SpiritualRoots, res)
	}
}

// applyRoots raises elemental affinities, clamped to [0,100] per element. A
// payload declaring all-zero affinities grants one random root +5 instead of
// doing nothing.
func (h *Handler) applyRoots(st *State, delta item.SpiritualRoots, res *UseResult) {
	clamped := func(cur, add int) int {
		v := cur + add
		if v > 100 {
			return 100
		}
		if v < 0 {
			return 0
		}
		return v
	}
	roots := &st.SpiritualRoots
	if delta.AllZero() {
		names := []string{"金", "木", "水", "火", "土"}
		targets := []*int{&roots.Metal, &roots.Wood, &roots.Water, &roots.Fire, &roots.Earth}
		i := h.rng.Intn(len(targets))
		*targets[i] = clamped(*targets[i], 5)
		res.Logs = append(res.Logs, fmt.Sprintf("%s灵根 +5", names[i]))
		return
	}
	apply := func(dst *int, add int, label string) {
		if add > 0 {
			*dst = clamped(*dst, add)
			res.Logs = append(res.Logs, fmt.Sprintf("%s灵根 +%d", label, add))
		}
	}
	apply(&roots.Metal, delta.Metal, "金")
	apply(&roots.Wood, delta.Wood, "木")
	apply(&roots.Water, delta.Water, "水")
	apply(&roots.Fire, delta.Fire, "火")
	apply(&roots.Earth, delta.Earth, "土")
}

func (h *Handler) unlockRecipe(st *State, it item.Item, res *UseResult) {
	recipeName := it.RecipeName
	if recipeName == "" {
		recipeName = strings.TrimSuffix(it.Name, "丹方")
	}
	if recipeName == "" {
		res.Logs = append(res.Logs, fmt.Sprintf("无法从【%s】中识别出配方名称。", it.Name))
		return
	}
	for _, r := range st.UnlockedRecipes {
		if r == recipeName {
			// Duplicate recipe item: already learned, a no-op rather than
			// an error.
			res.Logs = append(res.Logs, fmt.Sprintf("已经学会了【%s】的炼制方法。", recipeName))
			return
		}
	}
	if !h.tables.RecipeKnown(recipeName) {
		res.Logs = append(res.Logs, fmt.Sprintf("【%s】的配方不存在，无法学习。", recipeName))
		return
	}
	st.UnlockedRecipes = append(st.UnlockedRecipes, recipeName)
	st.Statistics.RecipeCount = len(st.UnlockedRecipes)
	res.RecipeLearned = recipeName
	res.Logs = append(res.Logs, fmt.Sprintf("学会了【%s】的炼制方法！", recipeName))
}
