// Package grotto implements the idle production engine: a capacity-bounded
// set of planted herbs with absolute maturation timestamps. Maturity is a
// pull-model predicate over the clock; no timers are owned here. Every
// operation is an atomic snapshot transition over the player aggregate — a
// rejection returns the input unchanged with a structured reason.
package grotto

import (
	"math/rand"
	"time"

	"github.com/qingyunzi/xiuxian/server/gameerr"
	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/resource"
	"go.uber.org/zap"
)

// HarvestYield reports one harvested entry.
type HarvestYield struct {
	HerbName string `json:"herbName"`
	Quantity int    `json:"quantity"`
}

// Service runs grotto transitions. The clock and rng are injected so tests
// pin time and yields.
type Service struct {
	tables *resource.Tables
	rng    *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

// NewService creates a grotto Service. nil rng/now fall back to the global
// seed and the wall clock.
func NewService(tables *resource.Tables, rng *rand.Rand, now func() time.Time, logger *zap.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Service{tables: tables, rng: rng, now: now, logger: logger}
}

// Upgrade purchases or upgrades the grotto to targetLevel. Downgrades are
// rejected. If the new level supports fewer herb slots than are currently
// planted, the oldest plantings are evicted.
func (s *Service) Upgrade(st player.State, targetLevel int) (player.State, error) {
	if targetLevel <= st.Grotto.Level {
		return st, gameerr.New(gameerr.InvalidState, "无法降级洞府！")
	}
	cfg, ok := s.tables.GrottoLevelByLevel(targetLevel)
	if !ok {
		return st, gameerr.New(gameerr.InvalidTarget, "无效的洞府等级！")
	}
	if cfg.RealmRequirement != "" {
		need := s.tables.RealmIndex(cfg.RealmRequirement)
		have := s.tables.RealmIndex(st.Realm)
		if have < need {
			return st, gameerr.New(gameerr.RequirementNotMet, "需要达到%s境界才能购买此洞府！", cfg.RealmRequirement)
		}
	}
	if st.SpiritStones < cfg.Cost {
		return st, gameerr.Insufficient("灵石", cfg.Cost, st.SpiritStones)
	}

	next := st.Clone()
	next.SpiritStones -= cfg.Cost
	next.Grotto.Level = targetLevel
	next.Grotto.ExpRateBonus = cfg.ExpRateBonus
	next.Grotto.StorageCapacity = cfg.StorageCapacity
	// Stable truncation from the front: the oldest plantings go first.
	if excess := len(next.Grotto.PlantedHerbs) - cfg.MaxHerbSlots; excess > 0 {
		next.Grotto.PlantedHerbs = next.Grotto.PlantedHerbs[excess:]
		if s.logger != nil {
			s.logger.Info("grotto slot cap shrank, evicted oldest plantings",
				zap.Int("evicted", excess), zap.Int("level", targetLevel))
		}
	}
	return next, nil
}

// Plant sows one seed of the herb. The yield quantity is sampled from the
// herb's configured range now, at plant time, so a given planting's outcome
// is locked in immediately.
func (s *Service) Plant(st player.State, herbID string) (player.State, error) {
	cfg, ok := s.tables.GrottoLevelByLevel(st.Grotto.Level)
	if !ok {
		return st, gameerr.New(gameerr.InvalidState, "请先购买洞府！")
	}
	if len(st.Grotto.PlantedHerbs) >= cfg.MaxHerbSlots {
		return st, gameerr.New(gameerr.CapacityExceeded, "洞府种植槽位已满（最多 %d 个）！", cfg.MaxHerbSlots)
	}
	herb, ok := s.tables.HerbByID(herbID)
	if !ok {
		return st, gameerr.New(gameerr.InvalidTarget, "无效的灵草！")
	}
	required := herb.GrottoLevelRequirement
	if required < 1 {
		required = 1
	}
	if st.Grotto.Level < required {
		return st, gameerr.New(gameerr.RequirementNotMet, "种植%s需要%d级洞府！", herb.Name, required)
	}

	seedID := ""
	for _, it := range st.Inventory {
		if it.Name == herb.Name && it.Category == item.CategoryHerb && it.Quantity >= 1 {
			seedID = it.ID
			break
		}
	}
	if seedID == "" {
		return st, gameerr.Insufficient(herb.Name+"种子", 1, 0)
	}

	now := s.now()
	planted := player.PlantedHerb{
		HerbID:      herb.ID,
		HerbName:    herb.Name,
		PlantTime:   now,
		HarvestTime: now.Add(herb.GrowthDuration()),
		Quantity:    herb.YieldMin + s.rng.Intn(herb.YieldMax-herb.YieldMin+1),
	}

	next := st.Clone()
	next.Inventory, _ = item.RemoveOrDecrement(next.Inventory, seedID, 1)
	next.Grotto.PlantedHerbs = append(next.Grotto.PlantedHerbs, planted)
	return next, nil
}

// HarvestOne harvests the planting at index. Maturity is inclusive: a
// harvest at exactly the harvest timestamp succeeds. Immature plantings are
// rejected with the remaining wait.
func (s *Service) HarvestOne(st player.State, index int) (player.State, HarvestYield, error) {
	if index < 0 || index >= len(st.Grotto.PlantedHerbs) {
		return st, HarvestYield{}, gameerr.New(gameerr.InvalidTarget, "无效的种植索引！")
	}
	entry := st.Grotto.PlantedHerbs[index]
	now := s.now()
	if !entry.Mature(now) {
		return st, HarvestYield{}, gameerr.NotReady(entry.HarvestTime.Sub(now))
	}
	herb, ok := s.tables.HerbByID(entry.HerbID)
	if !ok {
		return st, HarvestYield{}, gameerr.New(gameerr.InvalidTarget, "无效的灵草配置！")
	}

	next := st.Clone()
	next.Inventory = s.stackHerb(next.Inventory, herb, entry.Quantity)
	next.Grotto.PlantedHerbs = append(next.Grotto.PlantedHerbs[:index], next.Grotto.PlantedHerbs[index+1:]...)
	next.Grotto.LastHarvestTime = &now
	return next, HarvestYield{HerbName: entry.HerbName, Quantity: entry.Quantity}, nil
}

// HarvestAll harvests every mature planting atomically — one state
// transition regardless of how many entries ripened. Immature entries keep
// their original order. Rejected only when nothing is mature.
func (s *Service) HarvestAll(st player.State) (player.State, []HarvestYield, error) {
	now := s.now()
	var mature []player.PlantedHerb
	var remaining []player.PlantedHerb
	for _, e := range st.Grotto.PlantedHerbs {
		if e.Mature(now) {
			mature = append(mature, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	if len(mature) == 0 {
		return st, nil, gameerr.New(gameerr.NotYetReady, "没有可以收获的灵草！")
	}

	next := st.Clone()
	var yields []HarvestYield
	for _, e := range mature {
		if herb, ok := s.tables.HerbByID(e.HerbID); ok {
			next.Inventory = s.stackHerb(next.Inventory, herb, e.Quantity)
		} else {
			// Config vanished between plant and harvest; still deliver the
			// yield under the recorded name.
			next.Inventory = s.stackHerb(next.Inventory, resource.HerbConfig{
				ID: e.HerbID, Name: e.HerbName, Rarity: item.RarityCommon,
			}, e.Quantity)
		}
		yields = append(yields, HarvestYield{HerbName: e.HerbName, Quantity: e.Quantity})
	}
	next.Grotto.PlantedHerbs = remaining
	next.Grotto.LastHarvestTime = &now
	return next, yields, nil
}

// Enhance applies a spirit-array enhancement: every required material is
// deducted and the bonus fraction is added to the running total.
// Enhancements stack additively; no cap is enforced at this layer.
func (s *Service) Enhance(st player.State, enhancementID string) (player.State, error) {
	if st.Grotto.Level == 0 {
		return st, gameerr.New(gameerr.InvalidState, "请先购买洞府！")
	}
	cfg, ok := s.tables.EnhancementByID(enhancementID)
	if !ok {
		return st, gameerr.New(gameerr.InvalidTarget, "无效的改造配置！")
	}
	if st.Grotto.Level < cfg.GrottoLevelRequirement {
		return st, gameerr.New(gameerr.RequirementNotMet, "需要%d级洞府才能进行此改造！", cfg.GrottoLevelRequirement)
	}
	for _, m := range cfg.Materials {
		have := item.CountByName(st.Inventory, m.Name)
		if have < m.Quantity {
			return st, gameerr.Insufficient(m.Name, m.Quantity, have)
		}
	}

	next := st.Clone()
	for _, m := range cfg.Materials {
		remaining := m.Quantity
		for remaining > 0 {
			it, ok := item.FindByName(next.Inventory, m.Name)
			if !ok {
				break
			}
			take := remaining
			if take > it.Quantity {
				take = it.Quantity
			}
			next.Inventory, _ = item.RemoveOrDecrement(next.Inventory, it.ID, take)
			remaining -= take
		}
	}
	next.Grotto.SpiritArrayEnhancement += cfg.ExpRateBonus
	return next, nil
}

// stackHerb merges a harvest into an existing stack of the same herb, or
// creates a new one.
func (s *Service) stackHerb(inv []item.Item, herb resource.HerbConfig, qty int) []item.Item {
	out := make([]item.Item, len(inv))
	copy(out, inv)
	for i := range out {
		if out[i].Name == herb.Name && out[i].Category == item.CategoryHerb {
			merged := out[i].Clone()
			merged.Quantity += qty
			out[i] = merged
			return out
		}
	}
	desc := herb.Description
	if desc == "" {
		desc = herb.Name + "，可用于炼丹。"
	}
	return append(out, item.Item{
		ID:          item.NewID(),
		Name:        herb.Name,
		Category:    item.CategoryHerb,
		Description: desc,
		Quantity:    qty,
		Rarity:      herb.Rarity,
	})
}
