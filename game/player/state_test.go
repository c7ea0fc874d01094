package player

import (
	"testing"
	"time"

	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_PrunesStaleReferences(t *testing.T) {
	st := New("测试")
	w := sword()
	st.Inventory = []item.Item{w}
	st.Equipped[item.SlotWeapon] = w.ID
	st.Equipped[item.SlotHead] = "gone"
	st.NatalArtifactID = "also-gone"

	st.Normalize()
	assert.Equal(t, w.ID, st.Equipped[item.SlotWeapon])
	assert.NotContains(t, st.Equipped, item.SlotHead)
	assert.Empty(t, st.NatalArtifactID)
}

func TestNormalize_SynthesizesMissingFields(t *testing.T) {
	var st State // a minimal pre-lifespan snapshot
	st.Name = "老存档"
	st.HP = 500

	st.Normalize()
	assert.NotNil(t, st.Equipped)
	assert.Equal(t, 100, st.MaxLifespan)
	assert.Equal(t, 100, st.Lifespan)
	assert.Equal(t, 100, st.MaxHP)
	assert.Equal(t, 100, st.HP, "hp clamps to the synthesized max")
}

func TestNormalize_RepairsInventory(t *testing.T) {
	st := New("测试")
	st.Inventory = []item.Item{
		{Name: "无编号之物", Quantity: 0},
	}
	st.Normalize()
	assert.NotEmpty(t, st.Inventory[0].ID)
	assert.Equal(t, 1, st.Inventory[0].Quantity)
}

func TestClone_IsDeep(t *testing.T) {
	st := New("测试")
	w := sword()
	st.Inventory = []item.Item{w}
	st.Equipped[item.SlotWeapon] = w.ID
	st.Pets = []Pet{{ID: "p1", Name: "小焰", Skills: []string{"火花"}}}
	now := time.Now()
	st.Grotto.LastHarvestTime = &now
	st.Grotto.PlantedHerbs = []PlantedHerb{{HerbID: "herb_zhixuecao"}}

	c := st.Clone()
	*c.Inventory[0].Effect.Attack = 999
	c.Equipped[item.SlotHead] = "x"
	c.Pets[0].Skills[0] = "changed"
	*c.Grotto.LastHarvestTime = now.Add(time.Hour)
	c.Grotto.PlantedHerbs[0].HerbID = "other"

	assert.Equal(t, 10, *st.Inventory[0].Effect.Attack)
	assert.NotContains(t, st.Equipped, item.SlotHead)
	assert.Equal(t, "火花", st.Pets[0].Skills[0])
	assert.Equal(t, now, *st.Grotto.LastHarvestTime)
	assert.Equal(t, "herb_zhixuecao", st.Grotto.PlantedHerbs[0].HerbID)
}

func TestPlantedHerb_MatureBoundaryIsInclusive(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h := PlantedHerb{HarvestTime: at}
	assert.False(t, h.Mature(at.Add(-time.Millisecond)))
	assert.True(t, h.Mature(at))
	assert.True(t, h.Mature(at.Add(time.Millisecond)))
}
