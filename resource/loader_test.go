package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyDirReturnsDefaults(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.GrottoLevels)
	assert.NotEmpty(t, tables.Herbs)
	assert.NotEmpty(t, tables.Recipes)
	assert.NotEmpty(t, tables.KnownEffects)
}

func TestLoad_OverridesSingleTable(t *testing.T) {
	dir := t.TempDir()
	herbs := `[{"id":"herb_test","name":"测试草","rarity":"普通","growthTimeMs":1000,"yieldMin":1,"yieldMax":1,"grottoLevelRequirement":1}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "herbs.json"), []byte(herbs), 0o644))

	tables, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, tables.Herbs, 1)
	h, ok := tables.HerbByID("herb_test")
	require.True(t, ok)
	assert.Equal(t, "测试草", h.Name)
	// Untouched tables keep their defaults.
	assert.NotEmpty(t, tables.GrottoLevels)
	assert.NotEmpty(t, tables.Enhancements)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recipes.json"), []byte("{broken"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestTables_Lookups(t *testing.T) {
	tables := Default()

	lv, ok := tables.GrottoLevelByLevel(3)
	require.True(t, ok)
	assert.Equal(t, 4, lv.MaxHerbSlots)
	_, ok = tables.GrottoLevelByLevel(99)
	assert.False(t, ok)

	e, ok := tables.EnhancementByID("array_grand")
	require.True(t, ok)
	assert.Equal(t, 0.20, e.ExpRateBonus)

	assert.Equal(t, 0, tables.RealmIndex("炼气"))
	assert.Equal(t, 6, tables.RealmIndex("大乘"))
	assert.Equal(t, -1, tables.RealmIndex("虚构境界"))

	assert.True(t, tables.RecipeKnown("回血丹"))
	assert.False(t, tables.RecipeKnown("不存在"))
}

func TestTables_PetTemplatesForEgg(t *testing.T) {
	tables := Default()
	tests := []struct {
		egg  item.Rarity
		want []item.Rarity
	}{
		{item.RarityCommon, []item.Rarity{item.RarityCommon, item.RarityRare}},
		{item.RarityRare, []item.Rarity{item.RarityRare, item.RarityLegendary}},
		{item.RarityLegendary, []item.Rarity{item.RarityLegendary, item.RarityImmortal}},
		{item.RarityImmortal, []item.Rarity{item.RarityImmortal}},
	}
	for _, tt := range tests {
		got := tables.PetTemplatesForEgg(tt.egg)
		require.NotEmpty(t, got, "egg=%s", tt.egg)
		for _, tpl := range got {
			assert.Contains(t, tt.want, tpl.Rarity, "egg=%s species=%s", tt.egg, tpl.Species)
		}
	}
}

func TestHerbConfig_GrowthDuration(t *testing.T) {
	h := HerbConfig{GrowthTimeMs: 600000}
	assert.Equal(t, "10m0s", h.GrowthDuration().String())
}
