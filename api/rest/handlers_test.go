package rest_test

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qingyunzi/xiuxian/server/api/rest"
	"github.com/qingyunzi/xiuxian/server/game/grotto"
	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/gamelog"
	"github.com/qingyunzi/xiuxian/server/resource"
	"github.com/qingyunzi/xiuxian/server/save"
	"github.com/qingyunzi/xiuxian/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router *gin.Engine
	store  *player.Store
	clock  *time.Time
}

func newEnv(t *testing.T, initial player.State) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tables := resource.Default()
	logger := zap.NewNop()
	clock := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	store := player.NewStore(initial, logger)
	recorder := gamelog.NewRecorder(50, logger)
	classifier := item.NewClassifier(rand.New(rand.NewSource(1)))
	itemSvc := item.NewService(classifier, tables.KnownEffects, tables.Rarities, logger)
	useHandler := player.NewHandler(tables, rand.New(rand.NewSource(1)), logger)
	env := &testEnv{store: store, clock: &clock}
	grottoSvc := grotto.NewService(tables, rand.New(rand.NewSource(1)),
		func() time.Time { return *env.clock }, logger)
	saveSvc := save.NewService(testutil.SetupTestDB(t), logger)

	playerH := rest.NewPlayerHandler(store, recorder)
	invH := rest.NewInventoryHandler(store, itemSvc, useHandler, tables.Rarities, recorder)
	grottoH := rest.NewGrottoHandler(store, grottoSvc, recorder)
	saveH := rest.NewSaveHandler(store, saveSvc, recorder)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/player", playerH.Get)
	api.GET("/player/logs", playerH.Logs)
	api.POST("/player/equip", playerH.Equip)
	api.POST("/player/unequip", playerH.Unequip)
	api.POST("/player/natal", playerH.SetNatal)
	api.GET("/inventory", invH.List)
	api.POST("/inventory/grant", invH.Grant)
	api.POST("/inventory/use", invH.Use)
	api.POST("/inventory/use-batch", invH.BatchUse)
	api.POST("/inventory/discard", invH.Discard)
	api.POST("/inventory/sell", invH.Sell)
	api.GET("/grotto", grottoH.Get)
	api.POST("/grotto/upgrade", grottoH.Upgrade)
	api.POST("/grotto/plant", grottoH.Plant)
	api.POST("/grotto/harvest", grottoH.Harvest)
	api.POST("/grotto/harvest-all", grottoH.HarvestAll)
	api.POST("/grotto/enhance", grottoH.Enhance)
	api.GET("/saves", saveH.List)
	api.POST("/saves/:slot", saveH.Save)
	api.POST("/saves/:slot/load", saveH.Load)
	api.DELETE("/saves/:slot", saveH.Delete)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestPlayerGet(t *testing.T) {
	env := newEnv(t, player.New("云泽"))
	w := env.do(t, http.MethodGet, "/api/player", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	p := resp["player"].(map[string]interface{})
	assert.Equal(t, "云泽", p["name"])
}

func TestGrantUseSellFlow(t *testing.T) {
	env := newEnv(t, player.New("测试"))

	// Grant an AI-shaped pill payload with garbage in it.
	w := env.do(t, http.MethodPost, "/api/inventory/grant", map[string]interface{}{
		"item": map[string]interface{}{
			"name":   "回春丹",
			"type":   "丹药",
			"rarity": "普通",
			"effect": map[string]interface{}{"hp": 30, "attack": "不是数字"},
		},
		"quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	st := env.store.Snapshot()
	require.Len(t, st.Inventory, 1)
	pill := st.Inventory[0]
	assert.Equal(t, 2, pill.Quantity)
	assert.Nil(t, pill.Effect.Attack)

	// Use one while hurt.
	_, err := env.store.Apply(func(s player.State) (player.State, error) {
		s.HP = 10
		return s, nil
	})
	require.NoError(t, err)

	w = env.do(t, http.MethodPost, "/api/inventory/use", map[string]string{"itemId": pill.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 40, env.store.Snapshot().HP)

	// Sell the last one.
	w = env.do(t, http.MethodPost, "/api/inventory/sell", map[string]interface{}{
		"itemId": pill.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Greater(t, resp["earned"].(float64), float64(0))
	assert.Empty(t, env.store.Snapshot().Inventory)
}

func TestEquipFlow(t *testing.T) {
	st := player.New("测试")
	w := item.Item{
		ID: item.NewID(), Name: "精铁剑", Category: item.CategoryWeapon,
		Quantity: 1, Rarity: item.RarityCommon, IsEquippable: true,
		Slot: item.SlotWeapon, Effect: &item.Effect{Attack: item.IntPtr(10)},
	}
	st.Inventory = []item.Item{w}
	env := newEnv(t, st)

	resp := env.do(t, http.MethodPost, "/api/player/equip", map[string]string{"itemId": w.ID})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, w.ID, env.store.Snapshot().Equipped[item.SlotWeapon])

	// Discarding while equipped maps to a 400 with the structured kind.
	resp = env.do(t, http.MethodPost, "/api/inventory/discard", map[string]string{"itemId": w.ID})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "invalid_state", body["kind"])

	resp = env.do(t, http.MethodPost, "/api/player/unequip", map[string]string{"slot": "weapon"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, env.store.Snapshot().Equipped)
}

func TestGrottoFlow(t *testing.T) {
	st := player.New("测试")
	st.SpiritStones = 1000
	st.Inventory = []item.Item{{
		ID: item.NewID(), Name: "止血草", Category: item.CategoryHerb,
		Quantity: 3, Rarity: item.RarityCommon,
	}}
	env := newEnv(t, st)

	resp := env.do(t, http.MethodPost, "/api/grotto/upgrade", map[string]int{"level": 1})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/grotto/plant", map[string]string{"herbId": "herb_zhixuecao"})
	require.Equal(t, http.StatusOK, resp.Code)

	// Too early: 400 with the remaining wait in minutes.
	idx := 0
	resp = env.do(t, http.MethodPost, "/api/grotto/harvest", map[string]int{"index": idx})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "not_yet_ready", body["kind"])
	assert.Equal(t, float64(10), body["remainingMinutes"])

	*env.clock = env.clock.Add(10 * time.Minute)
	resp = env.do(t, http.MethodPost, "/api/grotto/harvest", map[string]int{"index": idx})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, env.store.Snapshot().Grotto.PlantedHerbs)
}

func TestGrottoUpgrade_InsufficientStones(t *testing.T) {
	st := player.New("测试")
	st.SpiritStones = 5
	env := newEnv(t, st)

	resp := env.do(t, http.MethodPost, "/api/grotto/upgrade", map[string]int{"level": 1})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, "insufficient_resource", body["kind"])
	assert.Equal(t, "灵石", body["resource"])
	assert.Equal(t, float64(500), body["need"])
	assert.Equal(t, float64(5), body["have"])
}

func TestSaveLoadFlow(t *testing.T) {
	env := newEnv(t, player.New("存档者"))

	resp := env.do(t, http.MethodPost, "/api/saves/slot1", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	// Mutate, then load the slot back.
	_, err := env.store.Apply(func(s player.State) (player.State, error) {
		s.SpiritStones = 9999
		return s, nil
	})
	require.NoError(t, err)

	resp = env.do(t, http.MethodPost, "/api/saves/slot1/load", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 100, env.store.Snapshot().SpiritStones)

	resp = env.do(t, http.MethodGet, "/api/saves", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp)
	assert.Equal(t, []interface{}{"slot1"}, body["slots"])

	resp = env.do(t, http.MethodPost, "/api/saves/ghost/load", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBadRequestBodies(t *testing.T) {
	env := newEnv(t, player.New("测试"))
	for _, path := range []string{
		"/api/player/equip", "/api/inventory/use", "/api/grotto/plant",
	} {
		resp := env.do(t, http.MethodPost, path, map[string]int{"bogus": 1})
		assert.Equal(t, http.StatusBadRequest, resp.Code, "path=%s", path)
	}
}
