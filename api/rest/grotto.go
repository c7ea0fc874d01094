package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qingyunzi/xiuxian/server/game/grotto"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/gamelog"
)

// GrottoHandler handles grotto REST endpoints.
type GrottoHandler struct {
	store *player.Store
	svc   *grotto.Service
	log   *gamelog.Recorder
}

// NewGrottoHandler creates a new GrottoHandler.
func NewGrottoHandler(store *player.Store, svc *grotto.Service, log *gamelog.Recorder) *GrottoHandler {
	return &GrottoHandler{store: store, svc: svc, log: log}
}

// Get handles GET /api/grotto.
func (h *GrottoHandler) Get(c *gin.Context) {
	st := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"grotto": st.Grotto})
}

type upgradeRequest struct {
	Level int `json:"level" binding:"required"`
}

// Upgrade handles POST /api/grotto/upgrade.
func (h *GrottoHandler) Upgrade(c *gin.Context) {
	var req upgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		return h.svc.Upgrade(st, req.Level)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.log.Add(gamelog.TypeSpecial, fmt.Sprintf("洞府升至 %d 级！", st.Grotto.Level))
	c.JSON(http.StatusOK, gin.H{"grotto": st.Grotto, "spiritStones": st.SpiritStones})
}

type plantRequest struct {
	HerbID string `json:"herbId" binding:"required"`
}

// Plant handles POST /api/grotto/plant.
func (h *GrottoHandler) Plant(c *gin.Context) {
	var req plantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		return h.svc.Plant(st, req.HerbID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	planted := st.Grotto.PlantedHerbs[len(st.Grotto.PlantedHerbs)-1]
	h.log.Add(gamelog.TypeNormal, "在灵田种下了 "+planted.HerbName+"。")
	c.JSON(http.StatusOK, gin.H{"grotto": st.Grotto})
}

type harvestRequest struct {
	Index *int `json:"index" binding:"required"`
}

// Harvest handles POST /api/grotto/harvest.
func (h *GrottoHandler) Harvest(c *gin.Context) {
	var req harvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	var yield grotto.HarvestYield
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		next, y, err := h.svc.HarvestOne(st, *req.Index)
		yield = y
		return next, err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.log.Add(gamelog.TypeGain, fmt.Sprintf("收获 %s x%d。", yield.HerbName, yield.Quantity))
	c.JSON(http.StatusOK, gin.H{"grotto": st.Grotto, "yield": yield})
}

// HarvestAll handles POST /api/grotto/harvest-all.
func (h *GrottoHandler) HarvestAll(c *gin.Context) {
	var yields []grotto.HarvestYield
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		next, ys, err := h.svc.HarvestAll(st)
		yields = ys
		return next, err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	for _, y := range yields {
		h.log.Add(gamelog.TypeGain, fmt.Sprintf("收获 %s x%d。", y.HerbName, y.Quantity))
	}
	c.JSON(http.StatusOK, gin.H{"grotto": st.Grotto, "yields": yields})
}

type enhanceRequest struct {
	EnhancementID string `json:"enhancementId" binding:"required"`
}

// Enhance handles POST /api/grotto/enhance.
func (h *GrottoHandler) Enhance(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		return h.svc.Enhance(st, req.EnhancementID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.log.Add(gamelog.TypeSpecial, fmt.Sprintf("聚灵阵强化成功，当前加成 %.0f%%。", st.Grotto.SpiritArrayEnhancement*100))
	c.JSON(http.StatusOK, gin.H{"grotto": st.Grotto})
}
