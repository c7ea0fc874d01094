package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/gamelog"
)

// InventoryHandler handles inventory REST endpoints: listing, granting loot,
// consuming, discarding and selling items.
type InventoryHandler struct {
	store    *player.Store
	items    *item.Service
	use      *player.Handler
	rarities item.RarityTable
	log      *gamelog.Recorder
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(store *player.Store, items *item.Service, use *player.Handler, rarities item.RarityTable, log *gamelog.Recorder) *InventoryHandler {
	return &InventoryHandler{store: store, items: items, use: use, rarities: rarities, log: log}
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(c *gin.Context) {
	st := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"inventory": st.Inventory})
}

type grantRequest struct {
	Item     item.LootPayload `json:"item" binding:"required"`
	Quantity int              `json:"quantity"`
}

// Grant handles POST /api/inventory/grant. The payload is untrusted loot:
// category, slot and effects are re-derived before it enters the bag.
func (h *InventoryHandler) Grant(c *gin.Context) {
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item name required"})
		return
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		st.Inventory = h.items.AddItem(st.Inventory, req.Item.Template(), qty)
		return st, nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.log.Add(gamelog.TypeGain, fmt.Sprintf("获得 %s x%d。", req.Item.Name, qty))
	c.JSON(http.StatusOK, gin.H{"inventory": st.Inventory})
}

type itemIDRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// Use handles POST /api/inventory/use.
func (h *InventoryHandler) Use(c *gin.Context) {
	var req itemIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	var res *player.UseResult
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		next, r, err := h.use.Use(st, req.ItemID)
		res = r
		return next, err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	for _, line := range res.Logs {
		h.log.Add(gamelog.TypeNormal, line)
	}
	if res.HatchedPet != nil {
		h.log.Add(gamelog.TypeSpecial, "孵化出灵宠 "+res.HatchedPet.Name+"！")
	}
	if res.RecipeLearned != "" {
		h.log.Add(gamelog.TypeSpecial, "习得丹方："+res.RecipeLearned+"。")
	}
	c.JSON(http.StatusOK, gin.H{"player": st, "result": res})
}

type batchUseRequest struct {
	ItemIDs []string `json:"itemIds" binding:"required"`
}

// BatchUse handles POST /api/inventory/use-batch.
func (h *InventoryHandler) BatchUse(c *gin.Context) {
	var req batchUseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	var res *player.BatchResult
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		next, r, err := h.use.BatchUse(st, req.ItemIDs)
		res = r
		return next, err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": st, "result": res})
}

// Discard handles POST /api/inventory/discard.
func (h *InventoryHandler) Discard(c *gin.Context) {
	var req itemIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	name := ""
	if it, ok := item.FindByID(h.store.Snapshot().Inventory, req.ItemID); ok {
		name = it.Name
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		return player.Discard(st, req.ItemID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if name != "" {
		h.log.Add(gamelog.TypeNormal, "丢弃了 "+name+"。")
	}
	c.JSON(http.StatusOK, gin.H{"inventory": st.Inventory})
}

type sellRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity"`
}

// Sell handles POST /api/inventory/sell.
func (h *InventoryHandler) Sell(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	var earned int
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		next, price, err := player.Sell(st, req.ItemID, qty, h.rarities)
		earned = price
		return next, err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.log.Add(gamelog.TypeGain, fmt.Sprintf("出售物品，获得 %d 灵石。", earned))
	c.JSON(http.StatusOK, gin.H{"player": st, "earned": earned})
}
