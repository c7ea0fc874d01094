package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qingyunzi/xiuxian/server/game/item"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/gamelog"
)

// PlayerHandler exposes the player aggregate and equipment operations.
type PlayerHandler struct {
	store *player.Store
	log   *gamelog.Recorder
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(store *player.Store, log *gamelog.Recorder) *PlayerHandler {
	return &PlayerHandler{store: store, log: log}
}

// Get handles GET /api/player.
func (h *PlayerHandler) Get(c *gin.Context) {
	st := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"player":   st,
		"equipped": st.EquippedTotals(),
	})
}

// Logs handles GET /api/player/logs.
func (h *PlayerHandler) Logs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"logs": h.log.Entries()})
}

type equipRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// Equip handles POST /api/player/equip.
func (h *PlayerHandler) Equip(c *gin.Context) {
	var req equipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		return player.Equip(st, req.ItemID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if it, ok := item.FindByID(st.Inventory, req.ItemID); ok {
		h.log.Add(gamelog.TypeNormal, "装备了 "+it.Name+"。")
	}
	c.JSON(http.StatusOK, gin.H{"player": st})
}

type unequipRequest struct {
	Slot item.Slot `json:"slot" binding:"required"`
}

// Unequip handles POST /api/player/unequip.
func (h *PlayerHandler) Unequip(c *gin.Context) {
	var req unequipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		return player.Unequip(st, req.Slot)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"player": st})
}

// SetNatal handles POST /api/player/natal.
func (h *PlayerHandler) SetNatal(c *gin.Context) {
	var req equipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.store.Apply(func(st player.State) (player.State, error) {
		return player.SetNatalArtifact(st, req.ItemID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if it, ok := item.FindByID(st.Inventory, req.ItemID); ok {
		h.log.Add(gamelog.TypeSpecial, "将 "+it.Name+" 炼化为本命法宝！")
	}
	c.JSON(http.StatusOK, gin.H{"player": st})
}
