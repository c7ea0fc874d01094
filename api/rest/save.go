package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/gamelog"
	"github.com/qingyunzi/xiuxian/server/save"
)

// SaveHandler handles save-slot REST endpoints.
type SaveHandler struct {
	store *player.Store
	saves *save.Service
	log   *gamelog.Recorder
}

// NewSaveHandler creates a new SaveHandler.
func NewSaveHandler(store *player.Store, saves *save.Service, log *gamelog.Recorder) *SaveHandler {
	return &SaveHandler{store: store, saves: saves, log: log}
}

// List handles GET /api/saves.
func (h *SaveHandler) List(c *gin.Context) {
	slots, err := h.saves.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// Save handles POST /api/saves/:slot.
func (h *SaveHandler) Save(c *gin.Context) {
	slot := c.Param("slot")
	snap := save.Snapshot{
		Player: h.store.Snapshot(),
		Logs:   h.log.Entries(),
	}
	if err := h.saves.Save(c.Request.Context(), slot, snap); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

// Load handles POST /api/saves/:slot/load. The running aggregate and log
// history are replaced wholesale by the slot contents.
func (h *SaveHandler) Load(c *gin.Context) {
	slot := c.Param("slot")
	snap, err := h.saves.Load(c.Request.Context(), slot)
	if errors.Is(err, save.ErrSlotNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "slot not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	h.store.Replace(snap.Player)
	h.log.Replace(snap.Logs)
	c.JSON(http.StatusOK, gin.H{"player": h.store.Snapshot()})
}

// Delete handles DELETE /api/saves/:slot.
func (h *SaveHandler) Delete(c *gin.Context) {
	slot := c.Param("slot")
	if err := h.saves.Delete(c.Request.Context(), slot); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}
