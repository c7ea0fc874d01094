// Package save persists and restores game snapshots by slot id. The core
// defines only the snapshot shape; this service maps it onto the save-slot
// table. Loading synthesizes any field absent from an older snapshot rather
// than rejecting it.
package save

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/qingyunzi/xiuxian/server/gamelog"
	"github.com/qingyunzi/xiuxian/server/game/player"
	"github.com/qingyunzi/xiuxian/server/model"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotVersion is stamped into new snapshots. Older versions (including
// version 0, i.e. the field missing entirely) load via Normalize.
const SnapshotVersion = 2

// Snapshot is the full persisted game state: the player aggregate plus the
// log history. Plain nested data, no cyclic references.
type Snapshot struct {
	Version int             `json:"version"`
	Player  player.State    `json:"player"`
	Logs    []gamelog.Entry `json:"logs,omitempty"`
	SavedAt time.Time       `json:"savedAt"`
}

// ErrSlotNotFound is returned when loading a slot that has never been saved.
var ErrSlotNotFound = errors.New("save: slot not found")

// Service reads and writes save slots.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates the save Service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Save upserts the snapshot into the given slot.
func (svc *Service) Save(ctx context.Context, slot string, snap Snapshot) error {
	if slot == "" {
		return errors.New("save: empty slot id")
	}
	snap.Version = SnapshotVersion
	snap.SavedAt = time.Now()
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save: marshal snapshot: %w", err)
	}
	rec := &model.SaveSlot{Slot: slot, Snapshot: datatypes.JSON(payload)}
	err = svc.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"snapshot", "updated_at"}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("save: write slot %s: %w", slot, err)
	}
	if svc.logger != nil {
		svc.logger.Info("game saved", zap.String("slot", slot))
	}
	return nil
}

// Load reads and normalizes the snapshot in the given slot. Fields missing
// from older snapshots are synthesized with their defaults.
func (svc *Service) Load(ctx context.Context, slot string) (*Snapshot, error) {
	var rec model.SaveSlot
	err := svc.db.WithContext(ctx).Where("slot = ?", slot).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("save: read slot %s: %w", slot, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(rec.Snapshot, &snap); err != nil {
		return nil, fmt.Errorf("save: parse slot %s: %w", slot, err)
	}
	snap.Player.Normalize()
	return &snap, nil
}

// List returns every slot id, most recently written first.
func (svc *Service) List(ctx context.Context) ([]string, error) {
	var slots []string
	err := svc.db.WithContext(ctx).Model(&model.SaveSlot{}).
		Order("updated_at DESC").Pluck("slot", &slots).Error
	return slots, err
}

// Delete removes a save slot.
func (svc *Service) Delete(ctx context.Context, slot string) error {
	return svc.db.WithContext(ctx).Where("slot = ?", slot).Delete(&model.SaveSlot{}).Error
}
