package model

import (
	"time"

	"gorm.io/datatypes"
)

// SaveSlot is one persisted game snapshot, addressed by slot id. The
// snapshot payload is the JSON-serialized save.Snapshot; the core only
// defines its shape, not how this table is hosted.
type SaveSlot struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Slot      string         `gorm:"uniqueIndex;size:64;not null" json:"slot"`
	Snapshot  datatypes.JSON `gorm:"not null" json:"snapshot"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
