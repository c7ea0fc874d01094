// Package gamelog keeps the player-facing event log. Entries live in a
// bounded in-memory history that is persisted inside save snapshots and
// mirrored to the structured logger.
package gamelog

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entry types, matching the UI's log styling.
const (
	TypeNormal  = "normal"
	TypeGain    = "gain"
	TypeDanger  = "danger"
	TypeSpecial = "special"
)

// Entry is one log line.
type Entry struct {
	Time    time.Time `json:"time"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
}

// Recorder is a bounded append-only log history.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
	logger  *zap.Logger
}

// NewRecorder creates a Recorder keeping at most limit entries (oldest
// dropped first). limit <= 0 means 200.
func NewRecorder(limit int, logger *zap.Logger) *Recorder {
	if limit <= 0 {
		limit = 200
	}
	return &Recorder{limit: limit, logger: logger}
}

// Add appends a log line.
func (r *Recorder) Add(entryType, message string) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Time: time.Now(), Type: entryType, Message: message})
	if len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
	r.mu.Unlock()
	if r.logger != nil {
		r.logger.Info("game log", zap.String("type", entryType), zap.String("message", message))
	}
}

// Entries returns a copy of the history, oldest first.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Replace swaps in a loaded history (save-slot load).
func (r *Recorder) Replace(entries []Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(entries) > r.limit {
		entries = entries[len(entries)-r.limit:]
	}
	r.entries = append([]Entry(nil), entries...)
}
