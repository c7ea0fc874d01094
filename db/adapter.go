// Package db opens the save-slot database. Saves are local sqlite files;
// tests use isolated in-memory databases.
package db

import (
	"fmt"
	"sync/atomic"

	"github.com/qingyunzi/xiuxian/server/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ModeSQLite = "sqlite"
	ModeMemory = "memory"
)

var memSeq uint64

// Open returns a *gorm.DB for the configured database mode.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Mode {
	case ModeSQLite:
		return open(cfg.SQLitePath)
	case ModeMemory:
		// Each open gets its own named in-memory DB so parallel tests
		// never share state.
		n := atomic.AddUint64(&memSeq, 1)
		return open(fmt.Sprintf("file:mem%d?mode=memory&cache=shared", n))
	default:
		return nil, fmt.Errorf("db: unknown mode %q", cfg.Mode)
	}
}

func open(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}
