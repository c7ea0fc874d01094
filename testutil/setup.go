package testutil

import (
	"testing"

	"github.com/qingyunzi/xiuxian/server/config"
	dbadapter "github.com/qingyunzi/xiuxian/server/db"
	"github.com/qingyunzi/xiuxian/server/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB creates an in-memory SQLite DB and runs AutoMigrate.
// It requires no external services and is safe to use in parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbadapter.Open(config.DatabaseConfig{
		Mode: dbadapter.ModeMemory,
	})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	return db
}
