package database

import (
	"dormaid/config"
	"dormaid/models"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteFile(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBName:   filepath.Join(t.TempDir(), "dormaid.sqlite"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable("maintenance_requests"))
	assert.True(t, db.Migrator().HasColumn(&models.MaintenanceRequest{}, "completed_at"))

	// Running migrations again is a no-op.
	assert.NoError(t, Migrate(db))
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestUniqueEmailEnforced(t *testing.T) {
	db := NewTestDB(t)

	require.NoError(t, db.Create(&models.User{Username: "a", Email: "x@example.com", PasswordHash: "h"}).Error)
	err := db.Create(&models.User{Username: "b", Email: "x@example.com", PasswordHash: "h"}).Error
	assert.Error(t, err)
}

func TestNullRegisterNumbersDoNotCollide(t *testing.T) {
	db := NewTestDB(t)

	require.NoError(t, db.Create(&models.User{Username: "tech1", Email: "t1@example.com", PasswordHash: "h", Role: models.RoleTechnician}).Error)
	require.NoError(t, db.Create(&models.User{Username: "tech2", Email: "t2@example.com", PasswordHash: "h", Role: models.RoleTechnician}).Error)
}
