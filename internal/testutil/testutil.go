// Package testutil provides in-memory stores for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lshigami/Bulletin/config"
	"github.com/lshigami/Bulletin/database"
	"github.com/lshigami/Bulletin/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewDB opens a migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", nameCleaner.Replace(t.Name()))
	db, err := database.Open(config.Database{Driver: "sqlite", Name: dsn})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		DateJoined:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// Clock returns a deterministic time source that advances by step on each call.
func Clock(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}
