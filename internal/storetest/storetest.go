// Package storetest opens throwaway sqlite databases for tests.
package storetest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/todozero/todozero/db"
	"github.com/todozero/todozero/internal/config"
	"github.com/todozero/todozero/internal/models"
)

// Open returns a migrated database in a fresh temporary file. It is closed
// when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	gdb, err := db.ConnectDatabase(config.DatabaseConfig{Driver: "sqlite", URL: db.SQLiteURL(path)}, "error")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})

	require.NoError(t, db.MigrateDatabase(gdb))

	return gdb
}

// SeedUser inserts a user directly, bypassing the uniqueness pre-check.
func SeedUser(t testing.TB, gdb *gorm.DB, username, email, passwordHash string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: email, Password: passwordHash}
	require.NoError(t, gdb.Create(user).Error)

	return user
}

// SeedTodo inserts a todo owned by ownerID.
func SeedTodo(t testing.TB, gdb *gorm.DB, ownerID uint, title, description string, state models.TodoState) *models.Todo {
	t.Helper()

	todo := &models.Todo{Title: title, Description: description, State: state, UserID: ownerID}
	require.NoError(t, gdb.Create(todo).Error)

	return todo
}
