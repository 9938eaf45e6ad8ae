package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"restaurant_api/internal/authz"
	"restaurant_api/internal/config"
	"restaurant_api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A file-backed DB: with this driver each pooled connection to
	// ":memory:" gets its own private database, which breaks tests that
	// write through a second connection.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func grantRole(t *testing.T, db *gorm.DB, userID uint, role string) {
	t.Helper()
	require.NoError(t, db.Create(&models.GroupMember{UserID: userID, Group: role}).Error)
}

func seedMenuItem(t *testing.T, db *gorm.DB, title, price string) models.MenuItem {
	t.Helper()
	cat := models.Category{Slug: "mains", Title: "Mains"}
	require.NoError(t, db.Create(&cat).Error)
	item := models.MenuItem{Title: title, Price: dec(price), CategoryID: cat.ID}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func customer(id uint) authz.Principal {
	return authz.Principal{UserID: id}
}

func manager(id uint) authz.Principal {
	return authz.Principal{UserID: id, Roles: []string{authz.RoleManager}}
}

func crew(id uint) authz.Principal {
	return authz.Principal{UserID: id, Roles: []string{authz.RoleDeliveryCrew}}
}

func ctx() context.Context {
	return context.Background()
}
