package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"restaurant_api/internal/models"
)

func TestAddItemSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	svc := &CartService{DB: db}
	item := seedMenuItem(t, db, "Greek Salad", "10.00")
	alice := seedUser(t, db, "alice")

	line, err := svc.AddItem(ctx(), customer(alice.ID), item.ID, 2)
	require.NoError(t, err)
	require.Equal(t, alice.ID, line.UserID)
	require.Equal(t, uint(2), line.Quantity)
	require.True(t, line.UnitPrice.Equal(dec("10.00")), "unit_price = %s", line.UnitPrice)
	require.True(t, line.Price.Equal(dec("20.00")), "price = %s", line.Price)

	// A later menu price change must not touch the snapshot.
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", item.ID).
		Update("price", dec("99.00")).Error)
	var stored models.CartItem
	require.NoError(t, db.First(&stored, line.ID).Error)
	require.True(t, stored.UnitPrice.Equal(dec("10.00")))
	require.True(t, stored.Price.Equal(dec("20.00")))
}

func TestAddItemDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := &CartService{DB: db}
	item := seedMenuItem(t, db, "Bruschetta", "6.50")
	alice := seedUser(t, db, "alice")

	_, err := svc.AddItem(ctx(), customer(alice.ID), item.ID, 1)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx(), customer(alice.ID), item.ID, 3)
	require.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	require.EqualValues(t, 1, count, "second attempt must not merge")
}

func TestAddItemConcurrentDuplicateLosesOnIndex(t *testing.T) {
	db := newTestDB(t)
	svc := &CartService{DB: db}
	item := seedMenuItem(t, db, "Spanakopita", "6.00")
	alice := seedUser(t, db, "alice")

	// Slip a competing line in after AddItem's duplicate pre-read but
	// before its insert, so only the unique index can catch it.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("race_duplicate_line", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "cart_items" {
			return
		}
		raced = true
		dup := models.CartItem{
			UserID:     alice.ID,
			MenuItemID: item.ID,
			Quantity:   1,
			UnitPrice:  dec("6.00"),
			Price:      dec("6.00"),
		}
		tx.AddError(db.Session(&gorm.Session{NewDB: true}).Create(&dup).Error)
	})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx(), customer(alice.ID), item.ID, 2)
	require.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	require.EqualValues(t, 1, count, "the losing writer must not overwrite the winner")
}

func TestAddItemValidation(t *testing.T) {
	db := newTestDB(t)
	svc := &CartService{DB: db}
	item := seedMenuItem(t, db, "Lemon Dessert", "5.00")
	alice := seedUser(t, db, "alice")

	_, err := svc.AddItem(ctx(), customer(alice.ID), item.ID, 0)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddItem(ctx(), customer(alice.ID), item.ID+100, 1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestListItemsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := &CartService{DB: db}
	item := seedMenuItem(t, db, "Pasta", "12.00")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.AddItem(ctx(), customer(alice.ID), item.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx(), customer(bob.ID), item.ID, 2)
	require.NoError(t, err)

	lines, err := svc.ListItems(ctx(), customer(alice.ID))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, alice.ID, lines[0].UserID)
}

func TestClearCartIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := &CartService{DB: db}
	item := seedMenuItem(t, db, "Hummus", "4.00")
	alice := seedUser(t, db, "alice")

	require.NoError(t, svc.Clear(ctx(), customer(alice.ID)), "clearing an empty cart succeeds")

	_, err := svc.AddItem(ctx(), customer(alice.ID), item.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx(), customer(alice.ID)))
	lines, err := svc.ListItems(ctx(), customer(alice.ID))
	require.NoError(t, err)
	require.Empty(t, lines)

	require.NoError(t, svc.Clear(ctx(), customer(alice.ID)))
}
