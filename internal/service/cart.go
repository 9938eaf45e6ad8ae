package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant_api/internal/authz"
	"restaurant_api/internal/models"
)

// CartService maintains each user's pending selections. Every line is
// priced from the menu item at insertion time and never repriced.
type CartService struct {
	DB *gorm.DB
}

// AddItem creates one cart line for (caller, menu item). A second line for
// the same pair is a conflict, never a merge.
func (s *CartService) AddItem(ctx context.Context, p authz.Principal, menuItemID uint, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	var item models.MenuItem
	if err := s.DB.WithContext(ctx).First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu item %d does not exist: %w", menuItemID, ErrValidation)
		}
		return nil, err
	}

	var existing models.CartItem
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", p.UserID, menuItemID).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("menu item %d is already in the cart: %w", menuItemID, ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	line := models.CartItem{
		UserID:     p.UserID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	if err := s.DB.WithContext(ctx).Create(&line).Error; err != nil {
		// A racing insert for the same pair loses on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("menu item %d is already in the cart: %w", menuItemID, ErrConflict)
		}
		return nil, err
	}
	return &line, nil
}

func (s *CartService) ListItems(ctx context.Context, p authz.Principal) ([]models.CartItem, error) {
	var lines []models.CartItem
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", p.UserID).
		Order("id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Clear removes every line the caller owns. Clearing an empty cart is fine.
func (s *CartService) Clear(ctx context.Context, p authz.Principal) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ?", p.UserID).
		Delete(&models.CartItem{}).Error
}
