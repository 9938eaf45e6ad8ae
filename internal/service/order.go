package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant_api/internal/authz"
	"restaurant_api/internal/models"
)

// OrderService runs the order state machine: cart conversion, role-scoped
// visibility and field-level update authorization.
type OrderService struct {
	DB *gorm.DB
}

// OrderPatch carries the fields an update request tried to set. Nil means
// the field was absent from the request.
type OrderPatch struct {
	Status         *models.OrderStatus
	DeliveryCrewID *uint
	UserID         *uint
	Total          *decimal.Decimal
}

func (p OrderPatch) empty() bool {
	return p.Status == nil && p.DeliveryCrewID == nil && p.UserID == nil && p.Total == nil
}

// CreateFromCart converts the caller's cart into an order in one
// transaction: order row, one item per cart line with quantity and prices
// copied verbatim, then the cart is cleared. Any failure rolls the whole
// thing back and leaves the cart untouched.
func (s *OrderService) CreateFromCart(ctx context.Context, p authz.Principal) (*models.Order, error) {
	if !authz.Allowed(p, authz.ActionOrderCreate) {
		return nil, fmt.Errorf("staff may not place orders: %w", ErrForbidden)
	}

	var order models.Order
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Where("user_id = ?", p.UserID).Order("id ASC").Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("cart has no lines: %w", ErrEmptyCart)
		}

		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.Price)
		}

		order = models.Order{
			UserID:    p.UserID,
			Status:    models.StatusOutForDelivery,
			Total:     total,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, l := range lines {
			oi := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: l.MenuItemID,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				Price:      l.Price,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		return tx.Where("user_id = ?", p.UserID).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}

// List applies role scoping: managers see everything, delivery crew their
// assigned orders, everyone else their own.
func (s *OrderService) List(ctx context.Context, p authz.Principal) ([]models.Order, error) {
	q := s.DB.WithContext(ctx).Model(&models.Order{})
	switch {
	case p.HasRole(authz.RoleManager):
	case p.HasRole(authz.RoleDeliveryCrew):
		q = q.Where("delivery_crew_id = ?", p.UserID)
	default:
		q = q.Where("user_id = ?", p.UserID)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Get returns one order with its items. Only the owner or a manager may
// fetch by id; an assigned crew member sees the order in List but is still
// rejected here.
func (s *OrderService) Get(ctx context.Context, p authz.Principal, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if !authz.CanReadOrder(p, order.UserID) {
		return nil, fmt.Errorf("order %d belongs to another user: %w", id, ErrForbidden)
	}
	return &order, nil
}

// Update applies a patch under the field-level rules: managers may change
// status and reassign the delivery crew (target must hold the role);
// the assigned crew member may change status and nothing else — a patch
// that also touches another field is rejected whole. total, user and
// created date are immutable for everyone.
func (s *OrderService) Update(ctx context.Context, p authz.Principal, id uint, patch OrderPatch) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	switch authz.UpdateAccess(p, order.DeliveryCrewID) {
	case authz.OrderAccessNone:
		return nil, fmt.Errorf("not allowed to update order %d: %w", id, ErrForbidden)

	case authz.OrderAccessStatusOnly:
		if patch.DeliveryCrewID != nil || patch.UserID != nil || patch.Total != nil {
			return nil, fmt.Errorf("delivery crew may only update status: %w", ErrForbidden)
		}
		if patch.Status == nil {
			return nil, fmt.Errorf("status is required: %w", ErrValidation)
		}
		order.Status = *patch.Status

	case authz.OrderAccessFull:
		if patch.UserID != nil {
			return nil, fmt.Errorf("order owner is immutable: %w", ErrValidation)
		}
		if patch.Total != nil {
			return nil, fmt.Errorf("order total is immutable: %w", ErrValidation)
		}
		if patch.empty() {
			return nil, fmt.Errorf("no fields to update: %w", ErrValidation)
		}
		if patch.DeliveryCrewID != nil {
			if err := s.checkDeliveryCrew(ctx, *patch.DeliveryCrewID); err != nil {
				return nil, err
			}
			order.DeliveryCrewID = patch.DeliveryCrewID
		}
		if patch.Status != nil {
			order.Status = *patch.Status
		}
	}

	if err := s.DB.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete is manager-only and removes the order together with its items.
func (s *OrderService) Delete(ctx context.Context, p authz.Principal, id uint) error {
	if !authz.Allowed(p, authz.ActionOrderDelete) {
		return fmt.Errorf("only managers may delete orders: %w", ErrForbidden)
	}

	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (s *OrderService) checkDeliveryCrew(ctx context.Context, userID uint) error {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d does not exist: %w", userID, ErrValidation)
		}
		return err
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.GroupMember{}).
		Where("user_id = ? AND group_name = ?", userID, authz.RoleDeliveryCrew).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %d is not in the delivery crew: %w", userID, ErrValidation)
	}
	return nil
}
