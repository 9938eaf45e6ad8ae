package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the delivery state of an order. An order is created
// out_for_delivery and ends delivered.
type OrderStatus string

const (
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusOutForDelivery, StatusDelivered:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug  string `gorm:"not null"                 json:"slug"`
	Title string `gorm:"index;not null"           json:"title"`
}

type MenuItem struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title      string          `gorm:"index;not null"            json:"title"`
	Price      decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"price"`
	Featured   bool            `gorm:"index;default:false"       json:"featured"`
	CategoryID uint            `gorm:"index;not null"            json:"category_id"`
}

type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"unique;not null"          json:"username"`
}

// GroupMember is one named role membership ("manager", "delivery_crew").
type GroupMember struct {
	ID     uint   `gorm:"primaryKey"                              json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_member_group"                    json:"user_id"`
	Group  string `gorm:"column:group_name;not null;uniqueIndex:idx_member_group" json:"group"`
}

// CartItem is a pending selection. UnitPrice is snapshotted from the menu
// item when the line is created and Price = UnitPrice * Quantity; neither is
// ever recomputed afterwards.
type CartItem struct {
	ID         uint            `gorm:"primaryKey"                                json:"id"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_cart_user_item"   json:"user_id"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_cart_user_item"   json:"menu_item_id"`
	Quantity   uint            `gorm:"default:1;check:quantity>0"                json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(8,2);not null"                json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:numeric(8,2);not null"                json:"price"`
}

// Order owns its items. Total is computed once from the cart lines at
// creation and is immutable, as are UserID and CreatedAt.
type Order struct {
	ID             uint            `gorm:"primaryKey"                 json:"id"`
	UserID         uint            `gorm:"index;not null"             json:"user_id"`
	DeliveryCrewID *uint           `gorm:"index"                      json:"delivery_crew_id"`
	Status         OrderStatus     `gorm:"index;not null"             json:"status"`
	Total          decimal.Decimal `gorm:"type:numeric(8,2);not null" json:"total"`
	CreatedAt      time.Time       `gorm:"index;not null"             json:"created_at"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem is the immutable copy of one cart line at conversion time.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey"                                json:"id"`
	OrderID    uint            `gorm:"not null;uniqueIndex:idx_order_item"       json:"order_id"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_order_item"       json:"menu_item_id"`
	Quantity   uint            `gorm:"default:1;check:quantity>0"                json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(8,2);not null"                json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:numeric(8,2);not null"                json:"price"`
}
