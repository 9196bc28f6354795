package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. Cancelled and delivered are terminal.
const (
	OrderStatusOrdered   = "ordered"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a point-in-time snapshot of a cart line taken at checkout.
// Name and price are copied by value so later product changes never affect
// historical orders.
type OrderItem struct {
	ID       string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID  string          `json:"-" gorm:"index;type:varchar(36)"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"` // Price at the time of order
}

// Order is the immutable record of a completed checkout. Only its status
// changes after creation, through the cancellation policy or the status
// update path. Orders are never physically deleted.
type Order struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string          `json:"user_id" gorm:"index;type:varchar(36)"`
	Items     []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone" gorm:"type:varchar(20)"`
	Status    string          `json:"status" gorm:"index;type:varchar(20)"`
	OrderDate time.Time       `json:"order_date" gorm:"index"`
	gorm.Model
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusOrdered, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
