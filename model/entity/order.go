package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusOpen   OrderStatus = "open"
	OrderStatusClosed OrderStatus = "closed"
)

// Order is a table's tab. At most one open order exists per table; closing
// freezes the total and the order becomes immutable.
type Order struct {
	ID        uint             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TableID   uint             `gorm:"column:table_id;index;not null" json:"table_id"`
	Status    OrderStatus      `gorm:"column:status;type:varchar(16);not null;default:open" json:"status"`
	UserID    *uint            `gorm:"column:user_id" json:"user_id"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ClosedAt  *time.Time       `gorm:"column:closed_at" json:"closed_at"`
	Total     *decimal.Decimal `gorm:"column:total;type:decimal(20,4)" json:"total"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. Price is the unit price captured at sale
// time, never a live reference to the catalog. Rows are append-only.
type OrderItem struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	Qty       int             `gorm:"column:qty;not null" json:"qty"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(20,4);not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
