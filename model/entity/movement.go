package entity

import "time"

// InventoryMovement is one signed stock change with the resulting level.
// The table is append-only: replaying all deltas for a product in id order,
// starting from 0, reproduces its current stock.
type InventoryMovement struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"column:product_id;index;not null" json:"product_id"`
	Delta     int       `gorm:"column:delta;not null" json:"delta"`
	NewStock  int       `gorm:"column:new_stock;not null" json:"new_stock"`
	UserID    *uint     `gorm:"column:user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InventoryMovement) TableName() string {
	return "inventory_movements"
}
