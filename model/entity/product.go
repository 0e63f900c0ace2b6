package entity

import "github.com/shopspring/decimal"

// Product is a menu entry. Price here is the current catalog price; order
// items copy it at sale time and never read it back.
type Product struct {
	ID    uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name  string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price decimal.Decimal `gorm:"column:price;type:decimal(20,4);not null" json:"price"`
}

func (Product) TableName() string {
	return "products"
}
