package entity

// Inventory holds the current stock level for one product. The row is created
// lazily on first use; a missing row reads as stock 0. Stock never goes
// negative: consumption is checked first, corrections are clamped at zero.
type Inventory struct {
	ProductID uint `gorm:"column:product_id;primaryKey" json:"product_id"`
	Stock     int  `gorm:"column:stock;not null;default:0" json:"stock"`
}

func (Inventory) TableName() string {
	return "inventory"
}
