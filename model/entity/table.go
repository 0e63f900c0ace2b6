package entity

// Table is a physical bar table. A table is "occupied" while it has an open
// order; that flag is derived, never stored.
type Table struct {
	ID   uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:varchar(64);not null" json:"name"`
}

func (Table) TableName() string {
	return "tables"
}
