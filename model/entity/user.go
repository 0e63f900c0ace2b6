package entity

// User is a POS operator (admin or waiter). Credentials are checked by the
// auth repository; the core only uses the ID for audit attribution.
type User struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"column:username;type:varchar(64);uniqueIndex;not null" json:"username"`
	Password string `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Role     string `gorm:"column:role;type:varchar(32);not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}
