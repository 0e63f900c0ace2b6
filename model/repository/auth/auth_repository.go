package auth

import (
	"errors"

	"gorm.io/gorm"

	entity "barpos.GO/model/entity"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindByCredentials returns the user matching username and password, or nil
// when credentials don't match. Passwords are stored as-is, matching the
// original deployment; the core never reads them past login.
func (r *AuthRepository) FindByCredentials(username, password string) (*entity.User, error) {
	var u entity.User
	err := r.db.Where("username = ? AND password = ?", username, password).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername returns the user record for a username.
func (r *AuthRepository) FindByUsername(username string) (*entity.User, error) {
	var u entity.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
