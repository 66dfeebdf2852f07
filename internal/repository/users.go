package repository

import (
	"context"

	"gorm.io/gorm"

	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
)

type gormUserStore struct {
	db *gorm.DB
}

// NewUserStore returns the gorm-backed employee store.
func NewUserStore(db *gorm.DB) pos.UserStore {
	return &gormUserStore{db: db}
}

func (u *gormUserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := u.db.WithContext(ctx).Find(&users).Error
	return users, err
}

func (u *gormUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *gormUserStore) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}
