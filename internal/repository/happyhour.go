package repository

import (
	"context"

	"gorm.io/gorm"

	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
)

type gormHappyHourStore struct {
	db *gorm.DB
}

// NewHappyHourStore returns the gorm-backed rule store. List order is
// id order, which is also the first-match precedence order the pricing
// engine applies.
func NewHappyHourStore(db *gorm.DB) pos.HappyHourStore {
	return &gormHappyHourStore{db: db}
}

func (h *gormHappyHourStore) List(ctx context.Context) ([]models.HappyHourRule, error) {
	var rules []models.HappyHourRule
	err := h.db.WithContext(ctx).Order("id").Find(&rules).Error
	return rules, err
}
