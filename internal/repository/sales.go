package repository

import (
	"context"

	"gorm.io/gorm"

	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
)

type gormSalesLedger struct {
	db *gorm.DB
}

// NewSalesLedger returns the gorm-backed sales ledger.
func NewSalesLedger(db *gorm.DB) pos.SalesLedger {
	return &gormSalesLedger{db: db}
}

func (s *gormSalesLedger) Record(ctx context.Context, sale *models.Sale) error {
	// Items ride along; gorm inserts them with the header.
	return s.db.WithContext(ctx).Create(sale).Error
}

func (s *gormSalesLedger) List(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.WithContext(ctx).Preload("Items").Order("sale_time desc").Find(&sales).Error
	return sales, err
}

func (s *gormSalesLedger) ClearAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.SaleItem{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.Sale{}).Error
}
