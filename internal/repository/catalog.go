package repository

import (
	"context"

	"gorm.io/gorm"

	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
)

type gormCatalog struct {
	db *gorm.DB
}

// NewCatalog returns the gorm-backed inventory store.
func NewCatalog(db *gorm.DB) pos.Catalog {
	return &gormCatalog{db: db}
}

func (c *gormCatalog) List(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := c.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

func (c *gormCatalog) Get(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := c.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *gormCatalog) Create(ctx context.Context, item *models.InventoryItem) error {
	return c.db.WithContext(ctx).Create(item).Error
}

func (c *gormCatalog) Update(ctx context.Context, item *models.InventoryItem) error {
	return c.db.WithContext(ctx).Save(item).Error
}

// Delete refuses to remove an item that active tab rows still point at;
// those rows are audit records and would dangle.
func (c *gormCatalog) Delete(ctx context.Context, id uint) error {
	var refs int64
	err := c.db.WithContext(ctx).Model(&models.TabItem{}).
		Where("inventory_id = ? AND status = ?", id, models.RowActive).
		Count(&refs).Error
	if err != nil {
		return err
	}
	if refs > 0 {
		return &pos.Error{Kind: pos.KindConflict, Msg: "item is on an open tab and cannot be deleted"}
	}
	return c.db.WithContext(ctx).Delete(&models.InventoryItem{}, id).Error
}

// Deduct subtracts qty in a single conditional UPDATE so two terminals
// can never interleave a read-modify-write on the same row. Untracked
// items (NULL stock_count) fall through untouched; a short row clamps
// to zero. Availability is recomputed from the stored count afterwards.
func (c *gormCatalog) Deduct(ctx context.Context, itemID uint, qty int) error {
	if qty <= 0 {
		return nil
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND stock_count >= ?", itemID, qty).
			UpdateColumn("stock_count", gorm.Expr("stock_count - ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either untracked (NULL never matches >=) or insufficient.
			res = tx.Model(&models.InventoryItem{}).
				Where("id = ? AND stock_count IS NOT NULL", itemID).
				UpdateColumn("stock_count", 0)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil // untracked item, nothing to do
			}
		}
		return refreshAvailability(tx, itemID)
	})
}

// Restore is the inverse, used by the entry-error void path.
func (c *gormCatalog) Restore(ctx context.Context, itemID uint, units int) error {
	if units <= 0 {
		return nil
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InventoryItem{}).
			Where("id = ? AND stock_count IS NOT NULL", itemID).
			UpdateColumn("stock_count", gorm.Expr("stock_count + ?", units))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // untracked item
		}
		return refreshAvailability(tx, itemID)
	})
}

func refreshAvailability(tx *gorm.DB, itemID uint) error {
	return tx.Model(&models.InventoryItem{}).
		Where("id = ? AND stock_count IS NOT NULL", itemID).
		UpdateColumn("is_available", gorm.Expr("stock_count > 0")).Error
}
