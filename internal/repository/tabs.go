package repository

import (
	"context"

	"gorm.io/gorm"

	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
)

type gormTabStore struct {
	db *gorm.DB
}

// NewTabStore returns the gorm-backed tab store.
func NewTabStore(db *gorm.DB) pos.TabStore {
	return &gormTabStore{db: db}
}

func (t *gormTabStore) Create(ctx context.Context, customerName string) (*models.Tab, error) {
	tab := models.Tab{CustomerName: customerName, Status: models.TabOpen}
	if err := t.db.WithContext(ctx).Create(&tab).Error; err != nil {
		return nil, err
	}
	return &tab, nil
}

func (t *gormTabStore) Get(ctx context.Context, tabID uint) (*models.Tab, error) {
	var tab models.Tab
	if err := t.db.WithContext(ctx).First(&tab, tabID).Error; err != nil {
		return nil, err
	}
	return &tab, nil
}

func (t *gormTabStore) Update(ctx context.Context, tabID uint, customerName string) error {
	return t.db.WithContext(ctx).Model(&models.Tab{}).
		Where("id = ?", tabID).
		Update("customer_name", customerName).Error
}

func (t *gormTabStore) ListOpen(ctx context.Context) ([]models.Tab, error) {
	var tabs []models.Tab
	err := t.db.WithContext(ctx).
		Where("status = ?", models.TabOpen).
		Order("created_at").
		Find(&tabs).Error
	return tabs, err
}

func (t *gormTabStore) InsertItemRows(ctx context.Context, rows []models.TabItem) error {
	if len(rows) == 0 {
		return nil
	}
	// Create fills each row's ID in insert order.
	return t.db.WithContext(ctx).Create(&rows).Error
}

func (t *gormTabStore) UpdateRowNotes(ctx context.Context, rowIDs []uint, note string) error {
	if len(rowIDs) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Model(&models.TabItem{}).
		Where("id IN ?", rowIDs).
		Update("note", note).Error
}

func (t *gormTabStore) FetchActiveRows(ctx context.Context, tabID uint) ([]models.TabItem, error) {
	var rows []models.TabItem
	err := t.db.WithContext(ctx).
		Where("tab_id = ? AND status = ?", tabID, models.RowActive).
		Order("id").
		Find(&rows).Error
	return rows, err
}

func (t *gormTabStore) MarkVoided(ctx context.Context, rowID uint, reason string) error {
	res := t.db.WithContext(ctx).Model(&models.TabItem{}).
		Where("id = ? AND status = ?", rowID, models.RowActive).
		Updates(map[string]interface{}{
			"status":      models.RowVoided,
			"void_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &pos.Error{Kind: pos.KindConflict, Msg: "row already voided or missing"}
	}
	return nil
}

// Close transitions open -> paid exactly once; a second close is a
// Conflict, never a silent success.
func (t *gormTabStore) Close(ctx context.Context, tabID uint) error {
	res := t.db.WithContext(ctx).Model(&models.Tab{}).
		Where("id = ? AND status = ?", tabID, models.TabOpen).
		Update("status", models.TabPaid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &pos.Error{Kind: pos.KindConflict, Msg: "tab already paid or missing"}
	}
	return nil
}
