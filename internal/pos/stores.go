package pos

import (
	"context"

	"go-bar-pos/internal/models"
)

// The engine talks to its collaborators through these interfaces. The
// gorm-backed implementations live in internal/repository; tests run
// against the same implementations on an in-memory sqlite database.

// Catalog is the inventory item store.
type Catalog interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	Get(ctx context.Context, id uint) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	// Delete fails with a Conflict when active tab rows still reference
	// the item.
	Delete(ctx context.Context, id uint) error
	// Deduct atomically subtracts qty from the item's stock, flooring at
	// zero, and recomputes availability. No-op for untracked items.
	Deduct(ctx context.Context, itemID uint, qty int) error
	// Restore adds units back to the item's stock and recomputes
	// availability. No-op for untracked items.
	Restore(ctx context.Context, itemID uint, units int) error
}

// SalesLedger records finalized transactions and $0 void audit entries.
type SalesLedger interface {
	Record(ctx context.Context, sale *models.Sale) error
	List(ctx context.Context) ([]models.Sale, error)
	ClearAll(ctx context.Context) error
}

// TabStore persists open customer tabs and their per-unit item rows.
type TabStore interface {
	Create(ctx context.Context, customerName string) (*models.Tab, error)
	Get(ctx context.Context, tabID uint) (*models.Tab, error)
	Update(ctx context.Context, tabID uint, customerName string) error
	ListOpen(ctx context.Context) ([]models.Tab, error)
	// InsertItemRows persists the rows in order and fills in their ids.
	InsertItemRows(ctx context.Context, rows []models.TabItem) error
	UpdateRowNotes(ctx context.Context, rowIDs []uint, note string) error
	// FetchActiveRows returns the tab's non-voided rows in insertion order.
	FetchActiveRows(ctx context.Context, tabID uint) ([]models.TabItem, error)
	MarkVoided(ctx context.Context, rowID uint, reason string) error
	Close(ctx context.Context, tabID uint) error
}

// UserStore lists employees; PIN verification is a pure function over
// the hashed PINs it returns.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// HappyHourStore lists the scheduled discount rules.
type HappyHourStore interface {
	List(ctx context.Context) ([]models.HappyHourRule, error)
}
