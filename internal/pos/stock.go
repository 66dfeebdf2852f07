package pos

import (
	"context"

	"go-bar-pos/internal/models"
)

// lowStockThreshold is the fixed point below which the menu shows a
// low-stock warning.
const lowStockThreshold = 10

// StockStatus is the menu-facing availability of an item given what is
// already sitting in the cart.
type StockStatus struct {
	SoldOut  bool `json:"sold_out"`
	LowStock bool `json:"low_stock"`
}

// EffectiveStock is the item's stock count minus the units already in
// the cart that have not been deducted yet. Untracked items return nil
// (unlimited).
func EffectiveStock(item models.InventoryItem, cart *Cart) *int {
	if item.StockCount == nil {
		return nil
	}
	remaining := *item.StockCount - cart.pendingQuantity(item.ID)
	return &remaining
}

// StockStatusFor derives sold-out/low-stock from effective stock.
func StockStatusFor(item models.InventoryItem, cart *Cart) StockStatus {
	eff := EffectiveStock(item, cart)
	soldOut := !item.IsAvailable || (eff != nil && *eff <= 0)
	lowStock := eff != nil && !soldOut && *eff < lowStockThreshold
	return StockStatus{SoldOut: soldOut, LowStock: lowStock}
}

// StockLedger performs stock mutation against the catalog.
type StockLedger struct {
	catalog Catalog
}

func NewStockLedger(catalog Catalog) *StockLedger {
	return &StockLedger{catalog: catalog}
}

// Deduct subtracts each line's quantity from its item's stock. Custom
// lines (no catalog reference) are skipped. Each deduction is a single
// row-locked update in the store, so two terminals cannot interleave a
// read-modify-write on the same item.
func (s *StockLedger) Deduct(ctx context.Context, lines []*Line) error {
	for _, l := range lines {
		if l.InventoryID == nil {
			continue
		}
		if err := s.catalog.Deduct(ctx, *l.InventoryID, l.Quantity); err != nil {
			return WrapNetwork("deduct stock", err)
		}
	}
	return nil
}

// Restore puts units back for one line. Used only by the entry-error
// void path; waste and manager voids treat the unit as consumed.
func (s *StockLedger) Restore(ctx context.Context, line *Line, units int) error {
	if line.InventoryID == nil || units <= 0 {
		return nil
	}
	if err := s.catalog.Restore(ctx, *line.InventoryID, units); err != nil {
		return WrapNetwork("restore stock", err)
	}
	return nil
}
