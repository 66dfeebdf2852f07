package pos

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"go-bar-pos/internal/models"
)

// TabService saves the cart as a reopenable tab and reconciles
// persisted rows back into merged cart lines.
type TabService struct {
	tabs  TabStore
	stock *StockLedger
}

func NewTabService(tabs TabStore, stock *StockLedger) *TabService {
	return &TabService{tabs: tabs, stock: stock}
}

// Save persists the cart under the customer's name. New lines (those
// not yet backed by rows) get their stock deducted once and are then
// written as one row per unit, so a later void can target exactly one
// physical unit. Lines saved earlier only get their notes written
// through.
//
// Deduction runs before the row insert on purpose: if the sequence
// fails in between, stock is over-deducted but recoverable via void,
// whereas rows without deduction would sell inventory twice.
func (s *TabService) Save(ctx context.Context, cart *Cart, customerName string) (*models.Tab, error) {
	if customerName == "" {
		return nil, errValidation("tab needs a customer name")
	}
	if len(cart.Lines) == 0 {
		return nil, errValidation("nothing to save")
	}

	var tab *models.Tab
	if cart.TabID == nil {
		created, err := s.tabs.Create(ctx, customerName)
		if err != nil {
			return nil, WrapNetwork("create tab", err)
		}
		tab = created
		cart.TabID = &created.ID
	} else {
		if err := s.EnsureOpen(ctx, *cart.TabID); err != nil {
			return nil, err
		}
		if err := s.tabs.Update(ctx, *cart.TabID, customerName); err != nil {
			return nil, WrapNetwork("update tab", err)
		}
		tab = &models.Tab{ID: *cart.TabID, CustomerName: customerName, Status: models.TabOpen}
	}
	cart.CustomerName = customerName

	var newLines []*Line
	for _, l := range cart.Lines {
		if !l.tabBacked() {
			newLines = append(newLines, l)
		}
	}

	if len(newLines) > 0 {
		if err := s.stock.Deduct(ctx, newLines); err != nil {
			return nil, err
		}

		var rows []models.TabItem
		for _, l := range newLines {
			for i := 0; i < l.Quantity; i++ {
				rows = append(rows, models.TabItem{
					TabID:       tab.ID,
					InventoryID: l.InventoryID,
					Name:        l.Name,
					Price:       l.Price,
					Quantity:    1,
					Status:      models.RowActive,
					Note:        l.Note,
				})
			}
		}
		if err := s.tabs.InsertItemRows(ctx, rows); err != nil {
			return nil, WrapNetwork("insert tab rows", err)
		}

		// Hand each line its freshly assigned row ids, in insert order.
		i := 0
		for _, l := range newLines {
			tabID := tab.ID
			l.TabID = &tabID
			for n := 0; n < l.Quantity; n++ {
				l.DBIDs = append(l.DBIDs, rows[i].ID)
				i++
			}
		}
	}

	for _, l := range cart.Lines {
		if l.tabBacked() && len(l.DBIDs) > 0 && !contains(newLines, l) {
			if err := s.tabs.UpdateRowNotes(ctx, l.DBIDs, l.Note); err != nil {
				return nil, WrapNetwork("update notes", err)
			}
		}
	}

	return tab, nil
}

// EnsureOpen verifies the tab can still take writes. Paid tabs are
// terminal: their rows stay on record for the sale snapshot, but
// nothing may reopen or re-bill them.
func (s *TabService) EnsureOpen(ctx context.Context, tabID uint) error {
	tab, err := s.tabs.Get(ctx, tabID)
	if err != nil {
		return WrapNetwork("fetch tab", err)
	}
	if tab.Status != models.TabOpen {
		return errConflict("tab is already paid")
	}
	return nil
}

// Load rebuilds a cart from a tab's active rows. Rows sharing the same
// item, price, and note collapse into one line with their row ids kept
// in insertion order, so loading twice without writes yields identical
// carts. Only open tabs load; a paid tab is a Conflict.
func (s *TabService) Load(ctx context.Context, tabID uint) (*Cart, error) {
	if err := s.EnsureOpen(ctx, tabID); err != nil {
		return nil, err
	}
	rows, err := s.tabs.FetchActiveRows(ctx, tabID)
	if err != nil {
		return nil, WrapNetwork("load tab", err)
	}

	cart := NewCart()
	cart.TabID = &tabID

	index := map[string]*Line{}
	for _, row := range rows {
		key := groupKey(row)
		if line, ok := index[key]; ok {
			line.Quantity++
			line.DBIDs = append(line.DBIDs, row.ID)
			continue
		}
		id := tabID
		line := &Line{
			UniqueID:    uuid.NewString(),
			InventoryID: row.InventoryID,
			Name:        row.Name,
			Price:       row.Price,
			Quantity:    1,
			Note:        row.Note,
			TabID:       &id,
			DBIDs:       []uint{row.ID},
		}
		index[key] = line
		cart.Lines = append(cart.Lines, line)
	}
	return cart, nil
}

// Close marks the tab paid. Terminal: only the sale finalizer calls
// this, exactly once per tab.
func (s *TabService) Close(ctx context.Context, tabID uint) error {
	if err := s.tabs.Close(ctx, tabID); err != nil {
		return WrapNetwork("close tab", err)
	}
	return nil
}

// ListOpen returns the tabs available to reopen.
func (s *TabService) ListOpen(ctx context.Context) ([]models.Tab, error) {
	tabs, err := s.tabs.ListOpen(ctx)
	if err != nil {
		return nil, WrapNetwork("list tabs", err)
	}
	return tabs, nil
}

func groupKey(row models.TabItem) string {
	inv := uint(0)
	if row.InventoryID != nil {
		inv = *row.InventoryID
	}
	return fmt.Sprintf("%d|%s|%s|%s", inv, row.Name, row.Price.String(), row.Note)
}

func contains(lines []*Line, target *Line) bool {
	for _, l := range lines {
		if l == target {
			return true
		}
	}
	return false
}
