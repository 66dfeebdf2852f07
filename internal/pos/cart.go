package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-bar-pos/internal/models"
)

// Line is one cart entry. Price is fixed at add-time (happy hour is a
// point-in-time decision); DBIDs holds the persisted row ids backing
// this line, one per unit, most recent last.
type Line struct {
	UniqueID    string          `json:"unique_id"`
	InventoryID *uint           `json:"inventory_id"` // nil for custom items
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Note        string          `json:"note"`
	IsHappyHour bool            `json:"is_happy_hour"`
	TabID       *uint           `json:"tab_id"`
	DBIDs       []uint          `json:"-"`
}

// Subtotal is price x quantity.
func (l *Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l *Line) tabBacked() bool { return l.TabID != nil }

func (l *Line) clone() *Line {
	cp := *l
	if l.InventoryID != nil {
		id := *l.InventoryID
		cp.InventoryID = &id
	}
	if l.TabID != nil {
		id := *l.TabID
		cp.TabID = &id
	}
	cp.DBIDs = append([]uint(nil), l.DBIDs...)
	return &cp
}

// Cart is the order under construction. One cart is active per
// terminal session; it is owned by the Session and never shared.
type Cart struct {
	Lines        []*Line `json:"lines"`
	CustomerName string  `json:"customer_name"`
	TabID        *uint   `json:"tab_id"`
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem prices the item through the happy-hour rules and either merges
// it into a compatible existing line or appends a new one. Compatible
// means: same catalog item, same effective price, no note, and not yet
// backed by tab rows. The add is rejected when the item is unavailable
// or its effective stock is exhausted; the cart is left untouched.
func (c *Cart) AddItem(item models.InventoryItem, rules []models.HappyHourRule, now time.Time) (*Line, error) {
	status := StockStatusFor(item, c)
	if status.SoldOut {
		return nil, errStockUnavailable("%s is sold out", item.Name)
	}

	price, rule := EffectivePrice(item, rules, now)

	for _, l := range c.Lines {
		if l.InventoryID != nil && *l.InventoryID == item.ID &&
			l.Price.Equal(price) && l.Note == "" && !l.tabBacked() {
			l.Quantity++
			return l, nil
		}
	}

	id := item.ID
	line := &Line{
		UniqueID:    uuid.NewString(),
		InventoryID: &id,
		Name:        item.Name,
		Price:       price,
		Quantity:    1,
		IsHappyHour: rule != nil,
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

// AddCustomItem appends an ad-hoc line that is not drawn from the
// catalog: no stock tracking, always available, never merged.
func (c *Cart) AddCustomItem(name string, price decimal.Decimal) (*Line, error) {
	if name == "" {
		return nil, errValidation("custom item needs a name")
	}
	if !price.IsPositive() {
		return nil, errValidation("custom item needs a price above zero")
	}
	line := &Line{
		UniqueID: uuid.NewString(),
		Name:     name,
		Price:    price,
		Quantity: 1,
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

// AttachNote sets (or overwrites) the note on a line. Annotated lines
// stop merging with identical-priced ones so the noted units stay
// distinguishable on the ticket.
func (c *Cart) AttachNote(lineID, note string) error {
	line := c.Find(lineID)
	if line == nil {
		return errValidation("no such line")
	}
	line.Note = note
	return nil
}

// Decrement removes one unit from an unsaved line, dropping the line at
// zero. Tab-backed lines must be voided instead: their rows are audit
// records and cannot be silently shrunk.
func (c *Cart) Decrement(lineID string) error {
	line := c.Find(lineID)
	if line == nil {
		return errValidation("no such line")
	}
	if line.tabBacked() {
		return errConflict("saved items must be voided, not removed")
	}
	line.Quantity--
	if line.Quantity <= 0 {
		c.removeLine(lineID)
	}
	return nil
}

// Find returns the line with the given session-local id, or nil.
func (c *Cart) Find(lineID string) *Line {
	for _, l := range c.Lines {
		if l.UniqueID == lineID {
			return l
		}
	}
	return nil
}

func (c *Cart) removeLine(lineID string) {
	for i, l := range c.Lines {
		if l.UniqueID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clone copies the cart and its lines. The session hands clones to the
// HTTP layer so responses serialize outside the session lock without
// racing later mutations.
func (c *Cart) Clone() *Cart {
	out := &Cart{CustomerName: c.CustomerName}
	if c.TabID != nil {
		id := *c.TabID
		out.TabID = &id
	}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, l.clone())
	}
	return out
}

// Reset clears everything for a fresh order.
func (c *Cart) Reset() {
	c.Lines = nil
	c.CustomerName = ""
	c.TabID = nil
}

// Subtotal sums the line subtotals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

// pendingQuantity is how many units of a catalog item sit in the cart
// without having been deducted from stock yet (no backing tab rows).
func (c *Cart) pendingQuantity(itemID uint) int {
	total := 0
	for _, l := range c.Lines {
		if l.InventoryID != nil && *l.InventoryID == itemID && !l.tabBacked() {
			total += l.Quantity
		}
	}
	return total
}
