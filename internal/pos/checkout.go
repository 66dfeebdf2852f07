package pos

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"go-bar-pos/internal/models"
)

// defaultCardDelay simulates the card reader round-trip.
const defaultCardDelay = 2 * time.Second

// Finalizer commits a completed transaction. Terminal by design: a
// finalized sale cannot be reopened, a new order starts fresh.
type Finalizer struct {
	sales SalesLedger
	tabs  *TabService
	stock *StockLedger
	now   func() time.Time
}

func NewFinalizer(sales SalesLedger, tabs *TabService, stock *StockLedger) *Finalizer {
	return &Finalizer{sales: sales, tabs: tabs, stock: stock, now: time.Now}
}

// Finalize snapshots the cart into a Sale, deducts stock for the lines
// a prior tab save has not already deducted, closes the tab if the
// order came from one, and clears the cart. The cart survives intact
// when any step before the reset fails.
func (f *Finalizer) Finalize(ctx context.Context, cart *Cart, method string, tip decimal.Decimal, discount *Discount, employee string) (*models.Sale, error) {
	if len(cart.Lines) == 0 {
		return nil, errValidation("cart is empty")
	}
	if method == "" {
		return nil, errValidation("payment method is required")
	}
	// A stale terminal can hold a cart for a tab another terminal
	// already paid; bail before any stock or ledger write.
	if cart.TabID != nil {
		if err := f.tabs.EnsureOpen(ctx, *cart.TabID); err != nil {
			return nil, err
		}
	}

	totals := ComputeTotals(cart.Lines, discount)

	var undeducted []*Line
	items := make([]models.SaleItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, models.SaleItem{
			InventoryID: l.InventoryID,
			Name:        l.Name,
			Price:       l.Price,
			Quantity:    l.Quantity,
		})
		if !l.tabBacked() {
			undeducted = append(undeducted, l)
		}
	}

	if err := f.stock.Deduct(ctx, undeducted); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		Total:         totals.Total.Round(2),
		Tip:           tip.Round(2),
		Discount:      totals.Discount.Round(2),
		PaymentMethod: method,
		EmployeeName:  employee,
		SaleTime:      f.now(),
		Items:         items,
	}
	if err := f.sales.Record(ctx, sale); err != nil {
		return nil, WrapNetwork("record sale", err)
	}

	if cart.TabID != nil {
		if err := f.tabs.Close(ctx, *cart.TabID); err != nil {
			return nil, err
		}
	}

	cart.Reset()
	return sale, nil
}

// PaymentState is the position of a payment flow.
type PaymentState int

const (
	PaySelectMethod PaymentState = iota
	PayEnterAmount
	PayConfirmed
	PayCancelled
)

// PaymentFlow is the checkout sub-machine:
// SelectMethod -> cash: EnterAmount (tendered must cover the grand
// total) -> Confirmed, or card: simulated authorization -> Confirmed.
// Insufficient cash is a recoverable stall, not a dead end.
type PaymentFlow struct {
	Grand     decimal.Decimal
	Change    decimal.Decimal
	Method    string
	CardDelay time.Duration
	state     PaymentState
}

func NewPaymentFlow(grand decimal.Decimal) *PaymentFlow {
	return &PaymentFlow{Grand: grand, CardDelay: defaultCardDelay, state: PaySelectMethod}
}

func (p *PaymentFlow) State() PaymentState { return p.state }

// SelectCash moves to cash amount entry.
func (p *PaymentFlow) SelectCash() error {
	if p.state != PaySelectMethod {
		return errConflict("payment method already chosen")
	}
	p.Method = "cash"
	p.state = PayEnterAmount
	return nil
}

// TenderCash accepts the customer's cash and computes change. Tendering
// less than the grand total leaves the flow in EnterAmount so a new
// amount can be offered.
func (p *PaymentFlow) TenderCash(tendered decimal.Decimal) (decimal.Decimal, error) {
	if p.state != PayEnterAmount {
		return decimal.Zero, errConflict("not waiting for cash")
	}
	if tendered.LessThan(p.Grand) {
		return decimal.Zero, errInsufficientFunds("tendered %s is less than %s due",
			tendered.StringFixed(2), p.Grand.StringFixed(2))
	}
	p.Change = tendered.Sub(p.Grand)
	p.state = PayConfirmed
	return p.Change, nil
}

// AuthorizeCard runs the simulated card authorization. Cancelling the
// context (navigation away) aborts with no state applied.
func (p *PaymentFlow) AuthorizeCard(ctx context.Context) error {
	if p.state != PaySelectMethod {
		return errConflict("payment method already chosen")
	}
	p.Method = "card"
	timer := time.NewTimer(p.CardDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return WrapNetwork("card authorization cancelled", ctx.Err())
	case <-timer.C:
	}
	p.state = PayConfirmed
	return nil
}

// Cancel abandons the payment before confirmation.
func (p *PaymentFlow) Cancel() {
	if p.state != PayConfirmed {
		p.state = PayCancelled
	}
}
