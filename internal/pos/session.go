package pos

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"go-bar-pos/internal/models"
)

// Session is the terminal's single active order. It owns the cart, the
// active tab association, and the busy flag that stops a double-tap
// from submitting the same save/pay/void twice. All engine entry points
// used by the HTTP surface live here.
type Session struct {
	mu   sync.Mutex
	busy bool

	cart *Cart

	catalog Catalog
	rules   HappyHourStore
	tabs    *TabService
	voids   *VoidService
	fin     *Finalizer

	// Now is swappable so tests can pin happy hour to a known clock.
	Now func() time.Time
	// CardDelay overrides the simulated card authorization time.
	CardDelay time.Duration
}

func NewSession(catalog Catalog, rules HappyHourStore, tabs TabStore, users UserStore, sales SalesLedger) *Session {
	stock := NewStockLedger(catalog)
	tabSvc := NewTabService(tabs, stock)
	return &Session{
		cart:      NewCart(),
		catalog:   catalog,
		rules:     rules,
		tabs:      tabSvc,
		voids:     NewVoidService(tabs, users, sales, stock),
		fin:       NewFinalizer(sales, tabSvc, stock),
		Now:       time.Now,
		CardDelay: defaultCardDelay,
	}
}

// acquire claims the busy flag for a mutating sequence. Conflict when
// another save/pay/void is still in flight.
func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return errConflict("another operation is in progress")
	}
	s.busy = true
	return nil
}

// release is deferred by every acquire caller, so the flag is freed on
// every path including errors.
func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Cart exposes a snapshot of the current order for display. Callers
// get a copy: handlers serialize it after the lock is released, so the
// live cart must never leak out.
func (s *Session) Cart() *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Totals prices the current order under an optional manual discount.
func (s *Session) Totals(d *Discount) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.cart.Lines, d)
}

// MenuEntry is a catalog item with its cart-aware availability.
type MenuEntry struct {
	Item   models.InventoryItem `json:"item"`
	Status StockStatus          `json:"status"`
}

// Menu lists the catalog with sold-out/low-stock derived against what
// is already in the cart.
func (s *Session) Menu(ctx context.Context) ([]MenuEntry, error) {
	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, WrapNetwork("load menu", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]MenuEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, MenuEntry{Item: item, Status: StockStatusFor(item, s.cart)})
	}
	return entries, nil
}

// AddItem fetches the item and current rules, then adds one unit to
// the cart at its effective price.
func (s *Session) AddItem(ctx context.Context, itemID uint) (*Line, error) {
	item, err := s.catalog.Get(ctx, itemID)
	if err != nil {
		return nil, WrapNetwork("load item", err)
	}
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, WrapNetwork("load happy hour rules", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	line, err := s.cart.AddItem(*item, rules, s.Now())
	if err != nil {
		return nil, err
	}
	return line.clone(), nil
}

// AddCustomItem adds an ad-hoc priced line.
func (s *Session) AddCustomItem(name string, price decimal.Decimal) (*Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, err := s.cart.AddCustomItem(name, price)
	if err != nil {
		return nil, err
	}
	return line.clone(), nil
}

// AttachNote sets the note on a line.
func (s *Session) AttachNote(lineID, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.AttachNote(lineID, note)
}

// Decrement removes one unit from an unsaved line.
func (s *Session) Decrement(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Decrement(lineID)
}

// NewOrder clears the cart and any tab association.
func (s *Session) NewOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Reset()
}

// SaveTab persists the order as an open tab.
func (s *Session) SaveTab(ctx context.Context, customerName string) (*models.Tab, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()
	return s.tabs.Save(ctx, s.cart, customerName)
}

// OpenTabs lists reopenable tabs.
func (s *Session) OpenTabs(ctx context.Context) ([]models.Tab, error) {
	return s.tabs.ListOpen(ctx)
}

// LoadTab replaces the current order with a saved tab.
func (s *Session) LoadTab(ctx context.Context, tabID uint) (*Cart, error) {
	cart, err := s.tabs.Load(ctx, tabID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	return cart.Clone(), nil
}

// BeginVoid hands out a void flow for one cart line, for callers that
// want to walk the state machine step by step.
func (s *Session) BeginVoid(lineID, employee string) *VoidFlow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voids.Begin(s.cart, lineID, employee)
}

// Void drives the void flow for one saved unit: reason selection, PIN
// authorization when the reason demands it, then confirmation.
func (s *Session) Void(ctx context.Context, lineID, reasonCode, pin, employee string) error {
	reason, ok := VoidReasonByCode(reasonCode)
	if !ok {
		return errValidation("unknown void reason %q", reasonCode)
	}
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	flow := s.voids.Begin(s.cart, lineID, employee)
	if err := flow.SelectReason(ctx, reason); err != nil {
		return err
	}
	if flow.State() == VoidPinEntry {
		if err := flow.SubmitPIN(ctx, pin); err != nil {
			return err
		}
	}
	return nil
}

// PaymentRequest is one checkout attempt.
type PaymentRequest struct {
	Method   string          `json:"method"` // 'cash' or 'card'
	Tendered decimal.Decimal `json:"tendered"`
	Tip      decimal.Decimal `json:"tip"`
	Discount *Discount       `json:"discount"`
	Employee string          `json:"-"`
}

// Receipt is the result of a finalized sale.
type Receipt struct {
	Sale   *models.Sale    `json:"sale"`
	Totals Totals          `json:"totals"`
	Change decimal.Decimal `json:"change"`
}

// Pay runs the payment flow and, on success, finalizes the sale. A
// failed payment (short cash, cancelled card read) leaves the cart and
// any saved tab untouched.
func (s *Session) Pay(ctx context.Context, req PaymentRequest) (*Receipt, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	if len(s.cart.Lines) == 0 {
		return nil, errValidation("cart is empty")
	}

	totals := ComputeTotals(s.cart.Lines, req.Discount)
	flow := NewPaymentFlow(totals.GrandTotal(req.Tip))
	flow.CardDelay = s.CardDelay

	change := decimal.Zero
	switch req.Method {
	case "cash":
		if err := flow.SelectCash(); err != nil {
			return nil, err
		}
		c, err := flow.TenderCash(req.Tendered)
		if err != nil {
			return nil, err
		}
		change = c
	case "card":
		if err := flow.AuthorizeCard(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, errValidation("unknown payment method %q", req.Method)
	}

	sale, err := s.fin.Finalize(ctx, s.cart, req.Method, req.Tip, req.Discount, req.Employee)
	if err != nil {
		return nil, err
	}
	return &Receipt{Sale: sale, Totals: totals, Change: change}, nil
}
