package pos

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"go-bar-pos/internal/auth"
	"go-bar-pos/internal/models"
)

// VoidReason is a tagged reason code. RequiresAuthorization decides
// whether the flow detours through manager PIN entry.
type VoidReason struct {
	Code                  string `json:"code"`
	Label                 string `json:"label"`
	RequiresAuthorization bool   `json:"requires_authorization"`
}

var (
	VoidEntryError  = VoidReason{Code: "entry_error", Label: "Entry Error"}
	VoidWaste       = VoidReason{Code: "waste", Label: "Spill / Waste", RequiresAuthorization: true}
	VoidManagerVoid = VoidReason{Code: "manager_void", Label: "Manager Void", RequiresAuthorization: true}
)

// VoidReasons lists the selectable reasons in display order.
func VoidReasons() []VoidReason {
	return []VoidReason{VoidEntryError, VoidWaste, VoidManagerVoid}
}

// VoidReasonByCode resolves a reason code.
func VoidReasonByCode(code string) (VoidReason, bool) {
	for _, r := range VoidReasons() {
		if r.Code == code {
			return r, true
		}
	}
	return VoidReason{}, false
}

// VoidService reverses one already-persisted unit of a cart line.
type VoidService struct {
	tabs  TabStore
	users UserStore
	sales SalesLedger
	stock *StockLedger
	now   func() time.Time
}

func NewVoidService(tabs TabStore, users UserStore, sales SalesLedger, stock *StockLedger) *VoidService {
	return &VoidService{tabs: tabs, users: users, sales: sales, stock: stock, now: time.Now}
}

// ValidatePIN hashes the input and compares it against the stored PIN
// hashes of admin and manager users. The raw PIN never reaches the
// store. Hashing is unsalted SHA-256, matching what the stored hashes
// were created with.
func (v *VoidService) ValidatePIN(ctx context.Context, pin string) error {
	if len(pin) != auth.PINLength || !auth.DigitsOnly(pin) {
		return errValidation("PIN must be %d digits", auth.PINLength)
	}
	users, err := v.users.List(ctx)
	if err != nil {
		return WrapNetwork("load users", err)
	}
	hash := auth.HashPIN(pin)
	for _, u := range users {
		if (u.Role == "admin" || u.Role == "manager") && u.PinHash == hash {
			return nil
		}
	}
	return errConflict("invalid manager PIN")
}

// Confirm voids the most recently persisted unit of the line: the last
// row id is marked voided, a $0 audit sale is recorded under the reason
// code, and the in-memory line shrinks by one unit (disappearing at
// zero). Only entry errors put the unit back into stock.
func (v *VoidService) Confirm(ctx context.Context, cart *Cart, lineID string, reason VoidReason, employee string) error {
	line := cart.Find(lineID)
	if line == nil {
		return errValidation("no such line")
	}
	if !line.tabBacked() || len(line.DBIDs) == 0 {
		return errConflict("line has no saved units to void")
	}

	rowID := line.DBIDs[len(line.DBIDs)-1]
	if err := v.tabs.MarkVoided(ctx, rowID, reason.Code); err != nil {
		return WrapNetwork("void row", err)
	}

	audit := &models.Sale{
		Total:         decimal.Zero,
		Tip:           decimal.Zero,
		Discount:      decimal.Zero,
		PaymentMethod: reason.Code,
		EmployeeName:  employee,
		SaleTime:      v.now(),
		Items: []models.SaleItem{{
			InventoryID: line.InventoryID,
			Name:        line.Name,
			Price:       line.Price,
			Quantity:    1,
		}},
	}
	if err := v.sales.Record(ctx, audit); err != nil {
		return WrapNetwork("record void audit", err)
	}

	if reason.Code == VoidEntryError.Code {
		if err := v.stock.Restore(ctx, line, 1); err != nil {
			return err
		}
	}

	line.DBIDs = line.DBIDs[:len(line.DBIDs)-1]
	line.Quantity--
	if line.Quantity <= 0 {
		cart.removeLine(line.UniqueID)
	}
	return nil
}

// VoidState is the position of a void flow.
type VoidState int

const (
	VoidReasonSelect VoidState = iota
	VoidPinEntry
	VoidConfirmed
	VoidCancelled
)

// VoidFlow walks one void through
// ReasonSelect -> (privileged reason) -> PinEntry -> Confirmed,
// with non-privileged reasons skipping PIN entry entirely. A wrong PIN
// keeps the flow in PinEntry and touches nothing; Cancel backs out with
// no side effects at any point.
type VoidFlow struct {
	svc      *VoidService
	cart     *Cart
	lineID   string
	employee string
	reason   VoidReason
	state    VoidState
}

// Begin starts a flow for one cart line.
func (v *VoidService) Begin(cart *Cart, lineID, employee string) *VoidFlow {
	return &VoidFlow{svc: v, cart: cart, lineID: lineID, employee: employee, state: VoidReasonSelect}
}

func (f *VoidFlow) State() VoidState { return f.state }

// SelectReason either confirms immediately (entry errors) or moves to
// PIN entry (privileged reasons).
func (f *VoidFlow) SelectReason(ctx context.Context, reason VoidReason) error {
	if f.state != VoidReasonSelect {
		return errConflict("void already past reason selection")
	}
	f.reason = reason
	if reason.RequiresAuthorization {
		f.state = VoidPinEntry
		return nil
	}
	if err := f.svc.Confirm(ctx, f.cart, f.lineID, reason, f.employee); err != nil {
		return err
	}
	f.state = VoidConfirmed
	return nil
}

// SubmitPIN authorizes a privileged void. On a bad PIN the flow stays
// in PinEntry so the operator can retry.
func (f *VoidFlow) SubmitPIN(ctx context.Context, pin string) error {
	if f.state != VoidPinEntry {
		return errConflict("void is not waiting for a PIN")
	}
	if err := f.svc.ValidatePIN(ctx, pin); err != nil {
		return err
	}
	if err := f.svc.Confirm(ctx, f.cart, f.lineID, f.reason, f.employee); err != nil {
		return err
	}
	f.state = VoidConfirmed
	return nil
}

// Cancel abandons the flow.
func (f *VoidFlow) Cancel() {
	if f.state == VoidReasonSelect || f.state == VoidPinEntry {
		f.state = VoidCancelled
	}
}
