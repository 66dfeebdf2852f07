package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tab lifecycle states.
const (
	TabOpen = "open"
	TabPaid = "paid"
)

// TabItem row states.
const (
	RowActive = "active"
	RowVoided = "voided"
)

// User - an employee who can log in and (for managers) authorize voids
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	PinHash      string    `json:"-"`    // SHA-256 hex of the 4-digit PIN
	Role         string    `json:"role"` // 'admin', 'manager', 'bartender'
	CreatedAt    time.Time `json:"created_at"`
}

// InventoryItem - one sellable drink/menu entry
type InventoryItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Category    string          `json:"category"`    // 'beer', 'seltzer', 'liquor', 'pop'
	Tier        string          `json:"tier"`        // 'well', 'call', 'premium', 'domestic'
	StockCount  *int            `json:"stock_count"` // nil = untracked (unlimited)
	IsAvailable bool            `json:"is_available"`
}

// HappyHourRule - a scheduled automatic price reduction.
// StartTime/EndTime are time-of-day strings in "15:04" form and must
// stay within one day (a window crossing midnight never matches); Days
// is a comma-separated list of lowercase weekday names.
type HappyHourRule struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `json:"name"`
	StartTime      string          `gorm:"size:5" json:"start_time"`
	EndTime        string          `gorm:"size:5" json:"end_time"`
	Category       string          `json:"category"` // 'all' or a specific category
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_amount"`
	Days           string          `json:"days"`
}

// Tab - a customer's still-open running order
type Tab struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerName string    `json:"customer_name"`
	Status       string    `gorm:"index" json:"status"` // 'open' or 'paid'
	CreatedAt    time.Time `json:"created_at"`
}

// TabItem - one physical unit sold on a tab. Quantity is always 1 so a
// single unit can be voided without disturbing its siblings.
type TabItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TabID       uint            `gorm:"index" json:"tab_id"`
	InventoryID *uint           `json:"inventory_id"` // nil for custom items
	Name        string          `json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Quantity    int             `json:"quantity"`
	Status      string          `gorm:"index" json:"status"` // 'active' or 'voided'
	VoidReason  string          `json:"void_reason"`
	Note        string          `json:"note"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Sale - the transaction header. Item data is snapshotted so later
// catalog edits never alter historical records.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Tip           decimal.Decimal `gorm:"type:decimal(10,2)" json:"tip"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	EmployeeName  string          `json:"employee_name"`
	SaleTime      time.Time       `json:"sale_time"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - snapshot of one cart line at finalize time
type SaleItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SaleID      uint            `json:"sale_id"`
	InventoryID *uint           `json:"inventory_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Quantity    int             `json:"quantity"`
}
