package pos_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"go-bar-pos/internal/auth"
	"go-bar-pos/internal/database"
	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
	"go-bar-pos/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestSession(t *testing.T, db *gorm.DB) *pos.Session {
	t.Helper()
	session := pos.NewSession(
		repository.NewCatalog(db),
		repository.NewHappyHourStore(db),
		repository.NewTabStore(db),
		repository.NewUserStore(db),
		repository.NewSalesLedger(db),
	)
	session.CardDelay = time.Millisecond
	return session
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intp(n int) *int { return &n }

func seedItem(t *testing.T, db *gorm.DB, name, price, category string, stock *int) models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{
		Name:        name,
		Price:       money(price),
		Category:    category,
		StockCount:  stock,
		IsAvailable: stock == nil || *stock > 0,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func seedManager(t *testing.T, db *gorm.DB, pin string) models.User {
	t.Helper()
	user := models.User{
		Username: "manager-" + pin,
		PinHash:  auth.HashPIN(pin),
		Role:     "manager",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed manager: %v", err)
	}
	return user
}

// seedRule creates a happy-hour rule that is active at the given clock.
func seedRule(t *testing.T, db *gorm.DB, category, discount string, at time.Time) models.HappyHourRule {
	t.Helper()
	rule := models.HappyHourRule{
		Name:           "Test Happy Hour",
		StartTime:      at.Add(-time.Hour).Format("15:04"),
		EndTime:        at.Add(time.Hour).Format("15:04"),
		Category:       category,
		DiscountAmount: money(discount),
		Days:           strings.ToLower(at.Weekday().String()),
	}
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("seed rule: %v", err)
	}
	return rule
}

// testClock is mid-afternoon so the +/- one hour rule window stays
// inside a single day.
var testClock = time.Date(2026, 8, 26, 17, 0, 0, 0, time.UTC)
