package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shopspring/decimal"

	"go-bar-pos/internal/auth"
	"go-bar-pos/internal/models"
)

// SeedDemoData loads the demo bar on first run: three employees and
// the standard six-drink menu plus a weekday happy hour. Idempotent -
// it does nothing once users exist.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Username: "jan", PasswordHash: string(password), PinHash: auth.HashPIN("1111"), Role: "admin"},
		{Username: "sarah", PasswordHash: string(password), PinHash: auth.HashPIN("2222"), Role: "manager"},
		{Username: "mike", PasswordHash: string(password), PinHash: auth.HashPIN("3333"), Role: "bartender"},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	stock := func(n int) *int { return &n }
	items := []models.InventoryItem{
		{Name: "Bud Light", Price: decimal.RequireFromString("4.00"), Category: "beer", Tier: "domestic", StockCount: stock(96), IsAvailable: true},
		{Name: "Busch Light", Price: decimal.RequireFromString("4.00"), Category: "beer", Tier: "domestic", StockCount: stock(72), IsAvailable: true},
		{Name: "White Claw", Price: decimal.RequireFromString("5.00"), Category: "seltzer", Tier: "standard", StockCount: stock(48), IsAvailable: true},
		{Name: "Titos", Price: decimal.RequireFromString("6.00"), Category: "liquor", Tier: "call", IsAvailable: true},
		{Name: "Grey Goose", Price: decimal.RequireFromString("9.00"), Category: "liquor", Tier: "premium", IsAvailable: true},
		{Name: "Well Vodka", Price: decimal.RequireFromString("3.50"), Category: "liquor", Tier: "well", IsAvailable: true},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	rule := models.HappyHourRule{
		Name:           "Weekday Happy Hour",
		StartTime:      "16:00",
		EndTime:        "18:00",
		Category:       "all",
		DiscountAmount: decimal.RequireFromString("1.00"),
		Days:           "monday,tuesday,wednesday,thursday,friday",
	}
	if err := db.Create(&rule).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded demo users, menu, and happy hour rule")
	return nil
}
