package pos_test

import (
	"testing"

	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
)

func untracked(name, price, category string) models.InventoryItem {
	return models.InventoryItem{ID: 1, Name: name, Price: money(price), Category: category, IsAvailable: true}
}

func TestAddItemMergesIdenticalLines(t *testing.T) {
	cart := pos.NewCart()
	item := untracked("Bud Light", "4.00", "beer")

	if _, err := cart.AddItem(item, nil, testClock); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := cart.AddItem(item, nil, testClock); err != nil {
		t.Fatalf("add: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 merged line got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 got %d", cart.Lines[0].Quantity)
	}
	if !cart.Lines[0].Subtotal().Equal(money("8.00")) {
		t.Fatalf("line subtotal: got %s", cart.Lines[0].Subtotal())
	}
}

func TestAddItemNoteBlocksMerge(t *testing.T) {
	cart := pos.NewCart()
	item := untracked("Titos", "6.00", "liquor")

	first, _ := cart.AddItem(item, nil, testClock)
	if err := cart.AttachNote(first.UniqueID, "double, rocks"); err != nil {
		t.Fatalf("note: %v", err)
	}
	cart.AddItem(item, nil, testClock)

	if len(cart.Lines) != 2 {
		t.Fatalf("annotated line must stay separate, got %d lines", len(cart.Lines))
	}
}

func TestAddItemDifferentPriceNoMerge(t *testing.T) {
	cart := pos.NewCart()
	item := untracked("White Claw", "5.00", "seltzer")
	rules := []models.HappyHourRule{{
		StartTime: "16:00", EndTime: "18:00", Category: "all",
		DiscountAmount: money("1.00"),
		Days:           "wednesday",
	}}

	// One at happy hour price, one at full price.
	line, err := cart.AddItem(item, rules, testClock)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !line.IsHappyHour || !line.Price.Equal(money("4.00")) {
		t.Fatalf("expected happy hour 4.00, got %s", line.Price)
	}
	cart.AddItem(item, nil, testClock)

	if len(cart.Lines) != 2 {
		t.Fatalf("price change must open a new line, got %d", len(cart.Lines))
	}
}

func TestAddItemRejectsWhenStockExhausted(t *testing.T) {
	cart := pos.NewCart()
	item := models.InventoryItem{ID: 7, Name: "Last Can", Price: money("4.00"), Category: "beer", StockCount: intp(1), IsAvailable: true}

	if _, err := cart.AddItem(item, nil, testClock); err != nil {
		t.Fatalf("first add should succeed: %v", err)
	}
	_, err := cart.AddItem(item, nil, testClock)
	if !pos.IsKind(err, pos.KindStockUnavailable) {
		t.Fatalf("expected stock unavailable, got %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 1 {
		t.Fatalf("cart must be unchanged after a rejected add")
	}
}

func TestAddCustomItemValidation(t *testing.T) {
	cart := pos.NewCart()

	if _, err := cart.AddCustomItem("", money("5.00")); !pos.IsKind(err, pos.KindValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	if _, err := cart.AddCustomItem("Mystery Shot", money("0")); !pos.IsKind(err, pos.KindValidation) {
		t.Fatalf("expected validation error for zero price, got %v", err)
	}

	line, err := cart.AddCustomItem("Birthday Special", money("7.50"))
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if line.InventoryID != nil {
		t.Fatalf("custom line must not reference the catalog")
	}

	// Custom lines never merge, even when identical.
	cart.AddCustomItem("Birthday Special", money("7.50"))
	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 custom lines got %d", len(cart.Lines))
	}
}

func TestDecrementRemovesLineAtZero(t *testing.T) {
	cart := pos.NewCart()
	item := untracked("Bud Light", "4.00", "beer")
	line, _ := cart.AddItem(item, nil, testClock)
	cart.AddItem(item, nil, testClock)

	if err := cart.Decrement(line.UniqueID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected quantity 1 got %d", cart.Lines[0].Quantity)
	}

	if err := cart.Decrement(line.UniqueID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("line must disappear at zero quantity")
	}
}

func TestDecrementTabBackedLineIsConflict(t *testing.T) {
	cart := pos.NewCart()
	item := untracked("Titos", "6.00", "liquor")
	line, _ := cart.AddItem(item, nil, testClock)

	tabID := uint(1)
	line.TabID = &tabID
	line.DBIDs = []uint{10}

	err := cart.Decrement(line.UniqueID)
	if !pos.IsKind(err, pos.KindConflict) {
		t.Fatalf("expected conflict for tab-backed decrement, got %v", err)
	}
	if line.Quantity != 1 {
		t.Fatalf("quantity must be untouched")
	}
}

func TestCartSubtotalSumsLines(t *testing.T) {
	cart := pos.NewCart()
	cart.AddItem(untracked("Bud Light", "4.00", "beer"), nil, testClock)
	cart.AddCustomItem("Tip Jar Song", money("2.50"))
	sum := money("0")
	for _, l := range cart.Lines {
		sum = sum.Add(l.Subtotal())
	}
	if !cart.Subtotal().Equal(sum) {
		t.Fatalf("cart subtotal %s != sum of lines %s", cart.Subtotal(), sum)
	}
}

func TestResetClearsEverything(t *testing.T) {
	cart := pos.NewCart()
	cart.AddItem(untracked("Bud Light", "4.00", "beer"), nil, testClock)
	cart.CustomerName = "Walk-in"
	tabID := uint(3)
	cart.TabID = &tabID

	cart.Reset()

	if len(cart.Lines) != 0 || cart.CustomerName != "" || cart.TabID != nil {
		t.Fatalf("reset must clear lines, customer, and tab")
	}
}
