package pos_test

import (
	"strings"
	"testing"
	"time"

	"go-bar-pos/internal/models"
	"go-bar-pos/internal/pos"
)

func TestEffectivePriceAppliesHappyHour(t *testing.T) {
	item := models.InventoryItem{ID: 1, Name: "White Claw", Price: money("5.00"), Category: "seltzer", IsAvailable: true}
	rules := []models.HappyHourRule{{
		StartTime: "16:00", EndTime: "18:00",
		Category:       "all",
		DiscountAmount: money("1.00"),
		Days:           strings.ToLower(testClock.Weekday().String()),
	}}

	price, rule := pos.EffectivePrice(item, rules, testClock)
	if !price.Equal(money("4.00")) {
		t.Fatalf("expected 4.00 got %s", price)
	}
	if rule == nil {
		t.Fatalf("expected a matched rule")
	}
}

func TestEffectivePriceOutsideWindow(t *testing.T) {
	item := models.InventoryItem{ID: 1, Price: money("5.00"), Category: "beer"}
	rules := []models.HappyHourRule{{
		StartTime: "16:00", EndTime: "18:00",
		Category:       "all",
		DiscountAmount: money("1.00"),
		Days:           strings.ToLower(testClock.Weekday().String()),
	}}

	// End is exclusive: 18:00 itself no longer matches.
	at := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)
	price, rule := pos.EffectivePrice(item, rules, at)
	if rule != nil || !price.Equal(money("5.00")) {
		t.Fatalf("expected full price outside window, got %s", price)
	}
}

func TestEffectivePriceWrongCategory(t *testing.T) {
	item := models.InventoryItem{ID: 1, Price: money("5.00"), Category: "beer"}
	rules := []models.HappyHourRule{{
		StartTime: "16:00", EndTime: "18:00",
		Category:       "liquor",
		DiscountAmount: money("1.00"),
		Days:           strings.ToLower(testClock.Weekday().String()),
	}}

	_, rule := pos.EffectivePrice(item, rules, testClock)
	if rule != nil {
		t.Fatalf("expected no match for a different category")
	}
}

// Rule windows live within one day. A window written backwards to span
// midnight (22:00-02:00) matches nothing, on either side of midnight;
// an overnight special takes two rules.
func TestEffectivePriceWindowNeverCrossesMidnight(t *testing.T) {
	item := models.InventoryItem{ID: 1, Price: money("5.00"), Category: "beer"}
	rules := []models.HappyHourRule{{
		StartTime: "22:00", EndTime: "02:00",
		Category:       "all",
		DiscountAmount: money("1.00"),
		Days:           "wednesday,thursday",
	}}

	lateNight := time.Date(2026, 8, 26, 23, 0, 0, 0, time.UTC)
	if _, rule := pos.EffectivePrice(item, rules, lateNight); rule != nil {
		t.Fatalf("inverted window must not match before midnight")
	}

	earlyMorning := time.Date(2026, 8, 27, 1, 0, 0, 0, time.UTC)
	if _, rule := pos.EffectivePrice(item, rules, earlyMorning); rule != nil {
		t.Fatalf("inverted window must not match after midnight")
	}
}

// Overlapping rules resolve by first match in list order. That order is
// observed behavior, not a priority scheme; this test pins it so a
// change is deliberate.
func TestEffectivePriceFirstMatchWins(t *testing.T) {
	item := models.InventoryItem{ID: 1, Price: money("6.00"), Category: "liquor"}
	day := strings.ToLower(testClock.Weekday().String())
	rules := []models.HappyHourRule{
		{StartTime: "16:00", EndTime: "18:00", Category: "liquor", DiscountAmount: money("1.00"), Days: day},
		{StartTime: "16:00", EndTime: "18:00", Category: "all", DiscountAmount: money("3.00"), Days: day},
	}

	price, rule := pos.EffectivePrice(item, rules, testClock)
	if !price.Equal(money("5.00")) {
		t.Fatalf("expected first rule's 5.00 got %s", price)
	}
	if rule == nil || !rule.DiscountAmount.Equal(money("1.00")) {
		t.Fatalf("expected the first rule to win")
	}
}

func TestEffectivePriceFloorsAtZero(t *testing.T) {
	item := models.InventoryItem{ID: 1, Price: money("2.00"), Category: "beer"}
	rules := []models.HappyHourRule{{
		StartTime: "16:00", EndTime: "18:00",
		Category:       "all",
		DiscountAmount: money("5.00"),
		Days:           strings.ToLower(testClock.Weekday().String()),
	}}

	price, _ := pos.EffectivePrice(item, rules, testClock)
	if !price.Equal(money("0")) {
		t.Fatalf("expected 0 got %s", price)
	}
}

func TestComputeTotalsPercentDiscount(t *testing.T) {
	lines := []*pos.Line{
		{Price: money("5.00"), Quantity: 4},
	}
	totals := pos.ComputeTotals(lines, &pos.Discount{Type: pos.DiscountPercent, Value: money("25")})

	if !totals.Subtotal.Equal(money("20.00")) {
		t.Fatalf("subtotal: expected 20.00 got %s", totals.Subtotal)
	}
	if !totals.Discount.Equal(money("5.00")) {
		t.Fatalf("discount: expected 5.00 got %s", totals.Discount)
	}
	if !totals.Tax.Equal(money("1.05")) {
		t.Fatalf("tax: expected 1.05 got %s", totals.Tax)
	}
	if !totals.Total.Equal(money("16.05")) {
		t.Fatalf("total: expected 16.05 got %s", totals.Total)
	}
}

func TestComputeTotalsAmountDiscountClamped(t *testing.T) {
	lines := []*pos.Line{{Price: money("4.00"), Quantity: 2}}
	totals := pos.ComputeTotals(lines, &pos.Discount{Type: pos.DiscountAmount, Value: money("50.00")})

	if !totals.Discount.Equal(money("8.00")) {
		t.Fatalf("discount should clamp to subtotal, got %s", totals.Discount)
	}
	if !totals.Total.Equal(money("0")) {
		t.Fatalf("total should be zero after a full clamp, got %s", totals.Total)
	}
}

func TestComputeTotalsComp(t *testing.T) {
	lines := []*pos.Line{{Price: money("9.00"), Quantity: 1}}
	totals := pos.ComputeTotals(lines, &pos.Discount{Type: pos.DiscountPercent, Value: money("100")})

	if !totals.Discount.Equal(money("9.00")) || !totals.Total.Equal(money("0")) {
		t.Fatalf("comp should zero the order, got discount %s total %s", totals.Discount, totals.Total)
	}
}

func TestComputeTotalsNoDiscount(t *testing.T) {
	lines := []*pos.Line{
		{Price: money("4.00"), Quantity: 2},
		{Price: money("3.50"), Quantity: 1},
	}
	totals := pos.ComputeTotals(lines, nil)

	if !totals.Subtotal.Equal(money("11.50")) {
		t.Fatalf("subtotal: expected 11.50 got %s", totals.Subtotal)
	}
	if !totals.Discount.Equal(money("0")) {
		t.Fatalf("discount: expected 0 got %s", totals.Discount)
	}
	// 11.50 * 0.07 = 0.805, rounds to 0.81 at the boundary
	if !totals.Tax.Equal(money("0.81")) {
		t.Fatalf("tax: expected 0.81 got %s", totals.Tax)
	}
	if !totals.GrandTotal(money("2.00")).Equal(money("14.31")) {
		t.Fatalf("grand total with tip: got %s", totals.GrandTotal(money("2.00")))
	}
}
