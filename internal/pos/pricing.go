package pos

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-bar-pos/internal/models"
)

// taxRate is the fixed Iowa sales tax applied to every order.
var taxRate = decimal.RequireFromString("0.07")

// DiscountType selects how a whole-order discount is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// Discount is a manual whole-order discount. A comp is
// {Type: percent, Value: 100}.
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// Totals is the priced summary of an order. Tax is rounded to cents
// here because Totals is an output boundary; everything upstream stays
// at full precision.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// GrandTotal is the amount actually collected: order total plus tip.
func (t Totals) GrandTotal(tip decimal.Decimal) decimal.Decimal {
	return t.Total.Add(tip)
}

// EffectivePrice returns the price an item sells at right now, and the
// happy-hour rule that produced it (nil when none applies).
//
// When several rules match at once the first one in store order wins.
// That first-match behavior is deliberate only in the sense that it is
// deterministic; no priority or stacking scheme exists.
func EffectivePrice(item models.InventoryItem, rules []models.HappyHourRule, now time.Time) (decimal.Decimal, *models.HappyHourRule) {
	for i := range rules {
		if ruleMatches(rules[i], item.Category, now) {
			price := item.Price.Sub(rules[i].DiscountAmount)
			if price.IsNegative() {
				price = decimal.Zero
			}
			return price, &rules[i]
		}
	}
	return item.Price, nil
}

// ruleMatches reports whether the rule covers the category and the
// weekday/time-of-day of now. The time window is half-open: [start, end)
// and must fall within a single day. A window written to cross midnight
// (start after end) matches nothing; an overnight special needs two
// rules, one per calendar day.
func ruleMatches(r models.HappyHourRule, category string, now time.Time) bool {
	if r.Category != "all" && r.Category != category {
		return false
	}
	if !ruleCoversDay(r.Days, now.Weekday()) {
		return false
	}
	start, err := time.Parse("15:04", r.StartTime)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", r.EndTime)
	if err != nil {
		return false
	}
	minute := now.Hour()*60 + now.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if startMin >= endMin {
		return false
	}
	return minute >= startMin && minute < endMin
}

func ruleCoversDay(days string, day time.Weekday) bool {
	want := strings.ToLower(day.String())
	for _, d := range strings.Split(days, ",") {
		if strings.TrimSpace(strings.ToLower(d)) == want {
			return true
		}
	}
	return false
}

// ComputeTotals prices the order. The discount amount is clamped to
// [0, subtotal] so a discount can never push a total negative; tax is
// 7% of the discounted subtotal.
func ComputeTotals(lines []*Line, d *Discount) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal())
	}

	discount := decimal.Zero
	if d != nil && d.Value.IsPositive() {
		switch d.Type {
		case DiscountPercent:
			discount = subtotal.Mul(d.Value).Div(decimal.NewFromInt(100))
		case DiscountAmount:
			discount = d.Value
		}
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable.Add(tax),
	}
}
