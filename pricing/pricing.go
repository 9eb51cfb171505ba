// Package pricing computes cart totals and delivery charges.
//
// Delivery charges come from a fixed tier table keyed on the subtotal. Orders
// below MinimumOrder are not accepted at checkout; that band carries no charge.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MinimumOrder is the smallest subtotal checkout accepts.
var MinimumOrder = decimal.NewFromInt(500)

// Tier charges Charge for subtotals in [From, To). A zero To means unbounded.
type Tier struct {
	From   decimal.Decimal
	To     decimal.Decimal
	Charge decimal.Decimal
}

// TierTable is an ordered list of non-overlapping tiers.
type TierTable []Tier

// DefaultTiers is the store's delivery-charge table.
var DefaultTiers = TierTable{
	{From: decimal.Zero, To: decimal.NewFromInt(500), Charge: decimal.Zero},
	{From: decimal.NewFromInt(500), To: decimal.NewFromInt(2000), Charge: decimal.NewFromInt(250)},
	{From: decimal.NewFromInt(2000), To: decimal.NewFromInt(3000), Charge: decimal.NewFromInt(350)},
	{From: decimal.NewFromInt(3000), To: decimal.NewFromInt(5000), Charge: decimal.NewFromInt(500)},
	{From: decimal.NewFromInt(5000), Charge: decimal.Zero},
}

// Line is anything with a unit price and a quantity.
type Line interface {
	UnitPrice() float64
	Units() int
}

// Totals is the priced result of a cart.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Total          float64 `json:"total"`
}

// FreeDelivery reports whether the subtotal reached a zero-charge tier above the minimum.
func (t Totals) FreeDelivery() bool {
	return t.DeliveryCharge == 0 && MeetsMinimum(t.Subtotal)
}

// DeliveryCharge returns the charge for subtotal under table.
func DeliveryCharge(subtotal float64, table TierTable) float64 {
	return table.charge(decimal.NewFromFloat(subtotal)).InexactFloat64()
}

func (table TierTable) charge(subtotal decimal.Decimal) decimal.Decimal {
	for _, tier := range table {
		if subtotal.LessThan(tier.From) {
			continue
		}
		if tier.To.IsZero() || subtotal.LessThan(tier.To) {
			return tier.Charge
		}
	}
	return decimal.Zero
}

// Subtotal sums price × quantity over lines. Quantities below 1 count as 1.
func Subtotal[L Line](lines []L) float64 {
	return subtotal(lines).InexactFloat64()
}

func subtotal[L Line](lines []L) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		qty := line.Units()
		if qty < 1 {
			qty = 1
		}
		sum = sum.Add(decimal.NewFromFloat(line.UnitPrice()).Mul(decimal.NewFromInt(int64(qty))))
	}
	return sum.Round(2)
}

// Calculate prices lines under table.
func Calculate[L Line](lines []L, table TierTable) Totals {
	sub := subtotal(lines)
	charge := table.charge(sub)
	return Totals{
		Subtotal:       sub.InexactFloat64(),
		DeliveryCharge: charge.InexactFloat64(),
		Total:          sub.Add(charge).Round(2).InexactFloat64(),
	}
}

// MeetsMinimum reports whether subtotal is at least MinimumOrder.
func MeetsMinimum(subtotal float64) bool {
	return decimal.NewFromFloat(subtotal).GreaterThanOrEqual(MinimumOrder)
}

// Sum adds amounts with decimal precision.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}

// Describe renders table as the human-readable shipping policy lines.
func (table TierTable) Describe() string {
	var b strings.Builder
	for _, tier := range table {
		if tier.To.IsZero() {
			if tier.Charge.IsZero() {
				fmt.Fprintf(&b, "• Rs %s+: FREE\n", formatRupees(tier.From))
			} else {
				fmt.Fprintf(&b, "• Rs %s+: Rs %s\n", formatRupees(tier.From), formatRupees(tier.Charge))
			}
			continue
		}
		if tier.To.LessThanOrEqual(MinimumOrder) {
			continue
		}
		fmt.Fprintf(&b, "• Rs %s-%s: Rs %s\n",
			formatRupees(tier.From), formatRupees(tier.To.Sub(decimal.NewFromInt(1))), formatRupees(tier.Charge))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatRupees(d decimal.Decimal) string {
	s := d.StringFixed(0)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
