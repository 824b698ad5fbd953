// Package billing prices a cart snapshot.
//
// Amounts are kept as exact decimals; rounding to the currency precision
// happens only when a bill is rendered (see Round).
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/drstein77/shopcart/internal/models"
	"github.com/drstein77/shopcart/internal/tax"
)

// Precision is the number of decimal places amounts are rounded to on output.
const Precision = 2

// ComputeBill attaches tax to every item in cart order and sums price plus tax.
func ComputeBill(items []models.Item) (models.Bill, error) {
	bill := models.Bill{
		Items: make([]models.LineItem, 0, len(items)),
		Total: decimal.Zero,
	}

	for _, it := range items {
		t, err := tax.Tax(it.Price, it.Kind)
		if err != nil {
			return models.Bill{}, fmt.Errorf("tax for %s %d: %w", it.Kind, it.ID, err)
		}
		bill.Items = append(bill.Items, models.LineItem{Item: it, Tax: t})
		bill.Total = bill.Total.Add(decimal.NewFromInt(it.Price)).Add(t)
	}

	return bill, nil
}

// Round rounds half away from zero to Precision places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}
