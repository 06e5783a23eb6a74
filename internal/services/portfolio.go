package services

import (
	"github.com/shopspring/decimal"

	"github.com/wsantoso/gold-tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Summarize computes the portfolio valuation from the full purchase set and
// the current price snapshot.
//
// The current value prices the total held weight at an estimated market rate
// per gram: the mean buy price across all quoted denominations divided by the
// smallest denomination weight. With no purchases or no quotes the current
// value is zero, and with nothing invested the percentage is zero.
func Summarize(purchases []models.Purchase, table models.PriceTable) models.PortfolioSummary {
	var totalWeight, totalInvested decimal.Decimal
	for _, p := range purchases {
		totalWeight = totalWeight.Add(decimal.NewFromFloat(p.Weight))
		totalInvested = totalInvested.Add(decimal.NewFromFloat(p.TotalPaid))
	}

	var currentValue decimal.Decimal
	if len(purchases) > 0 {
		if first, ok := table.First(); ok && !first.Weight.IsZero() {
			var totalPrice decimal.Decimal
			for _, d := range table {
				totalPrice = totalPrice.Add(decimal.NewFromFloat(d.Buy))
			}
			count := decimal.NewFromInt(int64(len(table)))
			avgPerGram := totalPrice.Div(count).Div(first.Weight)
			currentValue = totalWeight.Mul(avgPerGram)
		}
	}

	profitLoss := currentValue.Sub(totalInvested)

	var pct decimal.Decimal
	if totalInvested.IsPositive() {
		pct = profitLoss.Div(totalInvested).Mul(hundred)
	}

	return models.PortfolioSummary{
		TotalWeight:          totalWeight.InexactFloat64(),
		TotalInvested:        totalInvested.InexactFloat64(),
		CurrentValue:         currentValue.InexactFloat64(),
		ProfitLoss:           profitLoss.InexactFloat64(),
		ProfitLossPercentage: pct.InexactFloat64(),
		PurchaseCount:        len(purchases),
	}
}
