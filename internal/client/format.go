package client

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Rupiah amounts display with no fractional digits, so the registered IDR
// currency is overridden to a zero-fraction variant. go-money then renders
// "Rp1.041.000" and negatives as "-Rp1.041.000".
func init() {
	money.AddCurrency("IDR", "Rp", "$1", ",", ".", 0)
}

// Indonesian short month names, as id-ID date localization produces them.
var shortMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// FormatCurrency renders an amount as Indonesian Rupiah with zero fractional
// digits and standard grouping.
func FormatCurrency(amount float64) string {
	units := decimal.NewFromFloat(amount).Round(0).IntPart()
	return money.New(units, "IDR").Display()
}

// FormatPurchaseDate renders a localized short month/day/year, e.g.
// "30 Agu 2026".
func FormatPurchaseDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// FormatRelativeTime renders how long ago t was relative to now: "Just now"
// under a minute, then minutes, hours, and days, falling back to a localized
// short month/day (no year) at a week.
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	mins := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}
	return fmt.Sprintf("%d %s", t.Day(), shortMonths[t.Month()-1])
}
