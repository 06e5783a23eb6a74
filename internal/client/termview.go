package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// TermView is a terminal implementation of View. It keeps the form fields in
// memory (a terminal has no persistent form) and prints each region as it is
// rendered. Confirmations are read line-wise from the bound reader.
type TermView struct {
	mu      sync.Mutex
	out     io.Writer
	in      *bufio.Reader
	form    FormValues
	heading string
}

func NewTermView(out io.Writer, in io.Reader) *TermView {
	return &TermView{
		out:     out,
		in:      bufio.NewReader(in),
		heading: createHeading,
	}
}

func (v *TermView) Form() FormValues {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *TermView) FillForm(f FormValues) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = f
}

// SetField writes one named form field, the way a single input box changes.
func (v *TermView) SetField(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch name {
	case "weight":
		v.form.Weight = value
	case "purchasePrice":
		v.form.PurchasePrice = value
	case "totalPaid":
		v.form.TotalPaid = value
	case "purchaseDate":
		v.form.PurchaseDate = value
	case "notes":
		v.form.Notes = value
	}
}

func (v *TermView) ClearForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form = FormValues{}
}

func (v *TermView) SetTotalPaid(total string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.TotalPaid = total
}

func (v *TermView) SetFormHeading(heading string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.heading = heading
}

func (v *TermView) ScrollToForm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "\n== %s ==\n", v.heading)
	fmt.Fprintf(v.out, "  weight: %s\n  price/g: %s\n  total: %s\n  date: %s\n  notes: %s\n",
		v.form.Weight, v.form.PurchasePrice, v.form.TotalPaid, v.form.PurchaseDate, v.form.Notes)
}

func (v *TermView) ShowTickerLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, "Loading prices...")
}

func (v *TermView) ShowTicker(entries []TickerEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Label+": "+e.Buy)
	}
	fmt.Fprintln(v.out, strings.Join(parts, " | "))
}

func (v *TermView) ShowPurchases(rows []PurchaseRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range rows {
		fmt.Fprintf(v.out, "[%d] %s  %s  %s  %s  added %s\n",
			r.ID, r.Weight, r.PurchasePrice, r.TotalPaid, r.Date, r.Added)
		if r.Notes != "" {
			fmt.Fprintf(v.out, "    %s\n", r.Notes)
		}
	}
}

func (v *TermView) ShowPurchasesEmpty() {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, "No purchases yet. Add your first gold purchase above!")
}

func (v *TermView) ShowPurchasesError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, msg)
}

func (v *TermView) ShowSummary(s SummaryView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	trend := "down"
	if s.Positive {
		trend = "up"
	}
	fmt.Fprintf(v.out, "Total Weight:   %s\n", s.TotalWeight)
	fmt.Fprintf(v.out, "Total Invested: %s\n", s.TotalInvested)
	fmt.Fprintf(v.out, "Current Value:  %s\n", s.CurrentValue)
	fmt.Fprintf(v.out, "Profit/Loss:    %s (%s, %s)\n", s.ProfitLoss, s.ProfitLossPercentage, trend)
}

func (v *TermView) Alert(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "!! %s\n", msg)
}

func (v *TermView) Confirm(msg string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "%s [y/N] ", msg)
	line, err := v.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
