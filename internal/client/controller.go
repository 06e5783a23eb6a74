package client

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wsantoso/gold-tracker/internal/models"
)

const (
	createHeading = "Add Purchase"
	editHeading   = "Edit Purchase"

	priceRefreshInterval = 5 * time.Minute
)

// Controller coordinates the portfolio client: it reacts to form input,
// issues API operations, and renders results into the bound View.
type Controller struct {
	api   *Client
	state *State
	view  View
	log   *slog.Logger
	now   func() time.Time
}

func NewController(api *Client, view View, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:   api,
		state: NewState(),
		view:  view,
		log:   logger,
		now:   time.Now,
	}
}

// State exposes the session state, e.g. for a front end listing record ids.
func (c *Controller) State() *State {
	return c.state
}

// Start runs the three initial fetches concurrently, waits for them, then
// keeps refreshing prices every five minutes until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for _, load := range []func(context.Context){
		c.LoadPrices, c.LoadPurchases, c.LoadPortfolio,
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			load(ctx)
		}()
	}
	wg.Wait()

	go c.refreshPrices(ctx)
}

func (c *Controller) refreshPrices(ctx context.Context) {
	ticker := time.NewTicker(priceRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.LoadPrices(ctx)
		}
	}
}

// CalculateTotal recomputes the total field from the weight and price inputs.
// Empty or non-numeric inputs count as zero; the result is rounded to two
// decimal places. Purely local, no network call.
func (c *Controller) CalculateTotal() {
	form := c.view.Form()
	weight := parseOrZero(form.Weight)
	price := parseOrZero(form.PurchasePrice)
	total := decimal.NewFromFloat(weight).Mul(decimal.NewFromFloat(price))
	c.view.SetTotalPaid(total.StringFixed(2))
}

// LoadPrices refreshes the price ticker. Failures of either tier are logged
// and leave the previous ticker display unchanged.
func (c *Controller) LoadPrices(ctx context.Context) {
	snap, err := c.api.FetchPrices(ctx)
	if err != nil {
		c.log.Error("loading prices", "error", err)
		return
	}

	c.state.SetPrices(snap)

	if len(snap.Data) == 0 {
		c.view.ShowTickerLoading()
		return
	}

	entries := make([]TickerEntry, 0, len(snap.Data))
	for _, d := range snap.Data {
		entries = append(entries, TickerEntry{
			Label: d.Label + "g",
			Buy:   FormatCurrency(d.Buy),
		})
	}
	c.view.ShowTicker(entries)
}

// LoadPurchases re-fetches the purchase collection, replaces the in-memory
// list wholesale, and re-renders it. This is the one read path with
// user-visible error text.
func (c *Controller) LoadPurchases(ctx context.Context) {
	purchases, err := c.api.FetchPurchases(ctx)
	if err != nil {
		c.log.Error("loading purchases", "error", err)
		c.view.ShowPurchasesError("Failed to load purchases")
		return
	}

	c.state.SetPurchases(purchases)
	c.renderPurchases()
}

func (c *Controller) renderPurchases() {
	purchases := c.state.Purchases()
	if len(purchases) == 0 {
		c.view.ShowPurchasesEmpty()
		return
	}

	now := c.now()
	rows := make([]PurchaseRow, 0, len(purchases))
	for _, p := range purchases {
		rows = append(rows, PurchaseRow{
			ID:            p.ID,
			Weight:        formatNumber(p.Weight) + "g",
			PurchasePrice: FormatCurrency(p.PurchasePrice) + "/g",
			TotalPaid:     FormatCurrency(p.TotalPaid),
			Date:          FormatPurchaseDate(p.PurchaseDate),
			Added:         FormatRelativeTime(p.CreatedAt, now),
			Notes:         p.Notes,
		})
	}
	c.view.ShowPurchases(rows)
}

// LoadPortfolio refreshes the summary cards. Failures are logged only.
func (c *Controller) LoadPortfolio(ctx context.Context) {
	summary, err := c.api.FetchPortfolio(ctx)
	if err != nil {
		c.log.Error("loading portfolio", "error", err)
		return
	}

	positive := summary.ProfitLoss >= 0
	sign := ""
	if positive {
		sign = "+"
	}

	c.view.ShowSummary(SummaryView{
		TotalWeight:          strconv.FormatFloat(summary.TotalWeight, 'f', 2, 64) + "g",
		TotalInvested:        FormatCurrency(summary.TotalInvested),
		CurrentValue:         FormatCurrency(summary.CurrentValue),
		ProfitLoss:           sign + FormatCurrency(summary.ProfitLoss),
		ProfitLossPercentage: sign + strconv.FormatFloat(summary.ProfitLossPercentage, 'f', 2, 64) + "%",
		Positive:             positive,
	})
}

// Submit sends the form as an update when editing, otherwise as a create. On
// success the form resets to create mode and the purchase list and portfolio
// are re-fetched, list first since the summary depends on the new totals. On
// failure the form state is left untouched.
func (c *Controller) Submit(ctx context.Context) {
	form := c.view.Form()
	weight := parseOrZero(form.Weight)
	price := parseOrZero(form.PurchasePrice)
	total := parseOrZero(form.TotalPaid)
	date := form.PurchaseDate

	var err error
	if id, editing := c.state.EditingID(); editing {
		_, err = c.api.UpdatePurchase(ctx, id, models.UpdatePurchaseRequest{
			Weight:        &weight,
			PurchasePrice: &price,
			TotalPaid:     &total,
			PurchaseDate:  &date,
			Notes:         &form.Notes,
		})
	} else {
		_, err = c.api.CreatePurchase(ctx, models.CreatePurchaseRequest{
			Weight:        &weight,
			PurchasePrice: &price,
			TotalPaid:     &total,
			PurchaseDate:  &date,
			Notes:         form.Notes,
		})
	}

	var backendErr *BackendError
	switch {
	case errors.As(err, &backendErr):
		c.view.Alert("Error: " + backendErr.Message)
		return
	case err != nil:
		c.log.Error("saving purchase", "error", err)
		c.view.Alert("Failed to save purchase")
		return
	}

	c.view.ClearForm()
	c.state.StopEditing()
	c.view.SetFormHeading(createHeading)
	c.LoadPurchases(ctx)
	c.LoadPortfolio(ctx)
}

// Edit switches the form into edit mode for the given record, populating
// every field from the in-memory list. Unknown ids are ignored.
func (c *Controller) Edit(id uint) {
	p, ok := c.state.Find(id)
	if !ok {
		return
	}

	c.state.StartEditing(id)
	c.view.SetFormHeading(editHeading)
	c.view.FillForm(FormValues{
		Weight:        formatNumber(p.Weight),
		PurchasePrice: formatNumber(p.PurchasePrice),
		TotalPaid:     formatNumber(p.TotalPaid),
		PurchaseDate:  p.PurchaseDate.Format("2006-01-02"),
		Notes:         p.Notes,
	})
	c.view.ScrollToForm()
}

// Delete removes a record after interactive confirmation. Declining sends
// nothing. The list is never trimmed optimistically; a success re-fetches it.
func (c *Controller) Delete(ctx context.Context, id uint) {
	if !c.view.Confirm("Are you sure you want to delete this purchase?") {
		return
	}

	err := c.api.DeletePurchase(ctx, id)

	var backendErr *BackendError
	switch {
	case errors.As(err, &backendErr):
		c.view.Alert("Error: " + backendErr.Message)
		return
	case err != nil:
		c.log.Error("deleting purchase", "error", err)
		c.view.Alert("Failed to delete purchase")
		return
	}

	c.LoadPurchases(ctx)
	c.LoadPortfolio(ctx)
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// formatNumber renders a float with no trailing zeros ("5", "2.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
