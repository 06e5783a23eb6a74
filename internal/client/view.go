package client

// FormValues are the raw string values of the purchase form fields.
type FormValues struct {
	Weight        string
	PurchasePrice string
	TotalPaid     string
	PurchaseDate  string
	Notes         string
}

// TickerEntry is one rendered price ticker item.
type TickerEntry struct {
	Label string // "5g"
	Buy   string // formatted buy price
}

// PurchaseRow is one rendered purchase list entry. Notes is empty when the
// record carries none, in which case no notes block renders.
type PurchaseRow struct {
	ID            uint
	Weight        string
	PurchasePrice string // per gram
	TotalPaid     string
	Date          string
	Added         string
	Notes         string
}

// SummaryView is the rendered portfolio summary. Positive tags the
// profit/loss display class; zero counts as positive.
type SummaryView struct {
	TotalWeight          string
	TotalInvested        string
	CurrentValue         string
	ProfitLoss           string
	ProfitLossPercentage string
	Positive             bool
}

// View binds the controller to a presentation surface through typed get/set
// operations per field and region, replacing scattered by-identifier lookups.
type View interface {
	// form
	Form() FormValues
	FillForm(FormValues)
	ClearForm()
	SetTotalPaid(string)
	SetFormHeading(string)
	ScrollToForm()

	// price ticker region
	ShowTickerLoading()
	ShowTicker([]TickerEntry)

	// purchase list region
	ShowPurchases([]PurchaseRow)
	ShowPurchasesEmpty()
	ShowPurchasesError(string)

	// summary region
	ShowSummary(SummaryView)

	// user interaction
	Alert(string)
	Confirm(string) bool
}
