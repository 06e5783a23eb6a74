package models

// PortfolioSummary is the server-computed aggregate valuation of all
// purchases priced at the current market rate.
type PortfolioSummary struct {
	TotalWeight          float64 `json:"total_weight"`
	TotalInvested        float64 `json:"total_invested"`
	CurrentValue         float64 `json:"current_value"`
	ProfitLoss           float64 `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
	PurchaseCount        int     `json:"purchase_count"`
}
