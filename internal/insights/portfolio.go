package insights

import "github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"

// Portfolio summarizes a seller's completed sales.
type Portfolio struct {
	TotalEarnings      float64 `json:"totalSales"`
	TotalVolumeKg      float64 `json:"totalWeight"`
	AveragePrice float64 `json:"averagePrice"`
	Transactions       int     `json:"transactions"`
}

// PortfolioStats aggregates completed listings only. Earnings are the sum of estimated value
// times weight in kilograms; the average price is earnings over total weight. Without
// completed listings every figure is zero.
func PortfolioStats(listings []*domain.Listing) Portfolio {
	var p Portfolio
	for _, l := range listings {
		if l == nil || l.Status != domain.StatusCompleted {
			continue
		}
		kg := QuantityKg(l)
		p.TotalVolumeKg += kg
		p.TotalEarnings += l.EstimatedValue() * kg
		p.Transactions++
	}
	if p.TotalVolumeKg > 0 {
		p.AveragePrice = p.TotalEarnings / p.TotalVolumeKg
	}
	p.TotalEarnings = roundTo(p.TotalEarnings, 2)
	p.AveragePrice = roundTo(p.AveragePrice, 2)
	return p
}
