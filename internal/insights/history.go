package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

// Transaction is one row of the wallet's activity list.
type Transaction struct {
	ListingID string               `json:"id"`
	Action    string               `json:"action"`
	CO2Kg     float64              `json:"co2"`
	Tokens    float64              `json:"tokens"`
	Date      time.Time            `json:"date"`
	Status    domain.ListingStatus `json:"status"`
}

// TransactionHistory returns one row per listing, newest first.
func TransactionHistory(listings []*domain.Listing) []Transaction {
	rows := make([]Transaction, 0, len(listings))
	for _, l := range listings {
		if l == nil {
			continue
		}
		kg := QuantityKg(l)
		wasteType := l.WasteType()
		if strings.TrimSpace(wasteType) == "" {
			wasteType = "waste"
		}
		rows = append(rows, Transaction{
			ListingID: l.ID,
			Action:    "Sold " + l.CropType + " " + wasteType,
			CO2Kg:     kg,
			Tokens:    roundTo(kg/kgPerTon, 2),
			Date:      l.CreatedAt,
			Status:    l.Status,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows
}
