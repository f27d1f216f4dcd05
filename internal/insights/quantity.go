// Package insights computes the read-only dashboard views from stored listings.
// Nothing here is persisted; every view is recomputed on request.
package insights

import (
	"math"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

const kgPerTon = 1000

// QuantityKg converts a listing's quantity to kilograms. Ton-denominated quantities are
// multiplied by 1000; kg, missing and unknown units count as kilograms. Negative or
// non-finite quantities count as zero.
func QuantityKg(l *domain.Listing) float64 {
	if l == nil {
		return 0
	}
	q := l.Quantity
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0
	}
	if l.QuantityUnit.IsTon() {
		return q * kgPerTon
	}
	return q
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
