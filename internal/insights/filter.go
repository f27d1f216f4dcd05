package insights

import (
	"sort"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

// Sort keys accepted by FilterListings.
const (
	SortCreatedAt = "createdAt"
	SortPrice     = "price"
	SortWeight    = "weight"
)

// Query narrows and orders a user's listings.
type Query struct {
	Search string
	Status domain.ListingStatus
	SortBy string
	Asc    bool
}

// FilterListings returns a new slice; the input is never reordered.
// Search is case-insensitive over crop type and description. Default order is newest first.
func FilterListings(listings []*domain.Listing, q Query) []*domain.Listing {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]*domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l == nil {
			continue
		}
		if q.Status != "" && !strings.EqualFold(string(l.Status), string(q.Status)) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(l.CropType), search) &&
			!strings.Contains(strings.ToLower(l.WasteDescription), search) {
			continue
		}
		out = append(out, l)
	}

	var less func(a, b *domain.Listing) bool
	switch q.SortBy {
	case SortPrice:
		less = func(a, b *domain.Listing) bool { return a.EstimatedValue() < b.EstimatedValue() }
	case SortWeight:
		less = func(a, b *domain.Listing) bool { return QuantityKg(a) < QuantityKg(b) }
	default:
		less = func(a, b *domain.Listing) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.Asc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}
