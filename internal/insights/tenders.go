package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

// Tender sort keys.
const (
	TenderSortNewest       = "newest"
	TenderSortPriceHigh    = "price-high"
	TenderSortPriceLow     = "price-low"
	TenderSortQuantityHigh = "quantity-high"
)

type TenderQuery struct {
	Search    string
	WasteType string
	Status    string
	SortBy    string
}

// IsZero reports whether the query leaves the feed untouched.
func (q TenderQuery) IsZero() bool {
	return strings.TrimSpace(q.Search) == "" && q.WasteType == "" && q.Status == "" && q.SortBy == ""
}

// FilterTenders applies the marketplace filters on a copy. A zero query returns the input as is.
func FilterTenders(tenders []*domain.Tender, q TenderQuery) []*domain.Tender {
	if q.IsZero() {
		return tenders
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]*domain.Tender, 0, len(tenders))
	for _, t := range tenders {
		if t == nil {
			continue
		}
		if q.WasteType != "" && !strings.EqualFold(t.WasteType, q.WasteType) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(t.Status, q.Status) {
			continue
		}
		if search != "" && !tenderMatches(t, search) {
			continue
		}
		out = append(out, t)
	}

	switch q.SortBy {
	case TenderSortNewest:
		sort.SliceStable(out, func(i, j int) bool { return parseDeadline(out[i].Deadline).After(parseDeadline(out[j].Deadline)) })
	case TenderSortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerTon > out[j].PricePerTon })
	case TenderSortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerTon < out[j].PricePerTon })
	case TenderSortQuantityHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	}
	return out
}

func tenderMatches(t *domain.Tender, search string) bool {
	for _, field := range []string{t.Title, t.Company, t.WasteType, t.Location} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// parseDeadline accepts RFC 3339 timestamps and plain dates. Unparseable deadlines sort last.
func parseDeadline(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
