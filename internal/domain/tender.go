package domain

// Tender is a buyer's request for waste material as stored in the marketplace seed collection.
// Tenders are read-only for this service.
type Tender struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	WasteType   string  `json:"wasteType"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	PricePerTon float64 `json:"pricePerTon"`
	Location    string  `json:"location"`
	Deadline    string  `json:"deadline"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}
