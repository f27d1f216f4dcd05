package valuation

import (
	"strings"

	"github.com/Abdurahmanit/GroupProject/agrilink-service/internal/domain"
)

// DefaultValuePerTon applies when the crop type has no entry in the table.
const DefaultValuePerTon = 1200

var cropDefaults = map[string]float64{
	"rice":      1850,
	"wheat":     2200,
	"sugarcane": 1500,
}

// FallbackValue returns the default price per ton for a crop type.
func FallbackValue(cropType string) float64 {
	if v, ok := cropDefaults[strings.ToLower(strings.TrimSpace(cropType))]; ok {
		return v
	}
	return DefaultValuePerTon
}

// ApplyFallbackPricing fills EstimatedValue from the crop table when the classifier left it
// absent or zero. Negative values are not a price either and get the same fallback.
func ApplyFallbackPricing(c *domain.Classification) {
	if c == nil || c.EstimatedValue > 0 {
		return
	}
	c.EstimatedValue = FallbackValue(c.CropType)
}
